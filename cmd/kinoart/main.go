package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usageText = `Usage: kinoart [-config DIR] <command> [args]

Commands:
  get [flags] URL...   retrieve images through the cache
  ls [QUERY]           list cached keys, fuzzy-filtered by QUERY
  rm KEY...            remove cached images
  clear                delete the whole image cache

Run "kinoart get -h" for retrieval flags.
`

func main() {
	var showVersion bool
	var configDir string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configDir, "config", "", "config directory (default ~/.config/kinoart)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usageText) }
	flag.Parse()

	if showVersion {
		fmt.Printf("kinoart %s\n", Version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, configDir, flag.Args(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

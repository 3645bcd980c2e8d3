package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/mmcdole/kinoart/internal/adapter"
	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/downloader"
	"github.com/mmcdole/kinoart/internal/options"
	"github.com/mmcdole/kinoart/internal/retrieve"
	"github.com/mmcdole/kinoart/internal/store"
	"github.com/mmcdole/kinoart/internal/styles"
	"github.com/mmcdole/kinoart/internal/transition"
	"golang.org/x/term"
)

const defaultWidth = 100

type app struct {
	cfg     *adapter.Config
	logger  *slog.Logger
	cache   *store.ImageStore
	manager *retrieve.Manager
	out     io.Writer
	printer styles.Printer
	width   int
}

func run(ctx context.Context, configDir string, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usageText)
		return errors.New("no command given")
	}

	var dirs []string
	if configDir != "" {
		dirs = []string{configDir}
	}
	cfg, err := adapter.LoadConfig(dirs...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	defer closeLog()
	slog.SetDefault(logger)

	cache, err := store.NewImageStore(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		return fmt.Errorf("failed to open image cache: %w", err)
	}
	defer cache.Close()

	dl := downloader.New(logger,
		downloader.WithTimeout(cfg.Download.Timeout),
		downloader.WithToken(cfg.Server.Token),
		downloader.WithUserAgent("kinoart/"+Version),
	)

	a := &app{
		cfg:     cfg,
		logger:  logger,
		cache:   cache,
		manager: retrieve.NewManager(cache, dl, cfg.DefaultOptions(), logger),
		out:     out,
		width:   defaultWidth,
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.printer.Color = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			a.width = w
		}
	}

	cmd, rest := args[0], args[1:]
	logger.Debug("running command", "cmd", cmd, "args", len(rest))

	switch cmd {
	case "get":
		return a.get(ctx, rest)
	case "ls":
		return a.list(rest)
	case "rm":
		return a.remove(rest)
	case "clear":
		return a.clear()
	default:
		fmt.Fprint(out, usageText)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// getFlags are the per-call retrieval options accepted by "get"
type getFlags struct {
	force        bool
	memoryOnly   bool
	decode       bool
	noTransition bool
	transition   string
	duration     time.Duration
	outDir       string
}

func parseGetFlags(args []string) (getFlags, []string, error) {
	var f getFlags
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.BoolVar(&f.force, "force", false, "skip the cache and always download")
	fs.BoolVar(&f.memoryOnly, "memory-only", false, "do not write downloads to the disk cache")
	fs.BoolVar(&f.decode, "decode", false, "decode images to report dimensions")
	fs.BoolVar(&f.noTransition, "no-transition", false, "never report a transition")
	fs.StringVar(&f.transition, "transition", "", "transition for downloaded images (none, fade, flip-left, ...)")
	fs.DurationVar(&f.duration, "duration", 250*time.Millisecond, "transition duration")
	fs.StringVar(&f.outDir, "o", "", "write retrieved images into this directory")
	if err := fs.Parse(args); err != nil {
		return f, nil, err
	}
	return f, fs.Args(), nil
}

// callOptions converts flags into an options list. Only options the user
// actually set are included, so config defaults still apply to the rest.
// A Behavior item shadows the default one, so it starts from base, the
// default flags, rather than from zero.
func (f getFlags) callOptions(base options.Flags) (options.Info, error) {
	var info options.Info

	var flags options.Flags
	if f.force {
		flags |= options.ForceRefresh
	}
	if f.memoryOnly {
		flags |= options.CacheMemoryOnly
	}
	if f.decode {
		flags |= options.DecodeImage
	}
	if f.noTransition {
		flags |= options.SkipTransition
	}
	if flags != 0 {
		info = append(info, options.Behavior{Flags: base | flags})
	}

	if f.transition != "" {
		style, err := transition.ParseStyle(f.transition)
		if err != nil {
			return nil, err
		}
		effect := transition.None()
		switch style {
		case transition.StyleNone:
		case transition.StyleFade:
			effect = transition.Fade(f.duration)
		default:
			effect = transition.Flip(style, f.duration)
		}
		info = append(info, options.Transition{Effect: effect})
	}

	return info, nil
}

func (a *app) get(ctx context.Context, args []string) error {
	f, urls, err := parseGetFlags(args)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return errors.New("get: at least one URL is required")
	}

	info, err := f.callOptions(a.manager.Options().Flags())
	if err != nil {
		return err
	}

	if f.outDir != "" {
		if err := os.MkdirAll(f.outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	failed := 0
	for _, url := range urls {
		res, err := a.manager.Retrieve(ctx, url, info)
		if err != nil {
			failed++
			fmt.Fprintf(a.out, "%s %s %s\n",
				a.printer.Render(styles.ErrorStyle, "✗"), url, a.printer.Render(styles.DimStyle, err.Error()))
			if errors.Is(err, context.Canceled) {
				break
			}
			continue
		}

		line := fmt.Sprintf("%s %s %s %s",
			a.printer.Render(styles.SuccessStyle, "✓"), url, a.source(res.CacheType), humanSize(res.Image.Size()))
		if res.Image.Width > 0 {
			line += fmt.Sprintf(" %dx%d", res.Image.Width, res.Image.Height)
		}
		if !res.Transition.IsNone() {
			line += " " + a.printer.Render(styles.AccentStyle, "transition: "+res.Transition.String())
		}

		if f.outDir != "" {
			path := filepath.Join(f.outDir, outputName(url, res.Image.ContentType))
			if err := os.WriteFile(path, res.Image.Data, 0644); err != nil {
				failed++
				fmt.Fprintf(a.out, "%s %s\n", a.printer.Render(styles.ErrorStyle, "✗"), err)
				continue
			}
			line += " " + a.printer.Render(styles.DimStyle, "-> "+path)
		}

		fmt.Fprintln(a.out, line)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d retrievals failed", failed, len(urls))
	}
	return nil
}

func (a *app) source(c domain.CacheType) string {
	switch c {
	case domain.CacheTypeMemory:
		return a.printer.Render(styles.MemoryBadgeStyle, "[memory]")
	case domain.CacheTypeDisk:
		return a.printer.Render(styles.DiskBadgeStyle, "[disk]")
	default:
		return a.printer.Render(styles.AccentStyle, "[downloaded]")
	}
}

func (a *app) list(args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	matches := a.cache.Search(query)
	if len(matches) == 0 {
		fmt.Fprintln(a.out, a.printer.Render(styles.DimStyle, "no cached images"))
		return nil
	}

	for _, m := range matches {
		key := styles.Truncate(m.Key, a.width)
		if len([]rune(key)) < len([]rune(m.Key)) {
			// Highlights past the cut would land on the ellipsis
			fmt.Fprintln(a.out, key)
			continue
		}
		fmt.Fprintln(a.out, a.printer.Highlight(key, m.MatchedIndexes))
	}
	return nil
}

func (a *app) remove(keys []string) error {
	if len(keys) == 0 {
		return errors.New("rm: at least one key is required")
	}

	missing := 0
	for _, key := range keys {
		if !a.cache.Contains(key) {
			missing++
			msg := fmt.Sprintf("%s not cached: %s", a.printer.Render(styles.ErrorStyle, "✗"), key)
			if suggestion, ok := a.cache.Suggest(key); ok {
				msg += a.printer.Render(styles.DimStyle, " (did you mean "+suggestion+"?)")
			}
			fmt.Fprintln(a.out, msg)
			continue
		}
		a.cache.Remove(key)
		fmt.Fprintf(a.out, "%s removed %s\n", a.printer.Render(styles.SuccessStyle, "✓"), key)
	}

	if missing > 0 {
		return fmt.Errorf("%d key(s) not found", missing)
	}
	return nil
}

func (a *app) clear() error {
	n := len(a.cache.Keys())
	if err := a.cache.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	if err := a.cache.Close(); err != nil {
		return err
	}
	if err := adapter.ClearCache(a.cfg.Cache.Dir); err != nil {
		return err
	}
	a.logger.Info("cache cleared", "entries", n)
	fmt.Fprintf(a.out, "%s cleared %d cached image(s)\n", a.printer.Render(styles.SuccessStyle, "✓"), n)
	return nil
}

var preferredExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// outputName derives a stable file name for url
func outputName(url, contentType string) string {
	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:8])
	if ext, ok := preferredExt[contentType]; ok {
		return name + ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return name + exts[0]
	}
	return name + ".img"
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

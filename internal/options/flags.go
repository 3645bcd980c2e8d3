package options

import "strings"

// Flags is a bitset of retrieval behavior toggles
type Flags uint32

const (
	// ForceRefresh skips the cache lookup and always downloads
	ForceRefresh Flags = 1 << iota
	// CacheMemoryOnly keeps downloaded images out of the disk cache
	CacheMemoryOnly
	// DecodeImage decodes the image header to fill in dimensions
	DecodeImage
	// SkipTransition suppresses the transition even for downloaded images
	SkipTransition
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{ForceRefresh, "force-refresh"},
	{CacheMemoryOnly, "cache-memory-only"},
	{DecodeImage, "decode-image"},
	{SkipTransition, "skip-transition"},
}

// Has returns true if every bit in f2 is set in f
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

package options

import (
	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/transition"
)

// Info is an ordered options list. The same kind may appear more than once;
// lookups return the earliest occurrence.
type Info []Item

// FirstMatch returns the first item in list of the same kind as like.
// Only like's kind is used; its payload may be the zero value.
func FirstMatch(list []Item, like Item) (Item, bool) {
	for _, item := range list {
		if SameKind(item, like) {
			return item, true
		}
	}
	return nil, false
}

// FirstMatch returns the first item of the same kind as like
func (i Info) FirstMatch(like Item) (Item, bool) {
	return FirstMatch(i, like)
}

// With returns a new list with items placed ahead of i, so they take
// precedence over anything of the same kind already in i.
func (i Info) With(items ...Item) Info {
	out := make(Info, 0, len(items)+len(i))
	out = append(out, items...)
	return append(out, i...)
}

// Flags returns the configured behavior flags (zero if none)
func (i Info) Flags() Flags {
	if item, ok := i.FirstMatch(Behavior{}); ok {
		return as[Behavior](item).Flags
	}
	return 0
}

// TargetCache returns the configured cache, if any
func (i Info) TargetCache() (domain.ImageCache, bool) {
	if item, ok := i.FirstMatch(TargetCache{}); ok {
		return as[TargetCache](item).Cache, true
	}
	return nil, false
}

// Downloader returns the configured downloader, if any
func (i Info) Downloader() (domain.ImageDownloader, bool) {
	if item, ok := i.FirstMatch(Downloader{}); ok {
		return as[Downloader](item).Downloader, true
	}
	return nil, false
}

// Transition returns the configured transition effect, if any
func (i Info) Transition() (transition.Effect, bool) {
	if item, ok := i.FirstMatch(Transition{}); ok {
		return as[Transition](item).Effect, true
	}
	return transition.None(), false
}

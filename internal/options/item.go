// Package options holds the per-call configuration for image retrieval.
//
// An Info is an ordered list of heterogeneous Items. Callers build it in any
// order, and consumers look items up by kind with FirstMatch. When a kind
// appears more than once, the earliest item wins and later ones are ignored.
package options

import (
	"fmt"

	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/transition"
)

// Kind is the variant tag of an Item
type Kind int

const (
	KindBehavior Kind = iota
	KindTargetCache
	KindDownloader
	KindTransition
)

func (k Kind) String() string {
	switch k {
	case KindBehavior:
		return "behavior"
	case KindTargetCache:
		return "target-cache"
	case KindDownloader:
		return "downloader"
	case KindTransition:
		return "transition"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Item is one configuration facet. The set of implementations is closed:
// Behavior, TargetCache, Downloader and Transition.
type Item interface {
	Kind() Kind
	isItem()
}

// Behavior carries flags that change how retrieval is performed
type Behavior struct {
	Flags Flags
}

// TargetCache selects the cache consulted and populated by a retrieval
type TargetCache struct {
	Cache domain.ImageCache
}

// Downloader selects the downloader used on a cache miss
type Downloader struct {
	Downloader domain.ImageDownloader
}

// Transition is applied when presenting a freshly downloaded image
type Transition struct {
	Effect transition.Effect
}

func (Behavior) Kind() Kind    { return KindBehavior }
func (TargetCache) Kind() Kind { return KindTargetCache }
func (Downloader) Kind() Kind  { return KindDownloader }
func (Transition) Kind() Kind  { return KindTransition }

func (Behavior) isItem()    {}
func (TargetCache) isItem() {}
func (Downloader) isItem()  {}
func (Transition) isItem()  {}

// SameKind reports whether a and b are the same variant. Payloads are never
// compared. Nil operands never match. A pointer to a variant counts as that
// variant, since it satisfies Item through the value methods.
func SameKind(a, b Item) bool {
	ka, ok := kindOf(a)
	if !ok {
		return false
	}
	kb, ok := kindOf(b)
	return ok && ka == kb
}

// kindOf resolves the variant without calling Kind, which panics on a nil
// variant pointer.
func kindOf(it Item) (Kind, bool) {
	switch it.(type) {
	case Behavior, *Behavior:
		return KindBehavior, true
	case TargetCache, *TargetCache:
		return KindTargetCache, true
	case Downloader, *Downloader:
		return KindDownloader, true
	case Transition, *Transition:
		return KindTransition, true
	default:
		return 0, false
	}
}

// as extracts the variant value of type T from it, dereferencing a
// non-nil pointer. A nil pointer yields the zero payload.
func as[T Behavior | TargetCache | Downloader | Transition](it Item) T {
	switch v := any(it).(type) {
	case T:
		return v
	case *T:
		if v != nil {
			return *v
		}
	}
	var zero T
	return zero
}

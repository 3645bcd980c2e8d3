package options

import (
	"context"
	"testing"
	"time"

	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedCache struct{ name string }

func (namedCache) Retrieve(string) (*domain.Image, domain.CacheType, bool) {
	return nil, domain.CacheTypeNone, false
}
func (namedCache) Store(*domain.Image, string, bool) error { return nil }
func (namedCache) Remove(string)                           {}

type namedDownloader struct{ name string }

func (namedDownloader) Download(context.Context, string) (*domain.Image, error) {
	return nil, nil
}

// sample returns two items of every kind with different payloads
func sample() map[Kind][2]Item {
	return map[Kind][2]Item{
		KindBehavior:    {Behavior{Flags: ForceRefresh}, Behavior{Flags: CacheMemoryOnly | DecodeImage}},
		KindTargetCache: {TargetCache{Cache: namedCache{"a"}}, TargetCache{Cache: namedCache{"b"}}},
		KindDownloader:  {Downloader{Downloader: namedDownloader{"a"}}, Downloader{}},
		KindTransition:  {Transition{Effect: transition.Fade(time.Second)}, Transition{Effect: transition.None()}},
	}
}

func TestSameKind_AllPairs(t *testing.T) {
	items := sample()
	kinds := []Kind{KindBehavior, KindTargetCache, KindDownloader, KindTransition}

	for _, ka := range kinds {
		for _, kb := range kinds {
			t.Run(ka.String()+"/"+kb.String(), func(t *testing.T) {
				for _, a := range items[ka] {
					for _, b := range items[kb] {
						assert.Equal(t, ka == kb, SameKind(a, b))
						assert.Equal(t, SameKind(a, b), SameKind(b, a), "must be symmetric")
					}
				}
			})
		}
	}
}

func TestSameKind_IgnoresPayload(t *testing.T) {
	assert.True(t, SameKind(Behavior{Flags: ForceRefresh}, Behavior{}))
	assert.True(t, SameKind(TargetCache{Cache: namedCache{"x"}}, TargetCache{}))
	assert.True(t, SameKind(Transition{Effect: transition.Fade(time.Second)}, Transition{Effect: transition.Flip(transition.StyleFlipFromTop, 0)}))
}

func TestSameKind_Nil(t *testing.T) {
	assert.False(t, SameKind(nil, nil))
	assert.False(t, SameKind(nil, Behavior{}))
	assert.False(t, SameKind(Behavior{}, nil))
}

func TestSameKind_PointerVariants(t *testing.T) {
	kinds := []Kind{KindBehavior, KindTargetCache, KindDownloader, KindTransition}
	pointers := map[Kind]Item{
		KindBehavior:    &Behavior{Flags: ForceRefresh},
		KindTargetCache: &TargetCache{Cache: namedCache{"p"}},
		KindDownloader:  &Downloader{},
		KindTransition:  (*Transition)(nil),
	}
	items := sample()

	for _, ka := range kinds {
		for _, kb := range kinds {
			p, v := pointers[ka], items[kb][0]
			assert.Equal(t, ka == kb, SameKind(p, v), "%s vs %s", ka, kb)
			assert.Equal(t, ka == kb, SameKind(v, p), "%s vs %s", kb, ka)
			assert.Equal(t, ka == kb, SameKind(p, pointers[kb]))
		}
	}
	assert.Equal(t, KindBehavior, pointers[KindBehavior].Kind())
}

func TestItemKind(t *testing.T) {
	for kind, pair := range sample() {
		for _, item := range pair {
			assert.Equal(t, kind, item.Kind())
		}
	}
	assert.Equal(t, "target-cache", KindTargetCache.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestFlags(t *testing.T) {
	f := ForceRefresh | DecodeImage

	assert.True(t, f.Has(ForceRefresh))
	assert.True(t, f.Has(ForceRefresh|DecodeImage))
	assert.False(t, f.Has(CacheMemoryOnly))
	assert.True(t, Flags(0).Has(0))

	assert.Equal(t, "force-refresh|decode-image", f.String())
	assert.Equal(t, "none", Flags(0).String())
}

func TestFirstMatch_FuncAndMethodAgree(t *testing.T) {
	list := Info{Transition{Effect: transition.Fade(time.Second)}}

	got, ok := FirstMatch(list, Transition{})
	require.True(t, ok)
	fromMethod, _ := list.FirstMatch(Transition{})
	assert.Equal(t, got, fromMethod)
}

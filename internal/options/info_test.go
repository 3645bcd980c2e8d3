package options

import (
	"testing"
	"time"

	"github.com/mmcdole/kinoart/internal/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstMatch_EmptyList(t *testing.T) {
	for _, pair := range sample() {
		got, ok := Info{}.FirstMatch(pair[0])
		assert.False(t, ok)
		assert.Nil(t, got)

		_, ok = Info(nil).FirstMatch(pair[0])
		assert.False(t, ok)
	}
}

func TestFirstMatch_KindAbsent(t *testing.T) {
	fade := transition.Fade(300 * time.Millisecond)
	list := Info{Transition{Effect: fade}}

	_, ok := list.FirstMatch(Downloader{})
	assert.False(t, ok)

	got, ok := list.FirstMatch(Transition{})
	require.True(t, ok)
	assert.Equal(t, Transition{Effect: fade}, got)
}

func TestFirstMatch_EarliestWins(t *testing.T) {
	c1, c2 := namedCache{"c1"}, namedCache{"c2"}
	list := Info{
		Behavior{Flags: DecodeImage},
		TargetCache{Cache: c1},
		TargetCache{Cache: c2},
	}

	got, ok := list.FirstMatch(TargetCache{Cache: c2})
	require.True(t, ok)
	assert.Equal(t, TargetCache{Cache: c1}, got)

	// Unmutated list gives the same answer again
	again, ok := list.FirstMatch(TargetCache{})
	require.True(t, ok)
	assert.Equal(t, got, again)
	assert.Len(t, list, 3)
}

func TestFirstMatch_SmallestIndexPerKind(t *testing.T) {
	items := sample()
	list := Info{
		items[KindDownloader][1],
		items[KindBehavior][0],
		items[KindDownloader][0],
		items[KindTransition][1],
		items[KindBehavior][1],
		items[KindTransition][0],
	}

	want := map[Kind]Item{
		KindDownloader: items[KindDownloader][1],
		KindBehavior:   items[KindBehavior][0],
		KindTransition: items[KindTransition][1],
	}

	for kind, item := range want {
		got, ok := list.FirstMatch(item)
		require.True(t, ok, kind.String())
		assert.Equal(t, item, got, kind.String())
	}

	_, ok := list.FirstMatch(TargetCache{})
	assert.False(t, ok)
}

func TestWith_PrependsWithoutMutating(t *testing.T) {
	base := Info{Behavior{Flags: DecodeImage}, Transition{Effect: transition.Fade(time.Second)}}
	override := base.With(Behavior{Flags: ForceRefresh})

	assert.Equal(t, ForceRefresh, override.Flags())
	assert.Equal(t, DecodeImage, base.Flags())
	assert.Len(t, base, 2)
	assert.Len(t, override, 3)
}

func TestTypedAccessors(t *testing.T) {
	cache := namedCache{"disk"}
	dl := namedDownloader{"http"}
	fade := transition.Fade(time.Second)

	list := Info{
		Transition{Effect: fade},
		Downloader{Downloader: dl},
		TargetCache{Cache: cache},
		Behavior{Flags: CacheMemoryOnly},
	}

	gotCache, ok := list.TargetCache()
	require.True(t, ok)
	assert.Equal(t, cache, gotCache)

	gotDL, ok := list.Downloader()
	require.True(t, ok)
	assert.Equal(t, dl, gotDL)

	gotEffect, ok := list.Transition()
	require.True(t, ok)
	assert.Equal(t, fade, gotEffect)

	assert.Equal(t, CacheMemoryOnly, list.Flags())
}

func TestTypedAccessors_Absent(t *testing.T) {
	var list Info

	_, ok := list.TargetCache()
	assert.False(t, ok)
	_, ok = list.Downloader()
	assert.False(t, ok)
	effect, ok := list.Transition()
	assert.False(t, ok)
	assert.True(t, effect.IsNone())
	assert.Equal(t, Flags(0), list.Flags())
}

func TestFirstMatch_PointerVariants(t *testing.T) {
	cache := namedCache{"ptr"}
	list := Info{
		&Behavior{Flags: ForceRefresh},
		&TargetCache{Cache: cache},
		(*Transition)(nil),
		Behavior{Flags: DecodeImage},
	}

	got, ok := list.FirstMatch(Behavior{})
	require.True(t, ok)
	assert.Same(t, list[0], got)
	assert.Equal(t, ForceRefresh, list.Flags())

	c, ok := list.TargetCache()
	require.True(t, ok)
	assert.Equal(t, cache, c)

	effect, ok := list.Transition()
	require.True(t, ok, "a nil variant pointer still occupies its kind")
	assert.True(t, effect.IsNone())

	_, ok = list.Downloader()
	assert.False(t, ok)
}

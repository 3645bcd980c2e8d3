package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("poster", 0))
	assert.Equal(t, "poster", Truncate("poster", 6))
	assert.Equal(t, "pos", Truncate("poster", 3))
	assert.Equal(t, "po...", Truncate("poster.png", 5))
	assert.Equal(t, "ép...", Truncate("épisode", 5))
}

func TestPrinter_PlainPassThrough(t *testing.T) {
	p := Printer{Color: false}
	assert.Equal(t, "hello", p.Render(ErrorStyle, "hello"))
	assert.Equal(t, "hello", p.Highlight("hello", []int{0, 1}))
}

func TestPrinter_HighlightKeepsText(t *testing.T) {
	p := Printer{Color: true}
	out := p.Highlight("thumb", []int{0, 4})
	assert.Contains(t, out, "hum")
	assert.Equal(t, "thumb", p.Highlight("thumb", nil))
}

func TestPrinter_HighlightUsesByteOffsets(t *testing.T) {
	p := Printer{Color: true}
	// "p" starts at byte 2, after the two-byte "é"
	want := "é" + MatchHighlightStyle.Render("p") + "isode"
	assert.Equal(t, want, p.Highlight("épisode", []int{2}))
}

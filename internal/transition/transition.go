// Package transition describes the visual effect used to present an image
// that was just downloaded. Cached images are never animated.
package transition

import (
	"fmt"
	"strings"
	"time"
)

// Style identifies the animation used to bring an image in
type Style int

const (
	StyleNone Style = iota
	StyleFade
	StyleFlipFromLeft
	StyleFlipFromRight
	StyleFlipFromTop
	StyleFlipFromBottom
)

var styleNames = map[Style]string{
	StyleNone:           "none",
	StyleFade:           "fade",
	StyleFlipFromLeft:   "flip-left",
	StyleFlipFromRight:  "flip-right",
	StyleFlipFromTop:    "flip-top",
	StyleFlipFromBottom: "flip-bottom",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// ParseStyle converts a config/flag value ("fade", "flip-left", ...) to a Style
func ParseStyle(s string) (Style, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StyleNone, nil
	}
	for style, name := range styleNames {
		if name == s {
			return style, nil
		}
	}
	return StyleNone, fmt.Errorf("unknown transition style: %q", s)
}

// Effect is a transition descriptor: which animation and how long it runs
type Effect struct {
	Style    Style
	Duration time.Duration
}

// None returns the no-op effect
func None() Effect {
	return Effect{Style: StyleNone}
}

// Fade returns a cross-fade lasting d
func Fade(d time.Duration) Effect {
	return Effect{Style: StyleFade, Duration: d}
}

// Flip returns a flip effect. Non-flip styles are coerced to StyleFlipFromLeft.
func Flip(style Style, d time.Duration) Effect {
	switch style {
	case StyleFlipFromLeft, StyleFlipFromRight, StyleFlipFromTop, StyleFlipFromBottom:
	default:
		style = StyleFlipFromLeft
	}
	return Effect{Style: style, Duration: d}
}

// IsNone returns true if presenting with this effect is instantaneous
func (e Effect) IsNone() bool {
	return e.Style == StyleNone || e.Duration <= 0
}

// Progress returns how far along the effect is after elapsed, in [0, 1]
func (e Effect) Progress(elapsed time.Duration) float64 {
	if e.IsNone() || elapsed >= e.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(e.Duration)
}

func (e Effect) String() string {
	if e.IsNone() {
		return StyleNone.String()
	}
	return fmt.Sprintf("%s %s", e.Style, e.Duration)
}

// Package styles holds the terminal palette and text styles for the CLI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	PlexOrange = lipgloss.Color("#E5A00D")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(PlexOrange)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	// Cache layer badges
	MemoryBadgeStyle = lipgloss.NewStyle().
				Foreground(Blue)

	DiskBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// Match highlight style for fuzzy search results
var MatchHighlightStyle = lipgloss.NewStyle().
	Foreground(PlexOrange).
	Bold(true)

// Printer renders styled text, or plain text when output isn't a terminal
type Printer struct {
	Color bool
}

// Render applies style unless color is disabled
func (p Printer) Render(style lipgloss.Style, s string) string {
	if !p.Color {
		return s
	}
	return style.Render(s)
}

// Highlight renders s with the runes starting at the matched byte offsets
// emphasized. Offsets are the ones sahilm/fuzzy reports.
func (p Printer) Highlight(s string, matched []int) string {
	if !p.Color || len(matched) == 0 {
		return s
	}

	set := make(map[int]struct{}, len(matched))
	for _, i := range matched {
		set[i] = struct{}{}
	}

	var b strings.Builder
	for i, r := range s {
		if _, ok := set[i]; ok {
			b.WriteString(MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

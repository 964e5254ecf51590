// Package ui implements the blockfall terminal interface: a bubbletea model
// driving the game engine, lipgloss styling with light/dark themes, and the
// help and high-score overlays.
package ui

import (
	"os"
	"strconv"
	"strings"

	"blockfall/internal/game"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the non-piece colors of the interface.
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
	Danger     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101F38"),
		Muted:      lipgloss.Color("#8a93a1"),
		Border:     lipgloss.Color("#dce0e5"),
		Accent:     lipgloss.Color("#2196F3"),
		Danger:     lipgloss.Color("#e53935"),
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Muted:      lipgloss.Color("#6b7687"),
		Border:     lipgloss.Color("#2a3850"),
		Accent:     lipgloss.Color("#8BC34A"),
		Danger:     lipgloss.Color("#e53935"),
		IsDark:     true,
	}
}

// ThemeFor resolves a config theme name. "auto" inspects COLORFGBG the same
// way common terminal tools do and defaults to dark, the usual terminal
// background.
func ThemeFor(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	}

	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// format is "foreground;background"; low indexes are dark backgrounds
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bg, err := strconv.Atoi(parts[1]); err == nil && bg >= 7 && bg != 8 {
				return LightTheme()
			}
		}
	}
	return DarkTheme()
}

// pieceColors maps each tetromino to its classic color.
var pieceColors = map[game.Kind]lipgloss.Color{
	game.KindI: lipgloss.Color("#00bcd4"), // cyan
	game.KindO: lipgloss.Color("#ffd54f"), // yellow
	game.KindT: lipgloss.Color("#ab47bc"), // purple
	game.KindS: lipgloss.Color("#8BC34A"), // green
	game.KindZ: lipgloss.Color("#e53935"), // red
	game.KindJ: lipgloss.Color("#2196F3"), // blue
	game.KindL: lipgloss.Color("#ff8a65"), // orange
}

// Styles holds all styled components.
type Styles struct {
	Theme Theme

	Board      lipgloss.Style
	Panel      lipgloss.Style
	Title      lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Muted      lipgloss.Style
	Danger     lipgloss.Style
	Overlay    lipgloss.Style
	EmptyCell  lipgloss.Style
	PieceCells map[game.Kind]lipgloss.Style
}

// NewStyles creates a Styles instance for the theme.
func NewStyles(theme Theme) Styles {
	cells := make(map[game.Kind]lipgloss.Style, len(pieceColors))
	for k, c := range pieceColors {
		cells[k] = lipgloss.NewStyle().Background(c)
	}

	return Styles{
		Theme: theme,

		Board: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Border),

		Panel: lipgloss.NewStyle().
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Value: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Danger: lipgloss.NewStyle().
			Foreground(theme.Danger).
			Bold(true),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(1, 3),

		EmptyCell: lipgloss.NewStyle().
			Foreground(theme.Border),

		PieceCells: cells,
	}
}

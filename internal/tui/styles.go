// Package tui implements the interactive energy assessment form.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/energylabel/internal/rating"
)

// Palette used across the form.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorBorder    = lipgloss.Color("240")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorHighlight = lipgloss.Color("212")
	ColorMuted     = lipgloss.Color("241")
	ColorError     = lipgloss.Color("196")
	ColorOK        = lipgloss.Color("42")
)

// ratingColors follows the conventional A (green) to G (red) label scale.
//
//nolint:gochecknoglobals // Immutable lookup table.
var ratingColors = map[rating.Rating]lipgloss.Color{
	rating.RatingA: lipgloss.Color("#00A651"),
	rating.RatingB: lipgloss.Color("#50B848"),
	rating.RatingC: lipgloss.Color("#BFD730"),
	rating.RatingD: lipgloss.Color("#FFF200"),
	rating.RatingE: lipgloss.Color("#FDB913"),
	rating.RatingF: lipgloss.Color("#F37021"),
	rating.RatingG: lipgloss.Color("#ED1C24"),
}

// RatingColor returns the display color for a rating.
func RatingColor(r rating.Rating) lipgloss.Color {
	if c, ok := ratingColors[r]; ok {
		return c
	}
	return ColorMuted
}

// RenderRatingBadge renders a rating letter on its label color.
func RenderRatingBadge(r rating.Rating) string {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("0")).
		Background(RatingColor(r)).
		Render(string(r))
}

package views

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Scan        lipgloss.Style
	Dim         lipgloss.Style
	Filter      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	StatusBar   lipgloss.Style
	StatusError lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	CardBox   lipgloss.Style
	CardTitle lipgloss.Style
	CardMeta  lipgloss.Style

	SortCursor lipgloss.Style
	SortOption lipgloss.Style

	Overlay lipgloss.Style
}

// NewStyles creates a new Styles instance from a catppuccin flavor
func NewStyles(flavor catppuccin.Flavor) *Styles {
	primary := lipgloss.Color(flavor.Sapphire().Hex)
	accent := lipgloss.Color(flavor.Yellow().Hex)
	text := lipgloss.Color(flavor.Text().Hex)
	dim := lipgloss.Color(flavor.Overlay1().Hex)
	subtle := lipgloss.Color(flavor.Subtext0().Hex)
	danger := lipgloss.Color(flavor.Red().Hex)
	barBg := lipgloss.Color(flavor.Mantle().Hex)
	selBg := lipgloss.Color(flavor.Surface0().Hex)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		Scan:        lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Green().Hex)),
		Dim:         lipgloss.NewStyle().Foreground(dim),
		Filter:      lipgloss.NewStyle().Foreground(accent),
		Help:        lipgloss.NewStyle().Foreground(subtle),
		Main:        lipgloss.NewStyle().Padding(1, 2),
		StatusBar:   lipgloss.NewStyle().Background(barBg).Foreground(text).Padding(0, 1),
		StatusError: lipgloss.NewStyle().Foreground(danger),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Background(selBg).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(dim).
			Padding(0, 1),

		CardBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dim).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(text),
		CardMeta:  lipgloss.NewStyle().Foreground(subtle),

		SortCursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Background(selBg),
		SortOption: lipgloss.NewStyle().Foreground(text),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2),
	}
}

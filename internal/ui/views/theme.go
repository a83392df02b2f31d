package views

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/muesli/termenv"
)

// Resolve maps a configured theme name to a catppuccin flavor and the
// matching chroma style. "auto" follows the terminal background.
func Resolve(name string) (catppuccin.Flavor, string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latte":
		return catppuccin.Latte, "catppuccin-latte"
	case "frappe":
		return catppuccin.Frappe, "catppuccin-frappe"
	case "macchiato":
		return catppuccin.Macchiato, "catppuccin-macchiato"
	case "mocha":
		return catppuccin.Mocha, "catppuccin-mocha"
	default:
		if termenv.HasDarkBackground() {
			return catppuccin.Mocha, "catppuccin-mocha"
		}
		return catppuccin.Latte, "catppuccin-latte"
	}
}

package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"deckgrip/internal/domain"
	"deckgrip/internal/ui/input/modes"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Cards        []domain.Card // visible deck, in display order
	Cursor       int
	WindowOffset int
	WindowSize   int
	TotalCards   int // deck size before filtering

	Scanning      bool
	StatusMessage string
	StatusIsError bool
	ShowHelp      bool
	ShowPreview   bool

	FilterQuery     string
	InputMode       string // "", "filter" or "sort"
	TextInput       string
	SortKey         string
	SortOptionIndex int
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	chromaStyle string
	popupRender *PopupRenderer
	keys        KeyMap
	keyHelp     help.Model
}

// NewRenderer creates a renderer for the configured theme
func NewRenderer(themeName string) *Renderer {
	flavor, chromaStyle := Resolve(themeName)
	styles := NewStyles(flavor)

	keyHelp := help.New()
	keyHelp.Styles.ShortKey = styles.Filter
	keyHelp.Styles.ShortDesc = styles.Help
	keyHelp.Styles.ShortSeparator = styles.Dim

	return &Renderer{
		styles:      styles,
		chromaStyle: chromaStyle,
		popupRender: NewPopupRenderer(styles),
		keys:        DefaultKeyMap(),
		keyHelp:     keyHelp,
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	logo := r.styles.Title.Render("deckgrip")

	// Build the right side of the title line
	rightParts := []string{}
	if state.Scanning {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		rightParts = append(rightParts, r.styles.Scan.Render(fmt.Sprintf("%s Scanning", spinner[frame])))
	}
	if state.FilterQuery != "" {
		rightParts = append(rightParts, r.styles.Filter.Render(
			fmt.Sprintf("[Filter: %s (%d/%d)]", state.FilterQuery, len(state.Cards), state.TotalCards)))
	}

	titleLine := logo
	if len(rightParts) > 0 {
		rightContent := strings.Join(rightParts, "  ")

		termWidth := state.Width
		if termWidth <= 0 {
			termWidth = 80 // Default terminal width
		}
		availableWidth := termWidth - 4 // Account for main container padding
		paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)

		if paddingWidth > 0 {
			titleLine = logo + strings.Repeat(" ", paddingWidth) + rightContent
		} else {
			titleLine = logo + "  " + rightContent
		}
	}

	content.WriteString(titleLine)
	content.WriteString("\n")

	// Active input line
	switch state.InputMode {
	case "filter":
		content.WriteString(r.styles.Filter.Render("Filter: "))
		content.WriteString(state.TextInput)
		content.WriteString("\n\n")
	case "sort":
		content.WriteString(r.renderSortOptions(state))
		content.WriteString("\n\n")
	}

	// Main content
	switch {
	case state.Scanning && len(state.Cards) == 0:
		content.WriteString(r.styles.Dim.Render("Scanning deck..."))
	case len(state.Cards) == 0 && state.FilterQuery != "":
		content.WriteString(r.styles.Dim.Render("No cards match the filter."))
	case len(state.Cards) == 0:
		content.WriteString(r.styles.Dim.Render("No cards found. Press r to rescan."))
	default:
		content.WriteString(r.renderTabStrip(state))
		if state.ShowPreview && state.Cursor >= 0 && state.Cursor < len(state.Cards) {
			content.WriteString("\n\n")
			content.WriteString(r.renderCardPanel(state.Cards[state.Cursor], state.Width))
		}
	}

	// Pin the status bar to the bottom
	statusBar := r.renderStatusBar(state)

	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22 // Default terminal height minus padding
	}
	paddingNeeded := availableLines - currentLines - 1
	if paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString("\n")
	content.WriteString(statusBar)

	finalContent := r.styles.Main.MaxHeight(state.Height).Render(content.String())

	if state.ShowHelp {
		return r.popupRender.RenderPopupOverlay(r.renderHelpContent(), state.Height, state.Width, r.styles.Overlay)
	}

	return finalContent
}

// renderSortOptions renders the inline sort selector
func (r *Renderer) renderSortOptions(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Dim.Render("Sort by:"))
	for i, opt := range modes.SortOptions {
		if i == state.SortOptionIndex {
			b.WriteString(r.styles.SortCursor.Render(" " + opt.Name + " "))
		} else {
			b.WriteString(r.styles.SortOption.Render(" " + opt.Name + " "))
		}
	}
	b.WriteString(r.styles.Help.Render("  j/k cycle, enter accept, esc cancel"))
	return b.String()
}

// renderStatusBar renders the bottom bar
func (r *Renderer) renderStatusBar(state ViewState) string {
	parts := []string{}
	if len(state.Cards) > 0 {
		parts = append(parts, fmt.Sprintf("card %d of %d", state.Cursor+1, len(state.Cards)))
	} else {
		parts = append(parts, "empty deck")
	}
	if state.SortKey != "" {
		parts = append(parts, "sort: "+state.SortKey)
	}
	if state.StatusMessage != "" {
		msg := state.StatusMessage
		if state.StatusIsError {
			msg = r.styles.StatusError.Render(msg)
		}
		parts = append(parts, msg)
	}

	bar := strings.Join(parts, " | ")

	// Key hints fill whatever width the readouts leave over; the 9 covers
	// container padding plus the joining separator
	r.keyHelp.Width = 0
	if state.Width > 0 {
		avail := state.Width - lipgloss.Width(bar) - 9
		if avail < 1 {
			avail = 1
		}
		r.keyHelp.Width = avail
	}
	if hints := r.keyHelp.ShortHelpView(r.keys.ShortHelp()); hints != "" {
		bar += " | " + hints
	}

	return r.styles.StatusBar.Render(bar)
}

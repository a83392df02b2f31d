package views

import (
	"fmt"
	"strings"

	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
)

const tabLabelWidth = 16

// ZoneID returns the bubblezone ID for the tab at the given index
func ZoneID(index int) string {
	return fmt.Sprintf("tab-%d", index)
}

// renderTabStrip renders the horizontal deck strip. Exactly one tab is
// focused; tabs outside the window collapse into ellipsis markers.
func (r *Renderer) renderTabStrip(state ViewState) string {
	if len(state.Cards) == 0 {
		return ""
	}

	start := state.WindowOffset
	if start < 0 {
		start = 0
	}
	end := start + state.WindowSize
	if end > len(state.Cards) {
		end = len(state.Cards)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(r.styles.Dim.Render("… "))
	}

	for i := start; i < end; i++ {
		label := truncateLabel(state.Cards[i].Title, tabLabelWidth)
		var tab string
		if i == state.Cursor {
			tab = r.styles.TabActive.Render("▶ " + label)
		} else {
			tab = r.styles.TabInactive.Render(label)
		}
		b.WriteString(zone.Mark(ZoneID(i), tab))
	}

	if end < len(state.Cards) {
		b.WriteString(r.styles.Dim.Render(" …"))
	}

	return b.String()
}

// truncateLabel fits a title into one tab slot, by cell width
func truncateLabel(s string, maxLen int) string {
	if maxLen < 1 {
		maxLen = 1
	}
	if out := truncate.String(s, uint(maxLen)); out == s {
		return out
	}
	return truncate.StringWithTail(s, uint(maxLen), "…")
}

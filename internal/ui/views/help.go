package views

import "strings"

// renderHelpContent builds the key reference shown in the help overlay
func (r *Renderer) renderHelpContent() string {
	k := r.keys
	rows := helpEntries(
		k.Next, k.Previous, k.First, k.Last,
		k.Open, k.Filter, k.Sort, k.Refresh,
		k.Yank, k.ClearFilter, k.Help, k.Quit,
	)
	rows = append(rows, helpEntry{keys: "click / wheel", desc: "focus card"})

	var b strings.Builder
	b.WriteString(r.styles.CardTitle.Render("deckgrip keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(r.styles.Filter.Render(padRight(row.keys, 20)))
		b.WriteString(r.styles.SortOption.Render(row.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("press ? or esc to close"))
	return b.String()
}

func padRight(s string, width int) string {
	pad := width - len([]rune(s))
	if pad <= 0 {
		return s + " "
	}
	return s + strings.Repeat(" ", pad)
}

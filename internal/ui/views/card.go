package views

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"deckgrip/internal/domain"
)

// renderCardPanel renders the preview box for the focused card
func (r *Renderer) renderCardPanel(card domain.Card, width int) string {
	innerWidth := width - 6 // border and padding
	if innerWidth < 20 {
		innerWidth = 20
	}

	header := r.styles.CardTitle.Render(truncateLabel(card.Title, innerWidth))
	meta := r.styles.CardMeta.Render(fmt.Sprintf("%s | %s | %s",
		card.Name, humanSize(card.Size), card.ModTime.Format("2006-01-02 15:04")))

	body := strings.Join(card.Preview, "\n")
	if body == "" {
		body = r.styles.Dim.Render("(empty)")
	} else if isProse(card.Ext) {
		body = wordwrap.String(body, innerWidth)
	} else {
		body = highlightCode(body, card.Name, r.chromaStyle)
	}

	content := header + "\n" + meta + "\n\n" + body
	return r.styles.CardBox.Width(innerWidth + 2).Render(content)
}

// isProse reports whether a card is wrapped as text instead of being
// syntax highlighted
func isProse(ext string) bool {
	switch ext {
	case ".md", ".markdown", ".txt", ".rst":
		return true
	}
	return false
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

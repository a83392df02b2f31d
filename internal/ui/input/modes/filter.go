package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"deckgrip/internal/ui/input/types"
)

// FilterMode narrows the deck with a fuzzy query. The query is applied
// live as it is typed; Enter keeps it, Esc drops it.
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", ti),
	}
}

package views

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the deck bindings surfaced in the help overlay and the
// status bar hints. Raw key classification lives in the input modes;
// these bindings are the source of the user-facing labels.
type KeyMap struct {
	Next        key.Binding
	Previous    key.Binding
	First       key.Binding
	Last        key.Binding
	Open        key.Binding
	Filter      key.Binding
	Sort        key.Binding
	Refresh     key.Binding
	Yank        key.Binding
	ClearFilter key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the deck bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "next card"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", "prev card"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("gg/home", "first card"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "last card"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read card"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y/Y", "copy path / contents"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp lists the bindings shown as status bar hints.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Open, k.Filter, k.Help, k.Quit}
}

// helpEntry is one key/description row in the help overlay.
type helpEntry struct {
	keys string
	desc string
}

// helpEntries converts bindings to overlay rows, dropping disabled ones.
func helpEntries(bindings ...key.Binding) []helpEntry {
	entries := make([]helpEntry, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if h.Key == "" {
			continue
		}
		entries = append(entries, helpEntry{keys: h.Key, desc: h.Desc})
	}
	return entries
}

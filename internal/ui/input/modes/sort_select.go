package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"deckgrip/internal/ui/input/types"
)

// SortOptions available for sorting
var SortOptions = []struct {
	Key         string
	Name        string
	Description string
}{
	{"name", "Name", "Sort by file name"},
	{"modified", "Modified", "Sort by last modified, newest first"},
	{"size", "Size", "Sort by file size, largest first"},
}

type SortSelectMode struct {
	sortIndex     int
	originalIndex int // Remember the original sort when entering
}

func NewSortSelectMode() *SortSelectMode {
	return &SortSelectMode{
		sortIndex: 0,
	}
}

func (m *SortSelectMode) Name() string {
	return "sort"
}

func (m *SortSelectMode) Enter(ctx types.Context) []types.Action {
	// Start with the current sort option
	currentSort := ctx.CurrentSort()
	m.sortIndex = 0
	m.originalIndex = 0

	for i, option := range SortOptions {
		if option.Key == currentSort {
			m.sortIndex = i
			m.originalIndex = i
			break
		}
	}

	return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}
}

func (m *SortSelectMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

// HandleKey processes key messages for sort selection
func (m *SortSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q":
		// Cancel and restore original sort
		return []types.Action{
			types.SortByAction{Criteria: SortOptions[m.originalIndex].Key},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "enter":
		// Accept current sort and return to normal mode
		return []types.Action{
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "down", "j":
		m.sortIndex++
		if m.sortIndex >= len(SortOptions) {
			m.sortIndex = 0
		}
		return []types.Action{
			types.UpdateSortIndexAction{Index: m.sortIndex},
			types.SortByAction{Criteria: SortOptions[m.sortIndex].Key},
		}, true

	case "up", "k":
		m.sortIndex--
		if m.sortIndex < 0 {
			m.sortIndex = len(SortOptions) - 1
		}
		return []types.Action{
			types.UpdateSortIndexAction{Index: m.sortIndex},
			types.SortByAction{Criteria: SortOptions[m.sortIndex].Key},
		}, true
	}

	return nil, false
}

// GetCurrentIndex returns the current sort option index
func (m *SortSelectMode) GetCurrentIndex() int {
	return m.sortIndex
}

package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"deckgrip/internal/ring"
	"deckgrip/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyRight, tea.KeyTab:
		return []types.Action{types.NavigateAction{Command: ring.CommandNext}}, true

	case tea.KeyLeft, tea.KeyShiftTab:
		return []types.Action{types.NavigateAction{Command: ring.CommandPrevious}}, true

	case tea.KeyHome:
		return []types.Action{types.JumpFirstAction{}}, true

	case tea.KeyEnd:
		return []types.Action{types.JumpLastAction{}}, true

	case tea.KeyEnter:
		if ctx.CurrentCardPath() != "" {
			return []types.Action{types.OpenPagerAction{}}, true
		}
		return nil, false
	}

	// Handle string keys
	switch msg.String() {
	case "l":
		return []types.Action{types.NavigateAction{Command: ring.CommandNext}}, true

	case "h":
		return []types.Action{types.NavigateAction{Command: ring.CommandPrevious}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter}}, true

	case "s":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSortSelect}}, true

	case "r", "R":
		return []types.Action{types.RefreshAction{}}, true

	case "y":
		if ctx.CurrentCardPath() != "" {
			return []types.Action{types.YankAction{Body: false}}, true
		}
		return nil, true // Consume the key even if no action

	case "Y":
		if ctx.CurrentCardPath() != "" {
			return []types.Action{types.YankAction{Body: true}}, true
		}
		return nil, true // Consume the key even if no action

	case "?":
		return []types.Action{types.OpenHelpAction{}}, true

	case "esc":
		// Clear the filter if one is active, otherwise do nothing
		if ctx.FilterQuery() != "" {
			return []types.Action{types.ClearFilterAction{}}, true
		}
		return nil, true // Consume the key even if no action

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - jump to the first card (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.JumpFirstAction{}}, true
		}
		// First g, wait for next key
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true // consume the key but don't do anything

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.JumpLastAction{}}, true
	}

	// Any other key cancels the 'g' prefix
	if m.lastKeyWasG {
		m.lastKeyWasG = false
	}

	// Everything unbound is still a recognized command: it just
	// doesn't move the cursor.
	return []types.Action{types.NavigateAction{Command: ring.CommandIgnore}}, true
}

package types

import "deckgrip/internal/ring"

// Navigation actions. Every key that reaches the deck resolves to a
// ring command here, so the model never sees raw key names.
type NavigateAction struct {
	Command ring.Command
}

func (a NavigateAction) Type() string { return "navigate" }

type JumpFirstAction struct{}

func (a JumpFirstAction) Type() string { return "jump_first" }

type JumpLastAction struct{}

func (a JumpLastAction) Type() string { return "jump_last" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

// Command actions
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type OpenHelpAction struct{}

func (a OpenHelpAction) Type() string { return "open_help" }

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type YankAction struct {
	Body bool // false copies the card path, true copies its contents
}

func (a YankAction) Type() string { return "yank" }

// Sort actions
type SortByAction struct {
	Criteria string
}

func (a SortByAction) Type() string { return "sort_by" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

package ui

import (
	"time"

	"deckgrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations and the rescan poll
type tickMsg time.Time

// pagerDoneMsg contains the result of an external pager session
type pagerDoneMsg struct {
	path string
	err  error
}

// yankDoneMsg contains the result of a clipboard copy
type yankDoneMsg struct {
	what string
	err  error
}

// clearStatusMsg clears the transient status message
type clearStatusMsg struct{}

// quitMsg signals that the application should quit
type quitMsg struct {
	saveConfig bool
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

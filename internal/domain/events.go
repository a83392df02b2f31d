package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventScanRequested  EventType = "ScanRequested"
	EventScanStarted    EventType = "ScanStarted"
	EventCardDiscovered EventType = "CardDiscovered"
	EventScanCompleted  EventType = "ScanCompleted"
	EventDeckChanged    EventType = "DeckChanged"
	EventCursorMoved    EventType = "CursorMoved"
	EventStaleReference EventType = "StaleReference"
	EventUnknownCommand EventType = "UnknownCommand"
	EventSortChanged    EventType = "SortChanged"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
	EventError          EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ScanRequestedEvent is emitted to request a new deck scan
type ScanRequestedEvent struct {
	Root string
}

func (e ScanRequestedEvent) Type() EventType { return EventScanRequested }

// ScanStartedEvent is emitted when a deck scan begins
type ScanStartedEvent struct {
	Root string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// CardDiscoveredEvent is emitted for every card file found during a scan
type CardDiscoveredEvent struct {
	Card Card
}

func (e CardDiscoveredEvent) Type() EventType { return EventCardDiscovered }

// ScanCompletedEvent is emitted when a deck scan finishes
type ScanCompletedEvent struct {
	CardsFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// DeckChangedEvent is emitted when the deck contents settle after a scan
// or a reorder, so consumers can reconcile anything derived from the count
type DeckChangedEvent struct {
	Count int
}

func (e DeckChangedEvent) Type() EventType { return EventDeckChanged }

// CursorMovedEvent is emitted when the focus cursor commits to a new index
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}

func (e CursorMovedEvent) Type() EventType { return EventCursorMoved }

// StaleReferenceEvent records a navigation command that carried an index
// from before a deck mutation; the cursor was clamped, nothing failed
type StaleReferenceEvent struct {
	Reference int
	Count     int
	Resolved  int
}

func (e StaleReferenceEvent) Type() EventType { return EventStaleReference }

// UnknownCommandEvent records input that reached the controller without a
// mapping in the closed command set
type UnknownCommandEvent struct {
	Command string
}

func (e UnknownCommandEvent) Type() EventType { return EventUnknownCommand }

// SortChangedEvent is emitted when the deck ordering changes
type SortChangedEvent struct {
	Mode SortMode
}

func (e SortChangedEvent) Type() EventType { return EventSortChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	DeckDir string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"deckgrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventScanRequested  = domain.EventScanRequested
	EventScanStarted    = domain.EventScanStarted
	EventCardDiscovered = domain.EventCardDiscovered
	EventScanCompleted  = domain.EventScanCompleted
	EventDeckChanged    = domain.EventDeckChanged
	EventCursorMoved    = domain.EventCursorMoved
	EventStaleReference = domain.EventStaleReference
	EventUnknownCommand = domain.EventUnknownCommand
	EventSortChanged    = domain.EventSortChanged
	EventConfigLoaded   = domain.EventConfigLoaded
	EventConfigSaved    = domain.EventConfigSaved
	EventError          = domain.EventError
)

// Re-export domain event types
type ScanRequestedEvent = domain.ScanRequestedEvent
type ScanStartedEvent = domain.ScanStartedEvent
type CardDiscoveredEvent = domain.CardDiscoveredEvent
type ScanCompletedEvent = domain.ScanCompletedEvent
type DeckChangedEvent = domain.DeckChangedEvent
type CursorMovedEvent = domain.CursorMovedEvent
type StaleReferenceEvent = domain.StaleReferenceEvent
type UnknownCommandEvent = domain.UnknownCommandEvent
type SortChangedEvent = domain.SortChangedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]*subscription
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	once      sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]*subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventCardDiscovered, EventCursorMoved:
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		// Channel full, log and drop
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	sub := &subscription{handler: handler}

	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], sub)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s == sub {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher after draining queued events
func (b *bus) Close() {
	b.once.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers. Handlers run in
// order on this goroutine so that events arriving in sequence (scan start,
// discoveries, scan complete) are observed in sequence.
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			// Drain remaining events before exiting
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := b.handlers[event.Type()]
	// Copy to avoid holding the lock during handler execution
	subsCopy := make([]*subscription, len(subs))
	copy(subsCopy, subs)
	b.mu.RUnlock()

	for _, sub := range subsCopy {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
				}
			}()
			sub.handler(event)
		}()
	}
}

package deck

import (
	"sort"
	"strings"
	"sync"

	"deckgrip/internal/domain"
	"deckgrip/internal/eventbus"
)

// Store is the in-memory deck of cards, kept in display order
type Store struct {
	mu       sync.RWMutex
	cards    []domain.Card
	index    map[string]int  // path -> position in cards
	seen     map[string]bool // paths confirmed by the scan in progress
	sortMode domain.SortMode
	bus      eventbus.EventBus
}

// NewStore creates a card store wired to the event bus
func NewStore(bus eventbus.EventBus, mode domain.SortMode) *Store {
	s := &Store{
		index:    make(map[string]int),
		sortMode: mode,
		bus:      bus,
	}

	if bus != nil {
		bus.Subscribe(eventbus.EventScanStarted, func(e eventbus.DomainEvent) {
			if _, ok := e.(eventbus.ScanStartedEvent); ok {
				s.beginGeneration()
			}
		})
		bus.Subscribe(eventbus.EventCardDiscovered, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.CardDiscoveredEvent); ok {
				s.upsert(event.Card)
			}
		})
		bus.Subscribe(eventbus.EventScanCompleted, func(e eventbus.DomainEvent) {
			if _, ok := e.(eventbus.ScanCompletedEvent); ok {
				s.endGeneration()
			}
		})
		bus.Subscribe(eventbus.EventSortChanged, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.SortChangedEvent); ok {
				s.SetSortMode(event.Mode)
			}
		})
	}

	return s
}

// beginGeneration opens a scan generation; cards not re-discovered
// before endGeneration are swept out
func (s *Store) beginGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[string]bool)
}

// upsert adds or refreshes a card. Positions stay stable until the
// scan completes so the strip doesn't shuffle mid-scan.
func (s *Store) upsert(card domain.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen != nil {
		s.seen[card.Path] = true
	}
	if i, ok := s.index[card.Path]; ok {
		s.cards[i] = card
		return
	}
	s.index[card.Path] = len(s.cards)
	s.cards = append(s.cards, card)
}

// endGeneration sweeps cards that vanished, restores sort order and
// announces the new deck size
func (s *Store) endGeneration() {
	s.mu.Lock()
	if s.seen != nil {
		kept := s.cards[:0]
		for _, c := range s.cards {
			if s.seen[c.Path] {
				kept = append(kept, c)
			}
		}
		s.cards = kept
		s.seen = nil
	}
	s.sortLocked()
	s.rebuildIndexLocked()
	count := len(s.cards)
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(eventbus.DeckChangedEvent{Count: count})
	}
}

// SetSortMode reorders the deck and announces the change
func (s *Store) SetSortMode(mode domain.SortMode) {
	s.mu.Lock()
	if s.sortMode == mode {
		s.mu.Unlock()
		return
	}
	s.sortMode = mode
	s.sortLocked()
	s.rebuildIndexLocked()
	count := len(s.cards)
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(eventbus.DeckChangedEvent{Count: count})
	}
}

// SortMode returns the current sort order
func (s *Store) SortMode() domain.SortMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortMode
}

// Len returns the number of cards in the deck
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

// Cards returns a snapshot of the deck in display order
func (s *Store) Cards() []domain.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Card, len(s.cards))
	copy(result, s.cards)
	return result
}

// Card returns the card at position i, if there is one
func (s *Store) Card(i int) (domain.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.cards) {
		return domain.Card{}, false
	}
	return s.cards[i], true
}

func (s *Store) sortLocked() {
	switch s.sortMode {
	case domain.SortByModified:
		sort.SliceStable(s.cards, func(i, j int) bool {
			a, b := s.cards[i], s.cards[j]
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.After(b.ModTime)
			}
			return lessByName(a, b)
		})
	case domain.SortBySize:
		sort.SliceStable(s.cards, func(i, j int) bool {
			a, b := s.cards[i], s.cards[j]
			if a.Size != b.Size {
				return a.Size > b.Size
			}
			return lessByName(a, b)
		})
	default:
		sort.SliceStable(s.cards, func(i, j int) bool {
			return lessByName(s.cards[i], s.cards[j])
		})
	}
}

func (s *Store) rebuildIndexLocked() {
	s.index = make(map[string]int, len(s.cards))
	for i, c := range s.cards {
		s.index[c.Path] = i
	}
}

func lessByName(a, b domain.Card) bool {
	an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}
	return a.Path < b.Path
}

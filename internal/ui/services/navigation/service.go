package navigation

import (
	"errors"

	"deckgrip/internal/eventbus"
	"deckgrip/internal/ring"
)

// Service hosts the ring controller and keeps the horizontal tab
// window in step with the cursor
type Service struct {
	ctrl       *ring.Controller
	bus        eventbus.EventBus
	queryFn    func() int // Function to get the visible card count
	windowOff  int
	windowSize int
}

// NewService creates a new navigation service
func NewService(bus eventbus.EventBus, startIndex int) *Service {
	return &Service{
		ctrl:       ring.New(startIndex),
		bus:        bus,
		windowSize: 5, // Default, will be updated
	}
}

// SetQueryFunction sets the function to query the visible card count
func (s *Service) SetQueryFunction(fn func() int) {
	s.queryFn = fn
}

// Cursor returns the current cursor position
func (s *Service) Cursor() int {
	return s.ctrl.Cursor()
}

// WindowOffset returns the first visible tab index
func (s *Service) WindowOffset() int {
	return s.windowOff
}

// WindowSize returns how many tabs fit in the strip
func (s *Service) WindowSize() int {
	return s.windowSize
}

// SetWindowSize updates how many tabs fit in the strip
func (s *Service) SetWindowSize(size int) {
	if size < 1 {
		size = 1
	}
	s.windowSize = size
	s.ensureVisible(s.count())
}

// Navigate advances the cursor by one ring command. A stale stored
// cursor is clamped by the controller and reported on the bus rather
// than surfaced as a failure.
func (s *Service) Navigate(cmd ring.Command) {
	count := s.count()
	oldCursor := s.ctrl.Cursor()

	newCursor, err := s.ctrl.Navigate(oldCursor, cmd, count)
	if err != nil {
		switch {
		case errors.Is(err, ring.ErrStaleReference):
			s.bus.Publish(eventbus.StaleReferenceEvent{
				Reference: oldCursor,
				Count:     count,
				Resolved:  newCursor,
			})
		case errors.Is(err, ring.ErrUnknownCommand):
			s.bus.Publish(eventbus.UnknownCommandEvent{Command: string(cmd)})
		}
	}

	s.ensureVisible(count)
	s.publishMove(oldCursor, newCursor)
}

// MoveToIndex moves the cursor to a specific visible index
func (s *Service) MoveToIndex(index int) {
	count := s.count()
	oldCursor := s.ctrl.Cursor()

	newCursor := s.ctrl.MoveTo(index, count)
	s.ensureVisible(count)
	s.publishMove(oldCursor, newCursor)
}

// JumpFirst moves the cursor to the first card
func (s *Service) JumpFirst() {
	s.MoveToIndex(0)
}

// JumpLast moves the cursor to the last card
func (s *Service) JumpLast() {
	s.MoveToIndex(s.count() - 1)
}

// Reconcile clamps the cursor after the deck grew or shrank
func (s *Service) Reconcile() {
	count := s.count()
	oldCursor := s.ctrl.Cursor()

	newCursor := s.ctrl.Reconcile(count)
	s.ensureVisible(count)
	s.publishMove(oldCursor, newCursor)
}

func (s *Service) count() int {
	if s.queryFn == nil {
		return 0
	}
	return s.queryFn()
}

func (s *Service) publishMove(oldCursor, newCursor int) {
	if oldCursor != newCursor {
		s.bus.Publish(eventbus.CursorMovedEvent{
			OldIndex: oldCursor,
			NewIndex: newCursor,
		})
	}
}

// ensureVisible scrolls the tab window so the cursor stays on screen
func (s *Service) ensureVisible(count int) {
	maxOffset := count - s.windowSize
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.windowOff > maxOffset {
		s.windowOff = maxOffset
	}

	cursor := s.ctrl.Cursor()
	if cursor < s.windowOff {
		s.windowOff = cursor
	} else if cursor >= s.windowOff+s.windowSize {
		s.windowOff = cursor - s.windowSize + 1
	}
}

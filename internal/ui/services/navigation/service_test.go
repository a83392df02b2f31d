package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"deckgrip/internal/eventbus"
	"deckgrip/internal/ring"
)

// recordingBus captures publishes synchronously so assertions don't race
type recordingBus struct {
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) { b.events = append(b.events, e) }
func (b *recordingBus) Subscribe(t eventbus.EventType, h eventbus.EventHandler) func() {
	return func() {}
}
func (b *recordingBus) Close() {}

func (b *recordingBus) moves() []eventbus.CursorMovedEvent {
	var out []eventbus.CursorMovedEvent
	for _, e := range b.events {
		if m, ok := e.(eventbus.CursorMovedEvent); ok {
			out = append(out, m)
		}
	}
	return out
}

func newTestService(count int) (*Service, *recordingBus, *int) {
	bus := &recordingBus{}
	visible := count
	s := NewService(bus, 0)
	s.SetQueryFunction(func() int { return visible })
	return s, bus, &visible
}

func TestNavigateWrapsForwardAtLastCard(t *testing.T) {
	s, bus, _ := newTestService(4)
	s.MoveToIndex(3)

	s.Navigate(ring.CommandNext)

	require.Equal(t, 0, s.Cursor())
	moves := bus.moves()
	require.Equal(t, eventbus.CursorMovedEvent{OldIndex: 3, NewIndex: 0}, moves[len(moves)-1])
}

func TestNavigateWrapsBackwardAtFirstCard(t *testing.T) {
	s, bus, _ := newTestService(4)

	s.Navigate(ring.CommandPrevious)

	require.Equal(t, 3, s.Cursor())
	require.Equal(t, []eventbus.CursorMovedEvent{{OldIndex: 0, NewIndex: 3}}, bus.moves())
}

func TestNavigateWalksTheFullRing(t *testing.T) {
	s, bus, _ := newTestService(4)

	for i := 0; i < 4; i++ {
		s.Navigate(ring.CommandNext)
	}

	require.Equal(t, 0, s.Cursor())
	var visited []int
	for _, m := range bus.moves() {
		visited = append(visited, m.NewIndex)
	}
	require.Equal(t, []int{1, 2, 3, 0}, visited)
}

func TestNavigateOnEmptyDeck(t *testing.T) {
	s, bus, _ := newTestService(0)

	s.Navigate(ring.CommandNext)
	s.Navigate(ring.CommandPrevious)

	require.Equal(t, 0, s.Cursor())
	require.Empty(t, bus.moves())
}

func TestNavigateIgnoreDoesNotMove(t *testing.T) {
	s, bus, _ := newTestService(4)
	s.MoveToIndex(2)
	before := len(bus.events)

	s.Navigate(ring.CommandIgnore)

	require.Equal(t, 2, s.Cursor())
	require.Equal(t, before, len(bus.events))
}

func TestStaleCursorIsReportedAndClamped(t *testing.T) {
	s, bus, visible := newTestService(5)
	s.MoveToIndex(4)

	*visible = 2
	s.Navigate(ring.CommandNext)

	// Clamped to the last remaining card, then advanced with wrap.
	require.Equal(t, 0, s.Cursor())

	var stale []eventbus.StaleReferenceEvent
	for _, e := range bus.events {
		if ev, ok := e.(eventbus.StaleReferenceEvent); ok {
			stale = append(stale, ev)
		}
	}
	require.Equal(t, []eventbus.StaleReferenceEvent{{Reference: 4, Count: 2, Resolved: 0}}, stale)

	moves := bus.moves()
	require.Equal(t, eventbus.CursorMovedEvent{OldIndex: 4, NewIndex: 0}, moves[len(moves)-1])
}

func TestUnknownCommandIsReported(t *testing.T) {
	s, bus, _ := newTestService(4)
	s.MoveToIndex(2)

	s.Navigate(ring.Command("sideways"))

	require.Equal(t, 2, s.Cursor())

	var unknown []eventbus.UnknownCommandEvent
	for _, e := range bus.events {
		if ev, ok := e.(eventbus.UnknownCommandEvent); ok {
			unknown = append(unknown, ev)
		}
	}
	require.Equal(t, []eventbus.UnknownCommandEvent{{Command: "sideways"}}, unknown)
}

func TestReconcileAfterShrink(t *testing.T) {
	s, bus, visible := newTestService(5)
	s.MoveToIndex(4)

	*visible = 3
	s.Reconcile()

	require.Equal(t, 2, s.Cursor())
	moves := bus.moves()
	require.Equal(t, eventbus.CursorMovedEvent{OldIndex: 4, NewIndex: 2}, moves[len(moves)-1])
}

func TestReconcileToEmptyDeck(t *testing.T) {
	s, _, visible := newTestService(5)
	s.MoveToIndex(3)

	*visible = 0
	s.Reconcile()

	require.Equal(t, 0, s.Cursor())
}

func TestJumpFirstAndLast(t *testing.T) {
	s, _, _ := newTestService(7)

	s.JumpLast()
	require.Equal(t, 6, s.Cursor())

	s.JumpFirst()
	require.Equal(t, 0, s.Cursor())
}

func TestWindowFollowsCursor(t *testing.T) {
	s, _, _ := newTestService(10)
	s.SetWindowSize(3)

	s.MoveToIndex(5)
	require.Equal(t, 3, s.WindowOffset())

	s.JumpLast()
	require.Equal(t, 7, s.WindowOffset())

	s.Navigate(ring.CommandNext) // wraps to 0
	require.Equal(t, 0, s.Cursor())
	require.Equal(t, 0, s.WindowOffset())
}

func TestWindowClampsAfterShrink(t *testing.T) {
	s, _, visible := newTestService(10)
	s.SetWindowSize(3)
	s.MoveToIndex(9)
	require.Equal(t, 7, s.WindowOffset())

	*visible = 4
	s.Reconcile()

	require.Equal(t, 3, s.Cursor())
	require.Equal(t, 1, s.WindowOffset())
}

func TestStartIndexIsClampedOnFirstReconcile(t *testing.T) {
	bus := &recordingBus{}
	s := NewService(bus, 3)
	visible := 2
	s.SetQueryFunction(func() int { return visible })

	require.Equal(t, 3, s.Cursor())
	s.Reconcile()
	require.Equal(t, 1, s.Cursor())
}

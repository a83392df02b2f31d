// Package ring implements the cursor state machine for a circular ordered
// collection. One Controller owns the focus cursor of one deck; directional
// commands advance it with wrap-around at both ends. The item count is never
// stored: it belongs to the collection and is supplied on every call, so a
// deck that grows or shrinks between calls can never leave the cursor
// pointing past the end.
package ring

import (
	"errors"
	"fmt"
)

// Command is a directional intent. Raw input (keys, mouse wheel) is
// classified into this closed set at the input boundary; the controller
// never sees key or device details.
type Command string

const (
	CommandNext     Command = "next"
	CommandPrevious Command = "previous"
	CommandIgnore   Command = "ignore"
)

// Sentinel conditions reported alongside a committed, in-range cursor.
// Neither is a failure: the operation has already resolved to a safe cursor
// and callers only need them for diagnostics.
var (
	ErrStaleReference = errors.New("reference index out of range")
	ErrUnknownCommand = errors.New("unknown navigation command")
)

// Controller owns the cursor for one collection. Not safe for concurrent
// use; it is meant to live on a single event loop, one instance per deck.
type Controller struct {
	cursor int
}

// New creates a controller positioned at initial. A negative initial is
// floored to 0; an initial beyond the eventual item count is corrected by
// the first Reconcile or Navigate call.
func New(initial int) *Controller {
	if initial < 0 {
		initial = 0
	}
	return &Controller{cursor: initial}
}

// Cursor returns the current cursor. Pure read, no side effects.
func (c *Controller) Cursor() int {
	return c.cursor
}

// Navigate applies cmd relative to the reference index ref and commits the
// result. ref is the index of the item that originated the command, which
// equals the cursor in normal use but may be stale when input races a deck
// mutation; a stale ref is clamped into range before the wrap rule applies
// and reported via ErrStaleReference. With count items the result is always
// in [0, count); count == 0 is a degenerate no-op that parks the cursor at
// 0. A negative count is a caller bug and panics.
func (c *Controller) Navigate(ref int, cmd Command, count int) (int, error) {
	guardCount(count)
	if count == 0 {
		c.cursor = 0
		return 0, nil
	}

	switch cmd {
	case CommandNext, CommandPrevious:
	case CommandIgnore:
		return c.cursor, nil
	default:
		return c.cursor, fmt.Errorf("%w: %q", ErrUnknownCommand, string(cmd))
	}

	var err error
	if ref < 0 || ref >= count {
		err = fmt.Errorf("%w: %d of %d", ErrStaleReference, ref, count)
		if ref < 0 {
			ref = 0
		} else {
			ref = count - 1
		}
	}

	switch cmd {
	case CommandNext:
		if ref+1 == count {
			c.cursor = 0
		} else {
			c.cursor = ref + 1
		}
	case CommandPrevious:
		if ref == 0 {
			c.cursor = count - 1
		} else {
			c.cursor = ref - 1
		}
	}
	return c.cursor, err
}

// Reconcile clamps the stored cursor into [0, count) and returns it. Call
// it whenever the collection may have changed size so a cursor that was
// valid before a shrink cannot go stale.
func (c *Controller) Reconcile(count int) int {
	guardCount(count)
	if count == 0 {
		c.cursor = 0
		return 0
	}
	if c.cursor >= count {
		c.cursor = count - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	return c.cursor
}

// MoveTo positions the cursor at index directly, clamped into [0, count).
// Used for absolute jumps (first/last, mouse click on an item).
func (c *Controller) MoveTo(index, count int) int {
	guardCount(count)
	if count == 0 {
		c.cursor = 0
		return 0
	}
	if index < 0 {
		index = 0
	}
	if index >= count {
		index = count - 1
	}
	c.cursor = index
	return c.cursor
}

func guardCount(count int) {
	if count < 0 {
		panic(fmt.Sprintf("ring: negative item count %d", count))
	}
}

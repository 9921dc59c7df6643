// Package history provides an immutable undo/redo value type that is commonly
// used as the state shape held by a store.
//
// Every operation returns a new History and leaves the receiver untouched:
//
//	h := history.New(0)
//	h = h.NewValue(1).NewValue(2)
//	h = h.Undo() // current=1, past=[0], future=[2]
//	h = h.Redo() // current=2, past=[0 1], future=[]
package history

import (
	"fmt"
	"reflect"
)

// History holds a current value together with the values that can be restored
// by Undo (past, oldest first) and by Redo (future, next redo first).
//
// The zero value is a history whose current value is the zero value of T.
type History[T any] struct {
	current          T
	past             []T
	future           []T
	ignoreFirstValue bool
}

// New creates a History with the given current value and no past or future.
func New[T any](current T) History[T] {
	return History[T]{current: current}
}

// NewIgnoringFirst creates a History whose next NewValue call replaces the
// current value without recording it in past. Useful when the initial value is
// a placeholder that should never be undone to.
func NewIgnoringFirst[T any](current T) History[T] {
	return History[T]{current: current, ignoreFirstValue: true}
}

// From creates a History from explicit past and future sequences. The slices
// are copied.
func From[T any](current T, past, future []T) History[T] {
	return History[T]{
		current: current,
		past:    clone(past),
		future:  clone(future),
	}
}

func (h History[T]) Current() T {
	return h.current
}

// Past returns a copy of the undo sequence, oldest first.
func (h History[T]) Past() []T {
	return clone(h.past)
}

// Future returns a copy of the redo sequence, next redo first.
func (h History[T]) Future() []T {
	return clone(h.future)
}

func (h History[T]) IgnoreFirstValue() bool {
	return h.ignoreFirstValue
}

func (h History[T]) CanUndo() bool {
	return len(h.past) > 0
}

func (h History[T]) CanRedo() bool {
	return len(h.future) > 0
}

// NewValue records v as the current value. The previous current value is
// appended to past unless the ignore-first flag is set, in which case the flag
// is consumed instead. Future is always cleared.
func (h History[T]) NewValue(v T) History[T] {
	past := h.past
	if !h.ignoreFirstValue {
		past = appendTo(h.past, h.current)
	}
	return History[T]{
		current: v,
		past:    past,
		future:  nil,
	}
}

// Undo moves the last past value into current and pushes the current value to
// the front of future. With an empty past the receiver is returned unchanged.
func (h History[T]) Undo() History[T] {
	if len(h.past) == 0 {
		return h
	}
	last := len(h.past) - 1
	return History[T]{
		current:          h.past[last],
		past:             h.past[:last:last],
		future:           prependTo(h.future, h.current),
		ignoreFirstValue: h.ignoreFirstValue,
	}
}

// Redo moves the first future value into current and appends the current value
// to past. With an empty future the receiver is returned unchanged.
func (h History[T]) Redo() History[T] {
	if len(h.future) == 0 {
		return h
	}
	return History[T]{
		current:          h.future[0],
		past:             appendTo(h.past, h.current),
		future:           h.future[1:len(h.future):len(h.future)],
		ignoreFirstValue: h.ignoreFirstValue,
	}
}

// Equal reports whether both histories hold deeply equal values in the same
// positions and carry the same ignore-first flag. Nil and empty sequences are
// considered equal.
func (h History[T]) Equal(other History[T]) bool {
	if h.ignoreFirstValue != other.ignoreFirstValue {
		return false
	}
	if !reflect.DeepEqual(h.current, other.current) {
		return false
	}
	return equalSeq(h.past, other.past) && equalSeq(h.future, other.future)
}

func (h History[T]) String() string {
	return fmt.Sprintf("History{current: %v, past: %v, future: %v, ignoreFirstValue: %t}",
		h.current, h.past, h.future, h.ignoreFirstValue)
}

func equalSeq[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// appendTo returns a fresh slice so that sibling histories never share a
// writable backing array.
func appendTo[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

func prependTo[T any](s []T, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}

func clone[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

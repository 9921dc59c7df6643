package store

import (
	"context"
	"slices"

	"github.com/tailored-agentic-units/reduks/executor"
)

// subscription pairs a subscriber reference with its executor. resolve
// returns false once a non-owning reference has been collected.
type subscription[S any] struct {
	id       string
	resolve  func() (Subscriber[S], bool)
	executor executor.Executor
}

func (s *subscription[S]) matches(sub Subscriber[S]) bool {
	current, ok := s.resolve()
	return ok && current == sub
}

func (s *subscription[S]) alive() bool {
	_, ok := s.resolve()
	return ok
}

// registry holds subscriptions in registration order. It is owned by the
// store goroutine and needs no locking.
type registry[S any] struct {
	entries []*subscription[S]
}

func newRegistry[S any]() *registry[S] {
	return &registry[S]{}
}

// register appends entry unless its subscriber is already registered or has
// already been collected. An existing registration keeps its executor.
func (r *registry[S]) register(entry *subscription[S]) bool {
	sub, ok := entry.resolve()
	if !ok {
		return false
	}
	for _, existing := range r.entries {
		if existing.matches(sub) {
			return false
		}
	}
	r.entries = append(r.entries, entry)
	return true
}

// unregister removes every entry for sub along with collected entries and
// returns how many entries matched sub.
func (r *registry[S]) unregister(sub Subscriber[S]) int {
	removed := 0
	r.entries = slices.DeleteFunc(r.entries, func(e *subscription[S]) bool {
		if e.matches(sub) {
			removed++
			return true
		}
		return !e.alive()
	})
	return removed
}

func (r *registry[S]) len() int {
	return len(r.entries)
}

// deliver hands state to one subscription on its executor and waits for the
// hand-off. A collected subscriber is skipped and reports false.
func deliver[S any](ctx context.Context, entry *subscription[S], state S) (bool, error) {
	sub, ok := entry.resolve()
	if !ok {
		return false, nil
	}
	err := entry.executor.Execute(ctx, func() {
		sub.OnNewState(state)
	})
	return true, err
}

// notifyAll delivers state to a snapshot of the entries in registration
// order. onResult is called after every attempted delivery. Collected entries
// are pruned afterwards.
func (r *registry[S]) notifyAll(ctx context.Context, state S, onResult func(entry *subscription[S], err error)) {
	snapshot := slices.Clone(r.entries)

	pruned := false
	for _, entry := range snapshot {
		delivered, err := deliver(ctx, entry, state)
		if !delivered {
			pruned = true
			continue
		}
		onResult(entry, err)
	}

	if pruned {
		r.entries = slices.DeleteFunc(r.entries, func(e *subscription[S]) bool {
			return !e.alive()
		})
	}
}

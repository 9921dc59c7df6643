package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tailored-agentic-units/reduks/observability"
	"github.com/tailored-agentic-units/reduks/store"
)

type counter struct {
	Value int
}

const dummyAction = ""

func increment(state counter, _ string) counter {
	return counter{Value: state.Value + 1}
}

func newTestStore[S, A any](t *testing.T, initial S, reducer store.Reducer[S, A], middlewares []store.Middleware[S, A], opts ...store.Option) *store.Store[S, A] {
	t.Helper()

	opts = append([]store.Option{store.WithObserver(observability.NoOpObserver{})}, opts...)
	s, err := store.New(initial, reducer, middlewares, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Shutdown(5 * time.Second); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	})
	return s
}

// recorder is a Subscriber that keeps every state it receives.
type recorder[S any] struct {
	name    string
	mu      sync.Mutex
	states  []S
	journal *journal
}

func (r *recorder[S]) OnNewState(state S) {
	r.mu.Lock()
	r.states = append(r.states, state)
	r.mu.Unlock()

	if r.journal != nil {
		r.journal.add(fmt.Sprintf("%s:%v", r.name, state))
	}
}

func (r *recorder[S]) States() []S {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]S, len(r.states))
	copy(out, r.states)
	return out
}

// journal records an interleaving of calls across middleware, reducers and
// subscribers.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(entry string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

func (j *journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.entries))
	copy(out, j.entries)
	return out
}

// sequence returns a reducer that ignores its input and yields states in
// order, recording each call.
func sequence(j *journal, states ...counter) store.Reducer[counter, string] {
	var mu sync.Mutex
	next := 0
	return func(state counter, action string) counter {
		mu.Lock()
		defer mu.Unlock()
		if j != nil {
			j.add(fmt.Sprintf("reduce:%d:%s", state.Value, action))
		}
		result := states[next]
		if next < len(states)-1 {
			next++
		}
		return result
	}
}

type captureObserver struct {
	mu     sync.Mutex
	events []observability.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observability.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureObserver) Types() []observability.EventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	types := make([]observability.EventType, len(c.events))
	for i, e := range c.events {
		types[i] = e.Type
	}
	return types
}

func assertSequence[T comparable](t *testing.T, label string, got, want []T) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, want %v", label, got, want)
		}
	}
}

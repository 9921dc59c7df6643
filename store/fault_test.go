package store_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/tailored-agentic-units/reduks/executor"
	"github.com/tailored-agentic-units/reduks/store"
)

type faultSink struct {
	mu     sync.Mutex
	faults []*store.Fault
}

func (f *faultSink) handle(fault *store.Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = append(f.faults, fault)
}

func (f *faultSink) Faults() []*store.Fault {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*store.Fault(nil), f.faults...)
}

func TestStore_DispatchFault(t *testing.T) {
	sink := &faultSink{}
	reducer := func(state counter, action string) counter {
		if action == "boom" {
			panic("reducer exploded")
		}
		return counter{Value: state.Value + 1}
	}

	s := newTestStore(t, counter{}, reducer, nil, store.WithFaultHandler(sink.handle))
	sub := &recorder[counter]{}
	s.Subscribe(sub)

	s.Dispatch("ok")
	s.Dispatch("boom")
	s.Dispatch("ok")

	if got := s.State(); got.Value != 2 {
		t.Errorf("State() = %v, want {2}", got)
	}
	assertSequence(t, "notifications", sub.States(), []counter{{0}, {1}, {2}})

	faults := sink.Faults()
	if len(faults) != 1 {
		t.Fatalf("faults = %d, want 1", len(faults))
	}

	f := faults[0]
	if f.Kind != store.FaultDispatch {
		t.Errorf("Kind = %q, want %q", f.Kind, store.FaultDispatch)
	}
	if f.Action != "boom" {
		t.Errorf("Action = %v, want boom", f.Action)
	}
	var panicErr *executor.PanicError
	if !errors.As(f, &panicErr) {
		t.Fatalf("fault error = %v, want *executor.PanicError", f.Err)
	}
	if panicErr.Value != "reducer exploded" {
		t.Errorf("panic value = %v, want %q", panicErr.Value, "reducer exploded")
	}
	if m := s.Metrics(); m.Faults != 1 {
		t.Errorf("Faults = %d, want 1", m.Faults)
	}
}

func TestStore_MiddlewareFault(t *testing.T) {
	sink := &faultSink{}
	explode := func(api store.API[counter, string], action string, next store.Next[counter, string]) counter {
		next(action)
		panic(errors.New("after next"))
	}

	s := newTestStore(t, counter{}, increment, []store.Middleware[counter, string]{explode}, store.WithFaultHandler(sink.handle))
	s.Dispatch(dummyAction)

	if got := s.State(); got.Value != 0 {
		t.Errorf("State() = %v, want {0}", got)
	}
	if got := len(sink.Faults()); got != 1 {
		t.Errorf("faults = %d, want 1", got)
	}
}

func TestStore_SubscriberFault(t *testing.T) {
	sink := &faultSink{}
	s := newTestStore(t, counter{}, increment, nil, store.WithFaultHandler(sink.handle))

	faulty := store.SubscriberFunc(func(c counter) {
		if c.Value == 1 {
			panic("subscriber exploded")
		}
	})
	healthy := &recorder[counter]{}

	s.Subscribe(faulty)
	s.Subscribe(healthy)
	s.Dispatch(dummyAction)
	s.Dispatch(dummyAction)

	if got := s.State(); got.Value != 2 {
		t.Errorf("State() = %v, want {2}", got)
	}
	assertSequence(t, "healthy", healthy.States(), []counter{{0}, {1}, {2}})

	faults := sink.Faults()
	if len(faults) != 1 {
		t.Fatalf("faults = %d, want 1", len(faults))
	}
	if faults[0].Kind != store.FaultSubscriber {
		t.Errorf("Kind = %q, want %q", faults[0].Kind, store.FaultSubscriber)
	}
}

func TestStore_FaultHandlerPanicIsContained(t *testing.T) {
	reducer := func(counter, string) counter { panic("always") }
	handler := func(*store.Fault) { panic("handler too") }

	s := newTestStore(t, counter{}, reducer, nil, store.WithFaultHandler(handler))
	s.Dispatch(dummyAction)
	s.Dispatch(dummyAction)

	if got := s.State(); got.Value != 0 {
		t.Errorf("State() = %v, want {0}", got)
	}
	if m := s.Metrics(); m.Faults != 2 {
		t.Errorf("Faults = %d, want 2", m.Faults)
	}
}

type node struct {
	n int
}

func (p *node) Equal(other *node) bool {
	return p.n == other.n
}

func TestStore_EqualityFault(t *testing.T) {
	tests := []struct {
		name string
		opts []store.Option
	}{
		{name: "state Equal method"},
		{
			name: "WithEquality comparator",
			opts: []store.Option{store.WithEquality(func(a, b *node) bool {
				if b == nil {
					panic("nil candidate")
				}
				return a.n == b.n
			})},
		},
	}

	reducer := func(state *node, action string) *node {
		if action == "clear" {
			return nil
		}
		return &node{n: state.n + 1}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &faultSink{}
			opts := append([]store.Option{store.WithFaultHandler(sink.handle)}, tt.opts...)
			s := newTestStore(t, &node{}, reducer, nil, opts...)

			s.Dispatch("inc")
			s.Dispatch("clear")
			s.Dispatch("inc")

			got := s.State()
			if got == nil || got.n != 2 {
				t.Fatalf("State() = %v, want n=2", got)
			}

			faults := sink.Faults()
			if len(faults) != 1 {
				t.Fatalf("faults = %d, want 1", len(faults))
			}
			if faults[0].Kind != store.FaultDispatch {
				t.Errorf("Kind = %q, want %q", faults[0].Kind, store.FaultDispatch)
			}
			if faults[0].Action != "clear" {
				t.Errorf("Action = %v, want clear", faults[0].Action)
			}
			var panicErr *executor.PanicError
			if !errors.As(faults[0], &panicErr) {
				t.Errorf("fault error = %v, want *executor.PanicError", faults[0].Err)
			}
			if m := s.Metrics(); m.Committed != 2 || m.Faults != 1 {
				t.Errorf("Metrics() = %+v, want Committed=2 Faults=1", m)
			}
		})
	}
}

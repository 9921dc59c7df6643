package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/tailored-agentic-units/reduks/config"
	"github.com/tailored-agentic-units/reduks/executor"
	"github.com/tailored-agentic-units/reduks/observability"
)

type unitKind string

const (
	unitDispatch    unitKind = "dispatch"
	unitSubscribe   unitKind = "subscribe"
	unitUnsubscribe unitKind = "unsubscribe"
	unitRead        unitKind = "read"
)

type unit struct {
	kind unitKind
	run  func()
}

// Store serializes dispatch, subscribe, unsubscribe and read operations on a
// single goroutine. The zero value is not usable; create stores with New.
type Store[S, A any] struct {
	id   string
	name string

	// Owned by the store goroutine.
	state    S
	current  context.Context
	registry *registry[S]

	dispatchFn Next[S, A]
	equal      func(a, b S) bool

	mailbox         *mailbox[unit]
	ctx             context.Context
	defaultExecutor executor.Executor
	shutdownTimeout time.Duration
	stopWatch       func() bool
	done            chan struct{}

	observer     observability.Observer
	logger       *slog.Logger
	faultHandler func(*Fault)
	metrics      *Metrics
}

// New creates a store holding initial and starts its goroutine. Middlewares
// run in slice order around reducer. Invalid setup fails here, before any
// dispatch is possible.
func New[S, A any](initial S, reducer Reducer[S, A], middlewares []Middleware[S, A], opts ...Option) (*Store[S, A], error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}
	for i, m := range middlewares {
		if m == nil {
			return nil, fmt.Errorf("middleware %d: %w", i, ErrNilMiddleware)
		}
	}

	o := options{
		cfg:             config.DefaultStoreConfig(),
		ctx:             context.Background(),
		logger:          slog.Default(),
		defaultExecutor: executor.Inline(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.defaultExecutor == nil {
		return nil, ErrNilExecutor
	}

	observer := o.observer
	if observer == nil {
		resolved, err := resolveObserver(o.cfg.Observer, o.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer: %w", err)
		}
		observer = resolved
	}

	equal := defaultEqual[S]
	if o.equal != nil {
		typed, ok := o.equal.(func(a, b S) bool)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrEqualityType, o.equal)
		}
		equal = typed
	}

	s := &Store[S, A]{
		id:              uuid.New().String(),
		name:            o.cfg.Name,
		state:           initial,
		registry:        newRegistry[S](),
		equal:           equal,
		mailbox:         newMailbox[unit](),
		ctx:             context.WithoutCancel(o.ctx),
		defaultExecutor: o.defaultExecutor,
		shutdownTimeout: o.cfg.ShutdownTimeout.Std(),
		done:            make(chan struct{}),
		observer:        observer,
		logger:          o.logger,
		faultHandler:    o.faultHandler,
		metrics:         NewMetrics(),
	}
	s.current = s.ctx
	s.dispatchFn = composeChain[S, A](facade[S, A]{store: s}, middlewares, func(action A) S {
		return reducer(s.state, action)
	})
	s.stopWatch = context.AfterFunc(o.ctx, s.mailbox.Close)

	s.emit(s.ctx, EventStoreCreate, observability.LevelInfo, map[string]any{
		"middlewares": len(middlewares),
	})

	go s.loop()

	return s, nil
}

func resolveObserver(name string, logger *slog.Logger) (observability.Observer, error) {
	if name == "slog" {
		return observability.NewSlogObserver(logger), nil
	}
	return observability.GetObserver(name)
}

// defaultEqual prefers an Equal(S) bool method on the state and falls back to
// reflect.DeepEqual.
func defaultEqual[S any](a, b S) bool {
	if eq, ok := any(a).(interface{ Equal(S) bool }); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

func (s *Store[S, A]) ID() string {
	return s.id
}

func (s *Store[S, A]) Name() string {
	return s.name
}

func (s *Store[S, A]) Metrics() MetricsSnapshot {
	snapshot := s.metrics.Snapshot()
	snapshot.Pending = int64(s.mailbox.Len())
	return snapshot
}

// Dispatch queues action and returns immediately.
func (s *Store[S, A]) Dispatch(action A) error {
	return s.DispatchContext(s.ctx, action)
}

// DispatchContext queues action with ctx as the unit context. Only the values
// of ctx are kept: cancelling it does not abort the queued unit.
func (s *Store[S, A]) DispatchContext(ctx context.Context, action A) error {
	unitCtx := context.WithoutCancel(ctx)
	id := uuid.New().String()

	err := s.mailbox.Send(unit{
		kind: unitDispatch,
		run:  func() { s.processDispatch(unitCtx, id, action) },
	})
	if err != nil {
		return err
	}

	s.metrics.RecordDispatch()
	return nil
}

// Subscribe queues a registration for sub. When processed, sub is registered
// and immediately receives the state as of that point in the queue.
// Subscribing an already registered subscriber does nothing.
func (s *Store[S, A]) Subscribe(sub Subscriber[S], opts ...SubscribeOption) error {
	if sub == nil {
		return ErrNilSubscriber
	}
	if !reflect.TypeOf(sub).Comparable() {
		return fmt.Errorf("%w: %T", ErrUncomparableSubscriber, sub)
	}

	return s.subscribe(func() (Subscriber[S], bool) { return sub, true }, opts)
}

func (s *Store[S, A]) subscribe(resolve func() (Subscriber[S], bool), opts []SubscribeOption) error {
	so := subscribeOptions{executor: s.defaultExecutor}
	for _, opt := range opts {
		opt(&so)
	}
	if so.executor == nil {
		return ErrNilExecutor
	}

	entry := &subscription[S]{
		id:       uuid.New().String(),
		resolve:  resolve,
		executor: so.executor,
	}

	return s.mailbox.Send(unit{
		kind: unitSubscribe,
		run:  func() { s.processSubscribe(entry) },
	})
}

// Unsubscribe queues removal of sub. Dispatches queued after this call never
// reach sub.
func (s *Store[S, A]) Unsubscribe(sub Subscriber[S]) error {
	if sub == nil {
		return ErrNilSubscriber
	}
	if !reflect.TypeOf(sub).Comparable() {
		return fmt.Errorf("%w: %T", ErrUncomparableSubscriber, sub)
	}

	return s.mailbox.Send(unit{
		kind: unitUnsubscribe,
		run:  func() { s.processUnsubscribe(sub) },
	})
}

// State blocks until every operation submitted before the call has been
// processed and returns the resulting state. After shutdown it returns the
// final state.
func (s *Store[S, A]) State() S {
	state, _ := s.StateContext(context.Background())
	return state
}

// StateContext is State with a cancellable wait. Cancelling ctx abandons the
// wait; the read unit itself still runs.
func (s *Store[S, A]) StateContext(ctx context.Context) (S, error) {
	reply := make(chan S, 1)

	err := s.mailbox.Send(unit{
		kind: unitRead,
		run:  func() { reply <- s.state },
	})
	if errors.Is(err, ErrClosed) {
		select {
		case <-s.done:
			return s.state, nil
		case <-ctx.Done():
			var zero S
			return zero, ctx.Err()
		}
	}

	select {
	case state := <-reply:
		return state, nil
	case <-ctx.Done():
		var zero S
		return zero, ctx.Err()
	}
}

// Shutdown stops accepting operations, waits for every queued unit to run and
// stops the store goroutine. A non-positive timeout uses the configured
// ShutdownTimeout. Calling Shutdown again is safe.
func (s *Store[S, A]) Shutdown(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = s.shutdownTimeout
	}

	s.mailbox.Close()

	select {
	case <-s.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("store %s shutdown timeout after %v", s.name, timeout)
	}
}

func (s *Store[S, A]) loop() {
	defer close(s.done)
	defer s.stopWatch()

	for {
		u, ok := s.mailbox.Receive()
		if !ok {
			break
		}
		u.run()
	}

	s.emit(s.ctx, EventStoreShutdown, observability.LevelInfo, map[string]any{
		"committed": s.metrics.committed.Load(),
	})
}

func (s *Store[S, A]) processDispatch(ctx context.Context, id string, action A) {
	s.current = ctx
	defer func() { s.current = s.ctx }()

	s.emit(ctx, EventDispatch, observability.LevelVerbose, map[string]any{
		"unit":   id,
		"action": fmt.Sprintf("%T", action),
	})

	next, err := s.reduce(action)
	if err != nil {
		s.fault(ctx, &Fault{Kind: FaultDispatch, Store: s.name, UnitID: id, Action: action, Err: err})
		return
	}

	changed, err := s.changed(next)
	if err != nil {
		s.fault(ctx, &Fault{Kind: FaultDispatch, Store: s.name, UnitID: id, Action: action, Err: err})
		return
	}
	if !changed {
		s.metrics.RecordSkip()
		s.emit(ctx, EventSkip, observability.LevelVerbose, map[string]any{"unit": id})
		return
	}

	s.state = next
	s.metrics.RecordCommit()
	s.emit(ctx, EventCommit, observability.LevelVerbose, map[string]any{
		"unit":        id,
		"subscribers": s.registry.len(),
	})

	s.registry.notifyAll(ctx, next, func(entry *subscription[S], err error) {
		s.delivered(ctx, id, entry, err)
	})
	s.metrics.SetSubscribers(s.registry.len())
}

// changed compares next with the committed state. The comparison may run
// user code, so a panic is returned as an error.
func (s *Store[S, A]) changed(next S) (changed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &executor.PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	return !s.equal(s.state, next), nil
}

// reduce runs the composed chain and converts a panic into an error so that
// nothing is committed.
func (s *Store[S, A]) reduce(action A) (next S, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &executor.PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	return s.dispatchFn(action), nil
}

func (s *Store[S, A]) processSubscribe(entry *subscription[S]) {
	if !s.registry.register(entry) {
		return
	}
	s.metrics.SetSubscribers(s.registry.len())
	s.emit(s.ctx, EventSubscribe, observability.LevelVerbose, map[string]any{
		"subscription": entry.id,
		"subscribers":  s.registry.len(),
	})

	delivered, err := deliver(s.ctx, entry, s.state)
	if delivered {
		s.delivered(s.ctx, entry.id, entry, err)
	}
}

func (s *Store[S, A]) processUnsubscribe(sub Subscriber[S]) {
	removed := s.registry.unregister(sub)
	s.metrics.SetSubscribers(s.registry.len())
	if removed == 0 {
		return
	}
	s.emit(s.ctx, EventUnsubscribe, observability.LevelVerbose, map[string]any{
		"subscribers": s.registry.len(),
	})
}

func (s *Store[S, A]) delivered(ctx context.Context, unitID string, entry *subscription[S], err error) {
	if err != nil {
		s.fault(ctx, &Fault{Kind: FaultSubscriber, Store: s.name, UnitID: unitID, Err: err})
		return
	}
	s.metrics.RecordNotification()
	s.emit(ctx, EventNotify, observability.LevelVerbose, map[string]any{
		"unit":         unitID,
		"subscription": entry.id,
	})
}

func (s *Store[S, A]) fault(ctx context.Context, f *Fault) {
	s.metrics.RecordFault()
	s.emit(ctx, EventFault, observability.LevelError, map[string]any{
		"unit":  f.UnitID,
		"kind":  string(f.Kind),
		"error": f.Err.Error(),
	})

	if s.faultHandler != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.ErrorContext(ctx, "fault handler panicked",
						slog.String("store", s.name),
						slog.Any("panic", r),
					)
				}
			}()
			s.faultHandler(f)
		}()
	}
}

func (s *Store[S, A]) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	data["store"] = s.name
	data["store_id"] = s.id
	s.observer.OnEvent(ctx, observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "store",
		Data:      data,
	})
}

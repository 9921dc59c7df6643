// Package lifecycle connects host component lifecycles to a store. Components
// that implement store.Subscriber are subscribed while active and
// unsubscribed when they stop being active; other components are ignored.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tailored-agentic-units/reduks/store"
)

// Event is a lifecycle transition reported by the host.
type Event int

const (
	Created Event = iota
	Activated
	Deactivated
	Destroyed
)

func (e Event) String() string {
	switch e {
	case Created:
		return "created"
	case Activated:
		return "activated"
	case Deactivated:
		return "deactivated"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Target is the part of a store the adapter needs. *store.Store satisfies it.
type Target[S any] interface {
	Subscribe(sub store.Subscriber[S], opts ...store.SubscribeOption) error
	Unsubscribe(sub store.Subscriber[S]) error
}

type Adapter[S any] struct {
	target  Target[S]
	subOpts []store.SubscribeOption
	logger  *slog.Logger
}

type Option[S any] func(*Adapter[S])

func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(a *Adapter[S]) { a.logger = logger }
}

// WithSubscribeOptions is passed to every Subscribe call, for example to
// deliver notifications on a UI executor.
func WithSubscribeOptions[S any](opts ...store.SubscribeOption) Option[S] {
	return func(a *Adapter[S]) { a.subOpts = append(a.subOpts, opts...) }
}

func New[S any](target Target[S], opts ...Option[S]) *Adapter[S] {
	a := &Adapter[S]{
		target: target,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle routes evt for obj. Only Activated and Deactivated act on the
// store.
func (a *Adapter[S]) Handle(ctx context.Context, obj any, evt Event) error {
	switch evt {
	case Activated:
		return a.activated(ctx, obj)
	case Deactivated:
		return a.deactivated(ctx, obj)
	default:
		return nil
	}
}

// Activated subscribes obj if it is a subscriber.
func (a *Adapter[S]) Activated(obj any) error {
	return a.activated(context.Background(), obj)
}

// Deactivated unsubscribes obj if it is a subscriber.
func (a *Adapter[S]) Deactivated(obj any) error {
	return a.deactivated(context.Background(), obj)
}

func (a *Adapter[S]) activated(ctx context.Context, obj any) error {
	sub, ok := obj.(store.Subscriber[S])
	if !ok {
		return nil
	}
	if err := a.target.Subscribe(sub, a.subOpts...); err != nil {
		return fmt.Errorf("subscribe %T: %w", obj, err)
	}
	a.logger.DebugContext(ctx, "component subscribed", slog.String("component", fmt.Sprintf("%T", obj)))
	return nil
}

func (a *Adapter[S]) deactivated(ctx context.Context, obj any) error {
	sub, ok := obj.(store.Subscriber[S])
	if !ok {
		return nil
	}
	if err := a.target.Unsubscribe(sub); err != nil {
		return fmt.Errorf("unsubscribe %T: %w", obj, err)
	}
	a.logger.DebugContext(ctx, "component unsubscribed", slog.String("component", fmt.Sprintf("%T", obj)))
	return nil
}

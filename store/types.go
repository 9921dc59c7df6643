package store

import "context"

// Reducer computes the next state from the current state and an action. It
// must be pure: no shared mutation, no blocking.
type Reducer[S, A any] func(state S, action A) S

// Next continues a middleware chain with the given action and returns the
// proposed state.
type Next[S, A any] func(action A) S

// Middleware intercepts a dispatch. It may call next zero, one or several
// times, return its own state to short-circuit the chain, or dispatch further
// actions through api.
type Middleware[S, A any] func(api API[S, A], action A, next Next[S, A]) S

// API is the view of a store handed to middleware.
//
// State returns the live state as of the most recently completed dispatch.
// Dispatch queues a new unit behind the one currently running. Context
// returns the context the current dispatch was submitted with. The API is
// only valid for the duration of the middleware call.
type API[S, A any] interface {
	State() S
	Dispatch(action A) error
	Context() context.Context
}

// Subscriber observes state changes. Identity is Go interface equality, so
// pointer receivers give reference identity.
type Subscriber[S any] interface {
	OnNewState(state S)
}

type funcSubscriber[S any] struct {
	fn func(S)
}

func (f *funcSubscriber[S]) OnNewState(state S) {
	f.fn(state)
}

// SubscriberFunc wraps fn in a Subscriber with pointer identity. Keep the
// returned value to unsubscribe later.
func SubscriberFunc[S any](fn func(state S)) Subscriber[S] {
	return &funcSubscriber[S]{fn: fn}
}

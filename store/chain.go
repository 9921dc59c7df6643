package store

import "context"

// composeChain folds middlewares from last to first around terminal so that
// middlewares[0] runs first.
func composeChain[S, A any](api API[S, A], middlewares []Middleware[S, A], terminal Next[S, A]) Next[S, A] {
	next := terminal
	for i := len(middlewares) - 1; i >= 0; i-- {
		middleware, downstream := middlewares[i], next
		next = func(action A) S {
			return middleware(api, action, downstream)
		}
	}
	return next
}

// facade is the API given to middleware. It reads store fields directly and is
// therefore only safe on the store goroutine.
type facade[S, A any] struct {
	store *Store[S, A]
}

func (f facade[S, A]) State() S {
	return f.store.state
}

func (f facade[S, A]) Dispatch(action A) error {
	return f.store.DispatchContext(f.store.current, action)
}

func (f facade[S, A]) Context() context.Context {
	return f.store.current
}

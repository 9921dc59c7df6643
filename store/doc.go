// Package store implements a single-writer, multi-reader state container.
//
// State changes only by applying a pure Reducer to dispatched actions, wrapped
// by an ordered chain of Middleware. Subscribers are notified of every change
// on an executor of their choosing.
//
// # Ordering
//
// Each Store owns one goroutine that processes units of work (dispatch,
// subscribe, unsubscribe, read) strictly in submission order. A dispatch unit
// runs the middleware chain, commits the new state if it differs from the
// current one, and notifies every subscriber, waiting for each executor
// hand-off, before the next unit starts. Nested dispatches issued from
// middleware are queued behind the unit that issued them.
//
//	s, err := store.New(Counter{}, increment, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Shutdown(time.Second)
//
//	s.Subscribe(store.SubscriberFunc(func(c Counter) { fmt.Println(c.Value) }))
//	s.Dispatch("inc")
//	fmt.Println(s.State()) // blocks until "inc" has been processed
//
// # Blocking
//
// State is the only blocking operation. It must not be called from middleware
// or from a subscriber running on the Inline executor, since both run on the
// store goroutine; middleware reads the live state through its API instead.
//
// # Faults
//
// A panic raised by middleware or the reducer aborts that dispatch without
// committing anything. The store keeps running, and the fault is reported as
// an error-level event and to the handler given by WithFaultHandler. Panics in
// subscribers are reported the same way and do not stop delivery to the
// remaining subscribers.
package store

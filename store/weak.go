package store

import "weak"

// SubscribeWeak registers sub without keeping it alive. Once the owner drops
// every other reference and the collector reclaims it, notifications are
// skipped and the registration is pruned. Unsubscribe works as for Subscribe.
func SubscribeWeak[S, A, T any, P interface {
	*T
	Subscriber[S]
}](s *Store[S, A], sub P, opts ...SubscribeOption) error {
	if sub == nil {
		return ErrNilSubscriber
	}

	ref := weak.Make((*T)(sub))
	return s.subscribe(func() (Subscriber[S], bool) {
		p := ref.Value()
		if p == nil {
			return nil, false
		}
		return P(p), true
	}, opts)
}

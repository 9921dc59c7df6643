package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tailored-agentic-units/reduks/store"
)

type timingOptions struct {
	onSlow  func(time.Duration)
	verbose bool
	logger  *slog.Logger
}

// TimingOption configures Timing.
type TimingOption func(*timingOptions)

// OnSlow replaces the default warning log with fn when a dispatch exceeds the
// threshold.
func OnSlow(fn func(time.Duration)) TimingOption {
	return func(o *timingOptions) { o.onSlow = fn }
}

// Verbose logs the duration of every dispatch that stays under the threshold.
func Verbose() TimingOption {
	return func(o *timingOptions) { o.verbose = true }
}

func WithLogger(logger *slog.Logger) TimingOption {
	return func(o *timingOptions) { o.logger = logger }
}

// Timing measures how long the rest of the chain blocks the store goroutine.
// Durations above threshold are reported through OnSlow, or logged as a
// warning when no callback is set.
func Timing[S, A any](threshold time.Duration, opts ...TimingOption) store.Middleware[S, A] {
	o := timingOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return func(api store.API[S, A], action A, next store.Next[S, A]) S {
		start := time.Now()
		state := next(action)
		elapsed := time.Since(start)

		switch {
		case elapsed > threshold && o.onSlow != nil:
			o.onSlow(elapsed)
		case elapsed > threshold:
			o.logger.WarnContext(api.Context(), "store blocked by slow dispatch",
				slog.String("action_type", fmt.Sprintf("%T", action)),
				slog.Duration("duration", elapsed),
				slog.Duration("threshold", threshold),
			)
		case o.verbose:
			o.logger.InfoContext(api.Context(), "dispatch handled",
				slog.String("action_type", fmt.Sprintf("%T", action)),
				slog.Duration("duration", elapsed),
			)
		}
		return state
	}
}

// Package middleware provides reusable store middleware for logging, slow
// dispatch detection and OpenTelemetry tracing.
package middleware

import (
	"fmt"
	"log/slog"

	"github.com/tailored-agentic-units/reduks/store"
)

// Logging logs the state before the action, the action itself and the
// resulting state at debug level. A nil logger uses slog.Default.
func Logging[S, A any](logger *slog.Logger) store.Middleware[S, A] {
	if logger == nil {
		logger = slog.Default()
	}

	return func(api store.API[S, A], action A, next store.Next[S, A]) S {
		ctx := api.Context()
		logger.DebugContext(ctx, "dispatching action",
			slog.String("action_type", fmt.Sprintf("%T", action)),
			slog.Any("action", action),
			slog.Any("old_state", api.State()),
		)

		state := next(action)

		logger.DebugContext(ctx, "action reduced",
			slog.String("action_type", fmt.Sprintf("%T", action)),
			slog.Any("new_state", state),
		)
		return state
	}
}

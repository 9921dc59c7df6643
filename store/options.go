package store

import (
	"context"
	"log/slog"

	"github.com/tailored-agentic-units/reduks/config"
	"github.com/tailored-agentic-units/reduks/executor"
	"github.com/tailored-agentic-units/reduks/observability"
)

type options struct {
	cfg             config.StoreConfig
	ctx             context.Context
	observer        observability.Observer
	logger          *slog.Logger
	defaultExecutor executor.Executor
	faultHandler    func(*Fault)
	equal           any
}

// Option configures a Store at construction. Options are applied after the
// config-driven defaults and override them.
type Option func(*options)

// WithConfig replaces the default StoreConfig. Zero fields keep their
// defaults.
func WithConfig(cfg config.StoreConfig) Option {
	return func(o *options) { o.cfg.Merge(&cfg) }
}

// WithContext sets the base context for units and events. Cancelling it
// shuts the store down after queued units have drained.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithObserver overrides the observer resolved from config.
func WithObserver(observer observability.Observer) Option {
	return func(o *options) { o.observer = observer }
}

// WithLogger sets the logger used when the configured observer is "slog".
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDefaultExecutor sets the executor used by subscriptions that do not
// choose one. Defaults to executor.Inline, the store goroutine itself.
func WithDefaultExecutor(exec executor.Executor) Option {
	return func(o *options) { o.defaultExecutor = exec }
}

// WithFaultHandler registers a callback for dispatch and subscriber faults.
// It runs on the store goroutine.
func WithFaultHandler(handler func(*Fault)) Option {
	return func(o *options) { o.faultHandler = handler }
}

// WithEquality overrides how a candidate state is compared to the current
// one. S must match the store's state type; New fails otherwise.
func WithEquality[S any](equal func(a, b S) bool) Option {
	return func(o *options) { o.equal = equal }
}

type subscribeOptions struct {
	executor executor.Executor
}

// SubscribeOption configures a single subscription.
type SubscribeOption func(*subscribeOptions)

// OnExecutor delivers notifications for this subscription on exec.
func OnExecutor(exec executor.Executor) SubscribeOption {
	return func(o *subscribeOptions) { o.executor = exec }
}

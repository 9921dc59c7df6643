package middleware

import (
	"fmt"
	"reflect"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tailored-agentic-units/reduks/store"
)

const spanName = "store.dispatch"

type tracingOptions struct {
	attrs []attribute.KeyValue
}

// TracingOption configures Tracing.
type TracingOption func(*tracingOptions)

// WithAttributes adds fixed attributes to every dispatch span.
func WithAttributes(attrs ...attribute.KeyValue) TracingOption {
	return func(o *tracingOptions) { o.attrs = append(o.attrs, attrs...) }
}

// Tracing starts one span per dispatch as a child of the unit context. The
// span records the action type and whether the state changed, compared the
// way the store compares by default. A panic further down the chain is
// recorded on the span and re-raised.
func Tracing[S, A any](tracer trace.Tracer, opts ...TracingOption) store.Middleware[S, A] {
	var o tracingOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(api store.API[S, A], action A, next store.Next[S, A]) S {
		attrs := append([]attribute.KeyValue{
			attribute.String("action.type", fmt.Sprintf("%T", action)),
		}, o.attrs...)

		_, span := tracer.Start(api.Context(), spanName,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("dispatch panicked: %v", r)
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				panic(r)
			}
		}()

		before := api.State()
		state := next(action)

		span.SetAttributes(attribute.Bool("state.changed", !stateEqual(before, state)))
		return state
	}
}

// stateEqual matches the store's default comparison: an Equal(S) bool method
// when the state has one, reflect.DeepEqual otherwise. A store-level
// WithEquality override is not visible to middleware.
func stateEqual[S any](a, b S) bool {
	if eq, ok := any(a).(interface{ Equal(S) bool }); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

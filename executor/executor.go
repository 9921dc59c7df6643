// Package executor provides the execution contexts on which store subscribers
// are notified.
//
// An Executor runs a callback somewhere (the calling goroutine, a fresh
// goroutine, a worker pool) and returns only after the callback finished, so
// a store can hand notification off to another goroutine while keeping its
// own ordering guarantees.
package executor

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Executor runs fn on its execution context and waits for it to return.
// A panic inside fn is recovered and returned as *PanicError.
type Executor interface {
	Execute(ctx context.Context, fn func()) error
}

// Func adapts an ordinary function to the Executor interface.
type Func func(ctx context.Context, fn func()) error

func (f Func) Execute(ctx context.Context, fn func()) error {
	return f(ctx, fn)
}

type inline struct{}

// Inline returns an Executor that runs callbacks on the calling goroutine.
// Stores use it as their default, which places notifications on the store's
// own serialization goroutine.
func Inline() Executor {
	return inline{}
}

func (inline) Execute(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return run(fn)
}

type goroutine struct{}

// Goroutine returns an Executor that runs each callback on a new goroutine
// and blocks until it completes.
func Goroutine() Executor {
	return goroutine{}
}

func (goroutine) Execute(ctx context.Context, fn func()) error {
	done := make(chan error, 1)
	go func() {
		done <- run(fn)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PanicError carries a value recovered from a panicking callback.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("callback panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	fn()
	return nil
}

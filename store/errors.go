package store

import "errors"

// Construction errors.
var (
	ErrNilReducer    = errors.New("reducer must not be nil")
	ErrNilMiddleware = errors.New("middleware must not be nil")
	ErrNilExecutor   = errors.New("executor must not be nil")
	ErrEqualityType  = errors.New("equality function does not match state type")
)

// Submission errors.
var (
	ErrClosed                 = errors.New("store closed")
	ErrNilSubscriber          = errors.New("subscriber must not be nil")
	ErrUncomparableSubscriber = errors.New("subscriber type is not comparable")
)

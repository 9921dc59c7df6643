package executor

import "errors"

// ErrPoolClosed is returned by Pool.Execute after Shutdown.
var ErrPoolClosed = errors.New("executor pool closed")

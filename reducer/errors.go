package reducer

import "errors"

// ErrInvalidComposition is wrapped by every error returned from Combine.
var ErrInvalidComposition = errors.New("invalid reducer composition")

package overlap

import "errors"

// ErrMalformedInput marks arguments that are missing, extra or not numbers.
var ErrMalformedInput = errors.New("malformed input")

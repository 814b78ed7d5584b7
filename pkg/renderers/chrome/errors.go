package chrome

import "errors"

// ErrClosed is returned when attempting to use a closed Engine.
var ErrClosed = errors.New("chrome: engine is closed")

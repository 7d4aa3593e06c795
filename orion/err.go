package orion

import "errors"

// ErrInvalidTransition is returned if the scheduler steps are run out of order.
var ErrInvalidTransition = errors.New("invalid scheduler transition")

package reason

import "errors"

// Sentinel kinds for formatting errors.
var (
	ErrEventName     = errors.New("event name lookup failed")
	ErrUnknownSector = errors.New("unknown sector")
)

package nqt

import "errors"

// Sentinel kinds for table-building errors.
var (
	ErrMalformedEvent = errors.New("malformed event name")
)

package ingest

import (
	"errors"
	"fmt"
)

// ErrTooManyRedirects is returned when a redirect chain exceeds the loader's
// limit.
var ErrTooManyRedirects = errors.New("too many redirects")

// StatusError is a non-success response that could not be followed.
type StatusError struct {
	Address string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.Code, e.Message, e.Address)
}

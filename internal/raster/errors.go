package raster

import (
	"errors"
	"fmt"
)

var (
	ErrUnreadable    = errors.New("raster unreadable")
	ErrTooFewBands   = errors.New("too few bands")
	ErrShapeMismatch = errors.New("band shape mismatch")
)

// ValidationError reports input that can never be processed. It is never
// retried and is meant to be shown to the end user as is.
type ValidationError struct {
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no format matches the requested media type.
var ErrNotFound = errors.New("suitable format not found")

// ValidationError reports caller input that cannot be served.
// Message is safe to return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError wraps a failure of an external provider. Its cause is for
// logs only.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrUnknownEvent = errors.New("unknown event")
)

// MissingDataError reports a required top-level field absent from the athlete document.
// It points at an incompatible upstream schema rather than a bad record.
type MissingDataError struct {
	Field string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("athlete document is missing required field %q", e.Field)
}

package state

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid is matched by every ValidationError.
	ErrInvalid = errors.New("invalid input")

	// ErrNotPersisted reports that a mutation was applied in memory and
	// published, but writing the slice to storage failed.
	ErrNotPersisted = errors.New("state not persisted")
)

// ValidationError is returned when a caller supplies an out-of-domain value.
// No state changes and no event is published when it is returned.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotPersisted reports whether err means the state was applied but not saved.
func IsNotPersisted(err error) bool {
	return errors.Is(err, ErrNotPersisted)
}

package orm

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when a cursor has no column with the requested name.
	ErrColumnNotFound = errors.New("orm: column not found")
	// ErrNoMarshaller is returned by Load and Fill for unregistered model types.
	ErrNoMarshaller = errors.New("orm: no marshaller registered")
	// ErrNoSerializer is returned when a serialized column has no registered serializer.
	ErrNoSerializer = errors.New("orm: no serializer registered")
	// ErrColumnIndex is recorded by cursors for an out of range column index.
	ErrColumnIndex = errors.New("orm: column index out of range")
	// ErrNoRow is recorded by cursors read before Next or after the last row.
	ErrNoRow = errors.New("orm: cursor is not positioned on a row")
)

// ModelTypeError reports a marshaller called with a model of the wrong type.
type ModelTypeError struct {
	Want string
	Got  any
}

// NewModelTypeError returns a *ModelTypeError for a marshaller of type want.
func NewModelTypeError(want string, got any) error {
	return &ModelTypeError{Want: want, Got: got}
}

func (e *ModelTypeError) Error() string {
	return fmt.Sprintf("orm: %s marshaller cannot handle %T, want *%s", e.Want, e.Got, e.Want)
}

// ConversionError reports a column value that cannot be read with the requested accessor.
type ConversionError struct {
	Column string
	Value  any
	Target string
	Err    error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("orm: column %q: cannot convert %T to %s", e.Column, e.Value, e.Target)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

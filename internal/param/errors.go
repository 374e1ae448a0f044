package param

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldNotFound means the holder type declares no parameter with the
	// requested key. It is never suppressed by non-strict assignment.
	ErrFieldNotFound = errors.New("parameter field not found")

	// ErrConversion means a raw value could not be converted to the field's
	// scalar type.
	ErrConversion = errors.New("parameter value conversion failed")

	// ErrMissingDefault means a required field declares no default, so a new
	// holder cannot be initialized.
	ErrMissingDefault = errors.New("required parameter has no default")
)

// FieldNotFoundError reports a key that the holder type does not declare.
type FieldNotFoundError struct {
	TypeName string
	Key      string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("%s does not contain %s", e.TypeName, e.Key)
}

func (e *FieldNotFoundError) Unwrap() error {
	return ErrFieldNotFound
}

// ConversionError reports a raw value that could not be converted into the
// scalar type of the field named by Key.
type ConversionError struct {
	// TypeName is the scalar type of the field ("float64" or "int").
	TypeName string
	Key      string
	Raw      any
	Err      error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot determine %s value from %s input, %v", e.TypeName, e.Key, e.Raw)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both ErrConversion and the underlying cause.
func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConversion}
	}
	return []error{ErrConversion, e.Err}
}

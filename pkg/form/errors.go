package form

import (
	"errors"
	"strings"
)

// Messages surfaced to the user for client-side validation failures.
const (
	MessageInvalidImage = "Please select a valid image file (JPEG, PNG)."
	MessageNoFile       = "Please select an image file first."
	messageMissing      = "Please select a value for: "
)

var (
	// ErrUnknownField signals a mutation against a field the form does not
	// declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrFieldType signals a mutation that does not match the field kind (for
	// example toggling a numeric field).
	ErrFieldType = errors.New("form: field type mismatch")
)

// ValidationError is a client-side input error. Its message is meant for
// display and blocks the submission it was raised for.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func missingError(labels []string) *ValidationError {
	return &ValidationError{
		Field:   strings.Join(labels, ","),
		Message: messageMissing + strings.Join(labels, ", "),
	}
}

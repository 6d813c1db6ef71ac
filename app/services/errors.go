package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced record does not exist. The SQL
// store maps sql.ErrNoRows onto it so handlers can answer 404.
var ErrNotFound = errors.New("record not found")

// ValidationError marks caller mistakes: missing fields, bad anchors,
// inverted date ranges. No state is mutated when one is returned.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

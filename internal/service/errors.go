package service

import (
	"errors"
	"fmt"
)

// ValidationError marks user input that was rejected before any work was done.
type ValidationError struct {
	message string
}

// Error returns the error message.
func (e ValidationError) Error() string {
	return e.message
}

func validationErrorf(format string, args ...interface{}) ValidationError {
	return ValidationError{message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

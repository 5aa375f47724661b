package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrRoutineNameRequired    = errors.New("please enter a routine name")
	ErrRoutineEntriesRequired = errors.New("please add at least one exercise to the routine")
	ErrExerciseNameRequired   = errors.New("exercise name is required")
	ErrInvalidEnumValue       = errors.New("value is not one of the allowed options")
)

// FieldError ties a failed rule to the field it was checked against.
type FieldError struct {
	Field string
	Err   error
}

func (f FieldError) Message() string {
	return f.Err.Error()
}

// ValidationError reports every rule that failed. errors.Is matches both
// ErrValidation and each individual rule error.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message())
	}
	parts := make([]string, 0, len(e.Errors))
	for _, f := range e.Errors {
		parts = append(parts, f.Field+": "+f.Message())
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors)+1)
	errs = append(errs, ErrValidation)
	for _, f := range e.Errors {
		errs = append(errs, f.Err)
	}
	return errs
}

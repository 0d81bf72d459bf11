package validation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned when there is no product to validate.
	ErrInvalidArgument = errors.New("invalid argument: product is nil")

	// ErrValidationFailed matches every *Error with errors.Is.
	ErrValidationFailed = errors.New("validation failed")
)

// Violation is a single failed constraint on a product field.
type Violation struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Violations is an ordered list of violations, in field evaluation order.
type Violations []Violation

// Fields returns the field paths of all violations, preserving order.
func (vs Violations) Fields() []string {
	fields := make([]string, 0, len(vs))
	for _, v := range vs {
		fields = append(fields, v.Field)
	}
	return fields
}

// Has reports whether any violation is attributed to field.
func (vs Violations) Has(field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}

func (vs Violations) Error() string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "; ")
}

// Error is returned by the save path when a product has violations.
type Error struct {
	Violations Violations
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed, e.Violations.Error())
}

func (e *Error) Unwrap() error {
	return ErrValidationFailed
}

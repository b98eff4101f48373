package fiches

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrNotFound        = errors.New("fiche not found")
)

// ValidationError lists the required request fields that were missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

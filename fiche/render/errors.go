package render

import (
	"errors"
	"fmt"
)

// ErrTemplateMissing means no template file exists at the configured path.
var ErrTemplateMissing = errors.New("template not found")

// EncodingError reports a template that exists but could not be rendered.
type EncodingError struct {
	Op  string
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("render template %s: %v", e.Op, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

package service

import (
	"errors"
	"fmt"
)

// ErrMissingInput is returned when a request carries neither an image nor ingredients
var ErrMissingInput = errors.New("no ingredients provided")

// ErrEmptyResponse is returned when a backend response has no candidate text
var ErrEmptyResponse = errors.New("no text candidate in backend response")

// UnsupportedFormatError reports an image extension with no known MIME type
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported image format: %q", e.Ext)
}

// MalformedOutputError reports model output that could not be turned into a recipe
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// BackendError wraps a failed call to a generative backend
type BackendError struct {
	Op    string
	Model string
	Err   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s (model %s): %v", e.Op, e.Model, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

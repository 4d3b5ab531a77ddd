package api

import (
	"errors"
	"net/http"

	"github.com/pageza/fridge-chef/backend/internal/service"
	"github.com/pageza/fridge-chef/backend/internal/upload"
)

// msgNoIngredients is the client-facing message for a request without input
const msgNoIngredients = "No ingredients provided"

// errInvalidForm is returned when the request body cannot be parsed
var errInvalidForm = errors.New("invalid request body")

// statusForError maps an error from the ingredient or recipe pipeline to an HTTP status
func statusForError(err error) int {
	var unsupported *service.UnsupportedFormatError
	var malformed *service.MalformedOutputError
	var backend *service.BackendError

	switch {
	case errors.Is(err, service.ErrMissingInput), errors.Is(err, errInvalidForm):
		return http.StatusBadRequest
	case errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.Is(err, upload.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &malformed), errors.As(err, &backend):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// messageForError returns the text placed in the error response body
func messageForError(err error) string {
	if errors.Is(err, service.ErrMissingInput) {
		return msgNoIngredients
	}
	return err.Error()
}

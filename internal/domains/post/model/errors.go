package model

import (
	"errors"
	"net/http"
)

var (
	ErrPostNotFound = errors.New("post not found")

	// ErrAuthorNotFound is returned when a create references an unknown author.
	ErrAuthorNotFound = errors.New("author not found")
)

// ValidationError reports a malformed request body. Message is safe to return
// to the client as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "Missing `" + field + "` in request body"}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrPostNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

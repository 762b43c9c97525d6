package model

import (
	"errors"
	"net/http"
)

var (
	// Business Rule Errors
	ErrAuthorNotFound    = errors.New("author not found")
	ErrDuplicateUserName = errors.New("author with this userName already exists")
	ErrAuthorHasPosts    = errors.New("cannot delete author with linked posts")
)

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateUserName), errors.Is(err, ErrAuthorHasPosts):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

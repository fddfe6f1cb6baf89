package omdb

import (
	"errors"
	"net/http"
	"strconv"
)

// Common errors
var (
	// ErrEmptyQuery indicates a search was attempted without a query
	ErrEmptyQuery = errors.New("search query is required")
	// ErrEmptyID indicates a lookup was attempted without an identifier
	ErrEmptyID = errors.New("movie id is required")
)

// HTTPError is returned when the API answers with a non-2xx status.
// The response body is never decoded in that case.
type HTTPError struct {
	StatusCode int
	StatusText string
}

// Error returns the server-provided status text so it can be shown to users verbatim.
func (e *HTTPError) Error() string {
	if e.StatusText != "" {
		return e.StatusText
	}
	return "HTTP " + strconv.Itoa(e.StatusCode)
}

// IsNotFound checks if the error indicates a not found response
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

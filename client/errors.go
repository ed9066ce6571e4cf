package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized ...
	ErrUnauthorized = errors.New("error: authorization failed")

	// ErrServerError ...
	ErrServerError = errors.New("error: server error")

	// ErrNoAttachment ...
	ErrNoAttachment = errors.New("error: no attachment provided")
)

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
}

// Is ...
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrServerError:
		return e.StatusCode >= http.StatusInternalServerError
	}
	if t, ok := target.(*APIError); ok {
		return t.StatusCode == e.StatusCode
	}
	return false
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("error: %d %s", e.StatusCode, e.Message)
}

// Message returns the backend supplied message of err, if it carries one
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any 401 response via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is a non-2xx response from the API.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: server returned %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: server returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}

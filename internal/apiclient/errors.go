package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport wraps failures that produced no HTTP response.
var ErrTransport = errors.New("transport failure")

// Error is a non-2xx response from the API.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the payload's message field, when the API sent one.
	Message string
	Body    []byte
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsValidation reports whether err is a 4xx response other than 401.
func IsValidation(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) &&
		apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 &&
		apiErr.StatusCode != http.StatusUnauthorized
}

// IsServer reports whether err is a 5xx response.
func IsServer(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}

// MessageOf returns the server-provided message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// extractMessage reads {"message": "..."} or {"error": {"message": "..."}}.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Error != nil {
		return payload.Error.Message
	}
	return ""
}

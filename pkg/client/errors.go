package client

import (
	"fmt"
	"net/http"
	"strings"
)

// ConnectivityError reports that the backend could not be reached at all.
type ConnectivityError struct {
	BaseURL string
	Err     error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("Failed to connect to the server at %s. Is your backend running?", e.BaseURL)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// ServerError is returned for any non-2xx response. Detail holds the
// backend-provided message when the body carried one.
type ServerError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *ServerError) Error() string {
	if strings.TrimSpace(e.Detail) != "" {
		return e.Detail
	}
	return "Server Error: " + e.StatusText()
}

// StatusText returns the reason phrase of the response, falling back to the
// canonical text for the status code.
func (e *ServerError) StatusText() string {
	if text := strings.TrimSpace(strings.TrimPrefix(e.Status, fmt.Sprint(e.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(e.StatusCode)
}

// DecodeError reports a 2xx response whose body did not match the expected
// shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("client: decode response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Package errors provides custom error types for the chat-completion client.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common cases
var (
	ErrTransport       = errors.New("transport failed")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrNoCredential    = errors.New("no API key configured")
	ErrEmptyPrompt     = errors.New("prompt is empty")
)

// NetworkError represents a connection-level failure (DNS, TLS, reset, ...)
type NetworkError struct {
	Operation string
	Endpoint  string
	Cause     error
}

func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error during %s at %s: %v", e.Operation, e.Endpoint, e.Cause)
	}
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *NetworkError) Is(target error) bool {
	if target == ErrTransport {
		return true
	}
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, cause error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Cause: cause}
}

// APIError represents a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	// Body is the raw response body, kept for diagnostics
	Body string
	// RequestID is the client request id sent with the failing request
	RequestID string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// Is allows comparison with sentinel errors
func (e *APIError) Is(target error) bool {
	if target == ErrTransport {
		return true
	}
	_, ok := target.(*APIError)
	return ok
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NewAPIErrorWithBody creates a new APIError carrying the raw response body
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	e := NewAPIError(statusCode, endpoint, message)
	e.Body = body
	return e
}

// TimeoutError represents a request timeout
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *TimeoutError) Is(target error) bool {
	if target == ErrTransport {
		return true
	}
	_, ok := target.(*TimeoutError)
	return ok
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// DecodingError represents a response that could not be turned into text
type DecodingError struct {
	Message string
	Path    string
	Cause   error
}

func (e *DecodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decoding error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decoding error: %s", e.Message)
}

func (e *DecodingError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *DecodingError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*DecodingError)
	return ok
}

// NewDecodingError creates a new DecodingError
func NewDecodingError(message, path string, cause error) *DecodingError {
	return &DecodingError{Message: message, Path: path, Cause: cause}
}

// CredentialMissingError is returned before any request is sent when no API key is set
type CredentialMissingError struct {
	Name string
}

func (e *CredentialMissingError) Error() string {
	if e.Name == "" {
		return "no API key configured"
	}
	return fmt.Sprintf("no API key configured (%s is empty)", e.Name)
}

// Is allows comparison with sentinel errors
func (e *CredentialMissingError) Is(target error) bool {
	if target == ErrNoCredential {
		return true
	}
	_, ok := target.(*CredentialMissingError)
	return ok
}

// NewCredentialMissingError creates a new CredentialMissingError
func NewCredentialMissingError(name string) *CredentialMissingError {
	return &CredentialMissingError{Name: name}
}

// IsTransportError reports network failures, non-2xx statuses and timeouts
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsNetworkError reports whether err is a NetworkError
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsTimeoutError reports whether err is a TimeoutError
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsDecodingError reports whether err is a DecodingError
func IsDecodingError(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}

// IsCredentialMissing reports whether err is a CredentialMissingError
func IsCredentialMissing(err error) bool {
	return errors.Is(err, ErrNoCredential)
}

// IsAuthError reports a rejected API key (401 or 403)
func IsAuthError(err error) bool {
	status := GetHTTPStatus(err)
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// IsRateLimitError reports a 429 response
func IsRateLimitError(err error) bool {
	return GetHTTPStatus(err) == http.StatusTooManyRequests
}

// GetHTTPStatus extracts the HTTP status code, or 0 if err carries none
func GetHTTPStatus(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// GetResponseBody extracts the raw response body of an APIError
func GetResponseBody(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Body
	}
	return ""
}

// GetEndpoint extracts the endpoint from transport errors
func GetEndpoint(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Endpoint
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Endpoint
	}
	return ""
}

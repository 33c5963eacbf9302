package edinet

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid edinet configuration")
	// ErrInvalidInput indicates an operation argument failed local validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrResponseNot200 matches every non-200 response from the API
	ErrResponseNot200 = errors.New("edinet API response was not 200")
	// ErrBadRequest indicates a 400 response
	ErrBadRequest = errors.New("bad request")
	// ErrInvalidAPIKey indicates a 401 response
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrNotFound indicates a 404 response
	ErrNotFound = errors.New("resource not found")
	// ErrServerError indicates a 500 response
	ErrServerError = errors.New("internal server error")
)

// ErrorKind classifies a non-200 response.
type ErrorKind int

const (
	// KindUnsuccessful is any non-200 status without a dedicated kind
	KindUnsuccessful ErrorKind = iota
	// KindBadRequest is HTTP 400
	KindBadRequest
	// KindInvalidAPIKey is HTTP 401
	KindInvalidAPIKey
	// KindNotFound is HTTP 404
	KindNotFound
	// KindServerError is HTTP 500
	KindServerError
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindInvalidAPIKey:
		return "invalid_api_key"
	case KindNotFound:
		return "not_found"
	case KindServerError:
		return "server_error"
	default:
		return "unsuccessful"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindBadRequest:
		return ErrBadRequest
	case KindInvalidAPIKey:
		return ErrInvalidAPIKey
	case KindNotFound:
		return ErrNotFound
	case KindServerError:
		return ErrServerError
	default:
		return nil
	}
}

func kindForStatus(code int) ErrorKind {
	switch code {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindInvalidAPIKey
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusInternalServerError:
		return KindServerError
	default:
		return KindUnsuccessful
	}
}

// ResponseError is returned for every non-200 response. It carries the
// status code and the raw response body.
type ResponseError struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
}

func newResponseError(code int, body []byte) *ResponseError {
	return &ResponseError{
		Kind:       kindForStatus(code),
		StatusCode: code,
		Body:       string(body),
	}
}

// Error implements the error interface
func (e *ResponseError) Error() string {
	return fmt.Sprintf("edinet API error: status %d: %s", e.StatusCode, e.Body)
}

// Is reports whether target is ErrResponseNot200 or the sentinel for e's kind
func (e *ResponseError) Is(target error) bool {
	if target == ErrResponseNot200 {
		return true
	}
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// IsNotFound checks if the error indicates a not found response
func (e *ResponseError) IsNotFound() bool {
	return e.Kind == KindNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *ResponseError) IsUnauthorized() bool {
	return e.Kind == KindInvalidAPIKey
}

// ValidationError is returned before any request is sent when an argument
// is outside its allowed values.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is makes ValidationError match ErrInvalidInput
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

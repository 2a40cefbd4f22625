package errors

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrEmailRequired is returned when a user is created without an email address.
	ErrEmailRequired = errors.New("users must have an email address")
	// ErrUserAlreadyExists is returned when the normalized email is already registered.
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned for both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	// ErrInvalidToken is returned when a bearer token does not resolve to an active user.
	ErrInvalidToken = errors.New("invalid token")
	// ErrRecipeNotFound is returned when a recipe does not exist or belongs to someone else.
	ErrRecipeNotFound = errors.New("not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// ValidationError carries per-field messages, rendered as {"field": ["message", ...]}.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates a validation error with a single field message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// Add appends a message for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no field messages were collected.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HTTPError represents an HTTP error with status code and response body.
type HTTPError struct {
	StatusCode int
	Body       interface{}
}

func (e *HTTPError) Error() string {
	return http.StatusText(e.StatusCode)
}

// NewHTTPError creates a new HTTP error with a detail body.
func NewHTTPError(statusCode int, detail, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Body:       ErrorResponse{Detail: detail, Code: code},
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return &HTTPError{StatusCode: http.StatusBadRequest, Body: verr.Fields}
	}

	switch {
	case errors.Is(err, ErrEmailRequired):
		return &HTTPError{StatusCode: http.StatusBadRequest, Body: map[string][]string{"email": {err.Error()}}}
	case errors.Is(err, ErrUserAlreadyExists):
		return &HTTPError{StatusCode: http.StatusBadRequest, Body: map[string][]string{"email": {err.Error() + "."}}}
	case errors.Is(err, ErrInvalidCredentials):
		return &HTTPError{StatusCode: http.StatusBadRequest, Body: map[string][]string{"non_field_errors": {err.Error()}}}
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, "Invalid token.", "AUTHENTICATION_FAILED")
	case errors.Is(err, ErrRecipeNotFound), errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "Not found.", "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

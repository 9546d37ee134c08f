package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTemplateNotFound is returned when no template has the requested id.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrIDMismatch is returned when the id in the body differs from the id in the path.
	ErrIDMismatch = errors.New("template id in body does not match id in path")
)

// Fixed descriptions for the catch-all responses.
const (
	notFoundDescription      = "The resource couldn't be found"
	unprocessableDescription = "The request was well-formed but one or more attributes are missing."
	internalDescription      = "internal server error"
)

// ErrorResponse is the JSON body of every error answered by the API.
type ErrorResponse struct {
	Status      int    `json:"status"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// NotFound is the 404 variant.
func NotFound() *HTTPError {
	return NewHTTPError(http.StatusNotFound, notFoundDescription)
}

// Unprocessable is the 422 variant used for bodies that fail to bind or validate.
func Unprocessable() *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, unprocessableDescription)
}

// BadRequest is the 400 variant.
func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// Internal is the 500 variant. The underlying cause is never sent to clients.
func Internal() *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, internalDescription)
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Status:      e.StatusCode,
		Title:       http.StatusText(e.StatusCode),
		Description: e.Message,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, ErrTemplateNotFound):
		return NotFound()
	case errors.Is(err, ErrIDMismatch):
		return BadRequest(err.Error())
	default:
		return Internal()
	}
}

package utils

import "net/http"

// AppError is an error that carries the HTTP status it should be reported with.
type AppError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error returns only the client-facing message; the cause is reachable through Unwrap.
func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

func NewPayloadTooLargeError(message string) *AppError {
	return &AppError{StatusCode: http.StatusRequestEntityTooLarge, Message: message}
}

// NewInternalError wraps cause so it stays reachable through errors.As/Is.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message, Err: cause}
}

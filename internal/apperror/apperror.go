// Package apperror defines the error kinds shared by every layer of the site.
//
// Lower layers (the API client, the forms, the session store) return these
// errors; the HTTP handlers decide how to show them: an error dialog on an
// admin screen, a log line on the public page, a JSON body on /healthz.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("Validation Error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream error")
)

// GenericMessage is shown whenever a failure carries no usable message.
const GenericMessage = "Something went wrong"

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	Status  int    // Optional: HTTP status reported by the backend
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Unauthorized returns an AppError for a rejected or missing credential.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Upstream wraps a non-2xx answer from the portfolio backend.
// message is whatever the backend put in its "message" field and may be empty.
func Upstream(status int, message string) *AppError {
	return &AppError{
		Err:     ErrUpstream,
		Message: message,
		Status:  status,
	}
}

// UserMessage returns the text an error dialog should show for err:
// the message carried by the first *AppError in the chain, or GenericMessage.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return GenericMessage
}

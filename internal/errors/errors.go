package errors

import "fmt"

// ErrorCode represents a hoplol error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrCommandTaken   ErrorCode = "COMMAND_TAKEN"   // 409: name/alias namespace collision
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// Error represents a structured error with code, HTTP status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a bookmark or alias cannot be found.
func NewNotFound(identifier string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewCommandTaken creates a 409 error for a name or alias that collides with
// the existing command namespace. Names and aliases share one namespace, so
// the same code covers both directions.
func NewCommandTaken(command string) *Error {
	return &Error{
		Code:    ErrCommandTaken,
		Status:  409,
		Message: fmt.Sprintf("command %q is already taken by a bookmark name or alias", command),
		Details: map[string]any{"command": command},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an Error with the given code.
func Is(err error, code ErrorCode) bool {
	if hErr, ok := err.(*Error); ok {
		return hErr.Code == code
	}
	return false
}

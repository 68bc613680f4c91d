package apperrors

import "errors"

// Authentication errors. Token and authorization rejections are written by
// the middleware directly; only credential failures travel as errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Resource errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrClassNotFound   = errors.New("class not found")
	ErrUsernameExists  = errors.New("username already exists")
	ErrEmailExists     = errors.New("email already exists")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidRole      = errors.New("invalid role")
)

// CustomError carries an underlying sentinel plus a request-specific message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a request-specific message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

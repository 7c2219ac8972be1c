package common

import "errors"

// AppError carries an error code and HTTP status alongside the underlying error.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// ValidationError builds the 400 error used for rejected input, before any
// computation or side effect has happened.
func ValidationError(message string, details any) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: message, HTTPStatus: 400, Details: details}
}

func asAppError(err error, target **AppError) bool {
	return errors.As(err, target)
}

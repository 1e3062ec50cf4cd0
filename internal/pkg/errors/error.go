package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    int    // Business error code
	Message string // Human-readable message
	Err     error  // Underlying error (if any)
	Details string // Additional details
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the given code
func New(code int, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Code:    code,
		Message: GetMessage(code),
		Details: detail,
	}
}

// Wrap wraps an existing error with an error code
func Wrap(err error, code int, details ...string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if len(details) > 0 && details[0] != "" {
			appErr.Details = details[0]
		}
		return appErr
	}

	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}

	return &AppError{
		Code:    code,
		Message: GetMessage(code),
		Err:     err,
		Details: detail,
	}
}

// Wrapf wraps an error with formatted details
func Wrapf(err error, code int, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Is checks if err is an AppError with the given code
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// ExtractCode extracts the error code from an error
func ExtractCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternalServer
}

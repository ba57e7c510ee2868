package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeUpstream     ErrorCode = "UPSTREAM"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrIdentityNotFound    = NewError(ErrCodeNotFound, "identity not found")
	ErrUserNotFound        = NewError(ErrCodeNotFound, "user not found")
	ErrCourseNotFound      = NewError(ErrCodeNotFound, "course not found")
	ErrTopicNotFound       = NewError(ErrCodeNotFound, "topic not found")
	ErrLessonNotFound      = NewError(ErrCodeNotFound, "lesson not found")
	ErrApplicationNotFound = NewError(ErrCodeNotFound, "mentor application not found")
	ErrRevocationNotFound  = NewError(ErrCodeNotFound, "no revocation recorded")

	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrAccountDeactivated = NewError(ErrCodeUnauthorized, "account deactivated")
	ErrForbidden          = NewError(ErrCodeForbidden, "insufficient privileges")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
	ErrMissingParameters  = NewError(ErrCodeInvalid, "missing parameters")

	ErrLessonCompleted   = NewError(ErrCodeConflict, "lesson already completed")
	ErrOpenApplication   = NewError(ErrCodeConflict, "an application is already open")
	ErrApplicationClosed = NewError(ErrCodeConflict, "application already reviewed")
	ErrDuplicateIdentity = NewError(ErrCodeConflict, "identity already exists")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

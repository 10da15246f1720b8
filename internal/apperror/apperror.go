// Package apperror defines the error taxonomy shared by the service layer
// and the HTTP handlers.
//
// Every user-facing failure belongs to one of four sentinel classes.
// Services raise errors through the constructors below; handlers map the
// class to an HTTP status with errors.Is and read the human message from
// the AppError. Anything outside this taxonomy (driver failures,
// connectivity) is treated as an unclassified 500 and never leaks detail
// to the client.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

// AppError carries a sentinel class, a human-readable message, and
// optionally the name of the field that caused a validation failure.
type AppError struct {
	Err     error  // sentinel class (ErrNotFound, ErrValidation, ...)
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that the referenced entity does not exist. For movies
// this also covers "exists but not owned by the caller" — on a read,
// ownership mismatch is deliberately indistinguishable from absence.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// ValidationFailed reports a malformed input value on the named field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// MissingField reports a required input that was absent or empty.
func MissingField(field string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: fmt.Sprintf("the %s is required", field),
		Field:   field,
	}
}

// InvalidRating reports a rating outside the accepted 1–5 range.
func InvalidRating(rating int) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: fmt.Sprintf("rating must be between 1 and 5, got %d", rating),
		Field:   "rating",
	}
}

// EmailAlreadyRegistered reports a uniqueness violation on user email.
// HTTP handlers map this to 409 Conflict.
func EmailAlreadyRegistered(email string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("the email %s is already registered", email),
		Field:   "email",
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// MissingOldPassword reports a password change attempted without the
// current password.
func MissingOldPassword() *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "the old password is required to set a new one",
		Field:   "old_password",
	}
}

// OldPasswordMismatch reports a password change whose supplied current
// password did not verify against the stored digest.
func OldPasswordMismatch() *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: "the old password does not match",
		Field:   "old_password",
	}
}

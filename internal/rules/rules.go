// Package rules is the validation and ownership engine: pure decision
// functions with no I/O. Services call these before touching the
// repository, so every mutation path runs through the same checks in the
// same order.
//
// CHECK ORDER IS PART OF THE CONTRACT:
// Presence checks (Required) always run before existence checks (does the
// user exist?). Callers build an explicit Field pipeline per operation
// instead of nesting ad hoc conditionals, so the first failure reported is
// always deterministic.
package rules

import (
	"strings"

	"github.com/bfarias-dev/movienotes/internal/apperror"
)

// Rating bounds for a movie note.
const (
	MinRating = 1
	MaxRating = 5
)

// Field is one entry in a required-field pipeline: a name for the error
// message and the supplied value.
type Field struct {
	Name  string
	Value string
}

// ValidateRating fails unless MinRating <= r <= MaxRating.
func ValidateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return apperror.InvalidRating(r)
	}
	return nil
}

// Required checks each field in order and reports the first one that is
// absent or blank. Whitespace-only values count as absent.
func Required(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return apperror.MissingField(f.Name)
		}
	}
	return nil
}

// AuthorizeMutation fails with Forbidden unless the requester is the
// resource owner. Both sides are int64 — path identifiers are parsed to
// numbers at the transport boundary, so this is always a numeric
// comparison, never a string one.
func AuthorizeMutation(requesterID, ownerID int64) error {
	if requesterID != ownerID {
		return apperror.Forbidden("you do not own this resource")
	}
	return nil
}

// Resolve returns the supplied value when the caller provided one, else
// the current stored value. Used for every optional update field: a nil
// pointer means "leave unchanged".
func Resolve[T any](supplied *T, current T) T {
	if supplied == nil {
		return current
	}
	return *supplied
}

// Verifier checks a plaintext secret against a stored one-way digest.
// Satisfied by auth.PasswordService.
type Verifier interface {
	Verify(digest, plaintext string) error
}

// AuthorizePasswordChange decides whether a password change may proceed.
// A nil newPassword means no change is requested and the check passes.
// Otherwise the old password must be supplied and must verify against the
// stored digest.
func AuthorizePasswordChange(newPassword, oldPassword *string, digest string, v Verifier) error {
	if newPassword == nil {
		return nil
	}
	if oldPassword == nil || strings.TrimSpace(*oldPassword) == "" {
		return apperror.MissingOldPassword()
	}
	if err := v.Verify(digest, *oldPassword); err != nil {
		return apperror.OldPasswordMismatch()
	}
	return nil
}

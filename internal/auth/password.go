// Package auth provides the password digest primitive used by the account
// service: a one-way bcrypt digest with verify.
//
// bcrypt is deliberately slow (the work factor makes brute-force expensive),
// generates a random salt per hash, and embeds salt and cost in the output
// string, so the digest column is self-contained. The stored digest is the
// only password-shaped value that ever reaches the database.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Cost 12 takes roughly 250ms on a
// modern server — tune so login stays tolerable while cracking stays brutal.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// It is a struct (not free functions) so the cost can be injected in tests:
// cost 4 makes each hash take microseconds instead of ~250ms without
// changing the logic under test.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom (low)
// cost. Do NOT use in production — bcrypt's minimum cost is far too weak.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash digests the given plaintext password with bcrypt. The output is a
// self-contained string like:
//
//	$2a$12$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy
//
// Store it directly; Verify knows how to decode it.
//
// Returns an error if the plaintext exceeds 72 bytes — bcrypt silently
// truncates beyond that, so we reject instead of surprising callers.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks whether a plaintext password matches a stored bcrypt
// digest. Returns nil on match. bcrypt compares in constant time, so the
// check is safe against timing attacks.
func (p *PasswordService) Verify(digest, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password digest: %w", err)
	}
	return nil
}

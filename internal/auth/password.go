// Package auth holds the credential and token primitives: bcrypt password
// hashing and JWT issuance/validation. Neither touches storage.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor for new hashes. Cost 10 keeps a
// single hash well under typical request latency while staying expensive
// enough to resist offline brute force.
const defaultCost = 10

// PasswordService provides bcrypt hashing and verification.
//
// The cost is injected rather than hard-coded so tests can run at bcrypt's
// minimum cost instead of paying the full work factor per hash.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom,
// usually minimal, cost. Not for production use.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
//
// The output is self-contained (salt and cost are embedded in the hash
// string), so it can be stored directly and verified later without any
// extra bookkeeping. Hashing is salted, so two identical passwords produce
// different hashes.
//
// Plaintexts longer than 72 bytes are rejected: bcrypt would silently
// truncate them.
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

// Verify checks whether a plaintext password matches a stored bcrypt hash.
// Returns nil on a match. The comparison runs in constant time, so response
// timing reveals nothing about how close a guess was.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}

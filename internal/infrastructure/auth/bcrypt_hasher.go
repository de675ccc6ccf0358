// Package auth provides the password hasher and token issuer used by the
// authentication service.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the work factor the platform has always hashed with.
const DefaultCost = 10

// BcryptHasher hashes passwords with bcrypt. The salt is generated per call
// and embedded in the output, so Verify needs nothing but the hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Values outside
// bcrypt's accepted range fall back to DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares a plaintext password with a bcrypt hash.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

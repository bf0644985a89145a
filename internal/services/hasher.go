package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptInputLimit is the number of input bytes bcrypt takes into account
const bcryptInputLimit = 72

// Hasher produces salted one-way hashes of normalized emails
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// BcryptHasher hashes with bcrypt; every Hash call draws a fresh salt.
// Inputs longer than 72 bytes are truncated, so hashes stay compatible with
// registries written by bcrypt implementations that truncate silently.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given work factor
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash email: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether hash was produced from plain. Malformed hashes never match.
func (h *BcryptHasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(plain)) == nil
}

func bcryptInput(plain string) []byte {
	b := []byte(plain)
	if len(b) > bcryptInputLimit {
		return b[:bcryptInputLimit]
	}
	return b
}

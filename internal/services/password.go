package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidDigestFormat = errors.New("invalid password digest format")

// PasswordHasher wraps bcrypt. Every Hash call draws a fresh salt, so hashing
// the same password twice yields different digests.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A mismatch is (false, nil);
// only a digest bcrypt cannot parse is an error.
func (h *PasswordHasher) Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrInvalidDigestFormat
	}
}

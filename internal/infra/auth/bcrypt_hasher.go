// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	domainerrors "veluna/internal/domain/errors"
	"veluna/internal/domain/service"
	"veluna/internal/errors"
)

// bcryptHasher implements PasswordHasher using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with bcrypt's default cost.
func NewBcryptHasher() service.PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

// NewBcryptHasherWithCost creates a hasher with a custom cost.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

// Hash generates a salted bcrypt hash.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", domainerrors.ErrValidationFailed.WithDetails("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(hash), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package utils

import (
	"fmt"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a table or admin password with bcrypt.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is empty", apperrors.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt refuses anything over 72 bytes
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches the stored hash.
// An empty hash never matches.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

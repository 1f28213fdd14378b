package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateLoginCode returns a uniformly random numeric code of the given length, leading zeros kept.
func GenerateLoginCode(digits int) (string, error) {
	if digits <= 0 || digits > 18 {
		return "", fmt.Errorf("digits must be within 1..18")
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to read random code: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}

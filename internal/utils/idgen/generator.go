package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSecureID returns an identifier of the form "<prefix>_<random>",
// where the random part is drawn from crypto/rand over [a-zA-Z0-9].
func GenerateSecureID(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("idgen: length must be positive, got %d", length)
	}

	buf := make([]byte, length)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("idgen: read random: %w", err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}

	return fmt.Sprintf("%s_%s", prefix, string(buf)), nil
}

// MustGenerateSecureID is GenerateSecureID that panics on failure. Random
// source exhaustion is not recoverable at call sites.
func MustGenerateSecureID(prefix string, length int) string {
	id, err := GenerateSecureID(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}

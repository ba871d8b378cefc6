package scram

import (
	"crypto/rand"
	"fmt"
)

const nonceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateNonce returns a fresh printable random string of n characters
// drawn from [0-9A-Za-z], satisfying RFC 5802's printable/no-comma
// requirement for client and server nonces. n should be at least 16.
func GenerateNonce(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("scram: nonce length must be positive, got %d", n)
	}
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("scram: generating nonce: %w", err)
	}
	out := make([]byte, n)
	for i, b := range raw {
		out[i] = nonceAlphabet[int(b)%len(nonceAlphabet)]
	}
	return string(out), nil
}

// Package random draws unpredictable strings from crypto/rand.
package random

import (
	"crypto/rand"
	"fmt"
)

// Alphabets accepted by Draw.
const (
	UpperAlphaNumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	AlphaNumeric      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Draw returns n symbols of alphabet, each picked uniformly.
// Bytes that would bias the modulo are thrown away and redrawn.
func Draw(n int, alphabet string) (string, error) {
	if n <= 0 {
		return "", nil
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", fmt.Errorf("random: alphabet size %d out of range", len(alphabet))
	}

	limit := 256 - 256%len(alphabet)
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("random: read: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

// UpperAlphaNum is Draw over UpperAlphaNumeric. It panics if crypto/rand fails.
func UpperAlphaNum(n int) string {
	s, err := Draw(n, UpperAlphaNumeric)
	if err != nil {
		panic(err)
	}
	return s
}

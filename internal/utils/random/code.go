package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeAlphabet excludes visually ambiguous characters (0/O, 1/I).
// 32 symbols at 8 characters give 32^8 ≈ 1.1e12 values, so random
// collisions are overwhelmingly unlikely; the store still enforces
// uniqueness and callers retry on conflict.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Code generates a cryptographically random code of length n drawn from
// codeAlphabet.
func Code(n int) (string, error) {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		buf[i] = codeAlphabet[idx.Int64()]
	}
	return string(buf), nil
}

package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandomSource yields uniform random integers for the prize resolver. The
// production implementation is a CSPRNG; tests inject a seeded source so
// draws are reproducible.
type RandomSource interface {
	// Int64n returns a uniform random value in [0, n). n must be positive.
	Int64n(n int64) (int64, error)
}

// CryptoSource draws from crypto/rand. Every resolution consumes a fresh
// value; nothing is cached or replayed.
type CryptoSource struct{}

var _ RandomSource = CryptoSource{}

// Int64n returns a uniform random value in [0, n) from the system CSPRNG.
func (CryptoSource) Int64n(n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("random bound must be positive, got %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0, fmt.Errorf("failed to draw random value: %w", err)
	}
	return v.Int64(), nil
}

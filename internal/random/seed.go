// Package random picks seeds for the dice source.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed reads eight bytes from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read dice seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Seed returns configured when it is non-zero, otherwise a fresh seed.
func Seed(configured uint64) (uint64, error) {
	if configured != 0 {
		return configured, nil
	}
	return NewSeed()
}

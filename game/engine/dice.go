package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is the randomness behind die rolls and layout picks.
// *rand.Rand satisfies it; tests supply scripted sources.
type Source interface {
	// Intn returns a value in [0, n)
	Intn(n int) int
}

// NewSource returns a deterministic source for the given seed
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a seed using crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// RollDie draws a uniform value in 1..DieSides
func RollDie(src Source) int {
	return src.Intn(DieSides) + 1
}

// internal/game/rng.go
//
// Randomness seam for the engine. Every probability draw — outcome selection,
// CPU decisions, error/steal/pickoff/double-play rolls — flows through one
// RandomSource attached to the game record, so tests can substitute
// deterministic sequences and replay a game exactly.

package game

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource yields uniform draws in [0, 1).
type RandomSource interface {
	Float64() float64
}

// cryptoRNG backs the default source with crypto/rand entropy.
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

// DefaultRNG returns the production random source.
func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG is a reproducible source for batch simulation and tests.
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a deterministic source for the given seed.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// Package rng provides the random source used for health and mission rolls.
// The simulation never draws from an ambient global generator; every roll goes
// through a Source so turn outcomes are reproducible.
package rng

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source supplies random numbers to the simulation.
type Source interface {
	// Float returns a uniform float64 in [0, 1).
	Float() float64
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
}

type seeded struct {
	r *rand.Rand
}

// NewSeeded returns a deterministic Source derived from seed.
func NewSeeded(seed int64) Source {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return &seeded{r: rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))}
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

func (s *seeded) Float() float64 { return s.r.Float64() }
func (s *seeded) Intn(n int) int { return s.r.IntN(n) }

// Sequence is a Source that replays a fixed list of floats, wrapping at the
// end. Intn scales the next float into [0, n). Intended for tests.
type Sequence struct {
	Values []float64
	next   int
}

// NewSequence returns a Sequence over the given values.
func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Sequence{Values: values}
}

func (s *Sequence) Float() float64 {
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

func (s *Sequence) Intn(n int) int {
	v := int(s.Float() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironhollow/stronghold/internal/rng"
)

func TestSeededIsDeterministic(t *testing.T) {
	a := rng.NewSeeded(42)
	b := rng.NewSeeded(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float(), b.Float())
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}

func TestSeededDiffersAcrossSeeds(t *testing.T) {
	a := rng.NewSeeded(1)
	b := rng.NewSeeded(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Float() != b.Float() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestSequenceReplaysAndWraps(t *testing.T) {
	s := rng.NewSequence(0.1, 0.5, 0.9)

	assert.Equal(t, 0.1, s.Float())
	assert.Equal(t, 0.5, s.Float())
	assert.Equal(t, 0.9, s.Float())
	assert.Equal(t, 0.1, s.Float())
}

func TestSequenceIntnStaysInRange(t *testing.T) {
	s := rng.NewSequence(0.0, 0.999, 0.5)

	assert.Equal(t, 0, s.Intn(100))
	assert.Equal(t, 99, s.Intn(100))
	assert.Equal(t, 50, s.Intn(100))
}

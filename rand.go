package samp

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"

	"golang.org/x/exp/rand"
)

// Source supplies the uniform draws a Sampler needs.  *rand.Rand from
// golang.org/x/exp/rand and from math/rand both implement it.
type Source interface {
	// Int63n returns a uniformly distributed integer in [0,n).  n > 0.
	Int63n(n int64) int64
	// Float64 returns a uniformly distributed number in [0.0,1.0).
	Float64() float64
}

// NewSource returns a deterministic PCG generator seeded with seed.
// The generated sequence is fixed by the seed alone, so it does not
// change across platforms or Go releases.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewEntropySource returns a PCG generator seeded from crypto/rand, or
// from the clock if the entropy pool cannot be read.
func NewEntropySource() Source {
	return NewSource(entropySeed())
}

func entropySeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// internal/common/random/random.go
// Seedable, goroutine-safe random source for scoring noise and the
// confidence terms of local analysis

package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniform floats in [0, 1)
type Source interface {
	Float64() float64
}

// Locked wraps math/rand behind a mutex
type Locked struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a source seeded with seed, or with the clock when seed is 0
func New(seed int64) *Locked {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Locked{rng: rand.New(rand.NewSource(seed))}
}

func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// Between returns a value in [min, min+span)
func Between(src Source, min, span float64) float64 {
	return src.Float64()*span + min
}

// Fixed always returns the same value. Useful for deterministic tests.
type Fixed float64

func (f Fixed) Float64() float64 {
	return float64(f)
}

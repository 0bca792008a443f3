package synth

import (
	"math/rand"
	"sync"
	"time"
)

// Source is a shared, lockable random source. All randomness that feeds
// business logic (synthetic prices, fundamentals, quote jitter) draws from
// one Source so tests can inject a fixed seed and assert exact outputs.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource creates a random source. Seed 0 means time-based seeding.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform draw in [0,1)
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// NormFloat64 returns a standard normal draw
func (s *Source) NormFloat64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.NormFloat64()
}

// Uniform returns a uniform draw in [min,max)
func (s *Source) Uniform(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Float64()*(max-min)
}

// Int64Between returns a uniform integer draw in [min,max]
func (s *Source) Int64Between(min, max int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Int63n(max-min+1)
}

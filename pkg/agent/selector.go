package agent

import (
	"math/rand"
	"sync"
)

// Selector draws the agent identities for one layer. Selection is
// randomized by contract; the seed is injectable so tests can pin the draw.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a Selector seeded with the given value.
func NewSelector(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// Sample returns min(k, len(available)) backend identifiers drawn uniformly
// at random without replacement. The result order is the draw order, not the
// order of the available slice.
func (s *Selector) Sample(available []string, k int) []string {
	n := len(available)
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}

	pool := make([]string, n)
	copy(pool, available)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Partial Fisher-Yates: the first k slots become the draw.
	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:k]
}

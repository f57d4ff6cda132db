// Package barrier implements a reusable cyclic barrier for lockstepping
// a fixed set of goroutines between phases. sync.WaitGroup is single-use
// and errgroup/semaphore solve different problems, so this is built
// directly on a mutex and condition variable.
package barrier

import "sync"

// Barrier blocks n goroutines until all of them have arrived, then
// releases all of them together, and is immediately reusable for the
// next round.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	n          int
	waiting    int
	generation uint64
}

// New builds a barrier for exactly n parties.
func New(n int) *Barrier {
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until n goroutines have called Wait for the current
// generation, then releases them all at once.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.waiting++
	if b.waiting == b.n {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
}

package util

import "sync"

// Barrier is a reusable rendezvous point for a fixed number of goroutines.
// No goroutine returns from Wait until every party of the current round has arrived.
type Barrier struct {
	cond       *sync.Cond
	parties    int
	waiting    int
	generation uint64 // Incremented every time a round completes
	broken     bool
}

func NewBarrier(parties int) *Barrier {
	if parties < 1 {
		panic("barrier needs at least one party")
	}
	return &Barrier{
		cond:    sync.NewCond(new(sync.Mutex)),
		parties: parties,
	}
}

// Wait blocks until all parties have called Wait for this round.
// Returns false if the barrier was broken before the round completed.
func (b *Barrier) Wait() bool {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	if b.broken {
		return false
	}
	generation := b.generation
	b.waiting++
	if b.waiting == b.parties {
		// Last one in releases the round
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return true
	}
	for generation == b.generation && !b.broken {
		b.cond.Wait()
	}
	return generation != b.generation
}

// Break releases every waiting goroutine and makes all later calls to Wait return false.
func (b *Barrier) Break() {
	b.cond.L.Lock()
	b.broken = true
	b.cond.Broadcast()
	b.cond.L.Unlock()
}

// Broken reports whether Break has been called.
func (b *Barrier) Broken() bool {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	return b.broken
}

package isl

import (
	"fmt"
	"sync"

	"uk.ac.bris.cs/isl/util"
)

type workerParams[T any] struct {
	rank       int
	block      Block
	steps      int
	grid       *Grid[T]      // Shared arena, read by everyone, written by owners only
	units      []unit[T]     // Cells of the block allocated to this worker
	degree     int           // Neighbours per cell
	transition Transition[T] // Cell update rule
	start      *util.Barrier // Every worker ready to compute
	sync       *util.Barrier // Every worker done computing, commits may start
	write      *util.Barrier // Every worker done committing, the grid is consistent
	sampler    *sampler[T]   // Only set for rank 0
	abort      func(error)   // Breaks every barrier and records the first failure
	done       *sync.WaitGroup
}

// sampler takes a snapshot of the whole grid every `every` steps.
type sampler[T any] struct {
	grid    *Grid[T]
	sink    Sink[T]
	mutex   sync.Mutex // Guards the sink
	every   int
	limit   int // Maximum number of snapshots
	counter int
	emitted int
}

func newSampler[T any](grid *Grid[T], sink Sink[T], steps, outputSteps int) *sampler[T] {
	return &sampler[T]{
		grid:  grid,
		sink:  sink,
		every: steps / outputSteps,
		limit: outputSteps,
	}
}

// Count a finished step and hand a snapshot to the sink when the interval is reached
// Must only be called once every worker has committed the step
func (s *sampler[T]) sample() error {
	s.counter++
	if s.counter != s.every {
		return nil
	}
	s.counter = 0
	if s.emitted == s.limit {
		return nil
	}
	snapshot := s.grid.Snapshot()
	s.mutex.Lock()
	defer s.mutex.Unlock()
	index := s.emitted
	s.emitted++
	return s.sink.Accept(index, snapshot)
}

// distributor starts one worker per block and waits for all of them to finish.
// Returns the first failure of any worker.
func distributor[T any](p Params[T], grid *Grid[T], blocks []Block, topology Topology, sink Sink[T]) error {
	runners := len(blocks)
	start := util.NewBarrier(runners)
	sync_barrier := util.NewBarrier(runners)
	write := util.NewBarrier(runners)

	var first error
	var once sync.Once
	abort := func(err error) {
		once.Do(func() { first = err })
		start.Break()
		sync_barrier.Break()
		write.Break()
	}

	var done sync.WaitGroup
	for rank, block := range blocks {
		wp := workerParams[T]{
			rank:       rank,
			block:      block,
			steps:      p.Steps,
			grid:       grid,
			units:      grid.units(block, topology),
			degree:     topology.Degree(),
			transition: p.Transition,
			start:      start,
			sync:       sync_barrier,
			write:      write,
			abort:      abort,
			done:       &done,
		}
		if rank == 0 {
			wp.sampler = newSampler(grid, sink, p.Steps, p.OutputSteps)
		}
		done.Add(1)
		go worker(wp)
	}
	done.Wait()
	return first
}

func worker[T any](wp workerParams[T]) {
	defer wp.done.Done()
	// A fault in any worker ends the whole run
	defer func() {
		if r := recover(); r != nil {
			wp.abort(fmt.Errorf("%w: runner %d %v: %v", ErrWorkerFault, wp.rank, wp.block, r))
		}
	}()

	scratch := make([]Neighbour[T], wp.degree)
	for step := 0; step != wp.steps; step++ {
		if !wp.start.Wait() {
			return
		}
		for i := range wp.units {
			wp.units[i].compute(wp.grid, wp.transition, scratch)
		}
		if !wp.sync.Wait() {
			return
		}
		for i := range wp.units {
			wp.units[i].commit(wp.grid)
		}
		if !wp.write.Wait() {
			return
		}
		if wp.sampler != nil {
			if err := wp.sampler.sample(); err != nil {
				wp.abort(fmt.Errorf("step %d: %w", step, err))
				return
			}
		}
	}
}

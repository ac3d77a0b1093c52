// Package isl runs iterative stencil loops: every cell of a two dimensional grid is
// repeatedly replaced by a function of its own value and the values of a fixed set of
// neighbours. The grid is split into one block per runner; runners advance in lock-step
// and a consistent snapshot of the grid is taken at a fixed cadence.
package isl

import (
	"errors"
	"fmt"
	"io"
	"log"
)

var discard = log.New(io.Discard, "", 0)

func (p *Params[T]) validate() error {
	switch {
	case p.Transition == nil:
		return fmt.Errorf("%w: no transition", ErrInvalidParams)
	case p.Init == nil:
		return fmt.Errorf("%w: no init", ErrInvalidParams)
	case p.Steps < 1:
		return fmt.Errorf("%w: steps must be at least 1, got %d", ErrInvalidParams, p.Steps)
	case p.OutputSteps < 1 || p.OutputSteps > p.Steps:
		return fmt.Errorf("%w: output steps must be within [1, %d], got %d",
			ErrInvalidParams, p.Steps, p.OutputSteps)
	}
	return nil
}

// Run executes the stencil loop described by p and returns the collected output.
// Invalid parameters and grids that cannot be partitioned are reported before any
// runner starts. A panic inside a runner or a failing sink aborts the run.
func Run[T any](p Params[T]) (Result[T], error) {
	result := Result[T]{Type: p.Output}
	if err := p.validate(); err != nil {
		return result, err
	}
	blocks, err := DivideToBlocks(p.Width, p.Height, p.Runners)
	if err != nil {
		return result, err
	}
	logger := p.Logger
	if logger == nil {
		logger = discard
	}

	grid := NewGrid(p.Width, p.Height, p.Init)
	topology := BuildTopology(p.Width, p.Height, p.Neighbours)

	var raw *rawSink[T]
	var formatted *stringSink[T]
	var sink Sink[T]
	switch p.Output {
	case RawData:
		raw = &rawSink[T]{snapshots: make([]Snapshot[T], 0, p.OutputSteps)}
		sink = raw
	case String:
		formatted = &stringSink[T]{formatted: make([]string, 0, p.OutputSteps)}
		sink = formatted
	default:
		if sink, err = NewFileSink[T](p.Output, p.OutputPath, logger); err != nil {
			return result, err
		}
	}
	if p.Sink != nil {
		sink = Tee(sink, p.Sink)
	}

	logger.Printf("Run: %dx%dx%d-%d (%d outputs, %v)", p.Width, p.Height, p.Steps, p.Runners, p.OutputSteps, p.Output)
	err = distributor(p, grid, blocks, topology, sink)
	if closeErr := sink.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if err != nil {
		logger.Printf("Run aborted: %v", err)
		return result, err
	}

	if raw != nil {
		result.Raw = raw.snapshots
	}
	if formatted != nil {
		result.Strings = formatted.formatted
	}
	logger.Printf("Run complete: %dx%dx%d-%d", p.Width, p.Height, p.Steps, p.Runners)
	return result, nil
}

package isl

import "log"

// Offset is the position of a neighbour relative to the cell being updated.
type Offset struct {
	DX, DY int
}

// Neighbour is the value of one neighbour handed to a transition.
// Present is false when the offset falls outside the grid.
type Neighbour[T any] struct {
	Value   T
	Present bool
}

// Transition computes the next value of a cell from its own value and its neighbours,
// given in the same order as Params.Neighbours.
// The neighbours slice is reused between calls and must not be retained.
type Transition[T any] interface {
	Next(own T, neighbours []Neighbour[T]) T
}

// TransitionFunc adapts a plain function to Transition.
type TransitionFunc[T any] func(own T, neighbours []Neighbour[T]) T

func (f TransitionFunc[T]) Next(own T, neighbours []Neighbour[T]) T {
	return f(own, neighbours)
}

// Init provides the initial value of every cell.
type Init[T any] interface {
	At(x, y int) T
}

// InitFunc adapts a plain function to Init.
type InitFunc[T any] func(x, y int) T

func (f InitFunc[T]) At(x, y int) T {
	return f(x, y)
}

// Params provides the details of how to run an iterative stencil loop.
type Params[T any] struct {
	Width       int
	Height      int
	Transition  Transition[T]
	Runners     int // Number of worker goroutines, must divide Width*Height
	Init        Init[T]
	Steps       int
	OutputSteps int // Number of snapshots taken over the run
	Neighbours  []Offset
	Output      OutputType
	OutputPath  string      // Directory for file outputs
	Sink        Sink[T]     // Optional, receives every snapshot in addition to Output
	Logger      *log.Logger // Optional, nil discards
}

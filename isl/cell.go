package isl

import "sync"

// Value is the shared current-value slot of one grid cell.
type Value[T any] struct {
	mutex sync.RWMutex
	value T
}

func (v *Value[T]) Load() T {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	return v.value
}

func (v *Value[T]) Store(value T) {
	v.mutex.Lock()
	v.value = value
	v.mutex.Unlock()
}

// unit updates a single cell.
// next is private to the worker owning the cell and is only published by commit.
type unit[T any] struct {
	index      int   // Arena index of the cell
	neighbours []int // Arena indices of neighbours, Absent outside the grid
	next       T
}

// Compute the next value of the cell without touching shared state
// scratch must hold at least len(u.neighbours) entries
func (u *unit[T]) compute(grid *Grid[T], transition Transition[T], scratch []Neighbour[T]) {
	scratch = scratch[:len(u.neighbours)]
	for i, neighbour := range u.neighbours {
		if neighbour == Absent {
			scratch[i] = Neighbour[T]{}
		} else {
			scratch[i] = Neighbour[T]{Value: grid.values[neighbour].Load(), Present: true}
		}
	}
	u.next = transition.Next(grid.values[u.index].Load(), scratch)
}

// Publish the computed value
func (u *unit[T]) commit(grid *Grid[T]) {
	grid.values[u.index].Store(u.next)
}

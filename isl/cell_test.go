package isl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"uk.ac.bris.cs/isl/util"
)

func TestComputeLeavesGridUntouched(t *testing.T) {
	grid := NewGrid[int](3, 1, InitFunc[int](func(x, _ int) int { return x + 1 }))
	topology := BuildTopology(3, 1, []Offset{{-1, 0}, {1, 0}})
	units := grid.units(Block{End: cellAt(3, 1)}, topology)
	sum := TransitionFunc[int](func(own int, nb []Neighbour[int]) int {
		for _, n := range nb {
			if n.Present {
				own += n.Value
			}
		}
		return own
	})

	scratch := make([]Neighbour[int], topology.Degree())
	for i := range units {
		units[i].compute(grid, sum, scratch)
	}
	assert.Equal(t, Snapshot[int]{{1, 2, 3}}, grid.Snapshot())

	for i := range units {
		units[i].commit(grid)
	}
	assert.Equal(t, Snapshot[int]{{3, 6, 5}}, grid.Snapshot())
}

func TestAbsentNeighbourIsZero(t *testing.T) {
	grid := NewGrid[string](1, 1, InitFunc[string](func(int, int) string { return "own" }))
	topology := BuildTopology(1, 1, []Offset{{1, 0}})
	units := grid.units(Block{End: cellAt(1, 1)}, topology)
	var seen []Neighbour[string]
	record := TransitionFunc[string](func(own string, nb []Neighbour[string]) string {
		seen = append(seen, nb...)
		return own
	})
	units[0].compute(grid, record, make([]Neighbour[string], 1))
	assert.Equal(t, []Neighbour[string]{{}}, seen)
}

func TestValueLoadStore(t *testing.T) {
	grid := NewGrid[float32](2, 2, InitFunc[float32](func(x, y int) float32 { return float32(x*10 + y) }))
	assert.Equal(t, float32(11), grid.At(1, 1).Load())
	grid.At(1, 1).Store(-1)
	assert.Equal(t, Snapshot[float32]{{0, 10}, {1, -1}}, grid.Snapshot())
	assert.Equal(t, 2, grid.Width())
	assert.Equal(t, 2, grid.Height())
}

func cellAt(x, y int) util.Cell {
	return util.Cell{X: x, Y: y}
}

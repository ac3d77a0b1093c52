package isl

import "uk.ac.bris.cs/isl/util"

// Snapshot is a copy of every cell value of a grid, indexed [y][x].
type Snapshot[T any] [][]T

// Make snapshot rows on a single backing array
func makeSnapshot[T any](width, height int) Snapshot[T] {
	data := make([]T, width*height)
	snapshot := make(Snapshot[T], height)
	for y := 0; y != height; y++ {
		snapshot[y] = data[0:width:width]
		data = data[width:]
	}
	return snapshot
}

// Grid is the arena of shared cell slots, stored row-major.
type Grid[T any] struct {
	width  int
	height int
	values []Value[T]
}

// NewGrid makes a grid and loads every cell from init.
func NewGrid[T any](width, height int, init Init[T]) *Grid[T] {
	grid := &Grid[T]{
		width:  width,
		height: height,
		values: make([]Value[T], width*height),
	}
	for y := 0; y != height; y++ {
		for x := 0; x != width; x++ {
			grid.values[y*width+x].value = init.At(x, y)
		}
	}
	return grid
}

func (grid *Grid[T]) Width() int  { return grid.width }
func (grid *Grid[T]) Height() int { return grid.height }

func (grid *Grid[T]) index(cell util.Cell) int {
	return cell.Y*grid.width + cell.X
}

// At returns the shared slot of a cell.
func (grid *Grid[T]) At(x, y int) *Value[T] {
	return &grid.values[grid.index(util.Cell{X: x, Y: y})]
}

// Snapshot copies the current value of every cell.
func (grid *Grid[T]) Snapshot() Snapshot[T] {
	snapshot := makeSnapshot[T](grid.width, grid.height)
	for y := 0; y != grid.height; y++ {
		row := grid.values[y*grid.width : (y+1)*grid.width]
		for x := range row {
			snapshot[y][x] = row[x].Load()
		}
	}
	return snapshot
}

// Bind the cells of a block to their neighbours
func (grid *Grid[T]) units(block Block, topology Topology) []unit[T] {
	units := make([]unit[T], 0, block.Size())
	for y := block.Start.Y; y != block.End.Y; y++ {
		for x := block.Start.X; x != block.End.X; x++ {
			index := grid.index(util.Cell{X: x, Y: y})
			units = append(units, unit[T]{index: index, neighbours: topology.Of(index)})
		}
	}
	return units
}

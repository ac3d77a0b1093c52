package isl

// Absent marks a neighbour offset that falls outside the grid.
const Absent = -1

// Topology holds the arena index of every neighbour of every cell.
// It is built once before a run and never modified afterwards.
type Topology struct {
	degree  int
	indices []int // degree entries per cell, row-major
}

// BuildTopology resolves offsets for every cell of a width x height grid.
func BuildTopology(width, height int, offsets []Offset) Topology {
	topology := Topology{
		degree:  len(offsets),
		indices: make([]int, width*height*len(offsets)),
	}
	view := topology.indices
	for y := 0; y != height; y++ {
		for x := 0; x != width; x++ {
			for _, offset := range offsets {
				nx, ny := x+offset.DX, y+offset.DY
				if nx < 0 || ny < 0 || nx >= width || ny >= height {
					view[0] = Absent
				} else {
					view[0] = ny*width + nx
				}
				view = view[1:]
			}
		}
	}
	return topology
}

// Degree is the number of neighbours of every cell.
func (t Topology) Degree() int {
	return t.degree
}

// Of returns the neighbour indices of the cell at the given arena index.
func (t Topology) Of(index int) []int {
	return t.indices[index*t.degree : (index+1)*t.degree : (index+1)*t.degree]
}

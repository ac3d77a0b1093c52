package isl

import (
	"fmt"
	"math"

	"uk.ac.bris.cs/isl/util"
)

type Block struct {
	Start util.Cell // Top-left corner of block
	End   util.Cell // Bottom-right corner of block (not inclusive)
}

func (b Block) Width() int  { return b.End.X - b.Start.X }
func (b Block) Height() int { return b.End.Y - b.Start.Y }
func (b Block) Size() int   { return b.Width() * b.Height() }

func (b Block) String() string {
	return fmt.Sprintf("%v-%v", b.Start, b.End)
}

func (b Block) Contains(cell util.Cell) bool {
	return b.Start.X <= cell.X && cell.X < b.End.X &&
		b.Start.Y <= cell.Y && cell.Y < b.End.Y
}

// Largest number of block rows not above the square root of runners that divides runners
func blockRows(runners int) int {
	rows := int(math.Sqrt(float64(runners)))
	for runners%rows != 0 {
		rows--
	}
	return rows
}

// DivideToBlocks splits a width x height grid into one block per runner.
// Blocks are returned in row-major order; block i is evaluated by runner i.
func DivideToBlocks(width, height, runners int) ([]Block, error) {
	fail := func(reason string) ([]Block, error) {
		return nil, &PartitionError{Width: width, Height: height, Runners: runners, Reason: reason}
	}
	if width < 1 || height < 1 {
		return fail("grid must not be empty")
	}
	if runners < 1 {
		return fail("at least one runner is required")
	}
	if (width*height)%runners != 0 {
		return fail("cell count is not divisible by runners")
	}
	// Find the most square arrangement
	rows := blockRows(runners)
	cols := runners / rows
	if height%rows != 0 {
		return fail("height is not divisible by block rows")
	}
	if width%cols != 0 {
		return fail("width is not divisible by block columns")
	}
	part_width := width / cols
	part_height := height / rows
	blocks := make([]Block, rows*cols)
	for y := 0; y != rows; y++ {
		for x := 0; x != cols; x++ {
			blocks[y*cols+x] = Block{
				Start: util.Cell{X: x * part_width, Y: y * part_height},
				End:   util.Cell{X: (x + 1) * part_width, Y: (y + 1) * part_height},
			}
		}
	}
	return blocks, nil
}

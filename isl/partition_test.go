package isl

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uk.ac.bris.cs/isl/util"
)

func TestBlockRows(t *testing.T) {
	cases := map[int]int{1: 1, 2: 1, 3: 1, 4: 2, 6: 2, 8: 2, 9: 3, 12: 3, 16: 4, 17: 1, 100: 10}
	for runners, rows := range cases {
		assert.Equal(t, rows, blockRows(runners), "runners=%d", runners)
	}
}

// Every cell of the grid belongs to exactly one block
func TestDivideToBlocksCoversGrid(t *testing.T) {
	grids := []struct{ width, height int }{{12, 12}, {24, 6}, {60, 30}, {600, 300}}
	for _, grid := range grids {
		for runners := 1; runners <= 16; runners++ {
			name := fmt.Sprintf("%dx%d-%d", grid.width, grid.height, runners)
			t.Run(name, func(t *testing.T) {
				blocks, err := DivideToBlocks(grid.width, grid.height, runners)
				if err != nil {
					assert.True(t, errors.Is(err, ErrInvalidPartition))
					return
				}
				require.Len(t, blocks, runners)
				owners := make([][]int, grid.height)
				for y := range owners {
					owners[y] = make([]int, grid.width)
				}
				for _, block := range blocks {
					for y := block.Start.Y; y != block.End.Y; y++ {
						for x := block.Start.X; x != block.End.X; x++ {
							owners[y][x]++
						}
					}
				}
				for y := range owners {
					for x := range owners[y] {
						assert.Equal(t, 1, owners[y][x], "cell %v", util.Cell{X: x, Y: y})
					}
				}
			})
		}
	}
}

func TestDivideToBlocksRowMajor(t *testing.T) {
	blocks, err := DivideToBlocks(6, 4, 6)
	require.NoError(t, err)
	// 6 runners: 2 block rows of 3 blocks, each 2 wide and 2 high
	expected := []Block{
		{Start: util.Cell{X: 0, Y: 0}, End: util.Cell{X: 2, Y: 2}},
		{Start: util.Cell{X: 2, Y: 0}, End: util.Cell{X: 4, Y: 2}},
		{Start: util.Cell{X: 4, Y: 0}, End: util.Cell{X: 6, Y: 2}},
		{Start: util.Cell{X: 0, Y: 2}, End: util.Cell{X: 2, Y: 4}},
		{Start: util.Cell{X: 2, Y: 2}, End: util.Cell{X: 4, Y: 4}},
		{Start: util.Cell{X: 4, Y: 2}, End: util.Cell{X: 6, Y: 4}},
	}
	assert.Equal(t, expected, blocks)
	for _, block := range blocks {
		assert.Equal(t, 4, block.Size())
		assert.True(t, block.Contains(block.Start))
		assert.False(t, block.Contains(block.End))
	}
}

func TestDivideToBlocksErrors(t *testing.T) {
	cases := []struct {
		width, height, runners int
	}{
		{100, 100, 17}, // cell count not divisible
		{100, 100, 0},  // no runners
		{0, 10, 1},     // empty grid
		{4, 1, 4},      // 4 runners want 2 block rows, grid has 1 row
	}
	for _, c := range cases {
		_, err := DivideToBlocks(c.width, c.height, c.runners)
		require.Error(t, err, "%dx%d-%d", c.width, c.height, c.runners)
		assert.True(t, errors.Is(err, ErrInvalidPartition))
		var partitionErr *PartitionError
		require.True(t, errors.As(err, &partitionErr))
		assert.Equal(t, c.runners, partitionErr.Runners)
	}
	// 2 block rows of 3 blocks
	_, err := DivideToBlocks(9, 4, 6)
	assert.NoError(t, err)
	_, err = DivideToBlocks(10, 3, 6)
	assert.True(t, errors.Is(err, ErrInvalidPartition), "height 3 cannot hold 2 block rows")
}

func TestBlockString(t *testing.T) {
	block := Block{Start: util.Cell{X: 0, Y: 2}, End: util.Cell{X: 4, Y: 3}}
	assert.Equal(t, "(0, 2)-(4, 3)", block.String())
}

package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"uk.ac.bris.cs/isl/isl"
)

func TestShade(t *testing.T) {
	assert.Equal(t, ' ', shade(0))
	assert.Equal(t, '@', shade(255))
	assert.Equal(t, '+', shade(128))
}

func TestLayout(t *testing.T) {
	v := NewViewer[int](4, 2, 255)
	greys := []byte{0, 255, 0, 255, 255, 0, 255, 0}
	assert.Equal(t, [][]rune{[]rune(" @ @"), []rune("@ @ ")}, v.layout(greys, 80, 24))
	// Every other column when the terminal is too narrow
	assert.Equal(t, [][]rune{[]rune("  ")}, v.layout(greys, 2, 1))
	assert.Nil(t, v.layout(greys, 80, 0))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "ripple", status("ripple", 10))
	truncated := status("ripple #12  q: quit", 8)
	assert.LessOrEqual(t, len([]rune(truncated)), 8)
	assert.Equal(t, '~', []rune(truncated)[len([]rune(truncated))-1])
}

func TestAcceptAndClose(t *testing.T) {
	v := NewViewer[float64](2, 1, 2)
	require.NoError(t, v.Accept(3, isl.Snapshot[float64]{{1, 2}}))
	require.NoError(t, v.Close())
	f := <-v.frames
	assert.Equal(t, 3, f.index)
	assert.Equal(t, []byte{127, 255}, f.greys)
}

func TestAcceptAfterQuit(t *testing.T) {
	v := NewViewer[int](1, 1, 1)
	v.stop()
	for i := 0; i != 10; i++ {
		require.NoError(t, v.Accept(i, isl.Snapshot[int]{{1}}))
	}
}

package main

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"uk.ac.bris.cs/isl/isl"
)

func TestWave(t *testing.T) {
	assert.Equal(t, 7, wave(3, []isl.Neighbour[int]{{Value: 7, Present: true}}))
	assert.Equal(t, 0, wave(3, []isl.Neighbour[int]{{Value: 0, Present: true}}))
	assert.Equal(t, 5, wave(8, []isl.Neighbour[int]{{}}))
	assert.Equal(t, 0, wave(2, []isl.Neighbour[int]{{}}))
}

func TestTwoWaves(t *testing.T) {
	own := waves{Horizontal: 10, Vertical: 1}
	next := twoWaves(own, []isl.Neighbour[waves]{{}, {Value: waves{Horizontal: 99, Vertical: 42}, Present: true}})
	assert.Equal(t, waves{Horizontal: 7, Vertical: 42}, next)
	assert.Equal(t, []string{"horizontal", "vertical"}, isl.FieldNames[waves]())
}

func TestSineEdge(t *testing.T) {
	assert.Equal(t, 250, sineEdge(0, 10))
	assert.Equal(t, 0, sineEdge(10, 10))
	assert.Equal(t, 0, sineEdge(3, 0))
	assert.Greater(t, sineEdge(2, 10), sineEdge(5, 10))
}

func TestRipple(t *testing.T) {
	neighbours := []isl.Neighbour[float64]{{Value: 100, Present: true}, {}, {Value: 60, Present: true}, {}}
	assert.Equal(t, 5.0, ripple(100, neighbours))
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{"-t", "4", "-w", "20", "-h", "10", "-scenario", "ripple", "-output", "vtk", "-noVis"})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.threads)
	assert.Equal(t, 20, cfg.width)
	assert.Equal(t, 10, cfg.height)
	assert.Equal(t, "ripple", cfg.scenario)
	assert.Equal(t, isl.VTK, cfg.output)
	assert.Equal(t, "none", cfg.view)

	_, err = parseFlags([]string{"-scenario", "life"})
	assert.Error(t, err)
	_, err = parseFlags([]string{"-view", "opengl"})
	assert.Error(t, err)
	_, err = parseFlags([]string{"-output", "png"})
	assert.True(t, errors.Is(err, isl.ErrInvalidParams))
}

func TestScenarios(t *testing.T) {
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)
	for _, name := range scenarioNames() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := config{
				threads:    4,
				width:      20,
				height:     20,
				steps:      10,
				outputs:    5,
				scenario:   name,
				output:     isl.CSV,
				outputPath: dir,
				view:       "none",
			}
			require.NoError(t, scenarios[name](cfg))
			assert.FileExists(t, filepath.Join(dir, "file4"))
		})
	}
}

func TestScenarioRejectsPartition(t *testing.T) {
	cfg := config{threads: 7, width: 20, height: 20, steps: 1, outputs: 1, scenario: "wave", view: "sdl"}
	err := runWave(cfg)
	assert.True(t, errors.Is(err, isl.ErrInvalidPartition))
}

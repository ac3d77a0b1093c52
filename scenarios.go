package main

import (
	"math"

	"uk.ac.bris.cs/isl/isl"
)

var (
	left       = []isl.Offset{{DX: -1, DY: 0}}
	vonNeumann = []isl.Offset{{DX: 1, DY: 0}, {DX: -1, DY: 0}, {DX: 0, DY: 1}, {DX: 0, DY: -1}}
)

// scenarios maps the -scenario flag to a runner.
var scenarios = map[string]func(config) error{
	"shift":     runShift,
	"increment": runIncrement,
	"wave":      runWave,
	"two-waves": runTwoWaves,
	"ripple":    runRipple,
}

// Single pulse at the left edge moving one cell to the right per step
func runShift(cfg config) error {
	return launch(cfg, isl.Params[float64]{
		Transition: isl.TransitionFunc[float64](shift),
		Init: isl.InitFunc[float64](func(x, _ int) float64 {
			if x == 0 {
				return 1
			}
			return 0
		}),
		Neighbours: left,
	}, 1)
}

func shift(_ float64, neighbours []isl.Neighbour[float64]) float64 {
	if neighbours[0].Present && neighbours[0].Value != 0 {
		return 1
	}
	return 0
}

func runIncrement(cfg config) error {
	return launch(cfg, isl.Params[float64]{
		Transition: isl.TransitionFunc[float64](func(own float64, _ []isl.Neighbour[float64]) float64 {
			return own + 1
		}),
		Init:       isl.InitFunc[float64](func(int, int) float64 { return 0 }),
		Neighbours: vonNeumann,
	}, float32(cfg.steps))
}

// Height of a quarter sine falling from 250 at 0 to 0 at extent
func sineEdge(position, extent int) int {
	if position >= extent {
		return 0
	}
	fac := float64(position) / float64(extent) * math.Pi / 2
	return int(250 - 250*math.Sin(fac))
}

// Take the left neighbour's value, decay by 3 at the left edge
func wave(own int, neighbours []isl.Neighbour[int]) int {
	if neighbours[0].Present {
		return neighbours[0].Value
	}
	return max(own-3, 0)
}

func runWave(cfg config) error {
	extent := cfg.width / 10
	return launch(cfg, isl.Params[int]{
		Transition: isl.TransitionFunc[int](wave),
		Init:       isl.InitFunc[int](func(x, _ int) int { return sineEdge(x, extent) }),
		Neighbours: left,
	}, 250)
}

// waves carries one wave travelling right and one travelling down.
type waves struct {
	Horizontal int
	Vertical   int
}

func (w waves) FieldNames() []string { return []string{"horizontal", "vertical"} }

func (w waves) FieldValues() []float32 {
	return []float32{float32(w.Horizontal), float32(w.Vertical)}
}

// Neighbours are left then up
func twoWaves(own waves, neighbours []isl.Neighbour[waves]) waves {
	var next waves
	if neighbours[0].Present {
		next.Horizontal = neighbours[0].Value.Horizontal
	} else {
		next.Horizontal = max(own.Horizontal-3, 0)
	}
	if neighbours[1].Present {
		next.Vertical = neighbours[1].Value.Vertical
	} else {
		next.Vertical = max(own.Vertical-3, 0)
	}
	return next
}

func runTwoWaves(cfg config) error {
	xExtent, yExtent := cfg.width/5, cfg.height/5
	return launch(cfg, isl.Params[waves]{
		Transition: isl.TransitionFunc[waves](twoWaves),
		Init: isl.InitFunc[waves](func(x, y int) waves {
			return waves{Horizontal: sineEdge(x, xExtent), Vertical: sineEdge(y, yExtent)}
		}),
		Neighbours: []isl.Offset{{DX: -1, DY: 0}, {DX: 0, DY: -1}},
	}, 250)
}

// Sum of the cell and its present neighbours, wrapped at 255
func ripple(own float64, neighbours []isl.Neighbour[float64]) float64 {
	sum := own
	for _, n := range neighbours {
		if n.Present {
			sum += n.Value
		}
	}
	return math.Mod(sum, 255)
}

func runRipple(cfg config) error {
	cx, cy := float64(cfg.width)/2, float64(cfg.height)/2
	radius := float64(min(cfg.width, cfg.height)) / 4
	return launch(cfg, isl.Params[float64]{
		Transition: isl.TransitionFunc[float64](ripple),
		Init: isl.InitFunc[float64](func(x, y int) float64 {
			if math.Hypot(float64(x)-cx, float64(y)-cy) < radius {
				return 200
			}
			return 50
		}),
		Neighbours: vonNeumann,
	}, 255)
}

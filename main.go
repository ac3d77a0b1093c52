package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"strings"

	"uk.ac.bris.cs/isl/isl"
	"uk.ac.bris.cs/isl/sdl"
	"uk.ac.bris.cs/isl/term"
)

// SDL has to run on the main thread
func init() {
	runtime.LockOSThread()
}

type config struct {
	threads    int
	width      int
	height     int
	steps      int
	outputs    int
	scenario   string
	output     isl.OutputType
	outputPath string
	view       string
	quiet      bool
	verbose    bool
	cpuProfile string
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseFlags(args []string) (config, error) {
	var cfg config
	var output string
	var noVis bool
	flags := flag.NewFlagSet("isl", flag.ContinueOnError)
	flags.IntVar(&cfg.threads, "t", 8, "Specify the number of worker threads to use. Must divide the number of cells.")
	flags.IntVar(&cfg.width, "w", 100, "Specify the width of the grid.")
	flags.IntVar(&cfg.height, "h", 100, "Specify the height of the grid.")
	flags.IntVar(&cfg.steps, "steps", 100, "Specify the number of steps to simulate.")
	flags.IntVar(&cfg.outputs, "outputs", 10, "Specify the number of snapshots taken over the run.")
	flags.StringVar(&cfg.scenario, "scenario", "wave", "Scenario to run ("+strings.Join(scenarioNames(), ", ")+").")
	flags.StringVar(&output, "output", "raw", "Output type (raw, string, vtk, csv, pgm).")
	flags.StringVar(&cfg.outputPath, "out", "out", "Directory for vtk, csv and pgm files.")
	flags.StringVar(&cfg.view, "view", "sdl", "Live viewer (sdl, term, none).")
	flags.BoolVar(&noVis, "noVis", false, "Disables the live viewer, same as -view none.")
	flags.BoolVar(&cfg.quiet, "quiet", false, "Minimal output.")
	flags.BoolVar(&cfg.verbose, "verbose", false, "Verbose output.")
	flags.StringVar(&cfg.cpuProfile, "cpuprofile", "", "Write a CPU profile to this file.")
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}

	var err error
	if cfg.output, err = isl.ParseOutputType(output); err != nil {
		return cfg, err
	}
	if noVis {
		cfg.view = "none"
	}
	switch cfg.view {
	case "sdl", "term", "none":
	default:
		return cfg, fmt.Errorf("unknown viewer %q", cfg.view)
	}
	if _, ok := scenarios[cfg.scenario]; !ok {
		return cfg, fmt.Errorf("unknown scenario %q", cfg.scenario)
	}
	return cfg, nil
}

// launch fills in the run parameters shared by every scenario, runs it and reports the result.
// limit is the field value drawn brightest by the live viewers.
func launch[T any](cfg config, p isl.Params[T], limit float32) error {
	p.Width = cfg.width
	p.Height = cfg.height
	p.Runners = cfg.threads
	p.Steps = cfg.steps
	p.OutputSteps = cfg.outputs
	p.Output = cfg.output
	p.OutputPath = cfg.outputPath
	p.Logger = log.Default()

	// Fail before a window opens
	if _, err := isl.DivideToBlocks(p.Width, p.Height, p.Runners); err != nil {
		return err
	}

	title := fmt.Sprintf("%s %dx%dx%d-%d", cfg.scenario, p.Width, p.Height, p.Steps, p.Runners)
	var result isl.Result[T]
	var err error
	switch cfg.view {
	case "sdl":
		viewer := sdl.NewViewer[T](p.Width, p.Height, limit)
		p.Sink = viewer
		done := background(p, viewer, &result, &err)
		viewer.Loop(title)
		<-done
	case "term":
		viewer := term.NewViewer[T](p.Width, p.Height, limit)
		p.Sink = viewer
		done := background(p, viewer, &result, &err)
		loopErr := viewer.Loop(title)
		<-done
		if loopErr != nil {
			log.Println("Terminal viewer:", loopErr)
		}
	default:
		result, err = isl.Run(p)
	}
	if err != nil {
		return err
	}
	report(result)
	return nil
}

// Run in a goroutine so the viewer can own the main thread
func background[T any](p isl.Params[T], viewer isl.Sink[T], result *isl.Result[T], err *error) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		*result, *err = isl.Run(p)
		// Validation failures return before the sink is closed
		viewer.Close()
	}()
	return done
}

func report[T any](result isl.Result[T]) {
	switch result.Type {
	case isl.RawData:
		log.Printf("Collected %d snapshots", len(result.Raw))
	case isl.String:
		for i, s := range result.Strings {
			fmt.Printf("Snapshot %d\n%s", i, s)
		}
	}
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	if cfg.quiet {
		log.SetOutput(io.Discard)
	} else if cfg.verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	if cfg.cpuProfile != "" {
		f, err := os.Create(cfg.cpuProfile)
		if err != nil {
			log.Fatal("Could not create CPU profile:", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("Could not start CPU profile:", err)
		}
		defer pprof.StopCPUProfile()
	}

	log.Printf("Threads: %d, Width: %d, Height: %d, Steps: %d, Outputs: %d",
		cfg.threads, cfg.width, cfg.height, cfg.steps, cfg.outputs)
	if err := scenarios[cfg.scenario](cfg); err != nil {
		pprof.StopCPUProfile()
		log.Fatal(err)
	}
}

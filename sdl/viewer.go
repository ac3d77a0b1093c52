// Package sdl shows the snapshots of a running stencil loop in an SDL window.
package sdl

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"
	"uk.ac.bris.cs/isl/isl"
)

type frame struct {
	index  int
	pixels []byte
}

// Viewer is a snapshot sink feeding an SDL window.
// Accept converts snapshots to pixels on the sampling worker; Loop draws them on the main thread.
type Viewer[T any] struct {
	width, height int
	limit         float32 // Field value drawn as white
	frames        chan frame
	done          chan struct{} // Closed once the window is gone
	quit          sync.Once
	closed        sync.Once
}

// NewViewer makes a viewer for a width x height grid whose first field lies in [0, limit].
func NewViewer[T any](width, height int, limit float32) *Viewer[T] {
	return &Viewer[T]{
		width:  width,
		height: height,
		limit:  limit,
		frames: make(chan frame, 4),
		done:   make(chan struct{}),
	}
}

// Convert grey values to ARGB8888, stored little-endian as B, G, R, A
func pixels(greys []byte) []byte {
	argb := make([]byte, len(greys)*4)
	for i, g := range greys {
		argb[i*4] = g
		argb[i*4+1] = g
		argb[i*4+2] = g
		argb[i*4+3] = 0xFF
	}
	return argb
}

func (v *Viewer[T]) Accept(index int, snapshot isl.Snapshot[T]) error {
	greys, err := isl.GreyScale(snapshot, v.limit)
	if err != nil {
		return err
	}
	// Frames are dropped once the window has been closed
	select {
	case v.frames <- frame{index: index, pixels: pixels(greys)}:
	case <-v.done:
	}
	return nil
}

// Close tells Loop that no more snapshots will arrive.
func (v *Viewer[T]) Close() error {
	v.closed.Do(func() { close(v.frames) })
	return nil
}

func (v *Viewer[T]) stop() {
	v.quit.Do(func() { close(v.done) })
}

// Loop opens the window and draws frames until the user closes it.
// The last frame stays on screen after the run has finished.
// Must be called from the main thread.
func (v *Viewer[T]) Loop(title string) {
	defer v.stop()
	w := NewWindow(title, int32(v.width), int32(v.height))
	defer w.Destroy()

	frames := v.frames
	for !w.PollQuit() {
		select {
		case f, ok := <-frames:
			if !ok {
				w.SetTitle(fmt.Sprintf("%s (finished)", title))
				frames = nil
				continue
			}
			w.Draw(f.pixels)
			w.SetTitle(fmt.Sprintf("%s #%d", title, f.index))
		default:
			sdl.Delay(10)
		}
	}
}

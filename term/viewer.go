// Package term draws the snapshots of a running stencil loop in the terminal.
package term

import (
	"fmt"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
	"uk.ac.bris.cs/isl/isl"
)

// Darkest to brightest
var shades = []rune(" .:-=+*#%@")

func shade(grey byte) rune {
	return shades[int(grey)*len(shades)/256]
}

type frame struct {
	index int
	greys []byte
}

// Viewer is a snapshot sink drawing every snapshot as shaded characters.
type Viewer[T any] struct {
	width, height int
	limit         float32 // Field value drawn as the brightest shade
	frames        chan frame
	done          chan struct{} // Closed once the user quits
	quit          sync.Once
	closed        sync.Once
}

func NewViewer[T any](width, height int, limit float32) *Viewer[T] {
	return &Viewer[T]{
		width:  width,
		height: height,
		limit:  limit,
		frames: make(chan frame, 4),
		done:   make(chan struct{}),
	}
}

func (v *Viewer[T]) Accept(index int, snapshot isl.Snapshot[T]) error {
	greys, err := isl.GreyScale(snapshot, v.limit)
	if err != nil {
		return err
	}
	select {
	case v.frames <- frame{index: index, greys: greys}:
	case <-v.done:
	}
	return nil
}

func (v *Viewer[T]) Close() error {
	v.closed.Do(func() { close(v.frames) })
	return nil
}

func (v *Viewer[T]) stop() {
	v.quit.Do(func() { close(v.done) })
}

// layout samples the grid down to at most cols x rows characters.
func (v *Viewer[T]) layout(greys []byte, cols, rows int) [][]rune {
	if cols > v.width {
		cols = v.width
	}
	if rows > v.height {
		rows = v.height
	}
	if cols <= 0 || rows <= 0 {
		return nil
	}
	lines := make([][]rune, rows)
	for r := range lines {
		y := r * v.height / rows
		lines[r] = make([]rune, cols)
		for c := range lines[r] {
			x := c * v.width / cols
			lines[r][c] = shade(greys[y*v.width+x])
		}
	}
	return lines
}

func status(text string, cols int) string {
	if runewidth.StringWidth(text) <= cols {
		return text
	}
	return runewidth.Truncate(text, cols, "~")
}

func (v *Viewer[T]) draw(last *frame, text string) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}
	cols, rows := termbox.Size()
	if last != nil {
		for y, line := range v.layout(last.greys, cols, rows-1) {
			for x, r := range line {
				termbox.SetCell(x, y, r, termbox.ColorDefault, termbox.ColorDefault)
			}
		}
	}
	x := 0
	for _, r := range status(text, cols) {
		termbox.SetCell(x, rows-1, r, termbox.ColorBlack, termbox.ColorWhite)
		x += runewidth.RuneWidth(r)
	}
	return termbox.Flush()
}

// Forward terminal events until interrupted
func poll(events chan<- termbox.Event, done <-chan struct{}) {
	for {
		event := termbox.PollEvent()
		if event.Type == termbox.EventInterrupt {
			return
		}
		select {
		case events <- event:
		case <-done:
		}
	}
}

// Loop takes over the terminal and draws frames until the user presses q or Esc.
// The last frame stays on screen after the run has finished.
func (v *Viewer[T]) Loop(title string) error {
	if err := termbox.Init(); err != nil {
		v.stop()
		return err
	}
	events := make(chan termbox.Event)
	go poll(events, v.done)
	defer func() {
		v.stop()
		termbox.Interrupt()
		termbox.Close()
	}()

	var last *frame
	text := fmt.Sprintf("%s  q: quit", title)
	frames := v.frames
	for {
		if err := v.draw(last, text); err != nil {
			return err
		}
		select {
		case f, ok := <-frames:
			if !ok {
				frames = nil
				text = fmt.Sprintf("%s finished  q: quit", title)
				continue
			}
			last = &f
			text = fmt.Sprintf("%s #%d  q: quit", title, f.index)
		case event := <-events:
			switch event.Type {
			case termbox.EventKey:
				if event.Ch == 'q' || event.Key == termbox.KeyEsc || event.Key == termbox.KeyCtrlC {
					return nil
				}
			case termbox.EventError:
				return event.Err
			}
		}
	}
}

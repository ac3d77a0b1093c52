package sdl

import (
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"uk.ac.bris.cs/isl/util"
)

// Window is an SDL window showing a grey-scale image of the grid, one texel per cell.
type Window struct {
	Width, Height int32
	window        *sdl.Window
	renderer      *sdl.Renderer
	texture       *sdl.Texture
	pixels        []byte
}

// Window side in screen pixels for small grids
const minimumSide = 512

func scale(width, height int32) int32 {
	side := width
	if height > side {
		side = height
	}
	if side >= minimumSide {
		return 1
	}
	return minimumSide / side
}

// NewWindow opens a window for a width x height grid.
// Must be called from the main thread.
func NewWindow(title string, width, height int32) *Window {
	err := sdl.Init(sdl.INIT_EVERYTHING)
	util.Check(err)

	factor := scale(width, height)
	window, renderer, err := sdl.CreateWindowAndRenderer(width*factor, height*factor, 0)
	util.Check(err)
	window.SetTitle(title)

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STATIC, width, height)
	util.Check(err)

	return &Window{
		Width:    width,
		Height:   height,
		window:   window,
		renderer: renderer,
		texture:  texture,
		pixels:   make([]byte, width*height*4),
	}
}

func (w *Window) SetTitle(title string) {
	w.window.SetTitle(title)
}

// Draw copies a frame of ARGB8888 pixels into the window and presents it.
func (w *Window) Draw(pixels []byte) {
	copy(w.pixels, pixels)
	err := w.texture.Update(nil, unsafe.Pointer(&w.pixels[0]), int(w.Width*4))
	util.Check(err)
	err = w.renderer.Clear()
	util.Check(err)
	err = w.renderer.Copy(w.texture, nil, nil)
	util.Check(err)
	w.renderer.Present()
}

// PollQuit drains pending events and reports whether the user asked to close the window.
func (w *Window) PollQuit() bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && (e.Keysym.Sym == sdl.K_q || e.Keysym.Sym == sdl.K_ESCAPE) {
				quit = true
			}
		}
	}
	return quit
}

func (w *Window) Destroy() {
	err := w.texture.Destroy()
	util.Check(err)
	err = w.renderer.Destroy()
	util.Check(err)
	err = w.window.Destroy()
	util.Check(err)
	sdl.Quit()
}

// This file is part of Gopherds.
//
// Gopherds is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherds is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherds.  If not, see <https://www.gnu.org/licenses/>.

// Package sdldisplay is an SDL2 window showing both screens of the
// console, stacked the way the real hardware stacks them.
//
// Frame notifications arrive from whatever goroutine drains the command
// queue, but SDL wants all of its calls on one thread. NewFrame() therefore
// only copies pixels; the Service() loop, which the caller runs on the main
// goroutine, pushes them to the textures.
package sdldisplay

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware/display"
	"github.com/jetsetilly/gopherds/logger"
	"github.com/jetsetilly/gopherds/screenshot"
)

// Error patterns returned on SDL failures.
const (
	SDLError = "sdldisplay: %v"
)

const (
	pixelDepth = 4
	winScale   = 2
)

// SdlDisplay is the SDL2 window. Create with NewDisplay(), run with
// Service() and dispose of with Destroy().
type SdlDisplay struct {
	screens *display.Screens

	window   *sdl.Window
	renderer *sdl.Renderer
	top      *sdl.Texture
	bottom   *sdl.Texture

	// pixel copies written by NewFrame and read by Service
	crit         sync.Mutex
	topPixels    []byte
	bottomPixels []byte
	dirty        bool
}

// NewDisplay creates the window and registers with the display for frame
// notifications. Must be called from the main goroutine.
func NewDisplay(screens *display.Screens) (*SdlDisplay, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	scr := &SdlDisplay{
		screens:      screens,
		topPixels:    make([]byte, display.TopWidth*display.ScreenHeight*pixelDepth),
		bottomPixels: make([]byte, display.BottomWidth*display.ScreenHeight*pixelDepth),
	}

	var err error
	scr.window, err = sdl.CreateWindow("gopherds",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		display.TopWidth*winScale, 2*display.ScreenHeight*winScale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	// RGBA byte order is ABGR when read as a little endian word
	scr.top, err = scr.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING,
		display.TopWidth, display.ScreenHeight)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}
	scr.bottom, err = scr.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING,
		display.BottomWidth, display.ScreenHeight)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	screens.AddRenderer(scr)

	logger.Log("sdldisplay", "window created")
	return scr, nil
}

// Destroy the window and textures. Must be called from the main goroutine.
func (scr *SdlDisplay) Destroy() {
	if scr.top != nil {
		_ = scr.top.Destroy()
	}
	if scr.bottom != nil {
		_ = scr.bottom.Destroy()
	}
	if scr.renderer != nil {
		_ = scr.renderer.Destroy()
	}
	if scr.window != nil {
		_ = scr.window.Destroy()
	}
	sdl.Quit()
}

// NewFrame implements the display.Renderer interface. Only the left eye of
// the top screen is shown; a flat window has nowhere to put the right eye.
func (scr *SdlDisplay) NewFrame(s display.Screen) error {
	scr.crit.Lock()
	defer scr.crit.Unlock()

	switch s {
	case display.ScreenTop:
		copy(scr.topPixels, scr.screens.Frontbuffer(s, display.SideLeft).Bytes())
	case display.ScreenBottom:
		copy(scr.bottomPixels, scr.screens.Frontbuffer(s, display.SideLeft).Bytes())
	}
	scr.dirty = true
	return nil
}

// Service runs the window's event loop until the window is closed or the
// quit key (q or escape) is pressed. Must be called from the main
// goroutine.
func (scr *SdlDisplay) Service() error {
	for {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if ev.Type != sdl.KEYDOWN {
					continue
				}
				switch ev.Keysym.Sym {
				case sdl.K_q, sdl.K_ESCAPE:
					return nil
				case sdl.K_s:
					scr.saveScreens()
				}
			}
		}

		if err := scr.redraw(); err != nil {
			return err
		}

		sdl.Delay(10)
	}
}

func (scr *SdlDisplay) redraw() error {
	scr.crit.Lock()
	if scr.dirty {
		if err := scr.top.Update(nil, scr.topPixels, display.TopWidth*pixelDepth); err != nil {
			scr.crit.Unlock()
			return curated.Errorf(SDLError, err)
		}
		if err := scr.bottom.Update(nil, scr.bottomPixels, display.BottomWidth*pixelDepth); err != nil {
			scr.crit.Unlock()
			return curated.Errorf(SDLError, err)
		}
		scr.dirty = false
	}
	scr.crit.Unlock()

	_ = scr.renderer.Clear()

	// bottom screen is narrower; centre it under the top screen
	inset := (display.TopWidth - display.BottomWidth) / 2 * winScale

	_ = scr.renderer.Copy(scr.top, nil, &sdl.Rect{
		X: 0, Y: 0,
		W: display.TopWidth * winScale, H: display.ScreenHeight * winScale,
	})
	_ = scr.renderer.Copy(scr.bottom, nil, &sdl.Rect{
		X: int32(inset), Y: display.ScreenHeight * winScale,
		W: display.BottomWidth * winScale, H: display.ScreenHeight * winScale,
	})
	scr.renderer.Present()

	return nil
}

// saveScreens writes both screens to PNG files in the working directory.
func (scr *SdlDisplay) saveScreens() {
	for _, s := range []display.Screen{display.ScreenTop, display.ScreenBottom} {
		fn := s.String() + ".png"
		if err := screenshot.Save(scr.screens, s, display.SideLeft, winScale, fn); err != nil {
			logger.Log("sdldisplay", err.Error())
			continue
		}
		logger.Logf("sdldisplay", "saved %s", fn)
	}
}

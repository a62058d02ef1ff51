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

// Package display models the two screens of the console and the part of the
// GPU that feeds them.
//
// The top screen is 400x240 and stereo capable: it has a framebuffer pair
// for each eye. The bottom screen is 320x240 and mono. All framebuffers are
// double buffered and live in the linear heap; the GPU renders elsewhere and
// the transfer engine copies finished images in.
//
// The package also provides the GX command processor: the implementation of
// the command channel's Processor interface that rasterises command lists
// and performs transfers and fills, raising the matching interrupt events.
package display

import (
	"sync"

	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/logger"
)

// Screen identifies one of the two screens.
type Screen int

// The two screens.
const (
	ScreenTop Screen = iota
	ScreenBottom
)

func (s Screen) String() string {
	if s == ScreenTop {
		return "top"
	}
	return "bottom"
}

// Side identifies an eye on the stereo top screen. The bottom screen ignores
// the side.
type Side int

// List of valid Side values.
const (
	SideLeft Side = iota
	SideRight
)

// Screen dimensions.
const (
	TopWidth     = 400
	BottomWidth  = 320
	ScreenHeight = 240
)

// Dim returns the dimensions of the screen.
func Dim(s Screen) (int, int) {
	if s == ScreenTop {
		return TopWidth, ScreenHeight
	}
	return BottomWidth, ScreenHeight
}

// Renderer is notified whenever a screen's buffers are swapped. Implemented
// by anything that wants to show or inspect finished frames: GUI windows,
// digest sinks, screenshot capture.
type Renderer interface {
	NewFrame(s Screen) error
}

// Screens owns the framebuffers of both screens and the swap machinery. All
// framebuffers are RGBA8 in the linear heap.
type Screens struct {
	crit sync.Mutex
	mem  *memory.Map

	// top is indexed by side then buffer; bottom by buffer only
	top    [2][2]*memory.Block
	bottom [2]*memory.Block

	// index of the front buffer
	topFront    int
	bottomFront int

	// whether the most recent top-screen swap presented a stereo pair
	stereo bool

	renderers []Renderer
}

// NewScreens allocates the six framebuffers from the linear heap.
func NewScreens(mem *memory.Map) (*Screens, error) {
	scr := &Screens{mem: mem}

	topSize := gpu.ColorBufSize(TopWidth, ScreenHeight, gpu.RGBA8)
	bottomSize := gpu.ColorBufSize(BottomWidth, ScreenHeight, gpu.RGBA8)

	var err error
	for side := 0; side < 2; side++ {
		for buf := 0; buf < 2; buf++ {
			scr.top[side][buf], err = mem.AllocLinear(topSize)
			if err != nil {
				return nil, err
			}
		}
	}
	for buf := 0; buf < 2; buf++ {
		scr.bottom[buf], err = mem.AllocLinear(bottomSize)
		if err != nil {
			return nil, err
		}
	}

	return scr, nil
}

// End frees the framebuffers.
func (scr *Screens) End() {
	for side := 0; side < 2; side++ {
		for buf := 0; buf < 2; buf++ {
			if err := scr.mem.Free(scr.top[side][buf]); err != nil {
				logger.Log("display", err.Error())
			}
		}
	}
	for buf := 0; buf < 2; buf++ {
		if err := scr.mem.Free(scr.bottom[buf]); err != nil {
			logger.Log("display", err.Error())
		}
	}
}

// AddRenderer registers a frame-swap observer.
func (scr *Screens) AddRenderer(r Renderer) {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.renderers = append(scr.renderers, r)
}

// Backbuffer returns the framebuffer being prepared for the next swap of the
// screen. The side is ignored for the bottom screen.
func (scr *Screens) Backbuffer(s Screen, side Side) *memory.Block {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	if s == ScreenTop {
		return scr.top[side][scr.topFront^1]
	}
	return scr.bottom[scr.bottomFront^1]
}

// Frontbuffer returns the framebuffer currently on display. The side is
// ignored for the bottom screen.
func (scr *Screens) Frontbuffer(s Screen, side Side) *memory.Block {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	if s == ScreenTop {
		return scr.top[side][scr.topFront]
	}
	return scr.bottom[scr.bottomFront]
}

// Stereo is true if the most recent top-screen swap presented a stereo pair.
func (scr *Screens) Stereo() bool {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	return scr.stereo
}

// Swap presents the screen's back buffer. For the top screen, stereo says
// whether the right-eye buffer carries a distinct image. Registered
// renderers are notified in the caller's context.
func (scr *Screens) Swap(s Screen, stereo bool) {
	scr.crit.Lock()
	if s == ScreenTop {
		scr.topFront ^= 1
		scr.stereo = stereo
	} else {
		scr.bottomFront ^= 1
	}
	renderers := scr.renderers
	scr.crit.Unlock()

	for _, r := range renderers {
		if err := r.NewFrame(s); err != nil {
			logger.Log("display", err.Error())
		}
	}
}

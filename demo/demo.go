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

// Package demo is the built-in animation: bouncing rectangles on both
// screens, with a parallax offset between the eyes when running in stereo.
// The run modes use it as a workload and the regression tests use it as a
// deterministic image source.
package demo

import (
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/display"
	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/renderqueue"
)

// palette
const (
	skyTop    = 0x1b2a4aff
	skyBottom = 0x10100aff
	boxTop    = 0xe0a030ff
	boxBottom = 0x30b0e0ff
)

// Scene owns the demo's render targets and animation state.
type Scene struct {
	ds     *hardware.DS
	stereo bool

	top    *renderqueue.RenderTarget
	right  *renderqueue.RenderTarget
	bottom *renderqueue.RenderTarget

	frame int
}

// NewScene creates the demo's render targets and links them to the screens.
func NewScene(ds *hardware.DS, stereo bool) (*Scene, error) {
	sc := &Scene{ds: ds, stereo: stereo}

	var err error
	sc.top, err = ds.Render.CreateRenderTarget(display.TopWidth, display.ScreenHeight, gpu.RGBA8, gpu.Depth16)
	if err != nil {
		return nil, err
	}
	ds.Render.SetOutput(sc.top, display.ScreenTop, display.SideLeft, 0)

	if stereo {
		sc.right, err = ds.Render.CreateRenderTarget(display.TopWidth, display.ScreenHeight, gpu.RGBA8, gpu.Depth16)
		if err != nil {
			sc.Close()
			return nil, err
		}
		ds.Render.SetOutput(sc.right, display.ScreenTop, display.SideRight, 0)
	}

	sc.bottom, err = ds.Render.CreateRenderTarget(display.BottomWidth, display.ScreenHeight, gpu.RGBA8, gpu.DepthNone)
	if err != nil {
		sc.Close()
		return nil, err
	}
	ds.Render.SetOutput(sc.bottom, display.ScreenBottom, display.SideLeft, 0)

	return sc, nil
}

// Close deletes the scene's render targets. Must not be called while a
// frame is being recorded.
func (sc *Scene) Close() {
	if sc.top != nil {
		sc.ds.Render.DeleteRenderTarget(sc.top)
		sc.top = nil
	}
	if sc.right != nil {
		sc.ds.Render.DeleteRenderTarget(sc.right)
		sc.right = nil
	}
	if sc.bottom != nil {
		sc.ds.Render.DeleteRenderTarget(sc.bottom)
		sc.bottom = nil
	}
}

// bounce returns a coordinate ping-ponging across [0, limit).
func bounce(frame int, speed int, limit int) int {
	x := (frame * speed) % (2 * limit)
	if x >= limit {
		x = 2*limit - 1 - x
	}
	return x
}

// DrawFrame records and ends one frame of the animation. Returns false if
// the frame could not be started.
func (sc *Scene) DrawFrame() bool {
	rq := sc.ds.Render

	if !rq.FrameBegin(0) {
		return false
	}

	const boxW, boxH = 48, 32

	x := bounce(sc.frame, 3, display.TopWidth-boxW)
	y := bounce(sc.frame, 2, display.ScreenHeight-boxH)

	rq.FrameDrawOn(sc.top)
	rq.DrawClear(skyTop)
	rq.DrawRect(x, y, boxW, boxH, boxTop)

	if sc.stereo && sc.right != nil {
		// parallax: the right eye sees the box shifted towards the nose,
		// which pops it out of the screen plane
		rq.FrameDrawOn(sc.right)
		rq.DrawClear(skyTop)
		rq.DrawRect(x-6, y, boxW, boxH, boxTop)
	}

	bx := bounce(sc.frame, 2, display.BottomWidth-boxW)
	by := bounce(sc.frame, 3, display.ScreenHeight-boxH)

	rq.FrameDrawOn(sc.bottom)
	rq.DrawClear(skyBottom)
	rq.DrawRect(bx, by, boxW, boxH, boxBottom)

	rq.FrameEnd(0)
	sc.frame++
	return true
}

// Frame returns the number of frames drawn so far.
func (sc *Scene) Frame() int {
	return sc.frame
}

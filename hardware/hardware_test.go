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

package hardware_test

import (
	"testing"

	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/display"
	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/test"
)

func TestManualClock(t *testing.T) {
	ds, err := hardware.NewDS()
	test.ExpectSuccess(t, err)
	defer ds.End()

	test.ExpectEquality(t, ds.Render.FrameCounter(display.ScreenTop), uint32(0))
	ds.StepVBlank()
	ds.StepVBlank()
	test.ExpectEquality(t, ds.Render.FrameCounter(display.ScreenTop), uint32(2))
	test.ExpectEquality(t, ds.Render.FrameCounter(display.ScreenBottom), uint32(2))
}

func TestClockedRun(t *testing.T) {
	ds, err := hardware.NewDS()
	test.ExpectSuccess(t, err)
	defer ds.End()

	tgt, err := ds.Render.CreateRenderTarget(display.BottomWidth, display.ScreenHeight, gpu.RGBA8, gpu.DepthNone)
	test.ExpectSuccess(t, err)
	ds.Render.SetOutput(tgt, display.ScreenBottom, display.SideLeft, 0)

	ds.StartClock()

	frames := 0
	err = ds.RunForFrames(3, func() error {
		ds.Render.FrameBegin(0)
		ds.Render.FrameDrawOn(tgt)
		ds.Render.DrawClear(uint32(0x101010ff + frames))
		ds.Render.FrameEnd(0)
		frames++
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, frames, 3)

	ds.Render.WaitDone()

	// the final frame made it to the bottom screen
	fb := gpu.FrameBuf{Width: display.BottomWidth, Height: display.ScreenHeight}
	fb.AttachColor(ds.Screens.Frontbuffer(display.ScreenBottom, display.SideLeft), gpu.RGBA8)
	test.ExpectEquality(t, fb.Pixel(0, 0), uint32(0x101010ff+2))
}

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

package display_test

import (
	"testing"

	"github.com/jetsetilly/gopherds/hardware/display"
	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/hardware/gsp"
	"github.com/jetsetilly/gopherds/hardware/gx"
	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/test"
)

func TestSwap(t *testing.T) {
	m := memory.NewMap()
	scr, err := display.NewScreens(m)
	test.ExpectSuccess(t, err)
	defer scr.End()

	back := scr.Backbuffer(display.ScreenTop, display.SideLeft)
	front := scr.Frontbuffer(display.ScreenTop, display.SideLeft)
	test.ExpectInequality(t, back, front)

	// after a swap the old back buffer is on display
	scr.Swap(display.ScreenTop, true)
	test.ExpectEquality(t, scr.Frontbuffer(display.ScreenTop, display.SideLeft), back)
	test.ExpectSuccess(t, scr.Stereo())

	// bottom screen swaps independently of the top
	bottomFront := scr.Frontbuffer(display.ScreenBottom, display.SideLeft)
	scr.Swap(display.ScreenTop, false)
	test.ExpectEquality(t, scr.Frontbuffer(display.ScreenBottom, display.SideLeft), bottomFront)
	test.ExpectFailure(t, scr.Stereo())
}

type frameCount struct {
	top    int
	bottom int
}

func (f *frameCount) NewFrame(s display.Screen) error {
	if s == display.ScreenTop {
		f.top++
	} else {
		f.bottom++
	}
	return nil
}

func TestRendererNotification(t *testing.T) {
	m := memory.NewMap()
	scr, err := display.NewScreens(m)
	test.ExpectSuccess(t, err)
	defer scr.End()

	f := &frameCount{}
	scr.AddRenderer(f)

	scr.Swap(display.ScreenTop, false)
	scr.Swap(display.ScreenTop, false)
	scr.Swap(display.ScreenBottom, false)

	test.ExpectEquality(t, f.top, 2)
	test.ExpectEquality(t, f.bottom, 1)
}

func TestRasterisation(t *testing.T) {
	m := memory.NewMap()
	ev := gsp.NewEvents()
	p := display.NewGX(ev)

	buf, err := m.AllocVRAM(gpu.ColorBufSize(8, 8, gpu.RGBA8))
	test.ExpectSuccess(t, err)

	fb := &gpu.FrameBuf{}
	fb.SetAttrib(8, 8)
	fb.AttachColor(buf, gpu.RGBA8)

	p.Process(gx.ProcessCommandList{List: gpu.List{Ops: []gpu.Op{
		gpu.BindFrameBuf{FB: fb},
		gpu.Clear{Color: 0x000000ff},
		gpu.Viewport{X: 2, Y: 2, Width: 4, Height: 4},
		// extends past the viewport on every side; must be clipped
		gpu.Rect{X: 0, Y: 0, Width: 8, Height: 8, Color: 0xff0000ff},
	}}})

	test.ExpectEquality(t, fb.Pixel(1, 1), uint32(0x000000ff))
	test.ExpectEquality(t, fb.Pixel(2, 2), uint32(0xff0000ff))
	test.ExpectEquality(t, fb.Pixel(5, 5), uint32(0xff0000ff))
	test.ExpectEquality(t, fb.Pixel(6, 6), uint32(0x000000ff))
}

func TestDisplayTransferFlip(t *testing.T) {
	m := memory.NewMap()
	ev := gsp.NewEvents()
	p := display.NewGX(ev)

	src, err := m.AllocVRAM(gpu.ColorBufSize(4, 4, gpu.RGBA8))
	test.ExpectSuccess(t, err)
	dst, err := m.AllocLinear(gpu.ColorBufSize(4, 4, gpu.RGBA8))
	test.ExpectSuccess(t, err)

	sfb := &gpu.FrameBuf{Width: 4, Height: 4}
	sfb.AttachColor(src, gpu.RGBA8)
	sfb.Fill(0x0000ffff)
	sfb.PutPixel(0, 0, 0xff0000ff)

	// PPF fires on completion, in the processing context
	ppf := 0
	ev.SetEventCallback(gsp.EventPPF, func() { ppf++ })

	p.Process(gx.DisplayTransfer{
		Src: src, SrcDim: gx.Dim{Width: 4, Height: 4}, SrcFmt: gpu.RGBA8,
		Dst: dst, DstDim: gx.Dim{Width: 4, Height: 4}, DstFmt: gpu.RGBA8,
		Flags: gx.TransferFlipVertical,
	})
	test.ExpectEquality(t, ppf, 1)

	dfb := &gpu.FrameBuf{Width: 4, Height: 4}
	dfb.AttachColor(dst, gpu.RGBA8)

	// the marked pixel has moved to the bottom row
	test.ExpectEquality(t, dfb.Pixel(0, 3), uint32(0xff0000ff))
	test.ExpectEquality(t, dfb.Pixel(0, 0), uint32(0x0000ffff))
}

func TestMemoryFill(t *testing.T) {
	m := memory.NewMap()
	ev := gsp.NewEvents()
	p := display.NewGX(ev)

	b0, err := m.AllocVRAM(gpu.ColorBufSize(4, 4, gpu.RGBA8))
	test.ExpectSuccess(t, err)
	b1, err := m.AllocVRAM(gpu.ColorBufSize(4, 4, gpu.RGBA8))
	test.ExpectSuccess(t, err)

	p.Process(gx.MemoryFill{
		Buf0: b0, Value0: 0x11223344, Fmt0: gpu.RGBA8,
		Buf1: b1, Value1: 0xffffffff, Fmt1: gpu.RGBA8,
	})

	fb := &gpu.FrameBuf{Width: 4, Height: 4}
	fb.AttachColor(b0, gpu.RGBA8)
	test.ExpectEquality(t, fb.Pixel(3, 3), uint32(0x11223344))
	fb.AttachColor(b1, gpu.RGBA8)
	test.ExpectEquality(t, fb.Pixel(0, 0), uint32(0xffffffff))
}

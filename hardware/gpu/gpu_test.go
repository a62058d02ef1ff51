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

package gpu_test

import (
	"testing"

	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/test"
)

func TestBufSizes(t *testing.T) {
	test.ExpectEquality(t, gpu.ColorBufSize(256, 256, gpu.RGBA8), 256*256*4)
	test.ExpectEquality(t, gpu.ColorBufSize(256, 256, gpu.RGB8), 256*256*3)
	test.ExpectEquality(t, gpu.ColorBufSize(256, 256, gpu.RGB565), 256*256*2)
	test.ExpectEquality(t, gpu.DepthBufSize(256, 256, gpu.Depth16), 256*256*2)
	test.ExpectEquality(t, gpu.DepthBufSize(256, 256, gpu.DepthNone), 0)
}

func TestPixelRoundTrip(t *testing.T) {
	m := memory.NewMap()

	for _, f := range []gpu.ColorFormat{gpu.RGBA8, gpu.RGB8, gpu.RGB565} {
		b, err := m.AllocLinear(gpu.ColorBufSize(8, 8, f))
		test.ExpectSuccess(t, err)

		fb := gpu.FrameBuf{}
		fb.SetAttrib(8, 8)
		fb.AttachColor(b, f)

		// pure white survives every format
		fb.PutPixel(3, 4, 0xffffffff)
		test.ExpectEquality(t, fb.Pixel(3, 4), uint32(0xffffffff))

		// out of range pixels are discarded and read back as zero
		fb.PutPixel(8, 8, 0xffffffff)
		test.ExpectEquality(t, fb.Pixel(8, 8), uint32(0))

		test.ExpectSuccess(t, m.Free(b))
	}
}

func TestTextureFaces(t *testing.T) {
	m := memory.NewMap()

	// a 2D texture with a full mip chain
	tex, err := gpu.NewTexture(m, 16, 16, gpu.RGBA8, 1, 3, false)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, tex.InVRAM())

	w, h := tex.LevelDim(0)
	test.ExpectEquality(t, w, 16)
	test.ExpectEquality(t, h, 16)
	w, h = tex.LevelDim(2)
	test.ExpectEquality(t, w, 4)
	test.ExpectEquality(t, h, 4)

	// total allocation covers the whole chain
	test.ExpectEquality(t, tex.Data.Size(), (16*16+8*8+4*4)*4)

	// level windows are distinct and sized to the level
	l0 := tex.FaceBlock(gpu.Face2D, 0)
	l1 := tex.FaceBlock(gpu.Face2D, 1)
	test.ExpectEquality(t, l0.Size(), 16*16*4)
	test.ExpectEquality(t, l1.Size(), 8*8*4)

	// writes to a level window land in the texture's storage
	l1.Bytes()[0] = 0xaa
	test.ExpectEquality(t, tex.Data.Bytes()[16*16*4], byte(0xaa))

	test.ExpectSuccess(t, tex.Delete(m))
}

func TestCmdBuf(t *testing.T) {
	c := gpu.CmdBuf{}

	// nothing can be added before a buffer is attached
	test.ExpectFailure(t, c.Add(gpu.Clear{Color: 0x000000ff}))

	c.SetBuffer(4)
	test.ExpectSuccess(t, c.Add(gpu.Clear{Color: 0x000000ff}))
	test.ExpectSuccess(t, c.Add(gpu.Rect{X: 0, Y: 0, Width: 2, Height: 2, Color: 0xff0000ff}))

	l, ok := c.Split()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, len(l.Ops), 2)

	// split leaves the buffer attached and empty
	test.ExpectEquality(t, c.Len(), 0)
	_, ok = c.Split()
	test.ExpectFailure(t, ok)

	// capacity is enforced
	for i := 0; i < 4; i++ {
		test.ExpectSuccess(t, c.Add(gpu.Clear{}))
	}
	test.ExpectFailure(t, c.Add(gpu.Clear{}))

	c.Detach()
	test.ExpectFailure(t, c.Add(gpu.Clear{}))
}

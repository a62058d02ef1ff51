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

package gpu

import "github.com/jetsetilly/gopherds/hardware/memory"

// FrameBuf describes a framebuffer: colour storage, optional depth storage
// and dimensions. The FrameBuf does not own the memory attached to it.
type FrameBuf struct {
	Width  int
	Height int

	Color    *memory.Block
	ColorFmt ColorFormat

	Depth    *memory.Block
	DepthFmt DepthFormat
}

// SetAttrib sets the framebuffer dimensions.
func (fb *FrameBuf) SetAttrib(width int, height int) {
	fb.Width = width
	fb.Height = height
}

// AttachColor attaches a colour buffer to the framebuffer.
func (fb *FrameBuf) AttachColor(b *memory.Block, f ColorFormat) {
	fb.Color = b
	fb.ColorFmt = f
}

// AttachDepth attaches a depth buffer to the framebuffer.
func (fb *FrameBuf) AttachDepth(b *memory.Block, f DepthFormat) {
	fb.Depth = b
	fb.DepthFmt = f
}

// HasDepth is true if a depth buffer is attached.
func (fb *FrameBuf) HasDepth() bool {
	return fb.Depth != nil
}

// PutPixel writes a single pixel to the colour buffer. The colour is given as
// a packed 0xRRGGBBAA value and is converted to the buffer's format. Pixels
// outside the framebuffer are discarded.
func (fb *FrameBuf) PutPixel(x int, y int, rgba uint32) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}

	r := byte(rgba >> 24)
	g := byte(rgba >> 16)
	b := byte(rgba >> 8)
	a := byte(rgba)

	buf := fb.Color.Bytes()
	i := (y*fb.Width + x) * fb.ColorFmt.BytesPerPixel()

	switch fb.ColorFmt {
	case RGBA8:
		buf[i] = r
		buf[i+1] = g
		buf[i+2] = b
		buf[i+3] = a
	case RGB8:
		buf[i] = r
		buf[i+1] = g
		buf[i+2] = b
	case RGB565:
		v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
		buf[i] = byte(v >> 8)
		buf[i+1] = byte(v)
	case RGBA5551:
		v := uint16(r>>3)<<11 | uint16(g>>3)<<6 | uint16(b>>3)<<1 | uint16(a>>7)
		buf[i] = byte(v >> 8)
		buf[i+1] = byte(v)
	case RGBA4:
		v := uint16(r>>4)<<12 | uint16(g>>4)<<8 | uint16(b>>4)<<4 | uint16(a>>4)
		buf[i] = byte(v >> 8)
		buf[i+1] = byte(v)
	}
}

// expand an n-bit channel to 8 bits, replicating the high bits so that the
// maximum value expands to 0xff.
func expand(v uint32, bits uint) uint32 {
	v <<= 8 - bits
	return v | v>>bits
}

// Pixel reads back a single pixel from the colour buffer as a packed
// 0xRRGGBBAA value. Channels narrower than 8 bits are expanded by bit
// replication.
func (fb *FrameBuf) Pixel(x int, y int) uint32 {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return 0
	}

	buf := fb.Color.Bytes()
	i := (y*fb.Width + x) * fb.ColorFmt.BytesPerPixel()

	switch fb.ColorFmt {
	case RGBA8:
		return uint32(buf[i])<<24 | uint32(buf[i+1])<<16 | uint32(buf[i+2])<<8 | uint32(buf[i+3])
	case RGB8:
		return uint32(buf[i])<<24 | uint32(buf[i+1])<<16 | uint32(buf[i+2])<<8 | 0xff
	case RGB565:
		v := uint32(buf[i])<<8 | uint32(buf[i+1])
		return expand(v>>11, 5)<<24 | expand(v>>5&0x3f, 6)<<16 | expand(v&0x1f, 5)<<8 | 0xff
	case RGBA5551:
		v := uint32(buf[i])<<8 | uint32(buf[i+1])
		a := uint32(0)
		if v&0x1 == 0x1 {
			a = 0xff
		}
		return expand(v>>11, 5)<<24 | expand(v>>6&0x1f, 5)<<16 | expand(v>>1&0x1f, 5)<<8 | a
	case RGBA4:
		v := uint32(buf[i])<<8 | uint32(buf[i+1])
		return expand(v>>12, 4)<<24 | expand(v>>8&0xf, 4)<<16 | expand(v>>4&0xf, 4)<<8 | expand(v&0xf, 4)
	}
	return 0
}

// Fill sets every pixel of the colour buffer to the packed 0xRRGGBBAA value.
func (fb *FrameBuf) Fill(rgba uint32) {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			fb.PutPixel(x, y, rgba)
		}
	}
}

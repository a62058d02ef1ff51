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

// Op is a single drawing operation in a command list.
type Op interface {
	op()
}

// BindFrameBuf makes the framebuffer the destination for subsequent drawing
// operations.
type BindFrameBuf struct {
	FB *FrameBuf
}

// Viewport limits subsequent drawing operations to a rectangle of the bound
// framebuffer.
type Viewport struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Clear sets every pixel of the bound framebuffer to the packed 0xRRGGBBAA
// colour, ignoring the viewport.
type Clear struct {
	Color uint32
}

// Rect fills a rectangle, clipped to the viewport, with the packed
// 0xRRGGBBAA colour.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
	Color  uint32
}

func (BindFrameBuf) op() {}
func (Viewport) op()     {}
func (Clear) op()        {}
func (Rect) op()         {}

// List is a finalised sequence of drawing operations, ready for submission.
type List struct {
	Ops []Op
}

// CmdBuf accumulates drawing operations for the current frame. It stands in
// for the shared command buffer the real hardware records into: operations
// are added while a buffer is attached and extracted with Split().
type CmdBuf struct {
	ops      []Op
	capacity int
	attached bool
}

// SetBuffer attaches a fresh recording buffer with the specified capacity.
// Any previously recorded operations are discarded.
func (c *CmdBuf) SetBuffer(capacity int) {
	c.ops = make([]Op, 0, capacity)
	c.capacity = capacity
	c.attached = true
}

// Detach the recording buffer. Add() fails until SetBuffer() is called again.
func (c *CmdBuf) Detach() {
	c.ops = nil
	c.attached = false
}

// Attached is true if a recording buffer is attached.
func (c *CmdBuf) Attached() bool {
	return c.attached
}

// Add an operation to the recording buffer. Returns false if no buffer is
// attached or the buffer is full.
func (c *CmdBuf) Add(op Op) bool {
	if !c.attached || len(c.ops) >= c.capacity {
		return false
	}
	c.ops = append(c.ops, op)
	return true
}

// Len returns the number of operations accumulated since the last Split().
func (c *CmdBuf) Len() int {
	return len(c.ops)
}

// Split extracts the operations accumulated so far, leaving the buffer
// attached and empty. The second return value is false if there was nothing
// to extract.
func (c *CmdBuf) Split() (List, bool) {
	if !c.attached || len(c.ops) == 0 {
		return List{}, false
	}
	l := List{Ops: c.ops}
	c.ops = make([]Op, 0, c.capacity)
	return l, true
}

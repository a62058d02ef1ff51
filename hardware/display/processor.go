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

package display

import (
	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/hardware/gsp"
	"github.com/jetsetilly/gopherds/hardware/gx"
	"github.com/jetsetilly/gopherds/logger"
)

// GX is the command processor behind the command channel. It rasterises
// command lists, performs transfers and fills, and raises the matching
// interrupt events on completion.
//
// State set by a command list (bound framebuffer, viewport) persists across
// lists, as it does in the hardware, until the next bind.
type GX struct {
	events *gsp.Events

	bound    *gpu.FrameBuf
	viewport gpu.Viewport
}

// NewGX creates a command processor that raises completion events on the
// dispatcher.
func NewGX(events *gsp.Events) *GX {
	return &GX{events: events}
}

// Process implements the gx.Processor interface. It is called from the
// command queue's executor goroutine.
func (p *GX) Process(c gx.Command) {
	switch c := c.(type) {
	case gx.ProcessCommandList:
		p.processList(c.List)
	case gx.DisplayTransfer:
		p.displayTransfer(c)
		p.events.Notify(gsp.EventPPF)
	case gx.TextureCopy:
		p.textureCopy(c)
		p.events.Notify(gsp.EventPPF)
	case gx.MemoryFill:
		p.memoryFill(c)
		p.events.Notify(gsp.EventPSC0)
	default:
		logger.Logf("display", "unknown command %T", c)
	}
}

func (p *GX) processList(l gpu.List) {
	for _, op := range l.Ops {
		switch op := op.(type) {
		case gpu.BindFrameBuf:
			p.bound = op.FB
			p.viewport = gpu.Viewport{Width: op.FB.Width, Height: op.FB.Height}
		case gpu.Viewport:
			p.viewport = op
		case gpu.Clear:
			if p.bound != nil {
				p.bound.Fill(op.Color)
			}
		case gpu.Rect:
			p.rect(op)
		}
	}
}

// rect fills a rectangle clipped to the current viewport.
func (p *GX) rect(op gpu.Rect) {
	if p.bound == nil {
		return
	}

	x0 := max(op.X, p.viewport.X)
	y0 := max(op.Y, p.viewport.Y)
	x1 := min(op.X+op.Width, p.viewport.X+p.viewport.Width)
	y1 := min(op.Y+op.Height, p.viewport.Y+p.viewport.Height)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p.bound.PutPixel(x, y, op.Color)
		}
	}
}

func (p *GX) displayTransfer(c gx.DisplayTransfer) {
	src := gpu.FrameBuf{Width: c.SrcDim.Width, Height: c.SrcDim.Height}
	src.AttachColor(c.Src, c.SrcFmt)
	dst := gpu.FrameBuf{Width: c.DstDim.Width, Height: c.DstDim.Height}
	dst.AttachColor(c.Dst, c.DstFmt)

	w := min(c.SrcDim.Width, c.DstDim.Width)
	h := min(c.SrcDim.Height, c.DstDim.Height)

	for y := 0; y < h; y++ {
		dy := y
		if c.Flags&gx.TransferFlipVertical == gx.TransferFlipVertical {
			dy = h - 1 - y
		}
		for x := 0; x < w; x++ {
			dst.PutPixel(x, dy, src.Pixel(x, y))
		}
	}
}

func (p *GX) textureCopy(c gx.TextureCopy) {
	n := min(c.Size, min(c.Src.Size(), c.Dst.Size()))
	copy(c.Dst.Bytes()[:n], c.Src.Bytes()[:n])
}

func (p *GX) memoryFill(c gx.MemoryFill) {
	if c.Buf0 != nil {
		fb := gpu.FrameBuf{Width: c.Buf0.Size() / c.Fmt0.BytesPerPixel(), Height: 1}
		fb.AttachColor(c.Buf0, c.Fmt0)
		fb.Fill(c.Value0)
	}
	if c.Buf1 != nil {
		fb := gpu.FrameBuf{Width: c.Buf1.Size() / c.Fmt1.BytesPerPixel(), Height: 1}
		fb.AttachColor(c.Buf1, c.Fmt1)
		fb.Fill(c.Value1)
	}
}

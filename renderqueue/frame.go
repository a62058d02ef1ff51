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

package renderqueue

import (
	"github.com/jetsetilly/gopherds/hardware/display"
	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/hardware/gx"
)

// Flags accepted by FrameBegin() and FrameEnd().
const (
	// FrameBegin fails rather than blocks if the previous frame's GPU work
	// has not completed
	FrameNonblock uint32 = 1 << iota

	// FrameBegin performs a FrameSync before checking the GPU
	FrameSyncDraw

	// FrameEnd skips the linear heap flush. for callers that have already
	// flushed their own writes
	FrameFlushed
)

// FrameBegin opens a new frame for recording. Returns false if a frame is
// already open, or (with FrameNonblock) if the previous frame's GPU work
// has not yet completed. Without FrameNonblock the call blocks until the
// GPU is idle. The command queue is left halted; work recorded during the
// frame accumulates until FrameEnd() sets the queue running again.
func (ctx *Context) FrameBegin(flags uint32) bool {
	ctx.crit.Lock()
	if ctx.inFrame {
		ctx.crit.Unlock()
		return false
	}
	ctx.crit.Unlock()

	if flags&FrameSyncDraw == FrameSyncDraw {
		ctx.FrameSync()
	}

	if flags&FrameNonblock == FrameNonblock {
		if !ctx.waitAndClearQueue(0) {
			return false
		}
	} else {
		ctx.waitAndClearQueue(-1)
	}

	ctx.crit.Lock()
	ctx.inFrame = true
	ctx.cmdBuf.SetBuffer(defaultCmdBufSize)
	ctx.crit.Unlock()

	ctx.cpuTime.Start()
	return true
}

// FrameDrawOn directs subsequent drawing to the target. The target is
// marked for transfer to its linked output, if it has one, at the end of
// the frame. Returns false if no frame is open.
func (ctx *Context) FrameDrawOn(t *RenderTarget) bool {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()

	if !ctx.inFrame {
		return false
	}

	t.used = true
	ctx.cmdBuf.Add(gpu.BindFrameBuf{FB: &t.fb})
	ctx.cmdBuf.Add(gpu.Viewport{Width: t.fb.Width, Height: t.fb.Height})
	return true
}

// DrawClear records a clear of the current target to the packed 0xRRGGBBAA
// colour. Returns false if no frame is open or the recording buffer is
// full.
func (ctx *Context) DrawClear(color uint32) bool {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()

	if !ctx.inFrame {
		return false
	}
	return ctx.cmdBuf.Add(gpu.Clear{Color: color})
}

// DrawRect records a filled rectangle on the current target.
func (ctx *Context) DrawRect(x int, y int, width int, height int, color uint32) bool {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()

	if !ctx.inFrame {
		return false
	}
	return ctx.cmdBuf.Add(gpu.Rect{X: x, Y: y, Width: width, Height: height, Color: color})
}

// FrameSplit submits the drawing recorded so far without closing the frame.
// Returns false if no frame is open.
func (ctx *Context) FrameSplit(flags uint32) bool {
	ctx.crit.Lock()
	if !ctx.inFrame {
		ctx.crit.Unlock()
		return false
	}
	l, ok := ctx.cmdBuf.Split()
	ctx.crit.Unlock()

	if ok {
		ctx.queue.Submit(gx.ProcessCommandList{List: l, Flags: flags})
	}
	return true
}

// FrameEndHook installs a function to run at the start of every FrameEnd(),
// while the frame is still open, so it may record further drawing. The
// latest installed hook wins; a nil hook removes the current one.
func (ctx *Context) FrameEndHook(f func()) {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()
	ctx.hook = f
}

// FrameEnd closes the frame: remaining drawing is submitted, a transfer to
// the screens is issued for every linked target drawn on this frame, the
// buffer swaps are armed and the command queue is set running. The swaps
// themselves happen when the queue drains. Returns false if no frame is
// open.
func (ctx *Context) FrameEnd(flags uint32) bool {
	ctx.crit.Lock()
	if !ctx.inFrame {
		ctx.crit.Unlock()
		return false
	}
	hook := ctx.hook
	ctx.crit.Unlock()

	if hook != nil {
		hook()
	}

	ctx.FrameSplit(flags)

	ctx.crit.Lock()
	ctx.cmdBuf.Detach()
	ctx.inFrame = false
	ctx.crit.Unlock()

	ctx.cpuTime.Update()

	// command lists and textures live in the linear heap; the GPU must not
	// read stale data
	if flags&FrameFlushed == 0 {
		ctx.mem.FlushLinear()
	}

	ctx.crit.Lock()

	// the frame is stereo if the right eye target was drawn on
	stereo := ctx.linked[slotTopRight] != nil && ctx.linked[slotTopRight].used

	// bottom screen first, top-left last
	for i := numSlots - 1; i >= 0; i-- {
		t := ctx.linked[i]
		if t == nil || !t.used {
			continue
		}
		t.used = false

		s, side := slot(i).screenSide()
		w, h := display.Dim(s)

		ctx.queue.Submit(gx.DisplayTransfer{
			Src:    t.fb.Color,
			SrcDim: gx.Dim{Width: t.fb.Width, Height: t.fb.Height},
			SrcFmt: t.fb.ColorFmt,
			Dst:    ctx.screens.Backbuffer(s, side),
			DstDim: gx.Dim{Width: w, Height: h},
			DstFmt: gpu.RGBA8,
			Flags:  t.transferFlags,
		})

		ctx.swapArmed[s] = true
		if s == display.ScreenTop {
			ctx.swapStereo = stereo
		}
	}

	ctx.measureGPUTime = true
	ctx.crit.Unlock()

	ctx.gpuTime.Start()
	ctx.queue.Run()
	return true
}

// ProcessingTime returns the milliseconds the CPU spent recording the most
// recent frame.
func (ctx *Context) ProcessingTime() float64 {
	return ctx.cpuTime.Milliseconds()
}

// DrawingTime returns the milliseconds the GPU spent executing the most
// recent frame.
func (ctx *Context) DrawingTime() float64 {
	return ctx.gpuTime.Milliseconds()
}

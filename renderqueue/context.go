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

// Package renderqueue schedules frame recording and presentation for the
// console's GPU.
//
// The package keeps exactly one frame's worth of GPU work in flight. Drawing
// commands are recorded between FrameBegin() and FrameEnd(); FrameEnd()
// issues the transfers that move finished images to the screens and arms the
// buffer swaps, which happen when the command queue runs dry. A new frame
// cannot begin until the previous frame's work has fully completed.
//
// Frame pacing is tied to the vertical blank. Each screen has a Bresenham
// style accumulator that divides the 60Hz vblank down to the configured
// frame rate; FrameSync() blocks until both screens have passed a logical
// frame boundary.
//
// Render targets are VRAM resident images that drawing happens on. A target
// becomes visible by linking it to an output slot with SetOutput(); each of
// the three slots (bottom screen, top screen left eye, top screen right eye)
// holds at most one target.
//
// All recording functions are intended to be called from a single goroutine.
// The package's own bookkeeping is safe against the queue executor and the
// vblank clock, which run concurrently.
package renderqueue

import (
	"container/list"
	"sync"
	"time"

	"github.com/jetsetilly/gopherds/hardware/display"
	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/hardware/gsp"
	"github.com/jetsetilly/gopherds/hardware/gx"
	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/hardware/ticks"
	"github.com/jetsetilly/gopherds/logger"
)

// capacity of the command recording buffer, in operations.
const defaultCmdBufSize = 1024

// Context owns all frame scheduling state. Create with NewContext() and
// dispose of with Exit().
type Context struct {
	mem     *memory.Map
	events  *gsp.Events
	queue   *gx.Queue
	screens *display.Screens

	// crit guards everything below. it is taken by the recording goroutine,
	// by the queue executor (via onQueueFinish) and by the vblank clock (via
	// onVBlank). lock order is always crit before any queue or screen lock
	crit sync.Mutex

	inFrame        bool
	inSafeTransfer bool
	measureGPUTime bool

	// swap flags armed at frame end and consumed when the queue drains
	swapArmed  [2]bool
	swapStereo bool

	// frame pacing. counter underflow marks a logical frame boundary
	rate         float32
	counter      [2]float32
	frameCounter [2]uint32

	cmdBuf gpu.CmdBuf

	// every live render target, in creation order
	targets *list.List

	// output slots, indexed by slot
	linked [numSlots]*RenderTarget

	hook func()

	cpuTime ticks.Counter
	gpuTime ticks.Counter
}

// NewContext wires the render queue into the hardware: the queue completion
// callback and both vblank handlers are installed and the command queue is
// started.
func NewContext(mem *memory.Map, events *gsp.Events, queue *gx.Queue, screens *display.Screens) *Context {
	ctx := &Context{
		mem:     mem,
		events:  events,
		queue:   queue,
		screens: screens,
		rate:    NativeRate,
		counter: [2]float32{NativeRate, NativeRate},
		targets: list.New(),
	}

	queue.SetCallback(ctx.onQueueFinish)
	events.SetEventCallback(gsp.EventVBlankTop, func() { ctx.onVBlank(display.ScreenTop) })
	events.SetEventCallback(gsp.EventVBlankBottom, func() { ctx.onVBlank(display.ScreenBottom) })
	queue.Run()

	logger.Log("renderqueue", "initialised")
	return ctx
}

// Exit tears the render queue down: outstanding GPU work is drained, every
// remaining render target is destroyed and the hardware callbacks are
// removed. The Context must not be used afterwards.
func (ctx *Context) Exit() {
	ctx.waitAndClearQueue(-1)

	ctx.crit.Lock()
	for i := range ctx.linked {
		ctx.linked[i] = nil
	}
	ctx.crit.Unlock()

	for e := ctx.targets.Front(); e != nil; {
		next := e.Next()
		ctx.destroy(e.Value.(*RenderTarget))
		e = next
	}

	ctx.events.SetEventCallback(gsp.EventVBlankTop, nil)
	ctx.events.SetEventCallback(gsp.EventVBlankBottom, nil)
	ctx.queue.SetCallback(nil)

	logger.Log("renderqueue", "shutdown")
}

// WaitDone blocks until all outstanding GPU work has completed.
func (ctx *Context) WaitDone() {
	ctx.waitAndClearQueue(-1)
}

// waitAndClearQueue drains the command queue and leaves it stopped and
// empty. A negative timeout waits forever; zero polls. Returns false if the
// queue did not drain within the timeout.
func (ctx *Context) waitAndClearQueue(timeout time.Duration) bool {
	if !ctx.queue.Wait(timeout) {
		return false
	}
	ctx.queue.Stop()
	if err := ctx.queue.Clear(); err != nil {
		logger.Log("renderqueue", err.Error())
		return false
	}
	return true
}

// onQueueFinish runs in the queue executor's context whenever the command
// queue runs dry. The safe transfer and swap branches are mutually
// exclusive: a drain marks the end of either a synchronous transfer or a
// frame's presentation work, never both.
func (ctx *Context) onQueueFinish() {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()

	if ctx.measureGPUTime {
		ctx.gpuTime.Update()
		ctx.measureGPUTime = false
	}

	if ctx.inSafeTransfer {
		ctx.inSafeTransfer = false

		if ctx.inFrame {
			// a frame is being recorded at the same time as the transfer
			// completed. halt the queue so the frame's own work is not run
			// prematurely; FrameEnd() restarts it
			ctx.queue.Stop()
			if err := ctx.queue.Clear(); err != nil {
				logger.Log("renderqueue", err.Error())
			}
		}
		return
	}

	for s := display.ScreenTop; s <= display.ScreenBottom; s++ {
		if ctx.swapArmed[s] {
			ctx.swapArmed[s] = false
			ctx.screens.Swap(s, s == display.ScreenTop && ctx.swapStereo)
		}
	}
}

// the one unrecoverable misuse of the package. the hardware would crash if
// the buffers disappeared mid recording, so there is no error to return
func fatal(msg string) {
	panic("renderqueue: " + msg)
}

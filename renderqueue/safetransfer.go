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
	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/hardware/gsp"
	"github.com/jetsetilly/gopherds/hardware/gx"
	"github.com/jetsetilly/gopherds/hardware/memory"
)

// SyncDisplayTransfer performs a display transfer safely alongside the
// frame machinery. Outside a frame the call blocks until the transfer
// engine has finished; inside a frame the transfer is folded into the
// frame's command stream and the call returns immediately.
func (ctx *Context) SyncDisplayTransfer(src *memory.Block, srcDim gx.Dim, srcFmt gpu.ColorFormat,
	dst *memory.Block, dstDim gx.Dim, dstFmt gpu.ColorFormat, flags uint32) {
	ctx.syncSubmit(gx.DisplayTransfer{
		Src: src, SrcDim: srcDim, SrcFmt: srcFmt,
		Dst: dst, DstDim: dstDim, DstFmt: dstFmt,
		Flags: flags,
	}, gsp.EventPPF)
}

// SyncTextureCopy performs a raw copy between two blocks, safely alongside
// the frame machinery. Blocking behaviour as for SyncDisplayTransfer.
func (ctx *Context) SyncTextureCopy(src *memory.Block, dst *memory.Block, size int, flags uint32) {
	ctx.syncSubmit(gx.TextureCopy{
		Src: src, Dst: dst, Size: size, Flags: flags,
	}, gsp.EventPPF)
}

// SyncMemoryFill fills up to two blocks with fixed values, safely alongside
// the frame machinery. Either block may be nil. Outside a frame the call
// blocks until the fill engine has finished.
func (ctx *Context) SyncMemoryFill(buf0 *memory.Block, value0 uint32, fmt0 gpu.ColorFormat,
	buf1 *memory.Block, value1 uint32, fmt1 gpu.ColorFormat) {
	ctx.syncSubmit(gx.MemoryFill{
		Buf0: buf0, Value0: value0, Fmt0: fmt0,
		Buf1: buf1, Value1: value1, Fmt1: fmt1,
	}, gsp.EventPSC0)
}

// syncSubmit implements the two paths shared by the safe transfer
// functions.
//
// Out of frame: drain the queue, raise the safe transfer flag, submit and
// run, then block on the operation's hardware finished event. The flag
// tells onQueueFinish that the coming drain belongs to a transfer and not
// to a frame's presentation.
//
// In frame: split the recording so drawing ordered before the call stays
// before it, then submit directly. No flag and no blocking; the operation
// completes with the rest of the frame.
func (ctx *Context) syncSubmit(c gx.Command, done gsp.Event) {
	ctx.crit.Lock()
	inFrame := ctx.inFrame
	ctx.crit.Unlock()

	if inFrame {
		ctx.FrameSplit(0)
		ctx.queue.Submit(c)
		return
	}

	ctx.waitAndClearQueue(-1)

	ctx.crit.Lock()
	ctx.inSafeTransfer = true
	ctx.crit.Unlock()

	// take the completion channel before submitting. the event cannot be
	// missed however quickly the executor runs
	ch := ctx.events.Upcoming(done)

	ctx.queue.Submit(c)
	ctx.queue.Run()
	<-ch
}

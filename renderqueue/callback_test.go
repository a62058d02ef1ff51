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
	"testing"

	"github.com/jetsetilly/gopherds/hardware/display"
	"github.com/jetsetilly/gopherds/hardware/gsp"
	"github.com/jetsetilly/gopherds/hardware/gx"
	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/test"
)

func newBareContext(t *testing.T) *Context {
	t.Helper()

	mem := memory.NewMap()
	ev := gsp.NewEvents()
	q := gx.NewQueue(display.NewGX(ev))
	scr, err := display.NewScreens(mem)
	if err != nil {
		t.Fatal(err)
	}

	ctx := NewContext(mem, ev, q, scr)
	t.Cleanup(func() {
		ctx.Exit()
		scr.End()
		q.End()
	})
	return ctx
}

// a safe transfer completing while a frame is concurrently being recorded
// must halt and empty the queue so the frame's work does not run early.
func TestCallbackSafeTransferDuringFrame(t *testing.T) {
	ctx := newBareContext(t)

	// stop the queue so a submitted command stays pending
	ctx.queue.Stop()
	ctx.queue.Submit(gx.MemoryFill{})
	test.ExpectEquality(t, ctx.queue.Pending(), 1)

	ctx.crit.Lock()
	ctx.inFrame = true
	ctx.inSafeTransfer = true
	ctx.crit.Unlock()

	ctx.onQueueFinish()

	ctx.crit.Lock()
	test.ExpectFailure(t, ctx.inSafeTransfer)
	ctx.inFrame = false
	ctx.crit.Unlock()

	// the pending command was discarded
	test.ExpectEquality(t, ctx.queue.Pending(), 0)
	test.ExpectSuccess(t, ctx.queue.Wait(0))
}

// a safe transfer completing outside a frame clears the flag and nothing
// else; in particular an armed swap is not consumed by the same drain.
func TestCallbackBranchesAreExclusive(t *testing.T) {
	ctx := newBareContext(t)

	front := ctx.screens.Frontbuffer(display.ScreenTop, display.SideLeft)

	ctx.crit.Lock()
	ctx.inSafeTransfer = true
	ctx.swapArmed[display.ScreenTop] = true
	ctx.crit.Unlock()

	ctx.onQueueFinish()

	ctx.crit.Lock()
	test.ExpectFailure(t, ctx.inSafeTransfer)
	test.ExpectSuccess(t, ctx.swapArmed[display.ScreenTop])
	ctx.crit.Unlock()

	// no swap happened
	test.ExpectEquality(t, ctx.screens.Frontbuffer(display.ScreenTop, display.SideLeft), front)

	// the next drain takes the swap branch
	ctx.onQueueFinish()

	ctx.crit.Lock()
	test.ExpectFailure(t, ctx.swapArmed[display.ScreenTop])
	ctx.crit.Unlock()
	test.ExpectInequality(t, ctx.screens.Frontbuffer(display.ScreenTop, display.SideLeft), front)
}

func TestSlotMapping(t *testing.T) {
	test.ExpectEquality(t, slotFor(display.ScreenTop, display.SideLeft), slotTopLeft)
	test.ExpectEquality(t, slotFor(display.ScreenTop, display.SideRight), slotTopRight)
	test.ExpectEquality(t, slotFor(display.ScreenBottom, display.SideLeft), slotBottom)
	test.ExpectEquality(t, slotFor(display.ScreenBottom, display.SideRight), slotBottom)

	for sl := slotTopLeft; sl < numSlots; sl++ {
		s, side := sl.screenSide()
		test.ExpectEquality(t, slotFor(s, side), sl)
	}
}

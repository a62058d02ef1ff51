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
)

// slot identifies an output link. The numbering matters: FrameEnd walks the
// slots from highest to lowest, so the bottom screen's transfer is issued
// first and the top-left transfer, which also arms the top swap, goes last.
type slot int

const (
	slotTopLeft slot = iota
	slotTopRight
	slotBottom
	numSlots
)

// slotFor maps a screen/side pair to its output slot. The bottom screen is
// mono so both sides map to the same slot.
func slotFor(s display.Screen, side display.Side) slot {
	if s == display.ScreenBottom {
		return slotBottom
	}
	if side == display.SideRight {
		return slotTopRight
	}
	return slotTopLeft
}

// screenSide is the inverse of slotFor.
func (sl slot) screenSide() (display.Screen, display.Side) {
	switch sl {
	case slotBottom:
		return display.ScreenBottom, display.SideLeft
	case slotTopRight:
		return display.ScreenTop, display.SideRight
	}
	return display.ScreenTop, display.SideLeft
}

// SetOutput links the target to a screen (and, for the top screen, an eye).
// From the next FrameEnd() on, images drawn on the target are transferred
// to that screen with the supplied transfer flags.
//
// Linking over an occupied slot unlinks the previous occupant; unless a
// frame is being recorded, outstanding GPU work is drained first in case it
// still references the outgoing target.
func (ctx *Context) SetOutput(t *RenderTarget, s display.Screen, side display.Side, transferFlags uint32) {
	sl := slotFor(s, side)

	ctx.crit.Lock()
	old := ctx.linked[sl]
	if old != nil && old != t {
		old.linked = false
	}
	if t != nil {
		if t.linked {
			ctx.linked[t.slot] = nil
		}
		t.linked = true
		t.slot = sl
		t.transferFlags = transferFlags
	}
	ctx.linked[sl] = t
	inFrame := ctx.inFrame
	ctx.crit.Unlock()

	if old != nil && old != t && !inFrame {
		ctx.waitAndClearQueue(-1)
	}
}

// DetachOutput unlinks whatever target occupies the screen/side's slot.
func (ctx *Context) DetachOutput(s display.Screen, side display.Side) {
	ctx.SetOutput(nil, s, side, 0)
}

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

// NativeRate is the refresh rate of both screens in frames per second.
const NativeRate = 60.0

// onVBlank is the vblank handler for both screens. It runs in the context
// of whatever raised the event.
func (ctx *Context) onVBlank(s display.Screen) {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()
	ctx.limit(s)
}

// limit advances the screen's pacing accumulator by one vblank, counting a
// logical frame when the accumulator underflows. The accumulator divides
// the native refresh rate without drift: at 24fps the gaps between logical
// frames alternate between two and three vblanks, averaging exactly 60/24.
//
// called with crit held.
func (ctx *Context) limit(s display.Screen) {
	ctx.counter[s] -= ctx.rate
	if ctx.counter[s] <= 0 {
		ctx.counter[s] += NativeRate
		ctx.frameCounter[s]++
	}
}

// FrameRate sets the target frame rate and returns the previous setting.
// Rates outside (0, NativeRate] leave the rate unchanged, which makes
// FrameRate(0) a query. Changing the rate resets the pacing accumulators of
// both screens to the new rate, so the next vblank marks a frame boundary.
func (ctx *Context) FrameRate(fps float32) float32 {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()

	old := ctx.rate
	if fps > 0 && fps <= NativeRate {
		ctx.rate = fps
		ctx.counter[0] = fps
		ctx.counter[1] = fps
	}
	return old
}

// FrameCounter returns the number of logical frames the screen has passed.
// At the native rate this is simply a vblank count.
func (ctx *Context) FrameCounter(s display.Screen) uint32 {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()
	return ctx.frameCounter[s]
}

// FrameSync blocks until both screens have passed a logical frame boundary.
// At rates below the native rate this is where the waiting happens: the
// boundary only arrives once every NativeRate/rate vblanks.
func (ctx *Context) FrameSync() {
	ctx.crit.Lock()
	top := ctx.frameCounter[display.ScreenTop]
	bottom := ctx.frameCounter[display.ScreenBottom]
	ctx.crit.Unlock()

	for {
		// taking the channel before the check means a boundary arriving
		// between the check and the wait still wakes us
		ch := ctx.events.UpcomingAny()

		ctx.crit.Lock()
		advanced := ctx.frameCounter[display.ScreenTop] != top &&
			ctx.frameCounter[display.ScreenBottom] != bottom
		ctx.crit.Unlock()

		if advanced {
			return
		}
		<-ch
	}
}

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

// Package hardware assembles the emulated console.
//
// The DS type owns every hardware component and the wiring between them.
// Sub-packages model the individual components: the graphics memory map,
// the GPU, the command channel, the interrupt source and the two screens.
// The renderqueue package sits on top and is where almost all interaction
// with the console happens.
package hardware

import (
	"time"

	"github.com/jetsetilly/gopherds/hardware/display"
	"github.com/jetsetilly/gopherds/hardware/gsp"
	"github.com/jetsetilly/gopherds/hardware/gx"
	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/logger"
	"github.com/jetsetilly/gopherds/renderqueue"
)

// DS is the console.
type DS struct {
	Mem     *memory.Map
	Events  *gsp.Events
	Queue   *gx.Queue
	Screens *display.Screens
	Render  *renderqueue.Context

	clockQuit chan struct{}
}

// NewDS is the preferred method of initialisation for the DS type. The
// vblank clock is not started; call StartClock(), or drive time manually
// with StepVBlank().
func NewDS() (*DS, error) {
	ds := &DS{
		Mem:    memory.NewMap(),
		Events: gsp.NewEvents(),
	}
	ds.Queue = gx.NewQueue(display.NewGX(ds.Events))

	var err error
	ds.Screens, err = display.NewScreens(ds.Mem)
	if err != nil {
		ds.Queue.End()
		return nil, err
	}

	ds.Render = renderqueue.NewContext(ds.Mem, ds.Events, ds.Queue, ds.Screens)

	logger.Log("hardware", "console assembled")
	return ds, nil
}

// End the console. Outstanding GPU work is drained and all components are
// torn down. The DS must not be used afterwards.
func (ds *DS) End() {
	ds.StopClock()
	ds.Render.Exit()
	ds.Screens.End()
	ds.Queue.End()
	logger.Log("hardware", "console stopped")
}

// StartClock begins raising the vertical blank of both screens at the
// native 60Hz rate. Calling StartClock() on a running clock does nothing.
func (ds *DS) StartClock() {
	if ds.clockQuit != nil {
		return
	}
	ds.clockQuit = make(chan struct{})

	go func(quit chan struct{}) {
		tck := time.NewTicker(time.Second / 60)
		defer tck.Stop()
		for {
			select {
			case <-quit:
				return
			case <-tck.C:
				ds.Events.Notify(gsp.EventVBlankTop)
				ds.Events.Notify(gsp.EventVBlankBottom)
			}
		}
	}(ds.clockQuit)
}

// StopClock stops the vblank clock.
func (ds *DS) StopClock() {
	if ds.clockQuit == nil {
		return
	}
	close(ds.clockQuit)
	ds.clockQuit = nil
}

// StepVBlank raises one vertical blank on both screens. For callers that
// drive time manually rather than running the clock.
func (ds *DS) StepVBlank() {
	ds.Events.Notify(gsp.EventVBlankTop)
	ds.Events.Notify(gsp.EventVBlankBottom)
}

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

// Package gsp models the interrupt events raised by the display hardware.
//
// Four events are modelled: the vertical blank of each screen, the transfer
// engine finishing (PPF) and the fill engine finishing (PSC0). Handlers
// registered with SetEventCallback run in the context of whichever goroutine
// raised the event; they should do their work quickly and must not block.
// Goroutines that need to sleep until an event occurs use WaitForEvent.
package gsp

import "sync"

// Event identifies an interrupt source.
type Event int

// List of interrupt sources.
const (
	EventVBlankTop Event = iota
	EventVBlankBottom
	EventPPF
	EventPSC0
	numEvents
)

func (e Event) String() string {
	switch e {
	case EventVBlankTop:
		return "vblank (top)"
	case EventVBlankBottom:
		return "vblank (bottom)"
	case EventPPF:
		return "PPF"
	case EventPSC0:
		return "PSC0"
	}
	return "unknown"
}

// Events dispatches interrupt events to callbacks and to blocked waiters.
// The zero value is not usable; create with NewEvents().
type Events struct {
	crit sync.Mutex

	callbacks [numEvents]func()

	// broadcast channels, closed and replaced on each occurrence
	occurred [numEvents]chan struct{}
	any      chan struct{}
}

// NewEvents creates an event dispatcher with no callbacks registered.
func NewEvents() *Events {
	ev := &Events{
		any: make(chan struct{}),
	}
	for i := range ev.occurred {
		ev.occurred[i] = make(chan struct{})
	}
	return ev
}

// SetEventCallback registers a handler for the event. The handler runs in
// the context of the goroutine that raises the event. A nil handler removes
// the current one.
func (ev *Events) SetEventCallback(e Event, f func()) {
	ev.crit.Lock()
	defer ev.crit.Unlock()
	ev.callbacks[e] = f
}

// Notify raises an event. The registered callback (if any) runs in the
// caller's context; waiters are released only after it has returned, so a
// released waiter sees the callback's bookkeeping complete.
func (ev *Events) Notify(e Event) {
	ev.crit.Lock()
	f := ev.callbacks[e]
	ev.crit.Unlock()

	if f != nil {
		f()
	}

	ev.crit.Lock()
	close(ev.occurred[e])
	ev.occurred[e] = make(chan struct{})
	close(ev.any)
	ev.any = make(chan struct{})
	ev.crit.Unlock()
}

// Upcoming returns a channel that closes on the next occurrence of the
// event. Taking the channel before starting an operation and receiving from
// it afterwards guarantees the completion cannot be missed.
func (ev *Events) Upcoming(e Event) <-chan struct{} {
	ev.crit.Lock()
	defer ev.crit.Unlock()
	return ev.occurred[e]
}

// UpcomingAny returns a channel that closes on the next occurrence of any
// event.
func (ev *Events) UpcomingAny() <-chan struct{} {
	ev.crit.Lock()
	defer ev.crit.Unlock()
	return ev.any
}

// WaitForEvent blocks until the next occurrence of the event. Occurrences
// before the call are not counted.
func (ev *Events) WaitForEvent(e Event) {
	<-ev.Upcoming(e)
}

// WaitForAnyEvent blocks until the next occurrence of any event. Useful for
// loops that re-check a condition after every interrupt.
func (ev *Events) WaitForAnyEvent() {
	<-ev.UpcomingAny()
}

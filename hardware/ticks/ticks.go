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

// Package ticks provides a small stopwatch for measuring how long the CPU
// and GPU spend on each frame.
package ticks

import (
	"sync"
	"time"
)

// Counter measures the interval between a Start() and the following
// Update(). It is safe to read from one goroutine while another updates it.
type Counter struct {
	crit    sync.Mutex
	started time.Time
	elapsed time.Duration
}

// Start the measurement interval.
func (c *Counter) Start() {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.started = time.Now()
}

// Update ends the measurement interval, recording the time since Start().
func (c *Counter) Update() {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.elapsed = time.Since(c.started)
}

// Milliseconds of the most recently recorded interval.
func (c *Counter) Milliseconds() float64 {
	c.crit.Lock()
	defer c.crit.Unlock()
	return float64(c.elapsed) / float64(time.Millisecond)
}

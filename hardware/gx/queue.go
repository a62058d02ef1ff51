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

// Package gx implements the command channel between the CPU and the GPU.
//
// Commands are submitted to a Queue and executed strictly in submission
// order by a single executor goroutine, which stands in for the hardware.
// The queue can be stopped and restarted; a completion callback, if one is
// set, fires from the executor context every time the queue runs dry. The
// callback always fires before any goroutine blocked in Wait() is released,
// so code that reacts to completion can rely on its bookkeeping being done
// by the time a waiter resumes.
package gx

import (
	"sync"
	"time"

	"github.com/jetsetilly/gopherds/curated"
)

// Error patterns returned by Queue functions.
const (
	ClearWhileRunning = "gx: clear of a running queue"
)

// Processor executes a single command. Implementations are called from the
// queue's executor goroutine, one command at a time.
type Processor interface {
	Process(Command)
}

// Queue is the command channel. Submitted commands accumulate until the
// queue is run; from then on the executor works through them in order until
// the queue is stopped or runs dry.
type Queue struct {
	crit sync.Mutex

	processor Processor
	callback  func()

	cmds      []Command
	running   bool
	busy      bool
	cbRunning bool

	// closed and replaced whenever the queue drains
	waiters []chan struct{}

	wake chan struct{}
	quit chan struct{}
}

// NewQueue creates a command queue serviced by the processor and starts the
// executor goroutine. The queue is created in the stopped state.
func NewQueue(p Processor) *Queue {
	q := &Queue{
		processor: p,
		wake:      make(chan struct{}, 1),
		quit:      make(chan struct{}),
	}
	go q.executor()
	return q
}

// End terminates the executor goroutine. The queue must not be used after
// End() has been called.
func (q *Queue) End() {
	close(q.quit)
}

// SetCallback installs the completion callback. The callback runs in the
// executor context whenever the queue runs dry; it must not call Wait(). A
// nil callback removes the current one.
func (q *Queue) SetCallback(f func()) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.callback = f
}

// Submit adds a command to the queue. If the queue is running the command
// will be executed as soon as the executor reaches it.
func (q *Queue) Submit(c Command) {
	q.crit.Lock()
	q.cmds = append(q.cmds, c)
	q.crit.Unlock()
	q.signal()
}

// Run starts (or resumes) execution of queued commands.
func (q *Queue) Run() {
	q.crit.Lock()
	q.running = true
	q.crit.Unlock()
	q.signal()
}

// Stop halts the queue. The command being executed, if any, runs to
// completion; commands behind it stay queued until the next Run().
func (q *Queue) Stop() {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.running = false
}

// Clear discards all queued commands. The queue must be stopped and the
// executor idle. Goroutines blocked in Wait() are released.
func (q *Queue) Clear() error {
	q.crit.Lock()
	defer q.crit.Unlock()
	if q.running || q.busy {
		return curated.Errorf(ClearWhileRunning)
	}
	q.cmds = q.cmds[:0]
	q.release()
	return nil
}

// Pending returns the number of commands waiting to be executed, including
// the one currently being executed.
func (q *Queue) Pending() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	n := len(q.cmds)
	return n
}

// Wait blocks until the queue is drained and the completion callback has
// returned. A negative timeout waits forever; a zero timeout polls; a
// positive timeout bounds the wait. Returns true if the queue was drained
// within the timeout.
func (q *Queue) Wait(timeout time.Duration) bool {
	q.crit.Lock()
	if len(q.cmds) == 0 && !q.busy && !q.cbRunning {
		q.crit.Unlock()
		return true
	}
	if timeout == 0 {
		q.crit.Unlock()
		return false
	}
	ch := make(chan struct{})
	q.waiters = append(q.waiters, ch)
	q.crit.Unlock()

	if timeout < 0 {
		<-ch
		return true
	}

	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

// signal wakes the executor. Non-blocking; a single pending wake is enough
// because the executor drains the queue in a loop.
func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// release all waiters. Called with the critical section held.
func (q *Queue) release() {
	for _, ch := range q.waiters {
		close(ch)
	}
	q.waiters = nil
}

func (q *Queue) executor() {
	for {
		select {
		case <-q.quit:
			return
		case <-q.wake:
		}

		for {
			q.crit.Lock()
			if !q.running || len(q.cmds) == 0 {
				q.crit.Unlock()
				break
			}
			cmd := q.cmds[0]
			q.busy = true
			q.crit.Unlock()

			q.processor.Process(cmd)

			q.crit.Lock()
			q.cmds = q.cmds[1:]
			q.busy = false
			if len(q.cmds) > 0 {
				q.crit.Unlock()
				continue
			}

			// the queue has drained. the callback runs before waiters are
			// released; cbRunning keeps Wait() honest in the interim
			cb := q.callback
			q.cbRunning = cb != nil
			q.crit.Unlock()

			if cb != nil {
				cb()
			}

			q.crit.Lock()
			q.cbRunning = false

			// the callback may have submitted more work. only release
			// waiters if the queue is still empty
			if len(q.cmds) == 0 {
				q.release()
			}
			q.crit.Unlock()
		}
	}
}

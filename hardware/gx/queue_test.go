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

package gx_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jetsetilly/gopherds/hardware/gx"
	"github.com/jetsetilly/gopherds/test"
)

// recorder is a Processor that logs every command it is given.
type recorder struct {
	crit  sync.Mutex
	seen  []gx.Command
	delay time.Duration
}

func (r *recorder) Process(c gx.Command) {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.crit.Lock()
	defer r.crit.Unlock()
	r.seen = append(r.seen, c)
}

func (r *recorder) count() int {
	r.crit.Lock()
	defer r.crit.Unlock()
	return len(r.seen)
}

func TestSubmissionOrder(t *testing.T) {
	r := &recorder{}
	q := gx.NewQueue(r)
	defer q.End()

	q.Submit(gx.MemoryFill{Value0: 1})
	q.Submit(gx.MemoryFill{Value0: 2})
	q.Submit(gx.MemoryFill{Value0: 3})

	// nothing runs until the queue is started
	test.ExpectEquality(t, r.count(), 0)
	test.ExpectEquality(t, q.Pending(), 3)

	q.Run()
	test.ExpectSuccess(t, q.Wait(-1))

	test.ExpectEquality(t, r.count(), 3)
	for i, c := range r.seen {
		test.ExpectEquality(t, c.(gx.MemoryFill).Value0, uint32(i+1))
	}
}

func TestStopAndClear(t *testing.T) {
	r := &recorder{}
	q := gx.NewQueue(r)
	defer q.End()

	q.Submit(gx.MemoryFill{})
	q.Submit(gx.MemoryFill{})

	// a polled wait on a queue with pending commands fails
	test.ExpectFailure(t, q.Wait(0))

	// the queue has not been stopped so clear must fail
	q.Run()
	q.Wait(-1)
	q.Submit(gx.MemoryFill{})
	test.ExpectFailure(t, q.Clear())

	q.Stop()

	// give the executor time to go idle before clearing
	for q.Clear() != nil {
		time.Sleep(time.Millisecond)
	}
	test.ExpectEquality(t, q.Pending(), 0)
	test.ExpectSuccess(t, q.Wait(0))
}

func TestWaitTimeout(t *testing.T) {
	r := &recorder{}
	q := gx.NewQueue(r)
	defer q.End()

	// stopped queue with a pending command never drains
	q.Submit(gx.MemoryFill{})
	test.ExpectFailure(t, q.Wait(10*time.Millisecond))

	q.Run()
	test.ExpectSuccess(t, q.Wait(time.Second))
}

func TestCallbackBeforeWaiters(t *testing.T) {
	r := &recorder{delay: 5 * time.Millisecond}
	q := gx.NewQueue(r)
	defer q.End()

	var fired atomic.Int32
	q.SetCallback(func() {
		fired.Add(1)
	})

	q.Run()
	q.Submit(gx.MemoryFill{})

	// by the time a waiter is released the callback must have returned
	test.ExpectSuccess(t, q.Wait(-1))
	test.ExpectEquality(t, fired.Load(), int32(1))

	// the callback fires once per drain
	q.Submit(gx.MemoryFill{})
	test.ExpectSuccess(t, q.Wait(-1))
	test.ExpectEquality(t, fired.Load(), int32(2))
}

func TestCallbackMaySubmit(t *testing.T) {
	r := &recorder{}
	q := gx.NewQueue(r)
	defer q.End()

	// the callback queues one extra command the first time it fires. the
	// waiter must not be released until that command has also completed
	var once sync.Once
	q.SetCallback(func() {
		once.Do(func() {
			q.Submit(gx.MemoryFill{Value0: 99})
		})
	})

	q.Run()
	q.Submit(gx.MemoryFill{Value0: 1})
	test.ExpectSuccess(t, q.Wait(-1))
	test.ExpectEquality(t, r.count(), 2)
}

package libtask

import "sync/atomic"

// Mutex provides mutual exclusion built on the event protocol: each
// Lock enqueues a fresh one-shot event behind the previous holder and
// blocks on the previous holder's event through the caller's latch;
// Unlock signals the holder's own event, releasing the next in line.
// Acquisition order is arrival order.
//
// Because the wait happens through a CountdownLatch, a Mutex blocks
// the calling thread, like sync.Mutex, but hands off through the same
// signal path as every other waitable in this package.
type Mutex struct {
	noCopy noCopy
	tail   atomic.Pointer[Event] // last acquisition in line
	cur    *Event                // event the current holder signals on unlock
}

// Lock acquires the mutex, blocking on latch until the previous
// holder has released it.
func (m *Mutex) Lock(latch CountdownLatch) {
	me := new(Event)
	if prev := m.tail.Swap(me); prev != nil {
		Wait(latch, prev)
	}
	m.cur = me
}

// Unlock releases the mutex, waking the next acquisition in line if
// one is queued. Unlocking a mutex that is not held panics.
func (m *Mutex) Unlock() {
	cur := m.cur
	if cur == nil {
		panic("libtask: unlock of an unlocked mutex")
	}
	m.cur = nil
	cur.Signal()
}

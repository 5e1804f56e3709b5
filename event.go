package libtask

import "sync/atomic"

// Waiter is a callback registered on an Event. Signal is invoked by
// the event's producer, on the producer's stack, at most once per
// event lifetime; the event is handed over with the call and the
// producer will not touch it again. The waiter itself may be
// destroyed as soon as Signal has been called.
type Waiter interface {
	Signal(e *Event)
}

// DeleteWaiter drops the event it is signaled with. It is the waiter
// of choice when nobody is left to observe the completion.
type DeleteWaiter struct{}

// Signal implements Waiter by discarding the event.
func (DeleteWaiter) Signal(*Event) {}

// NoopWaiter releases the event without observing it. Its canonical
// instance doubles as the address-stable signaled sentinel.
type NoopWaiter struct{}

// Signal implements Waiter by doing nothing.
func (NoopWaiter) Signal(*Event) {}

var (
	noopWaiter Waiter = NoopWaiter{}

	// signaled is the sentinel state value. Its address is owned by
	// this package, so it cannot collide with a caller's waiter
	// registration.
	signaled = &noopWaiter
)

// Event synchronizes one producer with one consumer. The producer
// calls Signal when it wants to notify the consumer; the consumer
// calls Wait or TryWait to register a callback, and DismissWait to
// revoke a registration that has not fired.
//
// An event is in one of three states: empty (no datum, no waiter),
// waited (a waiter is registered) or signaled. The whole state lives
// in a single pointer-width atomic: nil is empty, the package
// sentinel is signaled, and any other value is the registered waiter.
// All operations are wait-free and never block, allocate beyond the
// registration cell, or suspend.
//
// The zero Event is empty and ready for use. An Event must not be
// copied after first use.
type Event struct {
	noCopy noCopy
	state  atomic.Pointer[Waiter]
}

// Signal puts the event in the signaled state. If a waiter was
// registered it is invoked synchronously, here, with the event handed
// over. Data written before Signal is visible to the waiter's
// callback. Signal is one-shot; signaling twice is a contract
// violation and panics.
func (e *Event) Signal() {
	w := e.state.Swap(signaled)
	if w == signaled {
		panic("libtask: event signaled twice")
	}
	if w != nil {
		(*w).Signal(e)
	}
}

// Wait registers w with the event. If the event is already signaled,
// w is invoked synchronously instead (the fast path). Wait must not
// be called while another waiter is registered.
func (e *Event) Wait(w Waiter) {
	if !e.TryWait(w) {
		w.Signal(e)
	}
}

// TryWait registers w with the event and returns true, unless the
// event is already signaled, in which case it returns false and w is
// not invoked. A false return after a lost race with Signal is
// conservative: the event is signaled either way.
func (e *Event) TryWait(w Waiter) bool {
	if w == nil {
		panic("libtask: nil waiter")
	}
	old := e.state.Load()
	return old != signaled && e.state.CompareAndSwap(old, &w)
}

// DismissWait revokes a registration made with TryWait. It returns
// true if the event is left empty (whether or not a waiter was still
// registered) and false if the event is signaled, in which case the
// waiter has fired or is about to.
func (e *Event) DismissWait(Waiter) bool {
	old := e.state.Load()
	return old == nil ||
		(old != signaled && e.state.CompareAndSwap(old, nil))
}

// signaledNow reports whether the event has been signaled. It is a
// point-in-time observation for fast paths; the waiter protocol is
// the only way to synchronize with the producer.
func (e *Event) signaledNow() bool {
	return e.state.Load() == signaled
}

// WaitMany calls TryWait(w) on every non-nil event in events and
// returns how many were already signaled and how many registered w.
// The sum equals the count of non-nil events.
func WaitMany(w Waiter, events []*Event) (signaledCount, waitedCount int) {
	for _, e := range events {
		if e == nil {
			continue
		}
		if e.TryWait(w) {
			waitedCount++
		} else {
			signaledCount++
		}
	}
	return signaledCount, waitedCount
}

// DismissWaitMany calls DismissWait(w) on every non-nil event in
// events and returns the number of successful dismissals.
func DismissWaitMany(w Waiter, events []*Event) int {
	count := 0
	for _, e := range events {
		if e != nil && e.DismissWait(w) {
			count++
		}
	}
	return count
}

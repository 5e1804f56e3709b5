package libtask

// Waitable is anything that exposes an Event to synchronize on.
// Events, futures and shared futures are all waitable; user types
// join the protocol by implementing WaitEvent. The returned event
// remains owned by the waitable: callers may only register and
// dismiss waiters on it.
type Waitable interface {
	WaitEvent() *Event
}

// WaitEvent makes an event its own waitable.
func (e *Event) WaitEvent() *Event { return e }

// CountdownLatch counts signal deliveries and releases its single
// consumer when a target count is reached. It is the bridge between
// the wait-free event protocol and a blocked OS thread: events invoke
// Signal from the producer side, the consumer blocks in Wait.
//
//   - Reset sets the count to zero. Single-threaded, between wait
//     cycles only.
//   - Signal increments the count and wakes the consumer if its
//     target is reached. Thread-safe against Wait and other Signals.
//   - Wait blocks until the count reaches target, then consumes
//     (subtracts) that many. Single consumer.
type CountdownLatch interface {
	Waiter
	Reset()
	Wait(target int)
}

// Wait blocks the calling thread on latch until w completes. The
// fast path costs one failed registration when w is already
// signaled.
func Wait(latch CountdownLatch, w Waitable) {
	latch.Reset()
	w.WaitEvent().Wait(latch)
	latch.Wait(1)
}

// WaitAll blocks the calling thread on latch until every waitable in
// ws has completed. Waitables that are already signaled never
// register the latch and do not contribute to the count.
func WaitAll(latch CountdownLatch, ws ...Waitable) {
	latch.Reset()
	_, waited := WaitMany(latch, waitEvents(ws))
	if waited > 0 {
		latch.Wait(waited)
	}
}

// WaitAny blocks the calling thread on latch until at least one
// waitable in ws has completed, then revokes the remaining
// registrations. The final latch wait drains signals that were
// already in flight when the dismissal ran: the latch (and the
// events) may not be destroyed while a registration could still fire.
func WaitAny(latch CountdownLatch, ws ...Waitable) {
	latch.Reset()
	events := waitEvents(ws)
	signaledCount, waitedCount := WaitMany(latch, events)
	if signaledCount == 0 {
		latch.Wait(1)
	}
	dismissed := DismissWaitMany(latch, events)
	pending := waitedCount - dismissed
	if signaledCount == 0 {
		// One in-flight signal already released the latch above.
		pending--
	}
	if pending > 0 {
		latch.Wait(pending)
	}
}

func waitEvents(ws []Waitable) []*Event {
	events := make([]*Event, len(ws))
	for i, w := range ws {
		if w != nil {
			events[i] = w.WaitEvent()
		}
	}
	return events
}

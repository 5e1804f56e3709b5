package libtask

// sharedState is the rendezvous cell behind a promise/future pair:
// the producer's slot for the value (or error), published by
// signaling the embedded event.
type sharedState[T any] struct {
	Event
	value T
	err   error
}

// Promise is the producer side of a single-shot value transfer. The
// zero Promise is not usable; create one with NewPromise.
type Promise[T any] struct {
	state  *sharedState[T]
	future bool
}

// NewPromise creates a promise with a fresh shared state.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{state: new(sharedState[T])}
}

// Future returns the consumer side. It may be called once; the
// returned future owns the right to extract the value.
func (p *Promise[T]) Future() *Future[T] {
	if p.future {
		panic("libtask: future already retrieved")
	}
	p.future = true
	return &Future[T]{state: p.state}
}

// Set fulfills the promise with v and signals the consumer. A waiter
// registered on the future runs synchronously here, on the producer's
// stack. Fulfilling a promise twice panics.
func (p *Promise[T]) Set(v T) {
	p.state.value = v
	p.state.Signal()
}

// SetError fulfills the promise with an error instead of a value.
func (p *Promise[T]) SetError(err error) {
	p.state.err = err
	p.state.Signal()
}

// Future is the consumer side of a single-shot value transfer. It is
// waitable: WaitEvent exposes the shared state's event, so futures
// compose with Wait, WaitAll and WaitAny like any other waitable.
type Future[T any] struct {
	state *sharedState[T]
}

// Valid reports whether the future still refers to a shared state:
// false for the zero future and after Get or Share consumed it.
func (f *Future[T]) Valid() bool {
	return f.state != nil
}

// Ready reports whether the value has been delivered. A true result
// means Get will not block.
func (f *Future[T]) Ready() bool {
	return f.state.signaledNow()
}

// WaitEvent implements Waitable.
func (f *Future[T]) WaitEvent() *Event {
	return &f.state.Event
}

// Wait blocks the calling thread on latch until the future is ready.
func (f *Future[T]) Wait(latch CountdownLatch) {
	Wait(latch, f)
}

// Get waits for the value if necessary and extracts it, consuming the
// future. Getting from an invalid future panics.
func (f *Future[T]) Get(latch CountdownLatch) (T, error) {
	if !f.Valid() {
		panic("libtask: get on an invalid future")
	}
	if !f.Ready() {
		f.Wait(latch)
	}
	s := f.state
	f.state = nil
	return s.value, s.err
}

// takeState detaches the shared state, consuming the future. The
// multiplexer uses it to become the state's waiter.
func (f *Future[T]) takeState() *sharedState[T] {
	if !f.Valid() {
		panic("libtask: share of an invalid future")
	}
	s := f.state
	f.state = nil
	return s
}

package libtask

import (
	"sync"

	"github.com/gammazero/deque"
)

// SharedStateMultiplexer fans one future's completion out to any
// number of listeners. It registers itself as the waiter of the
// source future's shared state; when the producer signals, it moves
// the source value into its own slot and fulfills every pending
// listener with true. Listeners added after completion are fulfilled
// immediately.
//
// The mutex guards only the listener list; the moved-in value is
// published to each listener by the happens-before edge of that
// listener's own event.
type SharedStateMultiplexer[T any] struct {
	mu        sync.Mutex
	listeners deque.Deque[*Promise[bool]]
	completed bool

	src   *sharedState[T] // source state, until signaled
	value T
	err   error
}

// NewSharedStateMultiplexer consumes f and binds the multiplexer to
// its shared state as waiter. If f is already complete the transfer
// happens synchronously, before NewSharedStateMultiplexer returns.
func NewSharedStateMultiplexer[T any](f *Future[T]) *SharedStateMultiplexer[T] {
	m := &SharedStateMultiplexer[T]{src: f.takeState()}
	m.src.Wait(m)
	return m
}

// Signal implements Waiter. It runs on the producer's stack: the
// source value moves into the multiplexer, then the current listener
// list is taken under the mutex and every listener is fulfilled.
func (m *SharedStateMultiplexer[T]) Signal(*Event) {
	src := m.src
	m.src = nil
	m.value, m.err = src.value, src.err

	m.mu.Lock()
	m.completed = true
	pending := m.listeners
	m.listeners = deque.Deque[*Promise[bool]]{}
	m.mu.Unlock()

	for pending.Len() > 0 {
		pending.PopFront().Set(true)
	}
}

// AddListener returns a future that becomes ready (with true) when
// the source completes, or immediately if it already has.
func (m *SharedStateMultiplexer[T]) AddListener() *Future[bool] {
	p := NewPromise[bool]()
	f := p.Future()

	m.mu.Lock()
	if m.completed {
		m.mu.Unlock()
		p.Set(true)
		return f
	}
	m.listeners.PushBack(p)
	m.mu.Unlock()
	return f
}

// SharedFuture is a copyable view of a future's result. Every handle
// owns a private listener on the shared multiplexer, so each copy can
// wait and read independently; the value itself is produced once and
// shared. Handles are created with Share and duplicated with Clone.
type SharedFuture[T any] struct {
	state    *SharedStateMultiplexer[T]
	listener *Future[bool]
}

// Share consumes f and returns a shared view of its result.
func Share[T any](f *Future[T]) *SharedFuture[T] {
	state := NewSharedStateMultiplexer(f)
	return &SharedFuture[T]{state: state, listener: state.AddListener()}
}

// Clone returns an independent handle on the same result.
func (s *SharedFuture[T]) Clone() *SharedFuture[T] {
	return &SharedFuture[T]{state: s.state, listener: s.state.AddListener()}
}

// Valid reports whether the handle refers to a shared state.
func (s *SharedFuture[T]) Valid() bool {
	return s.state != nil && s.listener.Valid()
}

// Ready reports whether the result is available.
func (s *SharedFuture[T]) Ready() bool {
	return s.listener.Ready()
}

// WaitEvent implements Waitable through the handle's listener.
func (s *SharedFuture[T]) WaitEvent() *Event {
	return s.listener.WaitEvent()
}

// Wait blocks the calling thread on latch until the result is
// available.
func (s *SharedFuture[T]) Wait(latch CountdownLatch) {
	Wait(latch, s)
}

// Get waits for the result if necessary and returns it. Unlike
// Future.Get it does not consume the handle: every call and every
// clone observes the same value.
func (s *SharedFuture[T]) Get(latch CountdownLatch) (T, error) {
	if !s.Ready() {
		s.Wait(latch)
	}
	return s.state.value, s.state.err
}

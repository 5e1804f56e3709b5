package libtask

// Continuation is a typed, move-only handle over a suspended
// execution context. The type parameters fix the signature of the
// transfer: Resume hands an In to the suspended context, and Value
// observes the Out it emits at its next suspension.
//
// A continuation owns its stack: exactly one live handle refers to a
// given suspension point at a time, and Pilfer (or a transfer) leaves
// the handle terminated. A live continuation must be driven to
// termination (run to completion, or unwound with SignalExit) before
// it is dropped; a handle abandoned while live leaks its parked
// stack.
type Continuation[In, Out any] struct {
	noCopy noCopy
	pair   Pair
}

// FromPair reconstructs a continuation from a pair previously
// extracted with Pilfer. The caller is responsible for matching the
// signature to the one the pair was extracted under.
func FromPair[In, Out any](p Pair) *Continuation[In, Out] {
	return &Continuation[In, Out]{pair: p}
}

// Resume transfers control to the continuation, handing it in, and
// suspends the current stack until control is transferred back. On
// return the handle refers to whichever suspension point resumed us,
// and Value observes the datum it emitted. Resume returns its
// receiver so transfer loops read naturally.
//
// Resuming a terminated continuation is a contract violation and
// panics.
func (c *Continuation[In, Out]) Resume(in In) *Continuation[In, Out] {
	p := c.mustPilfer()
	c.pair = stackSwitch(p.sp, &in)
	return c
}

// Value returns the datum delivered at the last transfer. It is valid
// only until the next Resume. Calling Value with no data present is a
// contract violation and panics.
func (c *Continuation[In, Out]) Value() Out {
	if !c.HasData() {
		panic("libtask: continuation has no data")
	}
	return *c.pair.parm.(*Out)
}

// Terminated reports whether the continuation no longer refers to a
// live stack.
func (c *Continuation[In, Out]) Terminated() bool {
	return c.pair.sp == nil
}

// HasData reports whether a datum was delivered at the last transfer.
func (c *Continuation[In, Out]) HasData() bool {
	return c.pair.parm != nil
}

// Live reports whether the continuation is resumable and has a datum
// to observe.
func (c *Continuation[In, Out]) Live() bool {
	return !c.Terminated() && c.HasData()
}

// Pilfer extracts the raw pair and leaves the handle terminated. The
// pair can be moved to another handle with FromPair or type-erased
// with NewExitContinuation.
func (c *Continuation[In, Out]) Pilfer() Pair {
	p := c.pair
	c.pair = Pair{}
	return p
}

func (c *Continuation[In, Out]) mustPilfer() Pair {
	if c.Terminated() {
		panic("libtask: resume of a terminated continuation")
	}
	return c.Pilfer()
}

// ExitContinuation is a type-erased continuation destined to receive
// control exactly once, during teardown of another stack. It cannot
// be resumed with a value; the unwind machinery consumes it.
type ExitContinuation struct {
	pair Pair
}

// NewExitContinuation type-erases a continuation for use as an unwind
// target. The source handle is left terminated.
func NewExitContinuation[In, Out any](c *Continuation[In, Out]) ExitContinuation {
	return ExitContinuation{pair: c.mustPilfer()}
}

// Pilfer drains the exit continuation, leaving it terminated.
func (e *ExitContinuation) Pilfer() Pair {
	p := e.pair
	e.pair = Pair{}
	return p
}

// Terminated reports whether the exit continuation has been drained.
func (e *ExitContinuation) Terminated() bool {
	return e.pair.sp == nil
}

// exitUnwind is the orderly-exit carrier. It travels up the stack
// being torn down as a panic value, is caught by the startup
// trampoline and directs teardown at the carried continuation.
type exitUnwind struct {
	exitTo ExitContinuation
}

// abnormalUnwind is the abnormal-exit carrier: like exitUnwind, but
// the captured cause is re-raised on the target stack after teardown.
type abnormalUnwind struct {
	exitTo ExitContinuation
	cause  any
}

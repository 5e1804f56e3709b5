package libtask

// Splice injects fn on top of c's stack and transfers control there.
// fn runs on c's stack; its result becomes the datum c's suspended
// switch receives, exactly as if the splicer had resumed c with it.
// Splice returns the new continuation of c. A panic in fn becomes an
// abnormal exit directed back at the splicer.
func Splice[In, Out any](c *Continuation[In, Out], fn func() In) *Continuation[In, Out] {
	t := func(in Pair) Pair {
		r := Pair{sp: in.sp}
		func() {
			defer func() {
				if x := recover(); x != nil {
					panic(abnormalUnwind{exitTo: ExitContinuation{pair: r}, cause: x})
				}
			}()
			v := fn()
			r.parm = &v
		}()
		return r
	}
	return &Continuation[In, Out]{pair: executeInto(nil, c.mustPilfer().sp, t)}
}

// SpliceCC injects fn on top of c's stack, passing it the current
// continuation (the splicer's suspension point), and transfers
// control to whatever continuation fn returns. It is the
// continuation-passing form of Splice: fn decides both the datum and
// the destination.
func SpliceCC[In, Out any](
	c *Continuation[In, Out],
	fn func(*Continuation[Out, In]) *Continuation[Out, In],
) *Continuation[In, Out] {
	t := func(in Pair) Pair {
		cur := &Continuation[Out, In]{pair: Pair{sp: in.sp}}
		return fn(cur).mustPilfer()
	}
	return &Continuation[In, Out]{pair: executeInto(nil, c.mustPilfer().sp, t)}
}

// SignalExit unwinds c back to its caller: it splices a thunk onto
// c's stack that raises the orderly-exit carrier toward the reverse
// continuation. The carrier travels up c's frames (running their
// deferred functions), is caught by c's startup trampoline, and
// teardown transfers control back here. SignalExit returns normally
// with c terminated.
func SignalExit[In, Out any](c *Continuation[In, Out]) {
	SpliceCC(c, func(back *Continuation[Out, In]) *Continuation[Out, In] {
		panic(exitUnwind{exitTo: NewExitContinuation(back)})
	})
}

// WithEscapeContinuation runs fn and converts any panic escaping it
// into an abnormal exit directed at c, consuming c in the process. On
// normal return c is untouched. Code running on a context uses this
// to guarantee that no panic crosses a stack boundary undeclared.
func WithEscapeContinuation[In, Out any](fn func(), c *Continuation[In, Out]) {
	defer func() {
		if x := recover(); x != nil {
			panic(abnormalUnwind{exitTo: NewExitContinuation(c), cause: x})
		}
	}()
	fn()
}

package libtask

import "github.com/webriots/coro"

// CoroContext runs fn as the body of a new context, bridging the
// generator style of github.com/webriots/coro onto symmetric
// transfer. fn emits values with yield and receives the datum of the
// next resume as yield's result; when fn returns, the context exits
// orderly toward its creator. If the context is unwound while fn is
// suspended (SignalExit, abnormal exit), the underlying coroutine is
// cancelled.
//
// CoroContext is the convenient way to write generator-shaped
// contexts; NewContext remains the general form with full control
// over the teardown target.
func CoroContext[In, Out any](fn func(yield func(Out) In)) *Continuation[In, Out] {
	return NewContext[In, Out](func(c *Continuation[Out, In]) *Continuation[Out, In] {
		resume, cancel := coro.New(func(yield func(Out) In, _ func() In) (z Out) {
			fn(yield)
			return
		})
		defer cancel()

		var in In
		for {
			out, ok := resume(in)
			if !ok {
				return c
			}
			c = c.Resume(out)
			in = c.Value()
		}
	})
}

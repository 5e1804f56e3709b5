package libtask

// ContextOption configures a context created with NewContext.
type ContextOption func(*contextOptions)

type contextOptions struct {
	cleanup func()
}

// WithCleanup registers a hook that runs exactly once when the
// context is torn down, after its stack has fully unwound, on the
// stack that receives control. The hook must not panic; it is the
// place to release resources tied to the context's lifetime.
func WithCleanup(fn func()) ContextOption {
	return func(o *contextOptions) { o.cleanup = fn }
}

// startupArgs travel from the creator's stack to the new stack on the
// first transfer.
type startupArgs[In, Out any] struct {
	fn      func(*Continuation[Out, In]) *Continuation[Out, In]
	cleanup func()
}

// cleanupArgs travel from the dying stack to the teardown target.
type cleanupArgs struct {
	cleanup func()
	cause   any
}

// NewContext creates a new context and immediately transfers control
// to it. fn runs on the new stack and receives a handle to the
// creator; the continuation fn returns (typically the creator handle,
// after any number of transfers) is the teardown target. NewContext
// returns when the new context first transfers control back.
//
// Teardown is the only way a context ends. An orderly exit (fn
// returning, or SignalExit) resumes the target normally with a
// terminated handle. A panic escaping fn is captured and re-raised on
// the creator's stack after teardown, provided the creator handle is
// still live; otherwise the panic is fatal. Use
// WithEscapeContinuation to direct escapes elsewhere.
//
// A context whose handle is dropped while live is never torn down and
// leaks its parked stack.
func NewContext[In, Out any](
	fn func(*Continuation[Out, In]) *Continuation[Out, In],
	opts ...ContextOption,
) *Continuation[In, Out] {
	var o contextOptions
	for _, opt := range opts {
		opt(&o)
	}

	args := &startupArgs[In, Out]{fn: fn, cleanup: o.cleanup}
	pair := executeInto(args, newStack(), startupTrampoline[In, Out])
	return &Continuation[In, Out]{pair: pair}
}

// Callcc creates a context with default options. The name follows the
// call-with-current-continuation tradition: fn is applied to the
// continuation of the caller.
func Callcc[In, Out any](
	fn func(*Continuation[Out, In]) *Continuation[Out, In],
) *Continuation[In, Out] {
	return NewContext[In, Out](fn)
}

// startupTrampoline is the entry point of every context. It runs fn
// with the creator continuation, funnels the unwind carriers into a
// teardown target, and finishes with a final transfer into the
// cleanup trampoline on that target. No other panic may cross the
// switch boundary: a stray panic is redirected at the creator handle
// while it is live, and fatal otherwise.
func startupTrampoline[In, Out any](in Pair) Pair {
	args := in.parm.(*startupArgs[In, Out])
	cleanup := cleanupArgs{cleanup: args.cleanup}
	caller := &Continuation[Out, In]{pair: Pair{sp: in.sp}}

	target := func() (target cont) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			switch x := r.(type) {
			case exitUnwind:
				target = x.exitTo.Pilfer().sp
			case abnormalUnwind:
				target = x.exitTo.Pilfer().sp
				cleanup.cause = x.cause
			default:
				if caller.Terminated() {
					panic(r)
				}
				target = caller.Pilfer().sp
				cleanup.cause = r
			}
		}()
		ret := args.fn(caller)
		if ret == nil {
			panic("libtask: context function returned a nil continuation")
		}
		return ret.mustPilfer().sp
	}()

	finalInto(&cleanup, target, cleanupTrampoline)
	return Pair{}
}

// cleanupTrampoline runs on the teardown target's stack after the
// dying stack has fully unwound. It runs the context cleanup hook,
// re-raises a captured abnormal cause, and otherwise completes the
// target's suspended switch with the terminated pair.
func cleanupTrampoline(in Pair) Pair {
	args := in.parm.(*cleanupArgs)
	if args.cleanup != nil {
		defer args.cleanup()
	}
	if args.cause != nil {
		panic(args.cause)
	}
	return Pair{}
}

// Package libtask provides stackful symmetric coroutines
// ("continuations") and a wait-free event-notification primitive that
// together form the substrate for futures and composable asynchronous
// waiting.
//
// Key components:
//
//   - Continuation: a first-class, move-only handle to a suspended
//     execution context bound to a private stack. Control moves
//     between stacks with symmetric transfer: both sides of a switch
//     simply arrive at the other's next instruction.
//
//   - NewContext/Callcc: create a new context executing a user
//     function, with orderly and abnormal teardown tunneled back to
//     the creator through the startup and cleanup trampolines.
//
//   - Splice/SpliceCC/SignalExit: inject code on top of another
//     continuation's stack, either to hand it a value or to unwind
//     it back to its caller.
//
//   - Event: a single-slot three-state (empty/waited/signaled)
//     producer-consumer rendezvous. All transitions are wait-free and
//     never block, so events may be signaled from contexts that
//     cannot allocate or suspend.
//
//   - Wait/WaitAll/WaitAny: wait strategies that compose events with
//     a CountdownLatch to block an OS thread until one or all of a
//     set of waitables complete.
//
//   - Promise/Future and SharedFuture: single-shot value transfer
//     built on an event-embedded shared state, with a multiplexer
//     that fans one completion out to any number of listeners.
//
// The package is a mechanism, not a policy: there is no scheduler, no
// timers and no I/O integration. Continuations are cooperative and
// single-threaded on whichever thread currently holds them; events
// are the only primitive that may cross threads.
package libtask

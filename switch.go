package libtask

// The stack-switch substrate. Each stack is a goroutine; each
// suspension point is a fresh one-shot rendezvous channel. A cont
// names exactly one pending suspension point: sending a message to it
// resumes the parked goroutine, and the sender parks on a channel of
// its own which becomes the cont handed to the other side. Both sides
// of a switch therefore observe the same Pair shape, which is what
// makes the transfer symmetric.
//
// A trampoline carried with a message runs on the receiving
// goroutine, on top of the suspended switch: the Pair it returns
// becomes the result of that switch, and a panic it raises unwinds
// the receiver's frames, not the sender's.

// cont is a stack pointer: the suspension point of a parked stack. A
// cont is one-shot; after a message is delivered through it, the
// stack's next suspension is a different cont.
type cont chan message

// Pair is the value emitted by a stack switch: the suspension point
// of the peer that transferred control here, and a pointer to the
// datum it handed over. A nil stack pointer means the peer
// terminated; a nil parm means no datum was delivered.
type Pair struct {
	sp   cont
	parm any
}

// trampoline is a function executed on the target stack on arrival of
// a switch. Its result becomes the target's pending switch result.
type trampoline func(Pair) Pair

type message struct {
	pair Pair
	exec trampoline
}

// stackSwitch transfers control to target, handing it parm, and parks
// until some stack transfers control back here.
func stackSwitch(target cont, parm any) Pair {
	self := make(cont, 1)
	target <- message{pair: Pair{sp: self, parm: parm}}
	return park(self)
}

// executeInto is like stackSwitch but runs t on the target stack on
// arrival, with the pair {caller, arg} as its argument.
func executeInto(arg any, target cont, t trampoline) Pair {
	self := make(cont, 1)
	target <- message{pair: Pair{sp: self, parm: arg}, exec: t}
	return park(self)
}

// finalInto performs the last transfer a dying stack ever makes: it
// delivers t to the target without parking. The calling goroutine is
// expected to return immediately afterwards.
func finalInto(arg any, target cont, t trampoline) {
	target <- message{pair: Pair{parm: arg}, exec: t}
}

// park suspends the current stack on self until a message arrives. A
// carried trampoline runs here, on this goroutine, before the
// suspended switch completes.
func park(self cont) Pair {
	m := <-self
	if m.exec != nil {
		return m.exec(m.pair)
	}
	return m.pair
}

// newStack spawns a fresh parked stack and returns its bottom. The
// first message delivered must carry a trampoline (the context entry
// point); when that trampoline returns, the stack is gone.
func newStack() cont {
	ch := make(cont, 1)
	go func() {
		m := <-ch
		if m.exec == nil {
			panic("libtask: switch into an uninitialized stack")
		}
		m.exec(m.pair)
	}()
	return ch
}

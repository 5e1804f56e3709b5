package libtask

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// echoDouble is a context body that emits 0, then doubles every value
// it receives, until a negative value asks it to exit.
func echoDouble(c *Continuation[int, int]) *Continuation[int, int] {
	v := 0
	for {
		c = c.Resume(v)
		x := c.Value()
		if x < 0 {
			return c
		}
		v = x * 2
	}
}

func TestContextRoundTrip(t *testing.T) {
	r := require.New(t)

	var steps []string
	c := NewContext[int, string](func(c *Continuation[string, int]) *Continuation[string, int] {
		steps = append(steps, "start")
		c = c.Resume("hello")
		steps = append(steps, "resumed")
		r.Equal(42, c.Value())
		c = c.Resume("bye")
		return c
	})

	r.True(c.Live())
	r.False(c.Terminated())
	r.Equal("hello", c.Value())
	steps = append(steps, "creator")

	c.Resume(42)
	r.Equal("bye", c.Value())

	c.Resume(0)
	r.True(c.Terminated())
	r.False(c.HasData())
	r.Equal([]string{"start", "creator", "resumed"}, steps)
}

func TestContextFirstEntryHasNoData(t *testing.T) {
	r := require.New(t)

	c := NewContext[int, int](func(c *Continuation[int, int]) *Continuation[int, int] {
		r.False(c.HasData())
		c = c.Resume(1)
		r.True(c.HasData())
		return c
	})
	c.Resume(0)
	r.True(c.Terminated())
}

func TestFibonacci(t *testing.T) {
	r := require.New(t)

	fib := NewContext[int, int](func(c *Continuation[int, int]) *Continuation[int, int] {
		a, b := 0, 1
		for {
			c = c.Resume(a)
			if c.Value() < 0 {
				break
			}
			a, b = b, a+b
		}
		return c
	})

	var got []int
	for i := 0; i < 8; i++ {
		got = append(got, fib.Value())
		fib.Resume(1)
	}
	r.Equal([]int{0, 1, 1, 2, 3, 5, 8, 13}, got)

	fib.Resume(-1)
	r.True(fib.Terminated())
}

func TestPilferRoundTrip(t *testing.T) {
	r := require.New(t)

	c := NewContext[int, int](echoDouble)
	r.Equal(0, c.Value())

	p := c.Pilfer()
	r.True(c.Terminated())
	r.False(c.HasData())

	c2 := FromPair[int, int](p)
	r.Equal(0, c2.Value())
	c2.Resume(21)
	r.Equal(42, c2.Value())

	c2.Resume(-1)
	r.True(c2.Terminated())
}

func TestSignalExitUnwinds(t *testing.T) {
	r := require.New(t)

	unwound := false
	c := NewContext[int, int](func(c *Continuation[int, int]) *Continuation[int, int] {
		defer func() { unwound = true }()
		v := 0
		for {
			c = c.Resume(v)
			v = c.Value() + 1
		}
	})

	c.Resume(10)
	r.Equal(11, c.Value())
	r.False(unwound)

	SignalExit(c)
	r.True(c.Terminated())
	r.True(unwound)
}

func TestAbnormalExitRethrownOnCreator(t *testing.T) {
	r := require.New(t)

	boom := errors.New("boom")
	c := NewContext[int, int](func(c *Continuation[int, int]) *Continuation[int, int] {
		c = c.Resume(1)
		panic(boom)
	})
	r.Equal(1, c.Value())

	var got any
	func() {
		defer func() { got = recover() }()
		c.Resume(0)
	}()
	r.Equal(boom, got)
	r.True(c.Terminated())
}

func TestAbnormalExitAtStartup(t *testing.T) {
	r := require.New(t)

	boom := errors.New("early boom")
	r.PanicsWithValue(boom, func() {
		NewContext[int, int](func(c *Continuation[int, int]) *Continuation[int, int] {
			panic(boom)
		})
	})
}

func TestWithEscapeContinuation(t *testing.T) {
	r := require.New(t)

	boom := errors.New("escaped")
	c := NewContext[int, int](func(c *Continuation[int, int]) *Continuation[int, int] {
		c = c.Resume(1)
		WithEscapeContinuation(func() {
			panic(boom)
		}, c)
		return c
	})
	r.Equal(1, c.Value())

	var got any
	func() {
		defer func() { got = recover() }()
		c.Resume(0)
	}()
	r.Equal(boom, got)
}

func TestCleanupRunsAfterUnwind(t *testing.T) {
	r := require.New(t)

	var order []string
	c := NewContext[int, int](func(c *Continuation[int, int]) *Continuation[int, int] {
		defer func() { order = append(order, "unwind") }()
		v := 0
		for {
			c = c.Resume(v)
			v = c.Value()
		}
	}, WithCleanup(func() { order = append(order, "cleanup") }))

	SignalExit(c)
	r.Equal([]string{"unwind", "cleanup"}, order)
}

func TestCleanupRunsOnOrderlyReturn(t *testing.T) {
	r := require.New(t)

	cleanups := 0
	c := NewContext[int, int](func(c *Continuation[int, int]) *Continuation[int, int] {
		c = c.Resume(1)
		return c
	}, WithCleanup(func() { cleanups++ }))

	c.Resume(0)
	r.True(c.Terminated())
	r.Equal(1, cleanups)
}

func TestResumeTerminatedPanics(t *testing.T) {
	r := require.New(t)

	c := NewContext[int, int](func(c *Continuation[int, int]) *Continuation[int, int] {
		return c.Resume(1)
	})
	c.Resume(0)
	r.True(c.Terminated())

	r.PanicsWithValue("libtask: resume of a terminated continuation", func() {
		c.Resume(0)
	})
}

func TestValueWithoutDataPanics(t *testing.T) {
	r := require.New(t)

	var c Continuation[int, int]
	r.PanicsWithValue("libtask: continuation has no data", func() {
		c.Value()
	})
}

func TestCallcc(t *testing.T) {
	r := require.New(t)

	c := Callcc[int, int](func(c *Continuation[int, int]) *Continuation[int, int] {
		c = c.Resume(99)
		return c
	})
	r.Equal(99, c.Value())
	c.Resume(0)
	r.True(c.Terminated())
}

func TestContextChain(t *testing.T) {
	r := require.New(t)

	// An inner context created by an outer one; the outer forwards
	// values through it, exercising transfers among three stacks.
	outer := NewContext[int, int](func(c *Continuation[int, int]) *Continuation[int, int] {
		inner := NewContext[int, int](echoDouble)
		for {
			c = c.Resume(inner.Value())
			x := c.Value()
			if x < 0 {
				inner.Resume(-1)
				return c
			}
			inner.Resume(x)
		}
	})

	r.Equal(0, outer.Value())
	outer.Resume(3)
	r.Equal(6, outer.Value())
	outer.Resume(10)
	r.Equal(20, outer.Value())
	outer.Resume(-1)
	r.True(outer.Terminated())
}

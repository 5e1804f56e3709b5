package libtask

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoroContextFibonacci(t *testing.T) {
	r := require.New(t)

	fib := CoroContext[int, int](func(yield func(int) int) {
		a, b := 0, 1
		for {
			if yield(a) < 0 {
				return
			}
			a, b = b, a+b
		}
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

func TestCoroContextEcho(t *testing.T) {
	r := require.New(t)

	c := CoroContext[string, string](func(yield func(string) string) {
		greeting := "hello"
		for {
			in := yield(greeting)
			if in == "" {
				return
			}
			greeting = "hello " + in
		}
	})

	r.Equal("hello", c.Value())
	c.Resume("world")
	r.Equal("hello world", c.Value())
	c.Resume("")
	r.True(c.Terminated())
}

func TestCoroContextSignalExit(t *testing.T) {
	r := require.New(t)

	gen := CoroContext[int, int](func(yield func(int) int) {
		for {
			yield(1)
		}
	})
	r.Equal(1, gen.Value())

	SignalExit(gen)
	r.True(gen.Terminated())
}

package selectors

import (
	"sync"
	"sync/atomic"

	"github.com/starford/notebookd/internal/state"
)

// Selector is a memoized derivation over *state.State. It remembers the
// inputs of its last evaluation and recomputes only when one of them
// differs (==) from the previous call.
type Selector[R any] struct {
	eval           func(*state.State) R
	recomputations atomic.Int64
}

// Select evaluates the selector against st.
func (s *Selector[R]) Select(st *state.State) R { return s.eval(st) }

// Recomputations reports how many times the result function ran.
func (s *Selector[R]) Recomputations() int64 { return s.recomputations.Load() }

// Create1 builds a selector from one input and a result function.
func Create1[A comparable, R any](in func(*state.State) A, fn func(A) R) *Selector[R] {
	s := &Selector[R]{}
	var (
		mu   sync.Mutex
		ok   bool
		last A
		out  R
	)
	s.eval = func(st *state.State) R {
		a := in(st)
		mu.Lock()
		defer mu.Unlock()
		if ok && a == last {
			return out
		}
		out = fn(a)
		last, ok = a, true
		s.recomputations.Add(1)
		return out
	}
	return s
}

// Create2 builds a selector from two inputs and a result function.
func Create2[A, B comparable, R any](inA func(*state.State) A, inB func(*state.State) B, fn func(A, B) R) *Selector[R] {
	s := &Selector[R]{}
	var (
		mu    sync.Mutex
		ok    bool
		lastA A
		lastB B
		out   R
	)
	s.eval = func(st *state.State) R {
		a, b := inA(st), inB(st)
		mu.Lock()
		defer mu.Unlock()
		if ok && a == lastA && b == lastB {
			return out
		}
		out = fn(a, b)
		lastA, lastB, ok = a, b, true
		s.recomputations.Add(1)
		return out
	}
	return s
}

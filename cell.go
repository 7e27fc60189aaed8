package packrat

import (
	"sync"

	"github.com/tef/packrat/bundle"
)

type cellState int32

const (
	cellPending cellState = iota
	cellRunning
	cellDone
)

// Cell is the write-once memo cell behind one non-terminal at one position
// (spec §4.3/§4.9 "Lazy memo cells"). A Force call either returns the
// already-computed result, runs compute exactly once, or, if it is
// reentered while already Running, reports a left-recursion failure
// instead of recursing forever.
//
// The mutex implements spec §5's reader-synchronization note ("a mutex per
// cell or a CAS ... suffices"). It guards only the state transitions:
// Force marks the cell Running under the lock and runs compute after
// releasing it, so any second Force that arrives while compute runs,
// reentrant or from another goroutine, sees Running and gets the
// left-recursion failure rather than waiting for the first caller's
// result. Cell's left-recursion detection is therefore only correct when
// every Force on a given cell comes from the same logical parse walk (the
// supported usage: Grammar.Parse* drives one TailTable chain from a single
// goroutine); concurrent Force calls on the same cell from unrelated
// goroutines are not supported.
type Cell[R any] struct {
	name string

	mu    sync.Mutex
	state cellState
	value ResultList[R]
}

// NewCell returns an unevaluated cell for the non-terminal named name.
func NewCell[R any](name string) *Cell[R] {
	return &Cell[R]{name: name}
}

// Force runs compute on first call and caches the result for every
// subsequent call.
func (c *Cell[R]) Force(pos int, compute func() ResultList[R]) ResultList[R] {
	c.mu.Lock()
	switch c.state {
	case cellDone:
		v := c.value
		c.mu.Unlock()
		return v
	case cellRunning:
		c.mu.Unlock()
		return leftRecursionFailure[R](c.name, pos)
	}
	c.state = cellRunning
	c.mu.Unlock()

	result := compute()

	c.mu.Lock()
	c.state = cellDone
	c.value = result
	c.mu.Unlock()
	return result
}

func leftRecursionFailure[R any](name string, pos int) ResultList[R] {
	return ResultList[R]{Failure: Failure{
		Present:  true,
		Position: pos,
		Expected: []string{"NonTerminal at endOfInput"},
	}}
}

// undefinedRuleFailure is what Memo.Force returns when name was Forward'd
// but never Defined (spec-equivalent of the teacher's "missing rule"):
// distinct from leftRecursionFailure, since the two are different bugs —
// this one is a reference to a name m.cells simply does not have, not a
// reentrant Force on a cell that exists. CheckConcurrent looks for this
// exact message to turn it into a real error instead of a silent failure.
func undefinedRuleFailure[R any](name string, pos int) ResultList[R] {
	return ResultList[R]{Failure: Failure{
		Present:  true,
		Position: pos,
		Expected: []string{"missing rule " + name},
	}}
}

// Memo is the fully-lazy bundle of per-non-terminal Cells at one input
// position (spec §3 "Tail table": memo_i). Every cell is allocated
// eagerly (cheap: just a struct), but its compute closure only runs on
// first Force, which is what makes field k's evaluation never force an
// unrelated field j (spec §4.3 step 3).
type Memo struct {
	cells   map[string]*Cell[any]
	compute map[string]func() ResultList[any]
}

func newMemo(b *bundle.Bundle, node *TailTable) *Memo {
	names := b.Names()
	m := &Memo{
		cells:   make(map[string]*Cell[any], len(names)),
		compute: make(map[string]func() ResultList[any], len(names)),
	}
	for _, name := range names {
		name := name
		boxed, _ := b.Get(name)
		p := boxed.(Parser[any])
		m.cells[name] = NewCell[any](name)
		m.compute[name] = func() ResultList[any] { return traced(node, name, p) }
	}
	return m
}

// Force looks up and forces the named non-terminal's cell, the mechanism
// behind the NT combinator (spec §4.4 "Non-terminal reference").
func (m *Memo) Force(name string, pos int) ResultList[any] {
	cell, ok := m.cells[name]
	if !ok {
		return undefinedRuleFailure[any](name, pos)
	}
	return cell.Force(pos, m.compute[name])
}

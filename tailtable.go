package packrat

import "github.com/tef/packrat/bundle"

// TailTable is one node of the input-tail chain (spec §3/§4.3): the suffix
// of the input starting here, the memoized bundle of every non-terminal's
// result list at this position, and the rest of the chain. There are
// exactly Len(originalInput)+1 nodes; the last one has Suffix.Empty() true
// and Next nil.
type TailTable struct {
	Suffix Seq
	Memo   *Memo
	Next   *TailTable

	rt *runtimeContext
}

// Len reports the number of prime elements remaining at this position,
// which doubles as the failure-position measurement (spec I3).
func (t *TailTable) Len() int {
	if t == nil {
		return 0
	}
	return t.Suffix.Len()
}

// Drop advances n nodes along the chain, used by primitive token
// combinators after consuming n prime elements. Drop past the end of the
// chain returns nil.
func Drop(t *TailTable, n int) *TailTable {
	for ; n > 0 && t != nil; n-- {
		t = t.Next
	}
	return t
}

// BuildTailTable performs the right-to-left scan of spec §4.3: it walks
// the input's suffixes from the empty one back to the full sequence,
// allocating one TailTable node and one Memo per position, with each
// Memo's cells closing over the node itself (not its eventual value) so
// that a cell forced later sees every position to its right already
// linked in.
func BuildTailTable(b *bundle.Bundle, s Seq, opts ...TailTableOption) *TailTable {
	rt := newRuntimeContext(opts)
	tails := s.Tails()
	var next *TailTable
	for i := len(tails) - 1; i >= 0; i-- {
		node := &TailTable{Suffix: tails[i], Next: next, rt: rt}
		node.Memo = newMemo(b, node)
		next = node
	}
	return next
}

// RetailHead recomputes only the leading node of t with wrap applied to a
// single named field (spec §4.5's parseComplete: start ↦ start <* eof).
// The new head gets a fresh memo in which every other field keeps its
// original, unwrapped parser (and is recomputed there on demand), while
// every other position's memo is reused unchanged — wrapping the whole
// bundle would incorrectly force
// every non-terminal reachable from start to also consume to EOF, not
// just start itself.
func RetailHead(b *bundle.Bundle, t *TailTable, name string, wrap func(Parser[any]) Parser[any]) *TailTable {
	wrapped := bundle.Map(b, func(n string, v any) any {
		if n == name {
			return wrap(v.(Parser[any]))
		}
		return v
	})
	head := &TailTable{Suffix: t.Suffix, Next: t.Next, rt: t.rt}
	head.Memo = newMemo(wrapped, head)
	return head
}

package packrat

// Parser is the closure a combinator expression denotes (spec §3): a pure
// function of the tail table that returns every ambiguous parse starting
// there, plus the furthest failure reached along the way. A Parser owns
// no mutable state; all sharing lives in the TailTable it is given.
type Parser[R any] func(*TailTable) ResultList[R]

// Box erases a Parser's result type to `any`, the one place this engine
// deliberately reaches for a type assertion instead of static typing: Go
// has no way to store a Bundle of Parser[R] for varying R without it.
func Box[R any](p Parser[R]) Parser[any] {
	return func(t *TailTable) ResultList[any] {
		return Fmap(func(v R) any { return v }, p(t))
	}
}

// Unbox is Box's inverse, asserting every boxed value back to R.
func Unbox[R any](p Parser[any]) Parser[R] {
	return func(t *TailTable) ResultList[R] {
		return Fmap(func(v any) R { return v.(R) }, p(t))
	}
}

// PureP lifts a value into a Parser that succeeds with it, consuming
// nothing (spec §4.4 "pure(v)").
func PureP[R any](v R) Parser[R] {
	return func(t *TailTable) ResultList[R] { return Pure(t, v) }
}

// EmptyP always fails without consuming input and without a label (spec
// §4.4 "empty").
func EmptyP[R any]() Parser[R] {
	return func(t *TailTable) ResultList[R] { return EmptyResult[R](t) }
}

// FailP always fails with the given label (spec §4.4 "fail(msg)").
func FailP[R any](msg string) Parser[R] {
	return func(t *TailTable) ResultList[R] { return FailResult[R](t, msg) }
}

// Unexpected fails immediately with msg as the expected label (spec §4.4
// "unexpected(msg)"); distinct from FailP only in intent, not mechanism.
func Unexpected[R any](msg string) Parser[R] {
	return FailP[R](msg)
}

// FmapP applies f to every success of p (spec §4.4 "fmap(f, p)").
func FmapP[R, S any](f func(R) S, p Parser[R]) Parser[S] {
	return func(t *TailTable) ResultList[S] { return Fmap(f, p(t)) }
}

// EOF succeeds, consuming nothing, iff the tail table's suffix is empty
// (spec §4.4 "eof").
func EOF(t *TailTable) ResultList[struct{}] {
	if t == nil || t.Suffix.Empty() {
		return Pure(t, struct{}{})
	}
	return FailResult[struct{}](t, "endOfInput")
}

// NonTerminal is a typed handle into a Grammar's bundle, used both to
// build NT references inside other combinators and to extract results at
// the top level (spec §4.4 "nt(field_selector)", §4.6).
type NonTerminal[R any] struct {
	name string
}

// Name returns the non-terminal's field name.
func (nt NonTerminal[R]) Name() string { return nt.name }

// NT resolves a non-terminal reference against the memoized bundle at the
// current position (spec §4.4): it never runs the grammar body itself,
// only forces (or reuses) the memo cell for nt at this position.
func NT[R any](nt NonTerminal[R]) Parser[R] {
	return func(t *TailTable) ResultList[R] {
		if t == nil {
			return leftRecursionFailure[R](nt.name, 0)
		}
		boxed := t.Memo.Force(nt.name, t.Len())
		return Fmap(func(v any) R { return v.(R) }, boxed)
	}
}

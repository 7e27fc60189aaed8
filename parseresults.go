package packrat

// Continuation is one alternative parse: the value produced and the
// sequence remaining after it (spec §6 "(S, R)").
type Continuation[R any] struct {
	Remaining Seq
	Value     R
}

// ParseResults is the top-level-boundary sum type from spec §6: either a
// non-empty list of alternative (remaining, value) continuations, or a
// ParseFailure. Unlike ResultList, which always carries both a success set
// and a failure record, ParseResults collapses to the disjoint Ok/Err shape
// a caller at the API boundary actually wants.
type ParseResults[R any] struct {
	Err     error
	Results []Continuation[R]
}

// IsOk reports whether the parse produced at least one result.
func (pr ParseResults[R]) IsOk() bool { return pr.Err == nil }

func toParseResults[R any](rl ResultList[R], length int) ParseResults[R] {
	successes := rl.Successes()
	if len(successes) == 0 {
		return ParseResults[R]{Err: rl.Failure.AsError(length)}
	}
	out := make([]Continuation[R], len(successes))
	for i, s := range successes {
		var rem Seq = EmptySeq{}
		if s.Rest != nil {
			rem = s.Rest.Suffix
		}
		out[i] = Continuation[R]{Remaining: rem, Value: s.Value}
	}
	return ParseResults[R]{Results: out}
}

// ParsePrefixResults is ParsePrefix narrowed to the spec §6 boundary type.
func ParsePrefixResults[R any](g *Grammar, start NonTerminal[R], input Seq) ParseResults[R] {
	return toParseResults(ParsePrefix(g, start, input), input.Len())
}

// ParseCompleteResults is ParseComplete narrowed to the spec §6 boundary
// type.
func ParseCompleteResults[R any](g *Grammar, start NonTerminal[R], input Seq) ParseResults[R] {
	return toParseResults(ParseComplete(g, start, input), input.Len())
}

// ParseResultsBundle computes, for every non-terminal in g independently,
// the same parsePrefix-or-parseComplete result spec §6 describes for a
// single start symbol, and returns them as a bundle of ParseResults[any]
// (spec §6: "both returning a bundle of ParseResults<...> — one field per
// non-terminal"). Each field is computed as if it alone were start: this
// is deliberately N independent RetailHead calls rather than one
// whole-bundle eof-wrap, because wrapping every field at once would make
// any non-terminal that references a sibling at position 0 incorrectly
// require that sibling to reach EOF too.
func ParseResultsBundle(g *Grammar, input Seq, complete bool) map[string]ParseResults[any] {
	t := BuildTailTable(g.bundle, input)
	length := input.Len()
	out := make(map[string]ParseResults[any], g.bundle.Len())
	for _, name := range g.bundle.Names() {
		var rl ResultList[any]
		if complete {
			head := RetailHead(g.bundle, t, name, func(p Parser[any]) Parser[any] {
				return ThenKeepLeft(p, EOF)
			})
			rl = head.Memo.Force(name, head.Len())
		} else {
			rl = t.Memo.Force(name, t.Len())
		}
		out[name] = toParseResults(rl, length)
	}
	return out
}

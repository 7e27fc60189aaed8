package packrat

import (
	"unicode/utf8"

	"github.com/tef/packrat/peg"
)

// PegResult is the measured, single-result sum spec §4.7 calls
// MeasuredPegParser's output when the PEG parser's input is the tail
// table itself (the `longest`/`peg` pair): either Parsed(length, value,
// rest) or NoParse(failure).
type PegResult[R any] struct {
	ok      bool
	Length  int
	Value   R
	Rest    *TailTable
	Failure Failure
}

// PegParsed builds a successful PegResult.
func PegParsed[R any](length int, value R, rest *TailTable) PegResult[R] {
	return PegResult[R]{ok: true, Length: length, Value: value, Rest: rest}
}

// PegNoParse builds a failed PegResult.
func PegNoParse[R any](f Failure) PegResult[R] {
	return PegResult[R]{Failure: f}
}

// Ok reports whether r succeeded.
func (r PegResult[R]) Ok() bool { return r.ok }

// MeasuredPegParser is spec §4.7's `MeasuredPegParser<G, List<(S,G<ResultList>)>, R>`:
// a backtracking, single-result parser whose input is a tail table, the
// same input Parser[R] takes.
type MeasuredPegParser[R any] func(*TailTable) PegResult[R]

// Longest adapts a context-free Parser into a MeasuredPegParser by
// committing to one result (spec §4.7 `longest`): run p(t); with no
// successes, propagate the failure; otherwise pick the success with the
// largest consumed length, ties broken by engine order (first one seen at
// the max wins).
func Longest[R any](p Parser[R]) MeasuredPegParser[R] {
	return func(t *TailTable) PegResult[R] {
		rl := p(t)
		successes := rl.Successes()
		if len(successes) == 0 {
			return PegNoParse[R](rl.Failure)
		}
		best := successes[0]
		for _, s := range successes[1:] {
			if s.Consumed > best.Consumed {
				best = s
			}
		}
		return PegParsed(best.Consumed, best.Value, best.Rest)
	}
}

// PEG is Longest's inverse (spec §4.7 `peg`): Parsed becomes a
// single-success ResultList, NoParse becomes a no-success ResultList
// carrying q's failure.
func PEG[R any](q MeasuredPegParser[R]) Parser[R] {
	return func(t *TailTable) ResultList[R] {
		res := q(t)
		if !res.Ok() {
			return ResultList[R]{Failure: res.Failure}
		}
		return singleSuccess(ResultInfo[R]{Consumed: res.Length, Rest: res.Rest, Value: res.Value})
	}
}

// RawPegResult is the measured, single-result sum for PEG parsers whose
// input is a raw sequence rather than a tail table (spec §4.7
// `terminalPEG`'s `MeasuredPegParser<G, S, R>`).
type RawPegResult[R any] struct {
	ok      bool
	Length  int
	Value   R
	Failure Failure
}

func RawParsed[R any](length int, value R) RawPegResult[R] {
	return RawPegResult[R]{ok: true, Length: length, Value: value}
}

func RawNoParse[R any](f Failure) RawPegResult[R] { return RawPegResult[R]{Failure: f} }

func (r RawPegResult[R]) Ok() bool { return r.ok }

// RawPegParser is a backtracking, single-result parser over a bare
// sequence, with no tail table in scope.
type RawPegParser[R any] func(Seq) RawPegResult[R]

// TerminalPEG lifts a RawPegParser into the CFG world (spec §4.7
// `terminalPEG`): feed q the current suffix (or the empty sequence at the
// end of input); Parsed(l, v) becomes a success that continues l
// positions further along the tail table; NoParse propagates the
// failure unchanged.
func TerminalPEG[R any](q RawPegParser[R]) Parser[R] {
	return func(t *TailTable) ResultList[R] {
		var s Seq = EmptySeq{}
		if t != nil {
			s = t.Suffix
		}
		res := q(s)
		if !res.Ok() {
			return ResultList[R]{Failure: res.Failure}
		}
		return singleSuccess(ResultInfo[R]{Consumed: res.Length, Rest: Drop(t, res.Length), Value: res.Value})
	}
}

// FromPEGScanner bridges package peg's byte/rune Scanner engine into a
// RawPegParser, so peg.Literal/peg.CharClass-built parsers (and anything
// else grounded on oskoi-pigeon's runtime) can be wired in through
// TerminalPEG (EXPANSION: spec.md leaves the raw-sequence PEG engine
// itself unspecified; package peg is the concrete one this module ships).
// The sequence's prime elements must be runes; seqToBytes panics via a
// failed type assertion otherwise, matching spec §7's "internal error
// from token primitives" class.
func FromPEGScanner[R any](q peg.Parser[R], opts ...peg.Option) RawPegParser[R] {
	return func(s Seq) RawPegResult[R] {
		data := seqToBytes(s)
		sc := peg.NewScanner(data, opts...)
		res := q(sc)
		if !res.Ok() {
			return RawNoParse[R](Failure{
				Present:  true,
				Position: s.Len(),
				Expected: res.Failure.Expected,
			})
		}
		consumed := utf8.RuneCount(data[:res.Length])
		return RawParsed[R](consumed, res.Value)
	}
}

func seqToBytes(s Seq) []byte {
	var runes []rune
	for {
		v, rest, ok := s.Head()
		if !ok {
			break
		}
		runes = append(runes, v.(rune))
		s = rest
	}
	return []byte(string(runes))
}

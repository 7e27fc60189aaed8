// Package token provides concrete packrat.Seq implementations and the
// primitive, leaf-level parser combinators grammars are built from: text
// scanning on runes, grounded on golang.org/x/text/runes the way
// cogentcore-core's text/text/style.go and golang-tools' gopls hover.go
// both lean on that package for rune classification, and a generic token
// stream for grammars over an already-lexed alphabet.
package token

import (
	"unicode"

	"golang.org/x/text/runes"

	"github.com/tef/packrat"
)

// RuneSeq is a packrat.Seq over a decoded []rune slice (spec §3 "Input
// sequence S", text alphabet instantiation).
type RuneSeq []rune

func (s RuneSeq) Head() (any, packrat.Seq, bool) {
	if len(s) == 0 {
		return nil, s, false
	}
	return s[0], s[1:], true
}

func (s RuneSeq) TakeWhile(pred func(any) bool) (packrat.Seq, packrat.Seq) {
	i := 0
	for i < len(s) && pred(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func (s RuneSeq) Empty() bool { return len(s) == 0 }

func (s RuneSeq) HasPrefix(literal string) (packrat.Seq, bool) {
	lits := []rune(literal)
	if len(lits) > len(s) {
		return nil, false
	}
	for i, r := range lits {
		if s[i] != r {
			return nil, false
		}
	}
	return s[len(lits):], true
}

func (s RuneSeq) Len() int { return len(s) }

func (s RuneSeq) Tails() []packrat.Seq {
	tails := make([]packrat.Seq, len(s)+1)
	for i := 0; i <= len(s); i++ {
		tails[i] = s[i:]
	}
	return tails
}

// NewRuneSeq decodes a string into a RuneSeq.
func NewRuneSeq(text string) RuneSeq { return RuneSeq([]rune(text)) }

// TokenSeq is a packrat.Seq over an already-lexed slice of tokens of any
// comparable element type T, for grammars that run on top of a separate
// lexer instead of raw text.
type TokenSeq[T comparable] []T

func (s TokenSeq[T]) Head() (any, packrat.Seq, bool) {
	if len(s) == 0 {
		return nil, s, false
	}
	return s[0], s[1:], true
}

func (s TokenSeq[T]) TakeWhile(pred func(any) bool) (packrat.Seq, packrat.Seq) {
	i := 0
	for i < len(s) && pred(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func (s TokenSeq[T]) Empty() bool { return len(s) == 0 }

func (s TokenSeq[T]) HasPrefix(literal string) (packrat.Seq, bool) {
	return nil, false
}

func (s TokenSeq[T]) Len() int { return len(s) }

func (s TokenSeq[T]) Tails() []packrat.Seq {
	tails := make([]packrat.Seq, len(s)+1)
	for i := 0; i <= len(s); i++ {
		tails[i] = s[i:]
	}
	return tails
}

// Satisfy succeeds with the next rune if pred accepts it (spec §6
// "Primitive parsers ... Token predicates are host-provided").
func Satisfy(pred func(rune) bool, label string) packrat.Parser[rune] {
	return func(t *packrat.TailTable) packrat.ResultList[rune] {
		if t == nil || t.Suffix.Empty() {
			return packrat.FailResult[rune](t, label)
		}
		v, rest, _ := t.Suffix.Head()
		r, ok := v.(rune)
		if !ok {
			panic("token.Satisfy: sequence element is not a rune")
		}
		if !pred(r) {
			return packrat.FailResult[rune](t, label)
		}
		return packrat.Pure(packrat.Drop(t, 1), r)
	}
}

// AnyRune matches any single rune.
func AnyRune() packrat.Parser[rune] {
	return Satisfy(func(rune) bool { return true }, "any character")
}

// NotSatisfy succeeds with the next rune iff pred rejects it.
func NotSatisfy(pred func(rune) bool, label string) packrat.Parser[rune] {
	return Satisfy(func(r rune) bool { return !pred(r) }, label)
}

// RuneIn matches a single rune from table, built on golang.org/x/text/runes'
// Set wrapper the way cogentcore-core's text styling code and golang-tools'
// hover.go classify runes against a *unicode.RangeTable.
func RuneIn(table *unicode.RangeTable, label string) packrat.Parser[rune] {
	set := runes.In(table)
	return Satisfy(func(r rune) bool { return set.Contains(r) }, label)
}

// RuneRange matches a single rune in [lo, hi], the inline two-endpoint form
// of RuneIn for grammars that want a literal character range (e.g. 'a'-'z')
// without building a *unicode.RangeTable by hand. Built on the same
// golang.org/x/text/runes.In as RuneIn, over a one-range table spanning
// lo..hi.
func RuneRange(lo, hi rune, label string) packrat.Parser[rune] {
	return RuneIn(runeRangeTable(lo, hi), label)
}

func runeRangeTable(lo, hi rune) *unicode.RangeTable {
	if hi <= 0xFFFF {
		return &unicode.RangeTable{R16: []unicode.Range16{{Lo: uint16(lo), Hi: uint16(hi), Stride: 1}}}
	}
	return &unicode.RangeTable{R32: []unicode.Range32{{Lo: uint32(lo), Hi: uint32(hi), Stride: 1}}}
}

// StringLit matches literal exactly (spec §6 "string literals").
func StringLit(literal string) packrat.Parser[string] {
	return func(t *packrat.TailTable) packrat.ResultList[string] {
		var s packrat.Seq = packrat.EmptySeq{}
		if t != nil {
			s = t.Suffix
		}
		if _, ok := s.HasPrefix(literal); !ok {
			return packrat.FailResult[string](t, quoteLiteral(literal))
		}
		return packrat.Pure(packrat.Drop(t, len([]rune(literal))), literal)
	}
}

func quoteLiteral(s string) string { return "\"" + s + "\"" }

// TakeWhile matches the longest run of runes satisfying pred (possibly
// empty), spec §3's "taking a longest prefix satisfying a predicate".
func TakeWhile(pred func(rune) bool) packrat.Parser[string] {
	return func(t *packrat.TailTable) packrat.ResultList[string] {
		if t == nil {
			return packrat.Pure[string](nil, "")
		}
		prefix, _ := t.Suffix.TakeWhile(func(v any) bool { return pred(v.(rune)) })
		n := prefix.Len()
		return packrat.Pure(packrat.Drop(t, n), seqToString(prefix))
	}
}

// TakeWhile1 is TakeWhile requiring at least one matching rune.
func TakeWhile1(pred func(rune) bool, label string) packrat.Parser[string] {
	return func(t *packrat.TailTable) packrat.ResultList[string] {
		rl := TakeWhile(pred)(t)
		for info := range rl.All() {
			if info.Value == "" {
				return packrat.FailResult[string](t, label)
			}
		}
		return rl
	}
}

// Scan consumes the longest prefix for which step keeps accepting,
// threading an accumulator state through each rune (spec §4.4's "scan"
// primitive — attoparsec's Scan is the same shape: start is the initial
// state, step inspects one rune against the current state and either
// advances it and continues or stops). Unlike TakeWhile's predicate, step
// may reject a rune based on everything seen so far, e.g. to cap a run's
// length or track bracket depth.
func Scan[S any](start S, step func(state S, r rune) (S, bool)) packrat.Parser[string] {
	return func(t *packrat.TailTable) packrat.ResultList[string] {
		if t == nil {
			return packrat.Pure[string](nil, "")
		}
		state := start
		var collected []rune
		n := 0
		s := t.Suffix
		for {
			v, rest, ok := s.Head()
			if !ok {
				break
			}
			r, ok := v.(rune)
			if !ok {
				panic("token.Scan: sequence element is not a rune")
			}
			next, keep := step(state, r)
			if !keep {
				break
			}
			state = next
			collected = append(collected, r)
			s = rest
			n++
		}
		return packrat.Pure(packrat.Drop(t, n), string(collected))
	}
}

// SatisfyToken is Satisfy generalized to any comparable token element type,
// for grammars built over TokenSeq[T] instead of raw runes.
func SatisfyToken[T comparable](pred func(T) bool, label string) packrat.Parser[T] {
	return func(t *packrat.TailTable) packrat.ResultList[T] {
		if t == nil || t.Suffix.Empty() {
			return packrat.FailResult[T](t, label)
		}
		v, _, _ := t.Suffix.Head()
		tok, ok := v.(T)
		if !ok {
			panic("token.SatisfyToken: sequence element has unexpected type")
		}
		if !pred(tok) {
			return packrat.FailResult[T](t, label)
		}
		return packrat.Pure(packrat.Drop(t, 1), tok)
	}
}

// AnyToken matches any single token, the TokenSeq[T] counterpart of
// AnyRune (spec §4.4's "anyToken" primitive).
func AnyToken[T comparable]() packrat.Parser[T] {
	return SatisfyToken[T](func(T) bool { return true }, "any token")
}

// AnySatisfy is AnyToken's spec-name alias.
func AnySatisfy[T comparable]() packrat.Parser[T] { return AnyToken[T]() }

// NotSatisfyToken is NotSatisfy generalized to any comparable token element
// type, the TokenSeq[T] counterpart.
func NotSatisfyToken[T comparable](pred func(T) bool, label string) packrat.Parser[T] {
	return SatisfyToken[T](func(tok T) bool { return !pred(tok) }, label)
}

func seqToString(s packrat.Seq) string {
	var rs []rune
	for {
		v, rest, ok := s.Head()
		if !ok {
			break
		}
		rs = append(rs, v.(rune))
		s = rest
	}
	return string(rs)
}

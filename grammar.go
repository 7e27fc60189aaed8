package packrat

import (
	"context"
	"fmt"
	"strings"

	"github.com/tef/packrat/bundle"
	"github.com/tef/packrat/config"
	"github.com/tef/packrat/diagnostic"
)

// Grammar is a set of mutually recursive non-terminals (spec §3/§4.1): a
// named, ordered bundle of Parser[any] values, the Go rendering of the
// heterogeneous record-of-parsers the spec describes, generalizing the
// teacher's (tef-ez) Grammar struct of rules/names/nameIdx into Define
// over an arbitrary bundle.Bundle instead of a fixed builder-DSL tree.
type Grammar struct {
	bundle *bundle.Bundle
	config config.Options
	tracer *diagnostic.Tracer
}

// NewGrammar returns an empty grammar ready for Define calls.
func NewGrammar() *Grammar {
	return &Grammar{bundle: bundle.New()}
}

// Configure attaches opts to g: every ParsePrefix/ParseComplete/
// CheckConcurrent call against g afterwards consults opts.Debug (via a
// diagnostic.Tracer logging one record per non-terminal entry/exit) and
// opts.MaxExprCount (via a force budget that fails the parse once
// exhausted), the ambient-stack wiring config.Options otherwise sat on
// unread. Configure returns g so it chains after NewGrammar/Define calls.
func (g *Grammar) Configure(opts config.Options) *Grammar {
	g.config = opts
	g.tracer = diagnostic.NewTracer(nil, opts.Debug)
	return g
}

// tailTableOptions translates g's config.Options into the TailTableOptions
// BuildTailTable needs to thread a tracer and force budget through the
// chain it builds.
func (g *Grammar) tailTableOptions() []TailTableOption {
	var opts []TailTableOption
	if g.tracer != nil {
		opts = append(opts, WithTracer(g.tracer))
	}
	if g.config.MaxExprCount > 0 {
		opts = append(opts, WithMaxForce(g.config.MaxExprCount))
	}
	return opts
}

// Define adds a named non-terminal to g and returns a typed handle to it
// (spec §4.1/§4.6). p may freely reference other non-terminals, including
// ones not yet defined or ones that reference p itself (direct or mutual
// recursion): NT only resolves names against the finished bundle at
// parse time, never at Define time, so definition order does not matter.
// A left-recursive reference is not parsed: it fails with the
// "NonTerminal at endOfInput" label instead of looping.
func Define[R any](g *Grammar, name string, p Parser[R]) NonTerminal[R] {
	g.bundle.Define(name, Box(p))
	return NonTerminal[R]{name: name}
}

// Forward returns a NonTerminal handle for name without requiring it to be
// Defined yet, grounded on the teacher's (tef-ez) g.Call(name): grammars
// with mutual or self-reference (a parser for "expr" that needs to refer
// to "factor" before "factor" is Defined, or to itself) use Forward to
// obtain the handle up front and Define later. NT only resolves the name
// against the bundle when the returned Parser actually runs, so the order
// of Forward and Define calls does not matter as long as every forwarded
// name is eventually Defined before parsing.
func Forward[R any](name string) NonTerminal[R] {
	return NonTerminal[R]{name: name}
}

// Check validates that g is well-formed enough to parse with: it has at
// least one rule and start names a defined rule ("starting rule
// undefined", the teacher's ez.go term for the same check). Unlike the
// teacher, which can also flag every unused rule by walking its
// builder-DSL's explicit call graph, a Grammar built from opaque Parser
// closures has no call graph to walk: nothing in a Parser[R] value records
// which other names it references until it actually runs. Check does not
// claim unused-rule detection; CheckConcurrent provides the dynamic
// counterpart of the teacher's "missing rule" check instead.
func Check[R any](g *Grammar, start NonTerminal[R]) error {
	if g.bundle.Len() == 0 {
		return fmt.Errorf("packrat: grammar has no rules")
	}
	if !g.bundle.Has(start.name) {
		return fmt.Errorf("packrat: starting rule %q is undefined", start.name)
	}
	return nil
}

// CheckConcurrent additionally smoke-tests every rule by forcing it once
// against the empty tail table, concurrently via bundle.TraverseConcurrent
// (spec §4.1(c)'s effectful traversal, instantiated for "run and catch
// panics" the way golang-tools' gopls cache fans out per-package checks).
// A rule that panics when forced surfaces as an error here instead of at
// the first real parse. It also catches the teacher's "missing rule" case
// dynamically: Forward declares a NonTerminal handle without requiring its
// name to be Defined yet, so a grammar can be built with a dangling
// forward reference that Check's purely-structural pass cannot see; when
// CheckConcurrent forces a rule whose parse tree reaches that reference
// (Memo.Force's undefinedRuleFailure, labeled "missing rule <name>"), it is
// reported as an error here rather than silently folded into an ordinary
// parse failure. A reference gated behind a literal or predicate that
// CheckConcurrent's empty probe never satisfies is not caught by this pass
// — there is no sound way to reach it without running a real parse, the
// same opaque-closure limit Check documents.
func CheckConcurrent[R any](ctx context.Context, g *Grammar, start NonTerminal[R]) error {
	if err := Check(g, start); err != nil {
		return err
	}
	empty := BuildTailTable(g.bundle, EmptySeq{}, g.tailTableOptions()...)
	_, err := bundle.TraverseConcurrent(ctx, g.bundle, func(_ context.Context, name string, v any) (result any, forceErr error) {
		defer func() {
			if r := recover(); r != nil { // a panicking rule is reported as a failed force, not a crash
				forceErr = fmt.Errorf("packrat: rule %q panicked: %v", name, r)
			}
		}()
		p := v.(Parser[any])
		rl := p(empty)
		if missing, ok := missingRuleName(rl.Failure); ok {
			return nil, fmt.Errorf("packrat: rule %q references missing rule %q", name, missing)
		}
		return v, nil
	})
	return err
}

// missingRuleName reports the name undefinedRuleFailure tagged f with, if
// any.
func missingRuleName(f Failure) (string, bool) {
	if !f.Present {
		return "", false
	}
	for _, e := range f.Expected {
		if name, ok := strings.CutPrefix(e, "missing rule "); ok {
			return name, true
		}
	}
	return "", false
}

// ParsePrefix runs start against input and returns every ambiguous parse
// that consumes a prefix of it, plus the furthest failure reached (spec
// §4.5 "parsePrefix"). Unlike ParseComplete, a successful ResultInfo here
// may leave input unconsumed.
func ParsePrefix[R any](g *Grammar, start NonTerminal[R], input Seq) ResultList[R] {
	t := BuildTailTable(g.bundle, input, g.tailTableOptions()...)
	return recoverToFailure(input.Len(), func() ResultList[R] { return NT(start)(t) })
}

// ParseComplete runs start against input, keeping only parses that
// consume the entire input (spec §4.5 "parseComplete"): start is
// rewritten, for this call only, to start <* eof. Every other
// non-terminal keeps its unwrapped parser, so sub-parses performed while
// evaluating start are free to stop short of input's end.
func ParseComplete[R any](g *Grammar, start NonTerminal[R], input Seq) ResultList[R] {
	t := BuildTailTable(g.bundle, input, g.tailTableOptions()...)
	head := RetailHead(g.bundle, t, start.name, func(p Parser[any]) Parser[any] {
		return ThenKeepLeft(p, EOF)
	})
	return recoverToFailure(input.Len(), func() ResultList[R] { return NT(start)(head) })
}

// recoverToFailure runs fn and, if it panics, converts the panic into a
// ParseFailure instead of letting it escape (spec §7 "internal errors from
// token primitives" — the one unrecoverable failure class, caught at the
// single boundary every parse passes through), matching oskoi-pigeon's own
// recover() wrapper around its generated parse method.
func recoverToFailure[R any](pos int, fn func() ResultList[R]) (out ResultList[R]) {
	defer func() {
		if r := recover(); r != nil {
			out = ResultList[R]{Failure: Failure{
				Present:  true,
				Position: pos,
				Expected: []string{fmt.Sprintf("internal: %v", r)},
			}}
		}
	}()
	return fn()
}

// EmptySeq is the canonical zero-length Seq, used by CheckConcurrent to
// probe a rule without any real input.
type EmptySeq struct{}

func (EmptySeq) Head() (any, Seq, bool)              { return nil, EmptySeq{}, false }
func (EmptySeq) TakeWhile(func(any) bool) (Seq, Seq) { return EmptySeq{}, EmptySeq{} }
func (EmptySeq) Empty() bool                         { return true }
func (EmptySeq) HasPrefix(literal string) (Seq, bool) {
	if literal == "" {
		return EmptySeq{}, true
	}
	return EmptySeq{}, false
}
func (EmptySeq) Len() int     { return 0 }
func (EmptySeq) Tails() []Seq { return []Seq{EmptySeq{}} }

package packrat

import (
	"context"
	"sync/atomic"

	"github.com/tef/packrat/diagnostic"
)

// runtimeContext is the per-parse state shared by every node of one
// TailTable chain: the optional debug tracer and the optional NT-force
// budget (spec §6/SPEC_FULL.md's ambient-stack wiring of config.Options.Debug
// and config.Options.MaxExprCount). It is allocated once by BuildTailTable
// and carried unchanged into RetailHead's replacement head node, so tracing
// and budget state survive the parseComplete rewrite.
type runtimeContext struct {
	ctx      context.Context
	tracer   *diagnostic.Tracer
	maxForce uint64
	forced   atomic.Uint64
}

// TailTableOption configures the runtimeContext a TailTable chain is built
// with.
type TailTableOption func(*runtimeContext)

// WithTracer attaches a diagnostic.Tracer that logs one record per
// non-terminal entry/exit as each cell is actually computed (not on cache
// hits, since a memoized cell is only ever computed once).
func WithTracer(t *diagnostic.Tracer) TailTableOption {
	return func(rt *runtimeContext) { rt.tracer = t }
}

// WithMaxForce bounds the number of distinct (non-terminal, position)
// computations a parse may perform before every further force fails
// (config.Options.MaxExprCount's packrat analogue of oskoi-pigeon's
// maxExprCnt guard). Zero (the default) is unbounded.
func WithMaxForce(n uint64) TailTableOption {
	return func(rt *runtimeContext) { rt.maxForce = n }
}

func newRuntimeContext(opts []TailTableOption) *runtimeContext {
	rt := &runtimeContext{ctx: context.Background()}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// charge reports whether another cell computation may proceed, consuming
// one unit of budget if so. Always true when unbounded.
func (rt *runtimeContext) charge() bool {
	if rt.maxForce == 0 {
		return true
	}
	return rt.forced.Add(1) <= rt.maxForce
}

// traced wraps p's invocation at node with entry/exit tracing and the
// force budget, the single place every non-terminal computation (as
// opposed to every memoized cache hit) passes through.
func traced(node *TailTable, name string, p Parser[any]) ResultList[any] {
	rt := node.rt
	pos := node.Len()
	if !rt.charge() {
		return ResultList[any]{Failure: Failure{
			Present:  true,
			Position: pos,
			Expected: []string{"max expression count exceeded"},
		}}
	}
	rt.tracer.Enter(rt.ctx, name, pos)
	result := p(node)
	rt.tracer.Exit(rt.ctx, name, pos, result.HasSuccess())
	return result
}

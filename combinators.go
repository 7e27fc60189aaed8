package packrat

func singleSuccess[R any](info ResultInfo[R]) ResultList[R] {
	return ResultList[R]{tree: leafNode(info)}
}

// Seq2 sequences p then q, combining their values with combine: for every
// success (l1,t1,a) of p and every success (l2,t2,b) of q(t1), it emits
// (l1+l2, t2, combine(a,b)). Failures from both operands are merged (spec
// §4.4 "Sequencing p <*> q"), which is the shape every other two-operand
// sequencing combinator in this file (Apply, ThenKeepLeft, ThenKeepRight)
// is built from.
func Seq2[A, B, C any](p Parser[A], q Parser[B], combine func(A, B) C) Parser[C] {
	return func(t *TailTable) ResultList[C] {
		rp := p(t)
		out := ResultList[C]{Failure: rp.Failure}
		for ia := range rp.All() {
			rq := q(ia.Rest)
			out = Merge(out, ResultList[C]{Failure: rq.Failure})
			for ib := range rq.All() {
				out = Merge(out, singleSuccess(ResultInfo[C]{
					Consumed: ia.Consumed + ib.Consumed,
					Rest:     ib.Rest,
					Value:    combine(ia.Value, ib.Value),
				}))
			}
		}
		return out
	}
}

// Apply is sequencing with function application, spec §4.4's `p <*> q`.
func Apply[A, B any](pf Parser[func(A) B], pa Parser[A]) Parser[B] {
	return Seq2(pf, pa, func(f func(A) B, a A) B { return f(a) })
}

// ThenKeepLeft is `p <* q`: sequence, keep p's value.
func ThenKeepLeft[A, B any](p Parser[A], q Parser[B]) Parser[A] {
	return Seq2(p, q, func(a A, _ B) A { return a })
}

// ThenKeepRight is `p *> q`: sequence, keep q's value.
func ThenKeepRight[A, B any](p Parser[A], q Parser[B]) Parser[B] {
	return Seq2(p, q, func(_ A, b B) B { return b })
}

// Bind is spec §4.4's monadic `p >>= k`: identical to sequencing except
// the continuation parser is chosen from p's value.
func Bind[A, B any](p Parser[A], k func(A) Parser[B]) Parser[B] {
	return func(t *TailTable) ResultList[B] {
		rp := p(t)
		out := ResultList[B]{Failure: rp.Failure}
		for ia := range rp.All() {
			rq := k(ia.Value)(ia.Rest)
			out = Merge(out, ResultList[B]{Failure: rq.Failure})
			for ib := range rq.All() {
				out = Merge(out, singleSuccess(ResultInfo[B]{
					Consumed: ia.Consumed + ib.Consumed,
					Rest:     ib.Rest,
					Value:    ib.Value,
				}))
			}
		}
		return out
	}
}

// Alt is unbiased choice, spec §4.4's `p <|> q`: both alternatives run,
// both result sets are retained, ambiguity is preserved.
func Alt[R any](p, q Parser[R]) Parser[R] {
	return func(t *TailTable) ResultList[R] { return Merge(p(t), q(t)) }
}

// Biased is spec §4.4's `p <<|> q`: if p has any success, p's result
// (successes and failure record) is returned unchanged and q is never
// evaluated; otherwise p's and q's results are merged.
func Biased[R any](p, q Parser[R]) Parser[R] {
	return func(t *TailTable) ResultList[R] {
		rp := p(t)
		if rp.HasSuccess() {
			return rp
		}
		return Merge(rp, q(t))
	}
}

// Try is the soft cut from spec §4.4: it rewinds p's failure record to
// the position p started at and clears its labels, so p's internal
// failure depth cannot dominate an enclosing Alt's diagnostics. Successes
// pass through untouched — Try never undoes a successful consumption,
// only reshapes failure reporting (spec §9 Open Question).
func Try[R any](p Parser[R]) Parser[R] {
	return func(t *TailTable) ResultList[R] {
		return RewindFailure(p(t), t.Len())
	}
}

// Label is spec §4.4's `p <?> msg`: if p failed without consuming any
// input, replace its expected labels with [msg].
func Label[R any](p Parser[R], msg string) Parser[R] {
	return func(t *TailTable) ResultList[R] {
		return Relabel(p(t), t.Len(), msg)
	}
}

// NotFollowedBy succeeds, consuming nothing, iff p has no success (spec
// §4.4).
func NotFollowedBy[R any](p Parser[R]) Parser[struct{}] {
	return func(t *TailTable) ResultList[struct{}] {
		if !p(t).HasSuccess() {
			return Pure(t, struct{}{})
		}
		return FailResult[struct{}](t, "notFollowedBy")
	}
}

// LookAhead runs p and, on success, collapses every success to zero
// consumption anchored back at t (spec §4.4): ambiguous successes stay
// ambiguous, just all at length 0.
func LookAhead[R any](p Parser[R]) Parser[R] {
	return func(t *TailTable) ResultList[R] {
		rl := p(t)
		if !rl.HasSuccess() {
			return rl
		}
		out := ResultList[R]{Failure: rl.Failure}
		for info := range rl.All() {
			out = Merge(out, singleSuccess(ResultInfo[R]{Consumed: 0, Rest: t, Value: info.Value}))
		}
		return out
	}
}

// SkipMany is the greedy kleene star from spec §4.4:
// skipMany(p) = pure(unit) <|> (p *> skipMany(p)).
func SkipMany[R any](p Parser[R]) Parser[struct{}] {
	var self Parser[struct{}]
	self = func(t *TailTable) ResultList[struct{}] {
		return Alt(PureP[struct{}](struct{}{}), ThenKeepRight(p, self))(t)
	}
	return self
}

// Many is SkipMany's value-collecting cousin (EXPANSION: spec.md leaves
// the "zero or more, collect values" combinator as a primitive the
// grammar author supplies, but every non-trivial grammar needs it — see
// the teacher's Repeat and oskoi-pigeon's parseZeroOrMoreExpr).
func Many[R any](p Parser[R]) Parser[[]R] {
	var self Parser[[]R]
	self = func(t *TailTable) ResultList[[]R] {
		return Alt(PureP[[]R](nil), Seq2(p, self, func(head R, tail []R) []R {
			out := make([]R, 0, len(tail)+1)
			out = append(out, head)
			return append(out, tail...)
		}))(t)
	}
	return self
}

// Many1 requires at least one match, grounded on oskoi-pigeon's
// parseOneOrMoreExpr.
func Many1[R any](p Parser[R]) Parser[[]R] {
	return Seq2(p, Many(p), func(head R, tail []R) []R {
		out := make([]R, 0, len(tail)+1)
		out = append(out, head)
		return append(out, tail...)
	})
}

// SepBy1/SepBy are the comma-list combinators, grounded on
// other_examples/jba-parco__parco.go's List, adapted to preserve
// ambiguity instead of committing to one result.
func SepBy1[R, S any](item Parser[R], sep Parser[S]) Parser[[]R] {
	return Seq2(item, Many(ThenKeepRight(sep, item)), func(head R, tail []R) []R {
		out := make([]R, 0, len(tail)+1)
		out = append(out, head)
		return append(out, tail...)
	})
}

func SepBy[R, S any](item Parser[R], sep Parser[S]) Parser[[]R] {
	return Alt(SepBy1(item, sep), PureP[[]R](nil))
}

// AmbiguousGroup is the value ambiguous(p) wraps every length group's
// values into (spec §4.4.2).
type AmbiguousGroup[R any] struct {
	Values []R
}

// Ambiguous implements spec §4.4.2: within each length group of p's
// result list, all values at that length are wrapped into a single
// AmbiguousGroup; the outer result list then contains at most one value
// per length.
func Ambiguous[R any](p Parser[R]) Parser[AmbiguousGroup[R]] {
	return func(t *TailTable) ResultList[AmbiguousGroup[R]] {
		rl := p(t)
		out := ResultList[AmbiguousGroup[R]]{Failure: rl.Failure}
		for _, group := range rl.Groups() {
			values := make([]R, len(group.Values))
			var rest *TailTable
			for i, info := range group.Values {
				values[i] = info.Value
				rest = info.Rest
			}
			out = Merge(out, singleSuccess(ResultInfo[AmbiguousGroup[R]]{
				Consumed: group.Consumed,
				Rest:     rest,
				Value:    AmbiguousGroup[R]{Values: values},
			}))
		}
		return out
	}
}

// Package bundle implements the heterogeneous, named-field bundle
// abstraction (spec §3/§4.1): a fixed set of named slots whose values are
// parameterized by a shared functor F, without requiring Go's type system
// to express F<R> for varying F (Go has no higher-kinded types). Instead a
// Bundle is an ordered, name-indexed registry of `any` values, generalizing
// the teacher's (tef-ez) ad hoc g.names/g.nameIdx bookkeeping into a
// reusable type with Map/Fold/Traverse over every slot.
package bundle

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Slot is one named field of a Bundle.
type Slot struct {
	Name  string
	Value any
}

// Bundle is an ordered collection of named slots. The order in which slots
// were defined is preserved by Names, Map, Fold, Traverse, and the bundle
// TraverseConcurrent returns.
type Bundle struct {
	slots []Slot
	index map[string]int
}

// New returns an empty Bundle.
func New() *Bundle {
	return &Bundle{index: make(map[string]int)}
}

// Define appends a new named slot, returning its index. Redefining an
// existing name is a programmer error and panics, matching spec §7's
// "malformed grammar bundle is a host-language static error".
func (b *Bundle) Define(name string, v any) int {
	if _, ok := b.index[name]; ok {
		panic("bundle: duplicate field " + name)
	}
	idx := len(b.slots)
	b.slots = append(b.slots, Slot{Name: name, Value: v})
	b.index[name] = idx
	return idx
}

// Get returns the value stored under name.
func (b *Bundle) Get(name string) (any, bool) {
	idx, ok := b.index[name]
	if !ok {
		return nil, false
	}
	return b.slots[idx].Value, true
}

// Has reports whether name is defined.
func (b *Bundle) Has(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Names returns every slot name, in definition order.
func (b *Bundle) Names() []string {
	names := make([]string, len(b.slots))
	for i, s := range b.slots {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of slots.
func (b *Bundle) Len() int { return len(b.slots) }

// Map applies a natural transformation to every field (spec §4.1(a)):
// ∀R. F<R> → H<R>, modeled here as a plain `func(name string, v any) any`
// since R itself is erased to `any` at this layer.
func Map(b *Bundle, eta func(name string, v any) any) *Bundle {
	out := New()
	for _, s := range b.slots {
		out.Define(s.Name, eta(s.Name, s.Value))
	}
	return out
}

// Fold combines every field into a monoid M via φ: ∀R. F<R> → M, folded
// left to right in definition order (spec §4.1(b)).
func Fold[M any](b *Bundle, zero M, phi func(name string, v any, acc M) M) M {
	acc := zero
	for _, s := range b.slots {
		acc = phi(s.Name, s.Value, acc)
	}
	return acc
}

// Traverse runs an effectful natural transformation ψ over every field in
// definition order, stopping at the first error (spec §4.1(c), sequential
// instantiation of the effect functor E = error-or-value).
func Traverse(ctx context.Context, b *Bundle, psi func(context.Context, string, any) (any, error)) (*Bundle, error) {
	out := New()
	for _, s := range b.slots {
		v, err := psi(ctx, s.Name, s.Value)
		if err != nil {
			return nil, err
		}
		out.Define(s.Name, v)
	}
	return out, nil
}

// TraverseConcurrent is the same effectful traversal instantiated with
// E = "run every field concurrently, first error cancels the rest",
// built on golang.org/x/sync/errgroup the way golang-tools' own
// gopls cache fans out per-package work and collects the first failure.
func TraverseConcurrent(ctx context.Context, b *Bundle, psi func(context.Context, string, any) (any, error)) (*Bundle, error) {
	results := make([]any, len(b.slots))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range b.slots {
		i, s := i, s
		g.Go(func() error {
			v, err := psi(ctx, s.Name, s.Value)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := New()
	for i, s := range b.slots {
		out.Define(s.Name, results[i])
	}
	return out, nil
}

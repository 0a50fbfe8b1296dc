package ast

import "entail/internal/source"

// Bound is a closed set: *TraitBound, *LifetimeBound, *VerbatimBound.
type Bound interface {
	Node
	boundNode()
}

// BoundModifier is the `?`, `~const` or `const` prefix of a trait bound.
type BoundModifier uint8

const (
	ModNone BoundModifier = iota
	ModMaybe
	ModMaybeConst
	ModConst
)

// BoundLifetimes is a `for<'a, 'b>` quantifier.
type BoundLifetimes struct {
	Lifetimes []*Lifetime
	Span      source.Span
}

// IsEmpty reports whether the quantifier binds nothing (`for<>` or absent).
func (b *BoundLifetimes) IsEmpty() bool {
	return b == nil || len(b.Lifetimes) == 0
}

// TraitBound is `?Sized`, `for<'a> Fn(&'a u8)`, `(Trait)`, `Iterator<Item = T>`.
type TraitBound struct {
	Paren        bool
	Modifier     BoundModifier
	ForLifetimes *BoundLifetimes
	Path         *Path
	Span         source.Span
}

type LifetimeBound struct {
	Lifetime *Lifetime
}

// VerbatimBound keeps bounds the rewriter has no reason to understand (`use<'a, T>`).
type VerbatimBound struct {
	Text string
	Span source.Span
}

func (b *TraitBound) Range() source.Span     { return b.Span }
func (b *LifetimeBound) Range() source.Span  { return b.Lifetime.Span }
func (b *VerbatimBound) Range() source.Span  { return b.Span }
func (b *BoundLifetimes) Range() source.Span { return b.Span }

func (*TraitBound) boundNode()    {}
func (*LifetimeBound) boundNode() {}
func (*VerbatimBound) boundNode() {}

// BoundsSpan covers the first through the last bound of a list.
func BoundsSpan(bounds []Bound) source.Span {
	if len(bounds) == 0 {
		return source.Span{}
	}
	return bounds[0].Range().Cover(bounds[len(bounds)-1].Range())
}

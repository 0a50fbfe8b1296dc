package ast

import "entail/internal/source"

// Generics is the `<...>` parameter list plus the where clause of an item.
type Generics struct {
	Params []GenericParam
	Open   source.Span // `<`, zero when the item has no parameter list
	Close  source.Span
	Where  *WhereClause // nil when absent
}

// GenericParam is a closed set: *LifetimeParam, *TypeParam, *ConstParam.
type GenericParam interface {
	Node
	genericParam()
}

// LifetimeParam is `'a: 'b + 'c`.
type LifetimeParam struct {
	Attrs    []*Attribute
	Lifetime *Lifetime
	Colon    source.Span
	Bounds   []*Lifetime
	Span     source.Span
}

// TypeParam is `T: Bounds = Default`. Colon is zero when no `:` was written.
type TypeParam struct {
	Attrs    []*Attribute
	Name     string
	NameSpan source.Span
	Colon    source.Span
	Bounds   []Bound
	Default  Type
	Span     source.Span
}

// ConstParam is `const N: usize = 3`.
type ConstParam struct {
	Attrs   []*Attribute
	Name    string
	Type    Type
	Default *Expr
	Span    source.Span
}

func (p *LifetimeParam) Range() source.Span { return p.Span }
func (p *TypeParam) Range() source.Span     { return p.Span }
func (p *ConstParam) Range() source.Span    { return p.Span }

func (*LifetimeParam) genericParam() {}
func (*TypeParam) genericParam()     {}
func (*ConstParam) genericParam()    {}

// WhereClause is `where P1, P2,`.
type WhereClause struct {
	WhereSpan  source.Span
	Predicates []WherePredicate
	Span       source.Span
}

// WherePredicate is a closed set: *TypePredicate, *LifetimePredicate.
type WherePredicate interface {
	Node
	wherePredicate()
}

// TypePredicate is `for<'a> Bounded : Bounds`.
type TypePredicate struct {
	ForLifetimes *BoundLifetimes
	Bounded      Type
	Colon        source.Span
	Bounds       []Bound
	Span         source.Span
}

// LifetimePredicate is `'a : 'b + 'c`.
type LifetimePredicate struct {
	Lifetime *Lifetime
	Bounds   []*Lifetime
	Span     source.Span
}

func (w *WhereClause) Range() source.Span       { return w.Span }
func (p *TypePredicate) Range() source.Span     { return p.Span }
func (p *LifetimePredicate) Range() source.Span { return p.Span }

func (*TypePredicate) wherePredicate()     {}
func (*LifetimePredicate) wherePredicate() {}

// MakeWhereClause returns the where clause, creating an empty one if needed.
func (g *Generics) MakeWhereClause() *WhereClause {
	if g.Where == nil {
		g.Where = &WhereClause{}
	}
	return g.Where
}

// TypeParams returns the type parameters in declaration order.
func (g *Generics) TypeParams() []*TypeParam {
	out := make([]*TypeParam, 0, len(g.Params))
	for _, p := range g.Params {
		if tp, ok := p.(*TypeParam); ok {
			out = append(out, tp)
		}
	}
	return out
}

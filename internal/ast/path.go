package ast

import (
	"strings"

	"entail/internal/source"
)

// Path is `$(::)? segment (:: segment)*`.
type Path struct {
	Leading     bool // leading `::`
	LeadingSpan source.Span
	Segments    []*PathSegment
	Span        source.Span
}

func (p *Path) Range() source.Span { return p.Span }

// PathSegment is one `name<args>` or `Name(inputs) -> output` step of a path.
type PathSegment struct {
	Name     string // identifier, `self`, `Self`, `super`, `crate` or `$crate`
	NameSpan source.Span
	Args     *GenericArgs // nil when the segment has no arguments
	Span     source.Span
}

func (s *PathSegment) Range() source.Span { return s.Span }

// IsIdent reports whether the path is exactly the single bare identifier name.
func (p *Path) IsIdent(name string) bool {
	return p != nil && !p.Leading && len(p.Segments) == 1 &&
		p.Segments[0].Args == nil && p.Segments[0].Name == name
}

// Last returns the final segment, or nil for an empty path.
func (p *Path) Last() *PathSegment {
	if p == nil || len(p.Segments) == 0 {
		return nil
	}
	return p.Segments[len(p.Segments)-1]
}

// ModString renders the path without generic arguments: `::a::b`.
func (p *Path) ModString() string {
	var b strings.Builder
	if p.Leading {
		b.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteString("::")
		}
		b.WriteString(seg.Name)
	}
	return b.String()
}

// NewIdentPath builds a one-segment path spanned at sp.
func NewIdentPath(name string, sp source.Span) *Path {
	return &Path{
		Segments: []*PathSegment{{Name: name, NameSpan: sp, Span: sp}},
		Span:     sp,
	}
}

// ArgsKind distinguishes `<...>` from `(...) -> ...` segment arguments.
type ArgsKind uint8

const (
	// ArgsAngle is `<A, B = C, D: E>`.
	ArgsAngle ArgsKind = iota
	// ArgsParen is the call-signature form of the Fn traits: `(A, B) -> C`.
	ArgsParen
)

// GenericArgs are the arguments of one path segment.
type GenericArgs struct {
	Kind      ArgsKind
	Turbofish bool // written as `::<`
	Args      []GenericArg
	Inputs    []Type // ArgsParen
	Output    Type   // ArgsParen, nil without `->`
	Open      source.Span
	Close     source.Span
	Span      source.Span
}

func (a *GenericArgs) Range() source.Span { return a.Span }

// GenericArg is a closed set: *TypeArg, *LifetimeArg, *ConstArg, *AssocEq, *AssocConstraint.
type GenericArg interface {
	Node
	genericArg()
}

type TypeArg struct {
	Type Type
}

type LifetimeArg struct {
	Lifetime *Lifetime
}

type ConstArg struct {
	Expr *Expr
}

// AssocEq is `Item = Type`; GAT arguments live in Args. An associated const
// equality (`N = 3`) has Value set and a nil Type.
type AssocEq struct {
	Name     string
	NameSpan source.Span
	Args     *GenericArgs
	Type     Type
	Value    *Expr
	Span     source.Span
}

// AssocConstraint is `Item : Bounds` (associated type bounds).
type AssocConstraint struct {
	Name     string
	NameSpan source.Span
	Args     *GenericArgs
	Bounds   []Bound
	Span     source.Span
}

func (a *TypeArg) Range() source.Span         { return a.Type.Range() }
func (a *LifetimeArg) Range() source.Span     { return a.Lifetime.Span }
func (a *ConstArg) Range() source.Span        { return a.Expr.Span }
func (a *AssocEq) Range() source.Span         { return a.Span }
func (a *AssocConstraint) Range() source.Span { return a.Span }

func (*TypeArg) genericArg()         {}
func (*LifetimeArg) genericArg()     {}
func (*ConstArg) genericArg()        {}
func (*AssocEq) genericArg()         {}
func (*AssocConstraint) genericArg() {}

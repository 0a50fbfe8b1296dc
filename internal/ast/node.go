package ast

import "entail/internal/source"

// Node is anything with a source range.
type Node interface {
	Range() source.Span
}

// Lifetime is `'a`, `'static` or `'_`.
type Lifetime struct {
	Name string // with the leading quote
	Span source.Span
}

func (l *Lifetime) Range() source.Span { return l.Span }

// Expr is an expression kept verbatim: const generic arguments, array lengths,
// attribute arguments. The rewriter never looks inside.
type Expr struct {
	Text string
	Span source.Span
}

func (e *Expr) Range() source.Span { return e.Span }

// Attribute is an outer attribute `#[path args]`.
type Attribute struct {
	Path *Path
	Args *Expr // delimited token tree or `= value`, nil when absent
	Text string
	Span source.Span
}

func (a *Attribute) Range() source.Span { return a.Span }

// ArgsInner returns the argument tokens without their delimiters, and the span they cover.
func (a *Attribute) ArgsInner() source.Span {
	if a.Args == nil || len(a.Args.Text) < 2 || a.Args.Text[0] == '=' {
		return source.Span{}
	}
	sp := a.Args.Span
	return source.Span{File: sp.File, Start: sp.Start + 1, End: sp.End - 1}
}

// Visibility is kept verbatim: `pub`, `pub(crate)`, `pub(in some::path)`.
type Visibility struct {
	Text string
	Span source.Span
}

func (v *Visibility) Range() source.Span { return v.Span }

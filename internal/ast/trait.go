package ast

import "entail/internal/source"

// Trait is a trait declaration.
type Trait struct {
	Docs        []string // outer doc comments, verbatim
	Attrs       []*Attribute
	Vis         *Visibility
	Unsafe      bool
	Auto        bool
	TraitSpan   source.Span // the `trait` keyword
	Name        string
	NameSpan    source.Span
	Generics    *Generics
	Colon       source.Span // before supertraits, zero when absent
	Supertraits []Bound
	Items       []*TraitItem
	AssocTypes  []*AssocType
	BodySpan    source.Span // `{ ... }` inclusive
	BodyText    string      // the body verbatim, braces included
	Span        source.Span
}

func (t *Trait) Range() source.Span { return t.Span }

// HeaderSpan is the region between the trait name and the body: generics,
// supertraits and where clause.
func (t *Trait) HeaderSpan() source.Span {
	return source.Span{File: t.NameSpan.File, Start: t.NameSpan.End, End: t.BodySpan.Start}
}

// ItemKind classifies body items.
type ItemKind uint8

const (
	ItemOther ItemKind = iota
	ItemAssocType
	ItemFn
	ItemConst
	ItemMacro
)

func (k ItemKind) String() string {
	switch k {
	case ItemAssocType:
		return "type"
	case ItemFn:
		return "fn"
	case ItemConst:
		return "const"
	case ItemMacro:
		return "macro"
	default:
		return "item"
	}
}

// TraitItem is one body item, kept verbatim.
type TraitItem struct {
	Kind ItemKind
	Name string
	Text string
	Span source.Span
}

func (i *TraitItem) Range() source.Span { return i.Span }

// AssocType is an associated type declaration (a computed type member):
// `type Gat<const B: bool>: Bounds where Self: 'a = Default;`.
// Its constraints belong to the member itself and are never rewritten.
type AssocType struct {
	Name     string
	NameSpan source.Span
	Generics *Generics
	Bounds   []Bound
	Default  Type
	Span     source.Span
}

func (a *AssocType) Range() source.Span { return a.Span }

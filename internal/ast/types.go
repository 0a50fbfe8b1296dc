package ast

import "entail/internal/source"

// Type is a closed set of type expressions.
type Type interface {
	Node
	typeNode()
}

// QSelf is the `<Type as Trait>` prefix of a qualified path.
type QSelf struct {
	Type Type
	As   *Path // nil for `<Type>::Assoc`
	Span source.Span
}

// PathType is `a::B<C>` or `<T as Trait>::Assoc`; with QSelf set, Path holds
// only the segments after `>::`.
type PathType struct {
	QSelf *QSelf
	Path  *Path
	Span  source.Span
}

// RefType is `&'a mut T`.
type RefType struct {
	Lifetime *Lifetime
	Mut      bool
	Elem     Type
	Span     source.Span
}

// PtrType is `*const T` or `*mut T`.
type PtrType struct {
	Mut  bool
	Elem Type
	Span source.Span
}

// TupleType is `()`, `(A,)` or `(A, B)`.
type TupleType struct {
	Elems []Type
	Span  source.Span
}

// ParenType is `(T)`.
type ParenType struct {
	Elem Type
	Span source.Span
}

type SliceType struct {
	Elem Type
	Span source.Span
}

type ArrayType struct {
	Elem Type
	Len  *Expr
	Span source.Span
}

// FnType is a bare function pointer: `for<'a> unsafe extern "C" fn(&'a u8) -> bool`.
type FnType struct {
	ForLifetimes *BoundLifetimes
	Unsafe       bool
	Abi          string // `extern "C"`, verbatim; empty when absent
	Inputs       []Type
	Names        []string // parallel to Inputs, "" for unnamed inputs
	Variadic     bool
	Output       Type
	Span         source.Span
}

// TraitObjectType is `dyn A + B` (Dyn is false for the bare pre-2021 form).
type TraitObjectType struct {
	Dyn    bool
	Bounds []Bound
	Span   source.Span
}

// ImplTraitType is `impl A + B`.
type ImplTraitType struct {
	Bounds []Bound
	Span   source.Span
}

type NeverType struct{ Span source.Span }

type InferType struct{ Span source.Span }

// MacroType is a type produced by a macro call: `m!(...)`.
type MacroType struct {
	Path   *Path
	Tokens *Expr // delimited, verbatim
	Span   source.Span
}

func (t *PathType) Range() source.Span        { return t.Span }
func (t *RefType) Range() source.Span         { return t.Span }
func (t *PtrType) Range() source.Span         { return t.Span }
func (t *TupleType) Range() source.Span       { return t.Span }
func (t *ParenType) Range() source.Span       { return t.Span }
func (t *SliceType) Range() source.Span       { return t.Span }
func (t *ArrayType) Range() source.Span       { return t.Span }
func (t *FnType) Range() source.Span          { return t.Span }
func (t *TraitObjectType) Range() source.Span { return t.Span }
func (t *ImplTraitType) Range() source.Span   { return t.Span }
func (t *NeverType) Range() source.Span       { return t.Span }
func (t *InferType) Range() source.Span       { return t.Span }
func (t *MacroType) Range() source.Span       { return t.Span }

func (*PathType) typeNode()        {}
func (*RefType) typeNode()         {}
func (*PtrType) typeNode()         {}
func (*TupleType) typeNode()       {}
func (*ParenType) typeNode()       {}
func (*SliceType) typeNode()       {}
func (*ArrayType) typeNode()       {}
func (*FnType) typeNode()          {}
func (*TraitObjectType) typeNode() {}
func (*ImplTraitType) typeNode()   {}
func (*NeverType) typeNode()       {}
func (*InferType) typeNode()       {}
func (*MacroType) typeNode()       {}

// IsSelf reports whether t is syntactically the bare `Self` path.
// `(Self)`, `m!(Self)` and aliases are deliberately not recognized.
func IsSelf(t Type) bool {
	pt, ok := t.(*PathType)
	return ok && pt.QSelf == nil && pt.Path.IsIdent("Self")
}

// NewSelfType returns a `Self` path type spanned at sp.
func NewSelfType(sp source.Span) *PathType {
	return &PathType{Path: NewIdentPath("Self", sp), Span: sp}
}

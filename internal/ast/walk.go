package ast

// Walk visits n and its descendants depth-first in source order. Returning
// false from fn skips the children of the node just visited.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Trait:
		for _, a := range n.Attrs {
			Walk(a, fn)
		}
		walkGenerics(n.Generics, fn)
		for _, b := range n.Supertraits {
			Walk(b, fn)
		}
		if n.Generics != nil && n.Generics.Where != nil {
			Walk(n.Generics.Where, fn)
		}
		for _, at := range n.AssocTypes {
			Walk(at, fn)
		}
	case *AssocType:
		walkGenerics(n.Generics, fn)
		for _, b := range n.Bounds {
			Walk(b, fn)
		}
		if n.Generics != nil && n.Generics.Where != nil {
			Walk(n.Generics.Where, fn)
		}
		walkType(n.Default, fn)
	case *Attribute:
		Walk(n.Path, fn)
	case *Path:
		for _, s := range n.Segments {
			Walk(s, fn)
		}
	case *PathSegment:
		if n.Args != nil {
			Walk(n.Args, fn)
		}
	case *GenericArgs:
		for _, a := range n.Args {
			Walk(a, fn)
		}
		for _, in := range n.Inputs {
			Walk(in, fn)
		}
		walkType(n.Output, fn)
	case *TypeArg:
		Walk(n.Type, fn)
	case *LifetimeArg:
		Walk(n.Lifetime, fn)
	case *ConstArg:
		Walk(n.Expr, fn)
	case *AssocEq:
		if n.Args != nil {
			Walk(n.Args, fn)
		}
		walkType(n.Type, fn)
		if n.Value != nil {
			Walk(n.Value, fn)
		}
	case *AssocConstraint:
		if n.Args != nil {
			Walk(n.Args, fn)
		}
		for _, b := range n.Bounds {
			Walk(b, fn)
		}
	case *LifetimeParam:
		Walk(n.Lifetime, fn)
		for _, l := range n.Bounds {
			Walk(l, fn)
		}
	case *TypeParam:
		for _, b := range n.Bounds {
			Walk(b, fn)
		}
		walkType(n.Default, fn)
	case *ConstParam:
		Walk(n.Type, fn)
		if n.Default != nil {
			Walk(n.Default, fn)
		}
	case *WhereClause:
		for _, p := range n.Predicates {
			Walk(p, fn)
		}
	case *TypePredicate:
		if n.ForLifetimes != nil {
			Walk(n.ForLifetimes, fn)
		}
		Walk(n.Bounded, fn)
		for _, b := range n.Bounds {
			Walk(b, fn)
		}
	case *LifetimePredicate:
		Walk(n.Lifetime, fn)
		for _, l := range n.Bounds {
			Walk(l, fn)
		}
	case *BoundLifetimes:
		for _, l := range n.Lifetimes {
			Walk(l, fn)
		}
	case *TraitBound:
		if n.ForLifetimes != nil {
			Walk(n.ForLifetimes, fn)
		}
		Walk(n.Path, fn)
	case *LifetimeBound:
		Walk(n.Lifetime, fn)
	case *PathType:
		if n.QSelf != nil {
			Walk(n.QSelf.Type, fn)
			if n.QSelf.As != nil {
				Walk(n.QSelf.As, fn)
			}
		}
		Walk(n.Path, fn)
	case *RefType:
		if n.Lifetime != nil {
			Walk(n.Lifetime, fn)
		}
		Walk(n.Elem, fn)
	case *PtrType:
		Walk(n.Elem, fn)
	case *TupleType:
		for _, e := range n.Elems {
			Walk(e, fn)
		}
	case *ParenType:
		Walk(n.Elem, fn)
	case *SliceType:
		Walk(n.Elem, fn)
	case *ArrayType:
		Walk(n.Elem, fn)
		Walk(n.Len, fn)
	case *FnType:
		if n.ForLifetimes != nil {
			Walk(n.ForLifetimes, fn)
		}
		for _, in := range n.Inputs {
			Walk(in, fn)
		}
		walkType(n.Output, fn)
	case *TraitObjectType:
		for _, b := range n.Bounds {
			Walk(b, fn)
		}
	case *ImplTraitType:
		for _, b := range n.Bounds {
			Walk(b, fn)
		}
	case *MacroType:
		Walk(n.Path, fn)
		Walk(n.Tokens, fn)
	}
}

func walkGenerics(g *Generics, fn func(Node) bool) {
	if g == nil {
		return
	}
	for _, p := range g.Params {
		Walk(p, fn)
	}
}

// walkType guards against typed-nil interfaces from optional fields.
func walkType(t Type, fn func(Node) bool) {
	if t != nil {
		Walk(t, fn)
	}
}

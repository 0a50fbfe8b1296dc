package ast

// CloneTrait deep-copies everything the rewriter may mutate: generics,
// supertraits and where clause. Body items are shared; they are never edited.
func CloneTrait(t *Trait) *Trait {
	if t == nil {
		return nil
	}
	out := *t
	out.Docs = append([]string(nil), t.Docs...)
	out.Attrs = append([]*Attribute(nil), t.Attrs...)
	out.Generics = CloneGenerics(t.Generics)
	out.Supertraits = CloneBounds(t.Supertraits)
	out.Items = append([]*TraitItem(nil), t.Items...)
	out.AssocTypes = append([]*AssocType(nil), t.AssocTypes...)
	return &out
}

func CloneGenerics(g *Generics) *Generics {
	if g == nil {
		return nil
	}
	out := *g
	if g.Params != nil {
		out.Params = make([]GenericParam, len(g.Params))
		for i, p := range g.Params {
			out.Params[i] = CloneParam(p)
		}
	}
	out.Where = CloneWhereClause(g.Where)
	return &out
}

func CloneParam(p GenericParam) GenericParam {
	switch p := p.(type) {
	case *LifetimeParam:
		out := *p
		out.Lifetime = cloneLifetime(p.Lifetime)
		out.Bounds = cloneLifetimes(p.Bounds)
		return &out
	case *TypeParam:
		out := *p
		out.Bounds = CloneBounds(p.Bounds)
		out.Default = CloneType(p.Default)
		return &out
	case *ConstParam:
		out := *p
		out.Type = CloneType(p.Type)
		out.Default = cloneExpr(p.Default)
		return &out
	}
	return nil
}

func CloneWhereClause(w *WhereClause) *WhereClause {
	if w == nil {
		return nil
	}
	out := *w
	if w.Predicates != nil {
		out.Predicates = make([]WherePredicate, len(w.Predicates))
		for i, p := range w.Predicates {
			out.Predicates[i] = ClonePredicate(p)
		}
	}
	return &out
}

func ClonePredicate(p WherePredicate) WherePredicate {
	switch p := p.(type) {
	case *TypePredicate:
		out := *p
		out.ForLifetimes = CloneBoundLifetimes(p.ForLifetimes)
		out.Bounded = CloneType(p.Bounded)
		out.Bounds = CloneBounds(p.Bounds)
		return &out
	case *LifetimePredicate:
		out := *p
		out.Lifetime = cloneLifetime(p.Lifetime)
		out.Bounds = cloneLifetimes(p.Bounds)
		return &out
	}
	return nil
}

func CloneBoundLifetimes(b *BoundLifetimes) *BoundLifetimes {
	if b == nil {
		return nil
	}
	out := *b
	out.Lifetimes = cloneLifetimes(b.Lifetimes)
	return &out
}

func CloneBounds(bounds []Bound) []Bound {
	if bounds == nil {
		return nil
	}
	out := make([]Bound, len(bounds))
	for i, b := range bounds {
		out[i] = CloneBound(b)
	}
	return out
}

func CloneBound(b Bound) Bound {
	switch b := b.(type) {
	case *TraitBound:
		out := *b
		out.ForLifetimes = CloneBoundLifetimes(b.ForLifetimes)
		out.Path = ClonePath(b.Path)
		return &out
	case *LifetimeBound:
		return &LifetimeBound{Lifetime: cloneLifetime(b.Lifetime)}
	case *VerbatimBound:
		out := *b
		return &out
	}
	return nil
}

func ClonePath(p *Path) *Path {
	if p == nil {
		return nil
	}
	out := *p
	out.Segments = make([]*PathSegment, len(p.Segments))
	for i, s := range p.Segments {
		seg := *s
		seg.Args = CloneGenericArgs(s.Args)
		out.Segments[i] = &seg
	}
	return &out
}

func CloneGenericArgs(a *GenericArgs) *GenericArgs {
	if a == nil {
		return nil
	}
	out := *a
	if a.Args != nil {
		out.Args = make([]GenericArg, len(a.Args))
		for i, arg := range a.Args {
			out.Args[i] = cloneGenericArg(arg)
		}
	}
	out.Inputs = cloneTypes(a.Inputs)
	out.Output = CloneType(a.Output)
	return &out
}

func cloneGenericArg(a GenericArg) GenericArg {
	switch a := a.(type) {
	case *TypeArg:
		return &TypeArg{Type: CloneType(a.Type)}
	case *LifetimeArg:
		return &LifetimeArg{Lifetime: cloneLifetime(a.Lifetime)}
	case *ConstArg:
		return &ConstArg{Expr: cloneExpr(a.Expr)}
	case *AssocEq:
		out := *a
		out.Args = CloneGenericArgs(a.Args)
		out.Type = CloneType(a.Type)
		out.Value = cloneExpr(a.Value)
		return &out
	case *AssocConstraint:
		out := *a
		out.Args = CloneGenericArgs(a.Args)
		out.Bounds = CloneBounds(a.Bounds)
		return &out
	}
	return nil
}

// CloneType deep-copies a type; a nil type stays nil.
func CloneType(t Type) Type {
	switch t := t.(type) {
	case nil:
		return nil
	case *PathType:
		out := *t
		if t.QSelf != nil {
			q := *t.QSelf
			q.Type = CloneType(t.QSelf.Type)
			q.As = ClonePath(t.QSelf.As)
			out.QSelf = &q
		}
		out.Path = ClonePath(t.Path)
		return &out
	case *RefType:
		out := *t
		out.Lifetime = cloneLifetime(t.Lifetime)
		out.Elem = CloneType(t.Elem)
		return &out
	case *PtrType:
		out := *t
		out.Elem = CloneType(t.Elem)
		return &out
	case *TupleType:
		out := *t
		out.Elems = cloneTypes(t.Elems)
		return &out
	case *ParenType:
		out := *t
		out.Elem = CloneType(t.Elem)
		return &out
	case *SliceType:
		out := *t
		out.Elem = CloneType(t.Elem)
		return &out
	case *ArrayType:
		out := *t
		out.Elem = CloneType(t.Elem)
		out.Len = cloneExpr(t.Len)
		return &out
	case *FnType:
		out := *t
		out.ForLifetimes = CloneBoundLifetimes(t.ForLifetimes)
		out.Inputs = cloneTypes(t.Inputs)
		out.Names = append([]string(nil), t.Names...)
		out.Output = CloneType(t.Output)
		return &out
	case *TraitObjectType:
		out := *t
		out.Bounds = CloneBounds(t.Bounds)
		return &out
	case *ImplTraitType:
		out := *t
		out.Bounds = CloneBounds(t.Bounds)
		return &out
	case *NeverType:
		out := *t
		return &out
	case *InferType:
		out := *t
		return &out
	case *MacroType:
		out := *t
		out.Path = ClonePath(t.Path)
		out.Tokens = cloneExpr(t.Tokens)
		return &out
	}
	return t
}

func cloneTypes(ts []Type) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = CloneType(t)
	}
	return out
}

func cloneLifetime(l *Lifetime) *Lifetime {
	if l == nil {
		return nil
	}
	out := *l
	return &out
}

func cloneLifetimes(ls []*Lifetime) []*Lifetime {
	if ls == nil {
		return nil
	}
	out := make([]*Lifetime, len(ls))
	for i, l := range ls {
		out[i] = cloneLifetime(l)
	}
	return out
}

func cloneExpr(e *Expr) *Expr {
	if e == nil {
		return nil
	}
	out := *e
	return &out
}

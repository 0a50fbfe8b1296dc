package ast

import (
	"testing"

	"entail/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

// `T: Iterator<Item = u8> + 'a`
func sampleParam() *TypeParam {
	item := &AssocEq{Name: "Item", NameSpan: sp(12, 16), Type: &PathType{Path: NewIdentPath("u8", sp(19, 21)), Span: sp(19, 21)}, Span: sp(12, 21)}
	iter := NewIdentPath("Iterator", sp(3, 11))
	iter.Segments[0].Args = &GenericArgs{Kind: ArgsAngle, Args: []GenericArg{item}, Open: sp(11, 12), Close: sp(21, 22), Span: sp(11, 22)}
	iter.Span = sp(3, 22)
	return &TypeParam{
		Name:     "T",
		NameSpan: sp(0, 1),
		Colon:    sp(1, 2),
		Bounds: []Bound{
			&TraitBound{Path: iter, Span: sp(3, 22)},
			&LifetimeBound{Lifetime: &Lifetime{Name: "'a", Span: sp(25, 27)}},
		},
		Span: sp(0, 27),
	}
}

func TestIsSelfIsSyntactic(t *testing.T) {
	self := NewSelfType(sp(0, 4))
	if !IsSelf(self) {
		t.Fatal("bare Self not recognized")
	}
	if IsSelf(&ParenType{Elem: self, Span: sp(0, 6)}) {
		t.Error("(Self) must not be recognized as Self")
	}
	assoc := &PathType{Path: &Path{Segments: []*PathSegment{{Name: "Self"}, {Name: "Item"}}}}
	if IsSelf(assoc) {
		t.Error("Self::Item must not be recognized as Self")
	}
	leading := &PathType{Path: &Path{Leading: true, Segments: []*PathSegment{{Name: "Self"}}}}
	if IsSelf(leading) {
		t.Error("::Self must not be recognized as Self")
	}
}

func TestWalkVisitsInSourceOrder(t *testing.T) {
	var names []string
	Walk(sampleParam(), func(n Node) bool {
		switch n := n.(type) {
		case *PathSegment:
			names = append(names, n.Name)
		case *Lifetime:
			names = append(names, n.Name)
		}
		return true
	})
	want := []string{"Iterator", "u8", "'a"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("visited %v, want %v", names, want)
		}
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	count := 0
	Walk(sampleParam(), func(n Node) bool {
		count++
		_, isBound := n.(*TraitBound)
		return !isBound
	})
	// param, trait bound (children skipped), lifetime bound, lifetime
	if count != 4 {
		t.Fatalf("visited %d nodes, want 4", count)
	}
}

// `trait Tr where for<'r> &'r u8: Copy {}`
func TestWalkVisitsWhereClauseAndQuantifier(t *testing.T) {
	quant := &BoundLifetimes{Lifetimes: []*Lifetime{{Name: "'r", Span: sp(19, 21)}}, Span: sp(15, 22)}
	pred := &TypePredicate{
		ForLifetimes: quant,
		Bounded:      &RefType{Lifetime: &Lifetime{Name: "'r", Span: sp(24, 26)}, Elem: &PathType{Path: NewIdentPath("u8", sp(27, 29)), Span: sp(27, 29)}, Span: sp(23, 29)},
		Colon:        sp(29, 30),
		Bounds:       []Bound{&TraitBound{Path: NewIdentPath("Copy", sp(31, 35)), Span: sp(31, 35)}},
		Span:         sp(15, 35),
	}
	where := &WhereClause{WhereSpan: sp(9, 14), Predicates: []WherePredicate{pred}, Span: sp(9, 35)}
	tr := &Trait{Name: "Tr", NameSpan: sp(6, 8), Generics: &Generics{Where: where}, Span: sp(0, 38)}

	var ranges []source.Span
	Walk(tr, func(n Node) bool {
		switch n.(type) {
		case *WhereClause, *BoundLifetimes:
			ranges = append(ranges, n.Range())
		}
		return true
	})
	if len(ranges) != 2 || ranges[0] != where.Span || ranges[1] != quant.Span {
		t.Fatalf("ranges = %v", ranges)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := sampleParam()
	cp, ok := CloneParam(orig).(*TypeParam)
	if !ok {
		t.Fatalf("clone changed the variant")
	}
	cp.Bounds[0].(*TraitBound).Path.Segments[0].Name = "Changed"
	cp.Bounds = cp.Bounds[:1]
	if orig.Bounds[0].(*TraitBound).Path.Segments[0].Name != "Iterator" {
		t.Error("clone shares path segments with the original")
	}
	if len(orig.Bounds) != 2 {
		t.Error("clone shares the bound slice with the original")
	}
}

func TestCloneTraitKeepsBodyShared(t *testing.T) {
	item := &TraitItem{Kind: ItemFn, Name: "f", Text: "fn f();"}
	orig := &Trait{
		Name:     "Foo",
		Generics: &Generics{Params: []GenericParam{sampleParam()}},
		Items:    []*TraitItem{item},
	}
	cp := CloneTrait(orig)
	cp.Generics.Params[0].(*TypeParam).Bounds = nil
	cp.Generics.MakeWhereClause().Predicates = append(cp.Generics.Where.Predicates, &LifetimePredicate{})
	if len(orig.Generics.Params[0].(*TypeParam).Bounds) != 2 {
		t.Error("clearing bounds on the clone affected the original")
	}
	if orig.Generics.Where != nil {
		t.Error("where clause leaked into the original")
	}
	if cp.Items[0] != item {
		t.Error("body items should be shared")
	}
}

func TestBoundsSpanAndModString(t *testing.T) {
	p := sampleParam()
	if got := BoundsSpan(p.Bounds); got != sp(3, 27) {
		t.Errorf("BoundsSpan = %v", got)
	}
	if !BoundsSpan(nil).IsZero() {
		t.Error("empty bound list should have a zero span")
	}
	path := &Path{Leading: true, Segments: []*PathSegment{{Name: "implied_bounds"}, {Name: "ImpliedPredicate"}}}
	if got := path.ModString(); got != "::implied_bounds::ImpliedPredicate" {
		t.Errorf("ModString = %q", got)
	}
}

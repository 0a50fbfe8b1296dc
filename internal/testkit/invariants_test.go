package testkit

import (
	"strings"
	"testing"

	"entail/internal/ast"
	"entail/internal/source"
)

func sampleTrait(fs *source.FileSet) (*ast.Trait, *source.File) {
	id := fs.AddVirtual("t.rs", []byte("trait T {}"))
	f := fs.Get(id)
	sp := func(start, end uint32) source.Span { return source.Span{File: id, Start: start, End: end} }
	return &ast.Trait{
		TraitSpan: sp(0, 5),
		Name:      "T",
		NameSpan:  sp(6, 7),
		BodySpan:  sp(8, 10),
		BodyText:  "{}",
		Span:      sp(0, 10),
	}, f
}

func TestCheckTraitSpansAcceptsWellFormedTrait(t *testing.T) {
	tr, f := sampleTrait(source.NewFileSet())
	if err := CheckTraitSpans(tr, f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckTraitSpansRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ast.Trait)
		want   string
	}{
		{"empty", func(tr *ast.Trait) { tr.Span.End = tr.Span.Start }, "trait span is empty"},
		{"beyond content", func(tr *ast.Trait) { tr.Span.End = 40; tr.BodySpan.End = 40 }, "beyond content"},
		{"body not closing", func(tr *ast.Trait) { tr.BodySpan.End = 9 }, "does not close"},
		{"body text", func(tr *ast.Trait) { tr.BodyText = "{ }" }, "body text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, f := sampleTrait(source.NewFileSet())
			tc.mutate(tr)
			err := CheckTraitSpans(tr, f)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("got %v, want error containing %q", err, tc.want)
			}
		})
	}
}

func TestCheckTraitSpansWalksNestedNodes(t *testing.T) {
	tr, f := sampleTrait(source.NewFileSet())
	tr.Supertraits = []ast.Bound{&ast.TraitBound{
		Path: ast.NewIdentPath("Sized", source.Span{File: f.ID, Start: 3, End: 30}),
		Span: source.Span{File: f.ID, Start: 3, End: 8},
	}}
	err := CheckTraitSpans(tr, f)
	if err == nil || !strings.Contains(err.Error(), "outside trait span") {
		t.Fatalf("got %v, want nested span error", err)
	}
}

package parser

import (
	"fmt"
	"strings"
	"testing"

	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func virtualFile(src string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	return fs.Get(id)
}

func parseTraitSource(t *testing.T, src string) *ast.Trait {
	t.Helper()
	f := virtualFile(src)
	bag := diag.NewBag(0)
	tr, ok := ParseTrait(f, f.FullSpan(), Options{Reporter: diag.BagReporter{Bag: bag}})
	if !ok || bag.HasErrors() {
		t.Fatalf("parse failed for %q: %s", src, diagnosticsSummary(bag))
	}
	return tr
}

func parseTraitErrors(t *testing.T, src string) *diag.Bag {
	t.Helper()
	f := virtualFile(src)
	bag := diag.NewBag(0)
	if _, ok := ParseTrait(f, f.FullSpan(), Options{Reporter: diag.BagReporter{Bag: bag}}); ok {
		t.Fatalf("expected %q to fail", src)
	}
	if !bag.HasErrors() {
		t.Fatalf("failure for %q reported no diagnostics", src)
	}
	return bag
}

func parseTypeSource(t *testing.T, src string) ast.Type {
	t.Helper()
	f := virtualFile(src)
	bag := diag.NewBag(0)
	ty, ok := ParseType(f, f.FullSpan(), Options{Reporter: diag.BagReporter{Bag: bag}})
	if !ok {
		t.Fatalf("type %q failed: %s", src, diagnosticsSummary(bag))
	}
	return ty
}

// spanText returns the source text a node claims to cover.
func spanText(src string, n ast.Node) string {
	sp := n.Range()
	return src[sp.Start:sp.End]
}

package format_test

import (
	"testing"

	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/format"
	"entail/internal/parser"
	"entail/internal/source"
)

func parseTrait(t *testing.T, src string) *ast.Trait {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.rs", []byte(src)))
	bag := diag.NewBag(0)
	tr, ok := parser.ParseTrait(f, f.FullSpan(), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if !ok {
		t.Fatalf("parse %q: %d diagnostics", src, bag.Len())
	}
	return tr
}

func parseType(t *testing.T, src string) ast.Type {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.rs", []byte(src)))
	ty, ok := parser.ParseType(f, f.FullSpan(), parser.Options{})
	if !ok {
		t.Fatalf("parse type %q failed", src)
	}
	return ty
}

func TestTypeRoundTrip(t *testing.T) {
	// canonical spelling prints back unchanged
	for _, src := range []string{
		"u8",
		"::std::vec::Vec<T>",
		"<T as Iterator>::Item",
		"<T>::Item",
		"&'a mut T",
		"&T",
		"*const u8",
		"*mut ()",
		"(A,)",
		"(A, B)",
		"(Self)",
		"[u8; N * 2]",
		"[T]",
		"unsafe extern \"C\" fn(x: u8, ...) -> !",
		"for<'a> fn(&'a u8) -> bool",
		"dyn Send + 'static",
		"impl Iterator<Item = u8>",
		"Box<dyn for<'r> Fn(&'r str) -> String + Send>",
		"Self::Gat<true>",
		"Vec::<u8>",
		"m!(Self)",
		"_",
		"Option<[u8; 4]>",
		"Foo<Bar: Clone + Send, N = 3>",
	} {
		if got := format.Type(parseType(t, src)); got != src {
			t.Errorf("round trip %q -> %q", src, got)
		}
	}
}

func TestHeaderWithWhereClause(t *testing.T) {
	tr := parseTrait(t, "trait Trait<'a, U: Clone, const N: usize>: Send where Self: 'a, for<'r> &'r U: Copy {}")
	want := "<'a, U: Clone, const N: usize>: Send\nwhere\n    Self: 'a,\n    for<'r> &'r U: Copy,\n"
	if got := format.Header(tr, format.Options{}); got != want {
		t.Fatalf("header:\n%s\nwant:\n%s", got, want)
	}
}

func TestHeaderIndentsNestedTraits(t *testing.T) {
	tr := parseTrait(t, "trait T<U> where U: Clone {}")
	want := "<U>\n    where\n        U: Clone,\n    "
	if got := format.Header(tr, format.Options{BaseIndent: "    "}); got != want {
		t.Fatalf("header = %q, want %q", got, want)
	}
}

func TestHeaderWithoutWhere(t *testing.T) {
	tr := parseTrait(t, "trait T<U: Clone + 'static> {}")
	if got := format.Header(tr, format.Options{}); got != "<U: Clone + 'static> " {
		t.Fatalf("header = %q", got)
	}
	tr = parseTrait(t, "trait T where {}")
	if got := format.Header(tr, format.Options{}); got != " " {
		t.Fatalf("an empty where clause should vanish, got %q", got)
	}
}

func TestTraitKeepsBodyVerbatim(t *testing.T) {
	src := "/// doc\n#[attr]\npub unsafe trait T<U>: Sized {\n    fn  odd_spacing( &self );\n}"
	tr := parseTrait(t, src)
	want := "/// doc\n#[attr]\npub unsafe trait T<U>: Sized {\n    fn  odd_spacing( &self );\n}"
	if got := format.Trait(tr, format.Options{}); got != want {
		t.Fatalf("trait:\n%s\nwant:\n%s", got, want)
	}
}

func TestPredicateAndBounds(t *testing.T) {
	tr := parseTrait(t, "trait T where 'a: 'b + 'c, U: ?Sized + (Send) + ~const Drop, {}")
	preds := tr.Generics.Where.Predicates
	if got := format.Predicate(preds[0]); got != "'a: 'b + 'c" {
		t.Errorf("lifetime predicate = %q", got)
	}
	if got := format.Predicate(preds[1]); got != "U: ?Sized + (Send) + ~const Drop" {
		t.Errorf("type predicate = %q", got)
	}
}

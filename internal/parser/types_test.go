package parser

// Тесты для парсинга типов.
//
// Покрытие:
//   - пути с аргументами, turbofish и квалифицированные пути
//   - ссылки, указатели, срезы, массивы, кортежи и скобки
//   - fn-указатели, dyn/impl, never, `_` и макросы в позиции типа

import (
	"testing"

	"entail/internal/ast"
	"entail/internal/diag"
)

func TestParseTypeVariants(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{"u8", &ast.PathType{}},
		{"::std::vec::Vec<T>", &ast.PathType{}},
		{"<T as Iterator>::Item", &ast.PathType{}},
		{"&'a mut T", &ast.RefType{}},
		{"*const u8", &ast.PtrType{}},
		{"()", &ast.TupleType{}},
		{"(A,)", &ast.TupleType{}},
		{"(A, B)", &ast.TupleType{}},
		{"(Self)", &ast.ParenType{}},
		{"[u8]", &ast.SliceType{}},
		{"[u8; N * 2]", &ast.ArrayType{}},
		{"unsafe extern \"C\" fn(x: u8, ...) -> !", &ast.FnType{}},
		{"for<'a> fn(&'a u8)", &ast.FnType{}},
		{"dyn Send + 'static", &ast.TraitObjectType{}},
		{"impl Iterator<Item = u8>", &ast.ImplTraitType{}},
		{"!", &ast.NeverType{}},
		{"_", &ast.InferType{}},
		{"m!(Self)", &ast.MacroType{}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			ty := parseTypeSource(t, tt.src)
			if got, want := typeName(ty), typeName(tt.want); got != want {
				t.Fatalf("parsed %q as %s, want %s", tt.src, got, want)
			}
			if got := spanText(tt.src, ty); got != tt.src {
				t.Errorf("span covers %q", got)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *ast.PathType:
		return "path"
	case *ast.RefType:
		return "ref"
	case *ast.PtrType:
		return "ptr"
	case *ast.TupleType:
		return "tuple"
	case *ast.ParenType:
		return "paren"
	case *ast.SliceType:
		return "slice"
	case *ast.ArrayType:
		return "array"
	case *ast.FnType:
		return "fn"
	case *ast.TraitObjectType:
		return "dyn"
	case *ast.ImplTraitType:
		return "impl"
	case *ast.NeverType:
		return "never"
	case *ast.InferType:
		return "infer"
	case *ast.MacroType:
		return "macro"
	}
	return "?"
}

func TestParseQualifiedPath(t *testing.T) {
	ty := parseTypeSource(t, "<Self as Trait<T>>::Assoc<'a>")
	pt := ty.(*ast.PathType)
	if pt.QSelf == nil || !ast.IsSelf(pt.QSelf.Type) {
		t.Fatalf("qself = %#v", pt.QSelf)
	}
	if pt.QSelf.As.ModString() != "Trait" || len(pt.Path.Segments) != 1 || pt.Path.Segments[0].Name != "Assoc" {
		t.Fatalf("qualified path split wrong: as=%q rest=%d", pt.QSelf.As.ModString(), len(pt.Path.Segments))
	}
	if ast.IsSelf(pt) {
		t.Error("a qualified path is never bare Self")
	}
}

func TestParseRefDoesNotSwallowPlus(t *testing.T) {
	f := virtualFile("&dyn A + B")
	bag := diag.NewBag(0)
	if _, ok := ParseType(f, f.FullSpan(), Options{Reporter: diag.BagReporter{Bag: bag}}); ok {
		t.Fatal("`&dyn A + B` must not parse as a single type")
	}
}

func TestParseTurbofishAndDollarCrate(t *testing.T) {
	pt := parseTypeSource(t, "$crate::Wrapper::<u8>").(*ast.PathType)
	if pt.Path.Segments[0].Name != "$crate" {
		t.Errorf("first segment = %q", pt.Path.Segments[0].Name)
	}
	if args := pt.Path.Segments[1].Args; args == nil || !args.Turbofish {
		t.Errorf("turbofish not recorded: %#v", args)
	}
}

func TestParseTypeErrors(t *testing.T) {
	for _, src := range []string{"", "&", "*u8", "[u8", "<T as>::X", "dyn"} {
		t.Run(src, func(t *testing.T) {
			f := virtualFile(src)
			bag := diag.NewBag(0)
			if _, ok := ParseType(f, f.FullSpan(), Options{Reporter: diag.BagReporter{Bag: bag}}); ok {
				t.Fatalf("%q parsed without errors", src)
			}
			if !bag.HasErrors() {
				t.Fatal("no diagnostics reported")
			}
		})
	}
}

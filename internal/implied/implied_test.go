package implied_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"entail/internal/args"
	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/format"
	"entail/internal/implied"
	"entail/internal/parser"
	"entail/internal/source"
)

func parseTrait(t *testing.T, src string) (*ast.Trait, string) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("lib.rs", []byte(src)))
	bag := diag.NewBag(0)
	tr, ok := parser.ParseTrait(f, f.FullSpan(), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.True(t, ok, "parse %q: %d diagnostics", src, bag.Len())
	return tr, src
}

func transform(t *testing.T, src string, cfg implied.Config) *implied.Result {
	t.Helper()
	tr, _ := parseTrait(t, src)
	res, err := implied.Transform(tr, cfg)
	require.NoError(t, err)
	return res
}

func predicates(tr *ast.Trait) []string {
	if tr.Generics.Where == nil {
		return nil
	}
	out := make([]string, len(tr.Generics.Where.Predicates))
	for i, p := range tr.Generics.Where.Predicates {
		out[i] = format.Predicate(p)
	}
	return out
}

func TestParamAndGatPredicate(t *testing.T) {
	res := transform(t, "trait Trait<U: Clone> where Self::Gat<true>: Send { type Gat<const B: bool>; }", implied.Config{})

	require.Equal(t, []string{
		"Self: ::implied_bounds::ImpliedPredicate<U, Impls: Clone>",
		"Self: ::implied_bounds::ImpliedPredicate<Self::Gat<true>, Impls: Send>",
		"Self::Gat<true>: Send",
	}, predicates(res.Trait))
	require.Equal(t, "<U: Clone>", format.GenericParams(res.Trait.Generics))

	require.Len(t, res.Constraints, 2)
	require.Equal(t, implied.FromParam, res.Constraints[0].Origin)
	require.Equal(t, implied.FromWhere, res.Constraints[1].Origin)
	require.False(t, res.Constraints[0].HigherRanked)
	require.False(t, res.Constraints[1].HigherRanked)
	require.Empty(t, res.Diagnostics)
	require.Empty(t, res.Decls)
}

func TestInputIsNotMutated(t *testing.T) {
	tr, _ := parseTrait(t, "trait Trait<U: Clone> where U: Send {}")
	_, err := implied.Transform(tr, implied.Config{})
	require.NoError(t, err)
	require.Equal(t, "<U: Clone>", format.GenericParams(tr.Generics))
	require.Equal(t, []string{"U: Send"}, predicates(tr))
}

func TestSelfOnlyTraitWarns(t *testing.T) {
	res := transform(t, "trait Sub where Self: Other {}", implied.Config{})
	require.Empty(t, res.Constraints)
	require.Equal(t, []string{"Self: Other"}, predicates(res.Trait))
	require.Len(t, res.Diagnostics, 1)
	require.Equal(t, diag.RewriteNoneFound, res.Diagnostics[0].Code)
	require.Contains(t, res.Diagnostics[0].Message, "you may skip using this macro altogether")
	require.Contains(t, res.Diagnostics[0].Message, "allow_none")
	require.Len(t, res.Decls, 1)

	quiet := transform(t, "trait Sub where Self: Other {}", implied.Config{AllowNone: true})
	require.Empty(t, quiet.Diagnostics)
	require.Empty(t, quiet.Decls)
}

func TestDebugWarnsPerConstraintAtOriginalSpan(t *testing.T) {
	src := "trait Trait<U: Clone + Send> where Vec<U>: Default, Self: Sized {}"
	tr, _ := parseTrait(t, src)
	res, err := implied.Transform(tr, implied.Config{Debug: true})
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 2)
	spanned := make([]string, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		require.Equal(t, diag.RewriteNotImplied, d.Code)
		require.Contains(t, d.Message, "not implied")
		spanned[i] = src[d.Primary.Start:d.Primary.End]
	}
	require.Equal(t, []string{"Clone + Send", "Vec<U>: Default"}, spanned)
	require.Len(t, res.Decls, 2)
	require.Contains(t, res.Decls[0].Text, "const _: () = {\n    // about `U: Clone + Send`\n")
	require.Contains(t, res.Decls[1].Text, "const _: () = {\n    // about `Vec<U>: Default`\n")
}

func TestHigherRankedIsNotDuplicated(t *testing.T) {
	res := transform(t, "trait Trait<F: Fn(&str)> where for<'r> &'r Self::Item: SomeCapability<'r>, Self::Item: for<'a> Tr<'a> { type Item; }", implied.Config{})

	require.Len(t, res.Constraints, 3)
	for _, c := range res.Constraints {
		require.True(t, c.HigherRanked, "%s should be higher-ranked", format.Predicate(c.Predicate))
	}
	require.Equal(t, "<F>", format.GenericParams(res.Trait.Generics))
	require.Equal(t, []string{
		"Self: ::implied_bounds::ImpliedPredicate<F, Impls: Fn(&str)>",
		"for<'r> Self: ::implied_bounds::ImpliedPredicate<&'r Self::Item, Impls: SomeCapability<'r>>",
		"Self: ::implied_bounds::ImpliedPredicate<Self::Item, Impls: for<'a> Tr<'a>>",
	}, predicates(res.Trait))
}

func TestEmptyForIsNotHigherRanked(t *testing.T) {
	res := transform(t, "trait Trait where for<> u8: Copy {}", implied.Config{})
	require.Len(t, res.Constraints, 1)
	require.False(t, res.Constraints[0].HigherRanked)
	require.Equal(t, "for<> u8: Copy", predicates(res.Trait)[1])
}

func TestSelfExclusionIsSyntactic(t *testing.T) {
	res := transform(t, "trait Trait where Self: Clone, (Self): Send, Self: 'static, 'a: 'b, Vec<Self>: {}", implied.Config{})
	require.Len(t, res.Constraints, 1)
	require.Equal(t, "(Self)", format.Type(res.Constraints[0].Predicate.Bounded))
	require.Equal(t, []string{
		"Self: ::implied_bounds::ImpliedPredicate<(Self), Impls: Send>",
		"Self: Clone",
		"(Self): Send",
		"Self: 'static",
		"'a: 'b",
		"Vec<Self>:",
	}, predicates(res.Trait))
}

func TestLifetimeAndConstParamsAreKept(t *testing.T) {
	res := transform(t, "trait Trait<'a: 'b, 'b, const N: usize, T> {}", implied.Config{AllowNone: true})
	require.Empty(t, res.Constraints)
	require.Equal(t, "<'a: 'b, 'b, const N: usize, T>", format.GenericParams(res.Trait.Generics))
	require.Nil(t, res.Trait.Generics.Where)
}

func TestWrapperSpans(t *testing.T) {
	src := "trait Trait where Vec<u8>: Clone + Send {}"
	res := transform(t, src, implied.Config{})
	w := res.Wrappers[0]
	text := func(sp source.Span) string { return src[sp.Start:sp.End] }

	require.Equal(t, "Vec<u8>", text(w.Bounded.Range()))
	args := w.Bounds[0].(*ast.TraitBound).Path.Last().Args
	require.Equal(t, "Vec<u8>", text(args.Open))
	require.Equal(t, "Send", text(args.Close))
	require.Equal(t, "Vec<u8>: Clone + Send", text(w.Bounds[0].Range()))
}

func TestCrateOverride(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("args", []byte("crate = $crate::__private")))
	a, errs := args.Parse(f, f.FullSpan())
	require.Empty(t, errs)

	res := transform(t, "trait Trait<U: Copy> {}", implied.Config{}.WithArgs(a))
	require.Equal(t, "Self: $crate::__private::ImpliedPredicate<U, Impls: Copy>", predicates(res.Trait)[0])
}

func TestConcurrentRewritesDoNotShareCrate(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg := implied.Config{}
			if i%2 == 0 {
				fs := source.NewFileSet()
				f := fs.Get(fs.AddVirtual("args", []byte(fmt.Sprintf("crate = c%d", i))))
				a, _ := args.Parse(f, f.FullSpan())
				cfg = cfg.WithArgs(a)
			}
			fs := source.NewFileSet()
			f := fs.Get(fs.AddVirtual("lib.rs", []byte("trait T<U: Copy> {}")))
			tr, ok := parser.ParseTrait(f, f.FullSpan(), parser.Options{})
			if !ok {
				return
			}
			res, err := implied.Transform(tr, cfg)
			if err != nil {
				return
			}
			results[i] = format.Predicate(res.Wrappers[0])
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		want := "Self: ::implied_bounds::ImpliedPredicate<U, Impls: Copy>"
		if i%2 == 0 {
			want = fmt.Sprintf("Self: c%d::ImpliedPredicate<U, Impls: Copy>", i)
		}
		require.Equal(t, want, got)
	}
}

func TestRewriteIsIdempotentWhenNothingIsDuplicated(t *testing.T) {
	first := transform(t, "trait Trait where for<'r> &'r Self::X: Send { type X; }", implied.Config{})
	require.Len(t, first.Constraints, 1)

	rendered := format.Trait(first.Trait, format.Options{})
	second := transform(t, rendered, implied.Config{})
	require.Empty(t, second.Constraints)
	require.Len(t, second.Diagnostics, 1)
	require.Equal(t, diag.RewriteNoneFound, second.Diagnostics[0].Code)
	require.Equal(t, predicates(first.Trait), predicates(second.Trait))
}

func TestRenderAppendsWarningDecls(t *testing.T) {
	res := transform(t, "trait Sub: Other {}", implied.Config{})
	out := res.Render(format.Options{})
	require.True(t, strings.HasPrefix(out, "trait Sub: Other {}\n#[allow(nonstandard_style, clippy::all)]\nconst _: () = {\n"))
	require.Contains(t, out, `#[deprecated(note = "\n\nNo non-implied clauses found for this trait, you may skip using this macro altogether.\n\nTo silence this warning, use `+"`#[…implied_bounds(allow_none, …)]`"+`.")]`)
	require.Contains(t, out, "let _ = implied_bounds_ { custom_warning: () };")
	require.Contains(t, out, "const _: () = {\n    // about trait `Sub`\n")
	require.True(t, strings.HasSuffix(out, "};"))

	omitted := transform(t, "trait Sub: Other {}", implied.Config{OmitWarningDecls: true})
	require.Equal(t, "trait Sub: Other {}", omitted.Render(format.Options{}))
	require.Len(t, omitted.Diagnostics, 1)
}

func TestTransformSourceAggregatesErrors(t *testing.T) {
	src := "#[implied_bounds(crate = a, crate = b)]\ntrait Trait<U: Clone> {}"
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("lib.rs", []byte(src)))
	argsStart := uint32(strings.Index(src, "crate"))
	argsEnd := uint32(strings.Index(src, ")]"))
	site := implied.Site{
		Attr: source.Span{File: f.ID, Start: 0, End: argsEnd + 2},
		Args: source.Span{File: f.ID, Start: argsStart, End: argsEnd},
		Decl: f.FullSpan(),
	}
	res, err := implied.TransformSource(f, site, implied.Config{})
	require.Nil(t, res)
	var agg *diag.AggregateError
	require.True(t, errors.As(err, &agg))
	require.Len(t, agg.Items, 2)
	lines := strings.Split(err.Error(), "\n")
	require.Equal(t, "`#[::implied_bounds::implied_bounds]`: duplicate arg", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "`#[::implied_bounds::implied_bounds]`: Usage:"))
}

func TestTransformSourceCombinesArgAndSyntaxErrors(t *testing.T) {
	src := "#[implied_bounds(verbose)]\ntrait Trait<U: > where {"
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("lib.rs", []byte(src)))
	site := implied.Site{
		Args: source.Span{File: f.ID, Start: 17, End: 24},
		Decl: f.FullSpan(),
	}
	_, err := implied.TransformSource(f, site, implied.Config{})
	var agg *diag.AggregateError
	require.True(t, errors.As(err, &agg))
	require.GreaterOrEqual(t, len(agg.Items), 3)
	require.Equal(t, diag.ArgUnknown, agg.Items[0].Code)
	require.Equal(t, diag.ArgUsage, agg.Items[1].Code)
	require.Equal(t, diag.SynUnclosedDelimiter, agg.Items[2].Code)
}

func TestTransformSourceDropsTheAttribute(t *testing.T) {
	src := "#[implied_bounds(debug)]\n#[other]\npub trait Trait<U: Clone> {}"
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("lib.rs", []byte(src)))
	site := implied.Site{
		Attr: source.Span{File: f.ID, Start: 0, End: 24},
		Args: source.Span{File: f.ID, Start: 17, End: 22},
		Decl: f.FullSpan(),
	}
	res, err := implied.TransformSource(f, site, implied.Config{})
	require.NoError(t, err)
	require.True(t, res.Config.Debug)
	require.Len(t, res.Trait.Attrs, 1)
	require.Equal(t, "#[other]", res.Trait.Attrs[0].Text)
	require.True(t, strings.HasPrefix(res.Render(format.Options{}),
		"#[other]\npub trait Trait<U: Clone>\nwhere\n    Self: ::implied_bounds::ImpliedPredicate<U, Impls: Clone>,\n{}"))
}

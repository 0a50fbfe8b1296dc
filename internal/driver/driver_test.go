package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"entail/internal/diag"
	"entail/internal/implied"
	"entail/internal/source"
)

func rewriteString(t *testing.T, src string, opts RewriteOptions) *RewriteResult {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.rs", []byte(src))
	res, err := RewriteSource(context.Background(), fs, id, opts)
	require.NoError(t, err)
	return res
}

func TestRewriteTopLevelTrait(t *testing.T) {
	src := `use implied_bounds::implied_bounds;

#[implied_bounds]
pub trait Trait<U: Clone> {
    fn f(&self);
}
`
	want := `use implied_bounds::implied_bounds;

pub trait Trait<U: Clone>
where
    Self: ::implied_bounds::ImpliedPredicate<U, Impls: Clone>,
{
    fn f(&self);
}
`
	res := rewriteString(t, src, RewriteOptions{})
	require.False(t, res.HasErrors())
	require.True(t, res.Changed)
	require.Equal(t, want, string(res.Output))
	require.Len(t, res.Sites, 1)
	require.Equal(t, "Trait", res.Sites[0].Name)
	require.Equal(t, 1, res.Sites[0].Constraints)
}

func TestRewriteNestedTraitWithDebugArgs(t *testing.T) {
	src := "mod m {\n    #[::implied_bounds::implied_bounds(debug)]\n    trait T where Vec<Self>: Send {}\n}\n"
	res := rewriteString(t, src, RewriteOptions{})
	require.False(t, res.HasErrors())

	out := string(res.Output)
	require.Contains(t, out, "mod m {\n    trait T\n    where\n        Self: ::implied_bounds::ImpliedPredicate<Vec<Self>, Impls: Send>,\n        Vec<Self>: Send,\n    {}\n")
	require.Contains(t, out, "\n    #[allow(nonstandard_style, clippy::all)]\n    const _: () = {\n        // about `Vec<Self>: Send`\n")
	require.True(t, strings.HasSuffix(out, "};\n}\n"))

	require.Len(t, res.Bag.Items(), 1)
	require.Equal(t, diag.RewriteNotImplied, res.Bag.Items()[0].Code)
}

func TestRewriteWithoutConstraintsKeepsHeader(t *testing.T) {
	src := "#[implied_bounds(allow_none)]\ntrait   Odd   : Sized {}\n"
	res := rewriteString(t, src, RewriteOptions{})
	require.Equal(t, "trait   Odd   : Sized {}\n", string(res.Output))
	require.Zero(t, res.Bag.Len())
}

func TestRewriteErrorsLeaveFileUntouched(t *testing.T) {
	src := "#[implied_bounds(bogus)]\ntrait A<U: Clone> {}\n\n#[implied_bounds]\ntrait B<U: Copy> {}\n"
	res := rewriteString(t, src, RewriteOptions{})
	require.True(t, res.HasErrors())
	require.False(t, res.Changed)
	require.Equal(t, src, string(res.Output))

	errs := res.Bag.Errors()
	require.NotEmpty(t, errs)
	require.True(t, strings.HasPrefix(errs[0].Message, implied.DiagnosticPrefix))
	require.Contains(t, errs[0].Message, "expected one of")
	require.Error(t, res.Sites[0].Err)
	require.NoError(t, res.Sites[1].Err)
}

func TestRewriteUsesConfiguredCrate(t *testing.T) {
	res := rewriteString(t, "#[implied_bounds(crate = $crate::ib)]\ntrait T<U: Clone> {}\n", RewriteOptions{})
	require.Contains(t, string(res.Output), "Self: $crate::ib::ImpliedPredicate<U, Impls: Clone>,")
}

func TestRewriteCache(t *testing.T) {
	cache, err := OpenDiskCache("entail", t.TempDir())
	require.NoError(t, err)
	opts := RewriteOptions{Cache: cache, Config: implied.Config{Debug: true}}
	src := "#[implied_bounds]\ntrait T<U: Clone> {}\n"

	first := rewriteString(t, src, opts)
	require.False(t, first.Cached)
	second := rewriteString(t, src, opts)
	require.True(t, second.Cached)
	require.Equal(t, first.Output, second.Output)
	require.Equal(t, first.Changed, second.Changed)
	require.Len(t, second.Sites, 1)
	require.Equal(t, len(first.Bag.Items()), len(second.Bag.Items()))
	require.Equal(t, first.Bag.Items()[0].Primary.Start, second.Bag.Items()[0].Primary.Start)

	opts.Config.Debug = false
	third := rewriteString(t, src, opts)
	require.False(t, third.Cached, "options are part of the key")

	require.NoError(t, cache.DropAll())
	fourth := rewriteString(t, src, opts)
	require.False(t, fourth.Cached)
}

func TestApplyEdits(t *testing.T) {
	content := []byte("abcdef")
	sp := func(s, e uint32) source.Span { return source.Span{Start: s, End: e} }

	out, err := applyEdits(content, []Edit{{Span: sp(4, 5), Text: "E"}, {Span: sp(0, 1), Text: ""}, {Span: sp(6, 6), Text: "!"}})
	require.NoError(t, err)
	require.Equal(t, "bcdEf!", string(out))

	_, err = applyEdits(content, []Edit{{Span: sp(0, 3)}, {Span: sp(2, 4)}})
	require.Error(t, err)
	_, err = applyEdits(content, []Edit{{Span: sp(5, 9)}})
	require.Error(t, err)
}

func TestRemovalSpan(t *testing.T) {
	tests := []struct {
		name    string
		content string
		attr    string
		want    string
	}{
		{"own line", "x\n    #[a]\ntrait T {}", "#[a]", "x\ntrait T {}"},
		{"shared line", "#[a]  trait T {}", "#[a]", "trait T {}"},
		{"after other attr", "#[b] #[a]\ntrait T {}", "#[a]", "#[b] \ntrait T {}"},
		{"last line", "trait T {}\n#[a]", "#[a]", "trait T {}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := uint32(strings.Index(tt.content, tt.attr))
			sp := removalSpan([]byte(tt.content), source.Span{Start: start, End: start + uint32(len(tt.attr))})
			got, err := applyEdits([]byte(tt.content), []Edit{{Span: sp}})
			require.NoError(t, err)
			require.Equal(t, tt.want, string(got))
		})
	}
}

func TestRewritePathsAndWriteBack(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, body string) string {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}
	a := write("src/a.rs", "#[implied_bounds]\r\ntrait A<U: Clone> {}\r\n")
	b := write("src/b.rs", "trait B {}\n")
	write("target/debug/gen.rs", "#[implied_bounds]\ntrait Ignored<U: Clone> {}\n")
	write("README.md", "not rust")

	_, results, err := RewritePaths(context.Background(), []string{dir}, RewriteOptions{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, a, results[0].Path)
	require.Equal(t, b, results[1].Path)
	require.True(t, results[0].Changed)
	require.False(t, results[1].Changed)

	written, err := WriteBack(results[0])
	require.NoError(t, err)
	require.True(t, written)
	written, err = WriteBack(results[1])
	require.NoError(t, err)
	require.False(t, written)

	data, err := os.ReadFile(a)
	require.NoError(t, err)
	require.Equal(t, "trait A<U: Clone>\r\nwhere\r\n    Self: ::implied_bounds::ImpliedPredicate<U, Impls: Clone>,\r\n{}\r\n", string(data))
}

func TestCollectSourceFilesKeepsExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snippet.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	files, err := CollectSourceFiles(context.Background(), []string{path, path})
	require.NoError(t, err)
	require.Equal(t, []string{path}, files)
}

func TestTokenizeAndParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte("#[implied_bounds]\ntrait T<U: Clone> {}\n"), 0o644))

	tok, err := Tokenize(path, 0)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Tokens)
	require.Zero(t, tok.Bag.Len())

	parsed, err := Parse(context.Background(), path, 0)
	require.NoError(t, err)
	require.Len(t, parsed.Traits, 1)
	require.NotNil(t, parsed.Traits[0].Trait)
	require.Equal(t, "T", parsed.Traits[0].Trait.Name)
}

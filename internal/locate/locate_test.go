package locate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"entail/internal/diag"
	"entail/internal/locate"
	"entail/internal/source"
)

const sample = `use implied_bounds::implied_bounds;

/// Not annotated.
trait Plain<T: Clone> {}

#[implied_bounds]
pub trait First<U: Clone> {}

mod inner {
    #[derive_nothing]
    /// Docs between attributes.
    #[::implied_bounds::implied_bounds(debug, allow_none)]
    pub(crate) trait Second where Self: Sized {}
}

#[other_attr]
struct NotATrait;

#[implied_bounds]
fn not_a_trait() {}
`

func find(t *testing.T, src string) (*source.File, []locate.Site, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("lib.rs", []byte(src)))
	bag := diag.NewBag(0)
	sites, err := locate.Find(context.Background(), f, locate.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.NoError(t, err)
	return f, sites, bag
}

func text(f *source.File, sp source.Span) string {
	return string(f.Content[sp.Start:sp.End])
}

func TestFindAnnotatedTraits(t *testing.T) {
	f, sites, bag := find(t, sample)
	require.Zero(t, bag.Len())
	require.Len(t, sites, 2)

	first := sites[0]
	require.Equal(t, "First", first.Name)
	require.Equal(t, "#[implied_bounds]", text(f, first.Attr))
	require.True(t, first.Args.Empty())
	require.Equal(t, "#[implied_bounds]\npub trait First<U: Clone> {}", text(f, first.Decl))
	require.Equal(t, "", first.Indent)

	second := sites[1]
	require.Equal(t, "Second", second.Name)
	require.Equal(t, "debug, allow_none", text(f, second.Args))
	require.Equal(t, "    ", second.Indent)
	require.Contains(t, text(f, second.Decl), "#[derive_nothing]")
	require.Equal(t, "pub(crate) trait Second where Self: Sized {}", text(f, second.Trait))
}

func TestFindReportsBrokenFiles(t *testing.T) {
	_, sites, bag := find(t, "#[implied_bounds]\ntrait Ok<T: Copy> {}\n\nfn broken( {\n")
	require.Len(t, sites, 1)
	require.True(t, bag.HasWarnings())
	require.Equal(t, diag.PrjLocateError, bag.Items()[0].Code)
}

func TestFindNothing(t *testing.T) {
	_, sites, _ := find(t, "fn main() {}\n")
	require.Empty(t, sites)
}

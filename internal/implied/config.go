package implied

import (
	"entail/internal/args"
	"entail/internal/ast"
	"entail/internal/source"
)

// DiagnosticPrefix starts every message of an aggregated transformation error.
const DiagnosticPrefix = "`#[::implied_bounds::implied_bounds]`: "

// Config is one rewrite's settings. It is passed by value and never stored
// globally, so concurrent rewrites cannot observe each other's crate path.
type Config struct {
	Debug     bool
	AllowNone bool
	// Crate replaces the `::implied_bounds` prefix of the helper trait path.
	Crate *ast.Path
	// OmitWarningDecls drops the inert warning declarations from the output;
	// the warnings are still returned as diagnostics.
	OmitWarningDecls bool
}

// WithArgs layers attribute arguments over c: flags are or-ed, an explicit
// `crate = ...` wins over the configured path.
func (c Config) WithArgs(a *args.Args) Config {
	if a == nil {
		return c
	}
	c.Debug = c.Debug || a.Debug
	c.AllowNone = c.AllowNone || a.AllowNone
	if a.Crate != nil {
		c.Crate = a.Crate
	}
	return c
}

// cratePath returns the helper crate path, spanned at sp when defaulted.
func (c Config) cratePath(sp source.Span) *ast.Path {
	if c.Crate != nil {
		return ast.ClonePath(c.Crate)
	}
	return &ast.Path{
		Leading:     true,
		LeadingSpan: sp,
		Segments:    []*ast.PathSegment{{Name: "implied_bounds", NameSpan: sp, Span: sp}},
		Span:        sp,
	}
}

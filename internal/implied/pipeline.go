package implied

import (
	"errors"
	"strings"

	"entail/internal/args"
	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/format"
	"entail/internal/parser"
	"entail/internal/source"
)

var errNilTrait = errors.New("implied: nil trait")

// Result is a finished rewrite of one trait.
type Result struct {
	// Trait is the rewritten declaration; the input trait is left untouched.
	Trait       *ast.Trait
	Constraints []Constraint
	Wrappers    []*ast.TypePredicate
	// Diagnostics holds warnings only; errors abort the rewrite instead.
	Diagnostics []diag.Diagnostic
	Decls       []WarningDecl
	Config      Config
}

// Transform rewrites a parsed trait. It never reports errors for a well-formed
// trait; warnings end up in Result.Diagnostics.
func Transform(tr *ast.Trait, cfg Config) (*Result, error) {
	if tr == nil || tr.Generics == nil {
		return nil, errNilTrait
	}
	out := ast.CloneTrait(tr)
	ex := Extract(out, cfg)
	wrappers := make([]*ast.TypePredicate, len(ex.Constraints))
	for i, c := range ex.Constraints {
		wrappers[i] = Wrap(c, cfg)
	}
	Apply(out, wrappers)

	res := &Result{
		Trait:       out,
		Constraints: ex.Constraints,
		Wrappers:    wrappers,
		Diagnostics: ex.Diagnostics,
		Config:      cfg,
	}
	if !cfg.OmitWarningDecls {
		for _, d := range ex.Diagnostics {
			res.Decls = append(res.Decls, warningDecl(d, warningSubject(d, tr.Name, ex.Constraints)))
		}
	}
	return res, nil
}

// Site locates one annotated trait inside a file.
type Site struct {
	Attr source.Span // the `#[implied_bounds(...)]` attribute; zero if none
	Args source.Span // tokens between the attribute's parentheses; empty if none
	Decl source.Span // outer attributes through the closing `}` of the trait
}

// TransformSource parses the attribute arguments and the trait at site and
// rewrites it. Every argument and syntax error is folded into one
// *diag.AggregateError; on error there is no partial result.
func TransformSource(file *source.File, site Site, cfg Config) (*Result, error) {
	var argErrs []diag.Diagnostic
	var a *args.Args
	if !site.Args.Empty() {
		a, argErrs = args.Parse(file, site.Args)
	}

	bag := diag.NewBag(0)
	tr, ok := parser.ParseTrait(file, site.Decl, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if agg := diag.Aggregate(DiagnosticPrefix, argErrs, bag.Errors()); agg != nil {
		return nil, agg
	}
	if !ok {
		return nil, diag.Aggregate(DiagnosticPrefix, []diag.Diagnostic{
			diag.NewError(diag.SynUnexpectedToken, site.Decl, "expected a trait declaration"),
		})
	}
	dropAttribute(tr, site.Attr)
	return Transform(tr, cfg.WithArgs(a))
}

// dropAttribute removes the attribute the rewrite consumes.
func dropAttribute(tr *ast.Trait, sp source.Span) {
	if sp.IsZero() {
		return
	}
	kept := tr.Attrs[:0:0]
	for _, a := range tr.Attrs {
		if a.Span != sp {
			kept = append(kept, a)
		}
	}
	tr.Attrs = kept
}

// Header renders the rewritten generics, supertraits and where clause: the
// text between the trait's name and its body.
func (r *Result) Header(opt format.Options) string {
	return format.Header(r.Trait, opt)
}

// WarningText renders the inert warning declarations, one per line block,
// each line prefixed by indent.
func (r *Result) WarningText(indent string) string {
	var b strings.Builder
	for _, d := range r.Decls {
		for _, line := range strings.Split(d.Text, "\n") {
			b.WriteByte('\n')
			b.WriteString(indent)
			b.WriteString(line)
		}
	}
	return b.String()
}

// Render returns the whole rewritten trait followed by its warning declarations.
func (r *Result) Render(opt format.Options) string {
	return format.Trait(r.Trait, opt) + r.WarningText(opt.BaseIndent)
}

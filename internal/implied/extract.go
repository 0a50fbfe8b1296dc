package implied

import (
	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/source"
)

const (
	msgNotImplied = "[debug] this predicate is not implied, adjusting it…"
	msgNoneFound  = "No non-implied clauses found for this trait, you may skip using this macro altogether." +
		"\n\nTo silence this warning, use `#[…implied_bounds(allow_none, …)]`."
)

// Origin tells where a constraint was found.
type Origin uint8

const (
	FromParam Origin = iota
	FromWhere
)

func (o Origin) String() string {
	if o == FromParam {
		return "param"
	}
	return "where"
}

// Constraint is a non-implied constraint pulled out of a trait.
type Constraint struct {
	Predicate *ast.TypePredicate
	Origin    Origin
	// HigherRanked constraints are not duplicated at their original site.
	HigherRanked bool
	// Site is what a debug warning points at: the bound list of a parameter,
	// or the whole where predicate.
	Site source.Span
}

// Extraction is the outcome of Extract.
type Extraction struct {
	Constraints []Constraint
	Diagnostics []diag.Diagnostic
}

// Extract strips the non-implied constraints from tr, mutating it, and returns
// them in source order: parameter bounds first, then where predicates.
//
// Constraints that are not higher-ranked keep a deep copy at the original
// site so rustc still reports `X: Trait` failures in their plain form.
func Extract(tr *ast.Trait, cfg Config) Extraction {
	var out Extraction
	report := func(sp source.Span) {
		if cfg.Debug {
			out.Diagnostics = append(out.Diagnostics, diag.NewWarning(diag.RewriteNotImplied, sp, msgNotImplied))
		}
	}

	for _, param := range tr.Generics.Params {
		tp, ok := param.(*ast.TypeParam)
		if !ok || len(tp.Bounds) == 0 {
			continue
		}
		bounds := tp.Bounds
		tp.Bounds = nil
		site := ast.BoundsSpan(bounds)
		report(site)
		higher := mayBeHigherRanked(bounds)
		if !higher {
			tp.Bounds = ast.CloneBounds(bounds)
		}
		subject := &ast.PathType{Path: ast.NewIdentPath(tp.Name, tp.NameSpan), Span: tp.NameSpan}
		out.Constraints = append(out.Constraints, Constraint{
			Predicate: &ast.TypePredicate{
				Bounded: subject,
				Colon:   tp.Colon,
				Bounds:  bounds,
				Span:    tp.NameSpan.Cover(site),
			},
			Origin:       FromParam,
			HigherRanked: higher,
			Site:         site,
		})
	}

	if where := tr.Generics.Where; where != nil {
		retained := make([]ast.WherePredicate, 0, len(where.Predicates))
		for _, pred := range where.Predicates {
			tp, ok := pred.(*ast.TypePredicate)
			if !ok || len(tp.Bounds) == 0 || ast.IsSelf(tp.Bounded) {
				retained = append(retained, pred)
				continue
			}
			report(tp.Span)
			higher := !tp.ForLifetimes.IsEmpty() || mayBeHigherRanked(tp.Bounds)
			if !higher {
				retained = append(retained, ast.ClonePredicate(tp))
			}
			out.Constraints = append(out.Constraints, Constraint{
				Predicate:    tp,
				Origin:       FromWhere,
				HigherRanked: higher,
				Site:         tp.Span,
			})
		}
		where.Predicates = retained
	}

	if len(out.Constraints) == 0 && !cfg.AllowNone {
		out.Diagnostics = append(out.Diagnostics, diag.NewWarning(diag.RewriteNoneFound, tr.NameSpan, msgNoneFound))
	}
	return out
}

// mayBeHigherRanked is deliberately coarse: any `for<'a>` bound or any
// `Fn(...)`-style bound counts, whether or not its signature really binds.
func mayBeHigherRanked(bounds []ast.Bound) bool {
	for _, b := range bounds {
		tb, ok := b.(*ast.TraitBound)
		if !ok {
			continue
		}
		if !tb.ForLifetimes.IsEmpty() {
			return true
		}
		if last := tb.Path.Last(); last != nil && last.Args != nil && last.Args.Kind == ast.ArgsParen {
			return true
		}
	}
	return false
}

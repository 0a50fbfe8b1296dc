package implied

import (
	"entail/internal/ast"
)

// Wrap turns `for<..> X: Bounds` into
// `for<..> Self: <crate>::ImpliedPredicate<X, Impls: Bounds>`.
//
// The new tokens take the span of the subject, except the closing `>` which
// takes the span of the last original bound, so an unsatisfied bound is
// reported across the whole rewritten clause.
func Wrap(c Constraint, cfg Config) *ast.TypePredicate {
	pred := c.Predicate
	opening := pred.Bounded.Range()
	closing := opening
	if n := len(pred.Bounds); n > 0 {
		closing = pred.Bounds[n-1].Range()
	}
	whole := opening.Cover(closing)

	path := cfg.cratePath(opening)
	path.Segments = append(path.Segments, &ast.PathSegment{
		Name:     "ImpliedPredicate",
		NameSpan: opening,
		Args: &ast.GenericArgs{
			Kind: ast.ArgsAngle,
			Args: []ast.GenericArg{
				&ast.TypeArg{Type: pred.Bounded},
				&ast.AssocConstraint{
					Name:     "Impls",
					NameSpan: opening,
					Bounds:   pred.Bounds,
					Span:     opening.Cover(closing),
				},
			},
			Open:  opening,
			Close: closing,
			Span:  whole,
		},
		Span: whole,
	})
	path.Span = path.Span.Cover(whole)

	colon := pred.Colon
	if colon.IsZero() {
		colon = opening
	}
	return &ast.TypePredicate{
		ForLifetimes: pred.ForLifetimes,
		Bounded:      ast.NewSelfType(opening),
		Colon:        colon,
		Bounds:       []ast.Bound{&ast.TraitBound{Path: path, Span: whole}},
		Span:         pred.Span.Cover(whole),
	}
}

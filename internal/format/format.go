package format

import "entail/internal/ast"

func render(opt Options, fn func(p *printer)) string {
	p := printer{w: NewWriter(opt)}
	fn(&p)
	return p.w.String()
}

// Type renders a type expression.
func Type(t ast.Type) string {
	return render(Options{}, func(p *printer) { p.printType(t) })
}

// Path renders a path with its generic arguments.
func Path(path *ast.Path) string {
	return render(Options{}, func(p *printer) { p.printPath(path) })
}

// Bound renders one bound.
func Bound(b ast.Bound) string {
	return render(Options{}, func(p *printer) { p.printBound(b) })
}

// Bounds renders `A + B + 'c`.
func Bounds(bounds []ast.Bound) string {
	return render(Options{}, func(p *printer) { p.printBounds(bounds) })
}

// Predicate renders one where predicate without the trailing comma.
func Predicate(pred ast.WherePredicate) string {
	return render(Options{}, func(p *printer) { p.printPredicate(pred) })
}

// GenericParams renders `<...>`, or nothing for an empty list.
func GenericParams(g *ast.Generics) string {
	return render(Options{}, func(p *printer) { p.printGenericParams(g) })
}

// Header renders the text that sits between a trait's name and its body.
func Header(tr *ast.Trait, opt Options) string {
	return render(opt, func(p *printer) { p.printHeader(tr) })
}

// Trait renders a whole trait declaration; the body is reproduced verbatim.
func Trait(tr *ast.Trait, opt Options) string {
	return render(opt, func(p *printer) { p.printTrait(tr) })
}

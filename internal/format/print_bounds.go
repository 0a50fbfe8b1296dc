package format

import "entail/internal/ast"

func (p *printer) printBounds(bounds []ast.Bound) {
	joined(p.w, bounds, " + ", p.printBound)
}

func (p *printer) printBound(b ast.Bound) {
	switch b := b.(type) {
	case *ast.TraitBound:
		if b.Paren {
			p.w.WriteString("(")
		}
		p.printForLifetimes(b.ForLifetimes)
		switch b.Modifier {
		case ast.ModMaybe:
			p.w.WriteString("?")
		case ast.ModMaybeConst:
			p.w.WriteString("~const ")
		case ast.ModConst:
			p.w.WriteString("const ")
		}
		p.printPath(b.Path)
		if b.Paren {
			p.w.WriteString(")")
		}
	case *ast.LifetimeBound:
		p.w.WriteString(b.Lifetime.Name)
	case *ast.VerbatimBound:
		p.w.WriteString(b.Text)
	}
}

// printForLifetimes пишет `for<'a> ` (с пробелом) или ничего.
func (p *printer) printForLifetimes(bl *ast.BoundLifetimes) {
	if bl == nil {
		return
	}
	p.w.WriteString("for<")
	for i, lt := range bl.Lifetimes {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.w.WriteString(lt.Name)
	}
	p.w.WriteString("> ")
}

func (p *printer) printLifetimeList(lts []*ast.Lifetime) {
	for i, lt := range lts {
		if i > 0 {
			p.w.WriteString(" + ")
		}
		p.w.WriteString(lt.Name)
	}
}

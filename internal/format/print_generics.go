package format

import "entail/internal/ast"

func (p *printer) printAttrsInline(attrs []*ast.Attribute) {
	for _, a := range attrs {
		p.w.WriteString(a.Text)
		p.w.WriteString(" ")
	}
}

// printGenericParams пишет `<...>`; пустой список не печатается.
func (p *printer) printGenericParams(g *ast.Generics) {
	if g == nil || len(g.Params) == 0 {
		return
	}
	p.w.WriteString("<")
	joined(p.w, g.Params, ", ", p.printGenericParam)
	p.w.WriteString(">")
}

func (p *printer) printGenericParam(param ast.GenericParam) {
	switch gp := param.(type) {
	case *ast.LifetimeParam:
		p.printAttrsInline(gp.Attrs)
		p.w.WriteString(gp.Lifetime.Name)
		if len(gp.Bounds) > 0 {
			p.w.WriteString(": ")
			p.printLifetimeList(gp.Bounds)
		}
	case *ast.TypeParam:
		p.printAttrsInline(gp.Attrs)
		p.w.WriteString(gp.Name)
		if len(gp.Bounds) > 0 {
			p.w.WriteString(": ")
			p.printBounds(gp.Bounds)
		}
		if gp.Default != nil {
			p.w.WriteString(" = ")
			p.printType(gp.Default)
		}
	case *ast.ConstParam:
		p.printAttrsInline(gp.Attrs)
		p.w.WriteString("const ")
		p.w.WriteString(gp.Name)
		p.w.WriteString(": ")
		p.printType(gp.Type)
		if gp.Default != nil {
			p.w.WriteString(" = ")
			p.w.WriteString(gp.Default.Text)
		}
	}
}

func (p *printer) printPredicate(pred ast.WherePredicate) {
	switch wp := pred.(type) {
	case *ast.TypePredicate:
		p.printForLifetimes(wp.ForLifetimes)
		p.printType(wp.Bounded)
		p.w.WriteString(":")
		if len(wp.Bounds) > 0 {
			p.w.WriteString(" ")
			p.printBounds(wp.Bounds)
		}
	case *ast.LifetimePredicate:
		p.w.WriteString(wp.Lifetime.Name)
		p.w.WriteString(":")
		if len(wp.Bounds) > 0 {
			p.w.WriteString(" ")
			p.printLifetimeList(wp.Bounds)
		}
	}
}

// printWhereClause пишет многострочный where с завершающими запятыми.
// Пустой where не печатается вовсе.
func (p *printer) printWhereClause(wc *ast.WhereClause) bool {
	if wc == nil || len(wc.Predicates) == 0 {
		return false
	}
	p.w.Newline()
	p.w.WriteString("where")
	p.w.IndentPush()
	for _, pred := range wc.Predicates {
		p.w.Newline()
		p.printPredicate(pred)
		p.w.WriteString(",")
	}
	p.w.IndentPop()
	p.w.Newline()
	return true
}

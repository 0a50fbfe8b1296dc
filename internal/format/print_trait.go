package format

import "entail/internal/ast"

// printHeader пишет всё между именем трейта и телом, включая разделитель
// перед `{`: пробел или перевод строки после where.
func (p *printer) printHeader(tr *ast.Trait) {
	p.printGenericParams(tr.Generics)
	if len(tr.Supertraits) > 0 {
		p.w.WriteString(": ")
		p.printBounds(tr.Supertraits)
	}
	var wc *ast.WhereClause
	if tr.Generics != nil {
		wc = tr.Generics.Where
	}
	if p.printWhereClause(wc) {
		p.w.writeIndent()
	} else {
		p.w.WriteString(" ")
	}
}

func (p *printer) printTrait(tr *ast.Trait) {
	for _, doc := range tr.Docs {
		p.w.WriteString(doc)
		p.w.Newline()
	}
	for _, a := range tr.Attrs {
		p.w.WriteString(a.Text)
		p.w.Newline()
	}
	if tr.Vis != nil {
		p.w.WriteString(tr.Vis.Text)
		p.w.WriteString(" ")
	}
	if tr.Unsafe {
		p.w.WriteString("unsafe ")
	}
	if tr.Auto {
		p.w.WriteString("auto ")
	}
	p.w.WriteString("trait ")
	p.w.WriteString(tr.Name)
	p.printHeader(tr)
	body := tr.BodyText
	if body == "" {
		body = "{}"
	}
	// тело уже содержит исходные отступы
	p.w.WriteString(body)
}

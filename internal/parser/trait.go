package parser

import (
	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/token"
)

// parseTrait: `attrs* vis? unsafe? auto? trait Name<...>: Supers where ... { items }`.
func (p *Parser) parseTrait() (*ast.Trait, bool) {
	start, startIdx := p.peek().Span, p.pos
	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return nil, false
	}
	tr := &ast.Trait{Attrs: attrs}
	tr.Vis = p.parseVisibility()
	if _, ok := p.eat(token.KwUnsafe); ok {
		tr.Unsafe = true
	}
	if p.at(token.Ident) && p.peek().Text == "auto" && p.peekN(1).Kind == token.KwTrait {
		p.advance()
		tr.Auto = true
	}
	kw, ok := p.expect(token.KwTrait, diag.SynExpectTrait, "expected a trait declaration")
	if !ok {
		return nil, false
	}
	// doc-комментарии могут стоять и между атрибутами
	tr.Docs = p.collectDocs(startIdx, p.pos)
	tr.TraitSpan = kw.Span
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected trait name")
	if !ok {
		return nil, false
	}
	tr.Name, tr.NameSpan = name.Text, name.Span

	generics, ok := p.parseGenericParams()
	if !ok {
		return nil, false
	}
	tr.Generics = generics
	if colon, ok := p.eat(token.Colon); ok {
		tr.Colon = colon.Span
		tr.Supertraits, ok = p.parseBounds(true)
		if !ok {
			return nil, false
		}
	}
	if p.at(token.KwWhere) {
		where, ok := p.parseWhereClause()
		if !ok {
			return nil, false
		}
		tr.Generics.Where = where
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBody, "expected `{` to open the trait body")
		return nil, false
	}
	if !p.parseTraitBody(tr) {
		return nil, false
	}
	tr.Span = p.spanFrom(start)
	return tr, true
}

// collectDocs возвращает doc-комментарии перед токенами [from, to).
func (p *Parser) collectDocs(from, to int) []string {
	var docs []string
	for _, tok := range p.toks[from:to] {
		for _, tr := range tok.Leading {
			if tr.IsDoc() {
				docs = append(docs, tr.Text)
			}
		}
	}
	return docs
}

func (p *Parser) parseTraitBody(tr *ast.Trait) bool {
	open := p.advance()
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed trait body")
			return false
		}
		item, assoc, ok := p.parseTraitItem()
		if !ok {
			return false
		}
		tr.Items = append(tr.Items, item)
		if assoc != nil {
			tr.AssocTypes = append(tr.AssocTypes, assoc)
		}
	}
	p.advance()
	tr.BodySpan = p.spanFrom(open.Span)
	tr.BodyText = p.text(tr.BodySpan)
	return true
}

// parseTraitItem разбирает один элемент тела. Ассоциированные типы разбираются
// полностью, остальное сохраняется как текст.
func (p *Parser) parseTraitItem() (*ast.TraitItem, *ast.AssocType, bool) {
	start := p.peek().Span
	for p.at(token.Pound) {
		n := 1
		if p.peekN(1).Kind == token.Bang {
			n = 2
		}
		if p.peekN(n).Kind != token.LBracket {
			break
		}
		for ; n > 0; n-- {
			p.advance()
		}
		if _, ok := p.skipDelimited(); !ok {
			return nil, nil, false
		}
	}
	p.parseVisibility()
	if p.at(token.Ident) && p.peek().Text == "default" && p.peekN(1).Kind != token.Bang {
		p.advance()
	}

	item := &ast.TraitItem{}
	var assoc *ast.AssocType
	switch {
	case p.at(token.KwType):
		at, ok := p.parseAssocType()
		if !ok {
			return nil, nil, false
		}
		assoc = at
		item.Kind, item.Name = ast.ItemAssocType, at.Name
	case p.at(token.Semicolon):
		// пустой элемент
		p.advance()
	default:
		item.Kind, item.Name = p.classifyItem()
		if !p.skipItem(item.Kind) {
			return nil, nil, false
		}
	}
	item.Span = p.spanFrom(start)
	item.Text = p.text(item.Span)
	return item, assoc, true
}

// classifyItem смотрит вперёд, не съедая токены.
func (p *Parser) classifyItem() (ast.ItemKind, string) {
	for i := 0; ; i++ {
		tok := p.peekN(i)
		switch tok.Kind {
		case token.KwFn:
			return ast.ItemFn, p.peekN(i + 1).Text
		case token.KwConst:
			next := p.peekN(i + 1)
			if next.Kind == token.Ident || next.Kind == token.Underscore {
				if next.Text == "async" || next.Text == "unsafe" {
					continue
				}
				return ast.ItemConst, next.Text
			}
		case token.KwUnsafe, token.KwExtern, token.StrLit:
		case token.Ident:
			if tok.Text == "async" {
				continue
			}
			if p.peekN(i+1).Kind == token.Bang || p.peekN(i+1).Kind == token.ColonColon {
				return ast.ItemMacro, tok.Text
			}
			return ast.ItemOther, ""
		default:
			return ast.ItemOther, ""
		}
	}
}

// skipItem съедает элемент до `;` на нулевой глубине; функции и макросы
// с фигурными скобками заканчиваются на закрывающей `}`.
func (p *Parser) skipItem(kind ast.ItemKind) bool {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF || tok.Kind == token.RBrace:
			p.err(diag.SynUnexpectedToken, "expected `;` or a body to end the item")
			return false
		case tok.Kind == token.Semicolon:
			p.advance()
			return true
		case tok.Kind == token.LBrace:
			if _, ok := p.skipDelimited(); !ok {
				return false
			}
			if kind == ast.ItemFn || kind == ast.ItemMacro {
				return true
			}
		case isOpenDelim(tok.Kind):
			if _, ok := p.skipDelimited(); !ok {
				return false
			}
		case isCloseDelim(tok.Kind):
			p.err(diag.SynUnexpectedToken, "mismatched closing delimiter")
			return false
		default:
			p.advance()
		}
	}
}

// parseAssocType: `type Name<...>: Bounds where ... = Default where ...;`
func (p *Parser) parseAssocType() (*ast.AssocType, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected associated type name")
	if !ok {
		return nil, false
	}
	at := &ast.AssocType{Name: name.Text, NameSpan: name.Span}
	if at.Generics, ok = p.parseGenericParams(); !ok {
		return nil, false
	}
	if _, ok := p.eat(token.Colon); ok {
		if at.Bounds, ok = p.parseBounds(true); !ok {
			return nil, false
		}
	}
	if p.at(token.KwWhere) {
		if at.Generics.Where, ok = p.parseWhereClause(); !ok {
			return nil, false
		}
	}
	if _, ok := p.eat(token.Eq); ok {
		if at.Default, ok = p.parseType(true); !ok {
			return nil, false
		}
		if p.at(token.KwWhere) {
			where, ok := p.parseWhereClause()
			if !ok {
				return nil, false
			}
			mergeWhere(at.Generics, where)
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynUnexpectedToken, "expected `;` after associated type"); !ok {
		return nil, false
	}
	at.Span = p.spanFrom(kw.Span)
	return at, true
}

func mergeWhere(g *ast.Generics, w *ast.WhereClause) {
	if g.Where == nil {
		g.Where = w
		return
	}
	g.Where.Predicates = append(g.Where.Predicates, w.Predicates...)
	g.Where.Span = g.Where.Span.Cover(w.Span)
}

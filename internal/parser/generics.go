package parser

import (
	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/token"
)

// parseGenericParams разбирает `<...>` после имени. Generics всегда не nil.
func (p *Parser) parseGenericParams() (*ast.Generics, bool) {
	g := &ast.Generics{}
	if !p.at(token.Lt) {
		return g, true
	}
	open := p.advance()
	g.Open = open.Span
	for !p.at(token.Gt) {
		param, ok := p.parseGenericParam()
		if !ok {
			return nil, false
		}
		g.Params = append(g.Params, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	closeTok, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected `>` to close the generic parameters")
	if !ok {
		return nil, false
	}
	g.Close = closeTok.Span
	return g, true
}

func (p *Parser) parseGenericParam() (ast.GenericParam, bool) {
	start := p.peek().Span
	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return nil, false
	}
	switch p.peek().Kind {
	case token.Lifetime:
		lt := p.parseLifetime()
		param := &ast.LifetimeParam{Attrs: attrs, Lifetime: lt}
		if colon, ok := p.eat(token.Colon); ok {
			param.Colon = colon.Span
			param.Bounds = p.parseLifetimeBounds()
		}
		param.Span = p.spanFrom(start)
		return param, true

	case token.KwConst:
		p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected const parameter name")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected `:` after const parameter name"); !ok {
			return nil, false
		}
		ty, ok := p.parseType(false)
		if !ok {
			return nil, false
		}
		param := &ast.ConstParam{Attrs: attrs, Name: name.Text, Type: ty}
		if _, ok := p.eat(token.Eq); ok {
			param.Default = p.parseConstExpr()
		}
		param.Span = p.spanFrom(start)
		return param, true

	case token.Ident:
		name := p.advance()
		param := &ast.TypeParam{Attrs: attrs, Name: name.Text, NameSpan: name.Span}
		if colon, ok := p.eat(token.Colon); ok {
			param.Colon = colon.Span
			if param.Bounds, ok = p.parseBounds(true); !ok {
				return nil, false
			}
		}
		if _, ok := p.eat(token.Eq); ok {
			if param.Default, ok = p.parseType(true); !ok {
				return nil, false
			}
		}
		param.Span = p.spanFrom(start)
		return param, true
	}
	p.err(diag.SynExpectIdentifier, "expected a generic parameter")
	return nil, false
}

// parseConstExpr сохраняет выражение как текст до `,` или `>` на нулевой глубине.
func (p *Parser) parseConstExpr() *ast.Expr {
	var sp = p.peek().Span.ZeroideToStart()
	if p.at(token.LBrace) {
		sp, _ = p.skipDelimited()
	} else {
		sp = p.skipUntil(token.Comma, token.Gt, token.Semicolon)
	}
	if sp.Empty() {
		p.err(diag.SynUnexpectedToken, "expected a const expression")
	}
	return &ast.Expr{Text: p.text(sp), Span: sp}
}

func (p *Parser) parseLifetime() *ast.Lifetime {
	tok := p.advance()
	return &ast.Lifetime{Name: tok.Text, Span: tok.Span}
}

// parseLifetimeBounds: `'a + 'b`, допускается завершающий `+`.
func (p *Parser) parseLifetimeBounds() []*ast.Lifetime {
	var out []*ast.Lifetime
	for p.at(token.Lifetime) {
		out = append(out, p.parseLifetime())
		if _, ok := p.eat(token.Plus); !ok {
			break
		}
	}
	return out
}

// parseBoundLifetimes: `for<'a, 'b>`.
func (p *Parser) parseBoundLifetimes() (*ast.BoundLifetimes, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.Lt, diag.SynUnexpectedToken, "expected `<` after `for`"); !ok {
		return nil, false
	}
	bl := &ast.BoundLifetimes{}
	for p.at(token.Lifetime) {
		bl.Lifetimes = append(bl.Lifetimes, p.parseLifetime())
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected `>` to close `for<...>`"); !ok {
		return nil, false
	}
	bl.Span = p.spanFrom(kw.Span)
	return bl, true
}

// parseWhereClause: `where P, P,` до `{`, `;` или `=`.
func (p *Parser) parseWhereClause() (*ast.WhereClause, bool) {
	kw := p.advance()
	wc := &ast.WhereClause{WhereSpan: kw.Span}
	for !p.atOr(token.LBrace, token.Semicolon, token.Eq, token.EOF) {
		pred, ok := p.parseWherePredicate()
		if !ok {
			return nil, false
		}
		wc.Predicates = append(wc.Predicates, pred)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	wc.Span = p.spanFrom(kw.Span)
	return wc, true
}

func (p *Parser) parseWherePredicate() (ast.WherePredicate, bool) {
	start := p.peek().Span
	if p.at(token.Lifetime) {
		pred := &ast.LifetimePredicate{Lifetime: p.parseLifetime()}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected `:` after lifetime"); !ok {
			return nil, false
		}
		pred.Bounds = p.parseLifetimeBounds()
		pred.Span = p.spanFrom(start)
		return pred, true
	}

	pred := &ast.TypePredicate{}
	if p.at(token.KwFor) {
		bl, ok := p.parseBoundLifetimes()
		if !ok {
			return nil, false
		}
		pred.ForLifetimes = bl
	}
	ty, ok := p.parseType(true)
	if !ok {
		return nil, false
	}
	pred.Bounded = ty
	colon, ok := p.expect(token.Colon, diag.SynExpectColon, "expected `:` in where predicate")
	if !ok {
		return nil, false
	}
	pred.Colon = colon.Span
	if pred.Bounds, ok = p.parseBounds(true); !ok {
		return nil, false
	}
	pred.Span = p.spanFrom(start)
	return pred, true
}

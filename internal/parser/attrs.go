package parser

import (
	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/token"
)

// parseAttribute разбирает `#[path args?]`. Аргументы сохраняются как есть.
func (p *Parser) parseAttribute() (*ast.Attribute, bool) {
	pound, ok := p.expect(token.Pound, diag.SynUnexpectedToken, "expected `#`")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "expected `[` after `#`"); !ok {
		return nil, false
	}
	path, ok := p.parsePath(pathModStyle)
	if !ok {
		p.resync(token.RBracket)
		p.eat(token.RBracket)
		return nil, false
	}
	attr := &ast.Attribute{Path: path}
	switch {
	case p.atOr(token.LParen, token.LBracket, token.LBrace):
		sp, ok := p.skipDelimited()
		if !ok {
			return nil, false
		}
		attr.Args = &ast.Expr{Text: p.text(sp), Span: sp}
	case p.at(token.Eq):
		eq := p.advance()
		sp := eq.Span.Cover(p.skipUntil(token.RBracket))
		attr.Args = &ast.Expr{Text: p.text(sp), Span: sp}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected `]` to close the attribute"); !ok {
		return nil, false
	}
	attr.Span = p.spanFrom(pound.Span)
	attr.Text = p.text(attr.Span)
	return attr, true
}

// parseOuterAttrs собирает подряд идущие `#[...]`.
func (p *Parser) parseOuterAttrs() ([]*ast.Attribute, bool) {
	var attrs []*ast.Attribute
	for p.at(token.Pound) && p.peekN(1).Kind == token.LBracket {
		attr, ok := p.parseAttribute()
		if !ok {
			return attrs, false
		}
		attrs = append(attrs, attr)
	}
	return attrs, true
}

// parseVisibility: `pub`, `pub(crate)`, `pub(self)`, `pub(super)`, `pub(in path)`.
func (p *Parser) parseVisibility() *ast.Visibility {
	if !p.at(token.KwPub) {
		return nil
	}
	pub := p.advance()
	if p.at(token.LParen) {
		switch p.peekN(1).Kind {
		case token.KwCrate, token.KwSelfValue, token.KwSuper:
			if p.peekN(2).Kind == token.RParen {
				p.skipDelimited()
			}
		case token.KwIn:
			p.skipDelimited()
		}
	}
	sp := p.spanFrom(pub.Span)
	return &ast.Visibility{Text: p.text(sp), Span: sp}
}

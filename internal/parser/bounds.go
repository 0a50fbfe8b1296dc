package parser

import (
	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/token"
)

// canStartBound: может ли текущий токен начать ограничение.
func (p *Parser) canStartBound() bool {
	switch p.peek().Kind {
	case token.Lifetime, token.LParen, token.Question, token.Tilde, token.KwFor,
		token.KwConst, token.KwUse, token.ColonColon, token.Dollar:
		return true
	}
	return p.peek().IsPathSegmentStart()
}

// parseBounds: `B + B + ...`; пустой список и завершающий `+` допустимы.
// С allowPlus=false разбирается не больше одного ограничения.
func (p *Parser) parseBounds(allowPlus bool) ([]ast.Bound, bool) {
	var out []ast.Bound
	for p.canStartBound() {
		b, ok := p.parseBound()
		if !ok {
			return nil, false
		}
		out = append(out, b)
		if !allowPlus {
			break
		}
		if _, ok := p.eat(token.Plus); !ok {
			break
		}
	}
	return out, true
}

func (p *Parser) parseBound() (ast.Bound, bool) {
	start := p.peek().Span
	switch {
	case p.at(token.Lifetime):
		return &ast.LifetimeBound{Lifetime: p.parseLifetime()}, true

	case p.at(token.KwUse):
		p.advance()
		if !p.at(token.Lt) {
			p.err(diag.SynExpectBound, "expected `<` after `use`")
			return nil, false
		}
		if !p.skipAngles() {
			return nil, false
		}
		sp := p.spanFrom(start)
		return &ast.VerbatimBound{Text: p.text(sp), Span: sp}, true

	case p.at(token.LParen):
		p.advance()
		inner, ok := p.parseTraitBound()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected `)` to close the bound"); !ok {
			return nil, false
		}
		inner.Paren = true
		inner.Span = p.spanFrom(start)
		return inner, true
	}
	tb, ok := p.parseTraitBound()
	if !ok {
		return nil, false
	}
	return tb, true
}

// parseTraitBound: `for<'a>? (? | ~const | const)? for<'a>? Path`.
func (p *Parser) parseTraitBound() (*ast.TraitBound, bool) {
	start := p.peek().Span
	tb := &ast.TraitBound{}
	if p.at(token.KwFor) {
		bl, ok := p.parseBoundLifetimes()
		if !ok {
			return nil, false
		}
		tb.ForLifetimes = bl
	}
	switch {
	case p.at(token.Question):
		p.advance()
		tb.Modifier = ast.ModMaybe
	case p.at(token.Tilde) && p.peekN(1).Kind == token.KwConst:
		p.advance()
		p.advance()
		tb.Modifier = ast.ModMaybeConst
	case p.at(token.KwConst):
		p.advance()
		tb.Modifier = ast.ModConst
	}
	if tb.ForLifetimes == nil && p.at(token.KwFor) {
		bl, ok := p.parseBoundLifetimes()
		if !ok {
			return nil, false
		}
		tb.ForLifetimes = bl
	}
	if !p.atPathStart() {
		p.err(diag.SynExpectBound, "expected a trait bound")
		return nil, false
	}
	path, ok := p.parsePath(pathTypeStyle)
	if !ok {
		return nil, false
	}
	tb.Path = path
	tb.Span = p.spanFrom(start)
	return tb, true
}

// skipAngles съедает `<...>` с учётом вложенности угловых скобок.
func (p *Parser) skipAngles() bool {
	open := p.advance()
	depth := 1
	for depth > 0 {
		switch {
		case p.at(token.EOF):
			p.report(diag.SynUnclosedAngle, diag.SevError, open.Span, "unclosed `<`")
			return false
		case p.at(token.Lt):
			depth++
		case p.at(token.Gt):
			depth--
		case isOpenDelim(p.peek().Kind):
			if _, ok := p.skipDelimited(); !ok {
				return false
			}
			continue
		}
		p.advance()
	}
	return true
}

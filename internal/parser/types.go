package parser

import (
	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/token"
)

// parseType разбирает тип. allowPlus разрешает `dyn A + B` без скобок;
// после `&`, `*` и `->` он выключен, как в rustc.
func (p *Parser) parseType(allowPlus bool) (ast.Type, bool) {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.LParen:
		return p.parseTupleOrParen()

	case token.LBracket:
		p.advance()
		elem, ok := p.parseType(true)
		if !ok {
			return nil, false
		}
		if _, ok := p.eat(token.Semicolon); ok {
			sp := p.skipUntil(token.RBracket)
			if sp.Empty() {
				p.err(diag.SynUnexpectedToken, "expected an array length")
				return nil, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected `]`"); !ok {
				return nil, false
			}
			return &ast.ArrayType{Elem: elem, Len: &ast.Expr{Text: p.text(sp), Span: sp}, Span: p.spanFrom(start)}, true
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected `]`"); !ok {
			return nil, false
		}
		return &ast.SliceType{Elem: elem, Span: p.spanFrom(start)}, true

	case token.Amp:
		p.advance()
		ref := &ast.RefType{}
		if p.at(token.Lifetime) {
			ref.Lifetime = p.parseLifetime()
		}
		if _, ok := p.eat(token.KwMut); ok {
			ref.Mut = true
		}
		elem, ok := p.parseType(false)
		if !ok {
			return nil, false
		}
		ref.Elem = elem
		ref.Span = p.spanFrom(start)
		return ref, true

	case token.Star:
		p.advance()
		ptr := &ast.PtrType{}
		switch {
		case p.at(token.KwMut):
			p.advance()
			ptr.Mut = true
		case p.at(token.KwConst):
			p.advance()
		default:
			p.err(diag.SynExpectType, "expected `const` or `mut` after `*`")
			return nil, false
		}
		elem, ok := p.parseType(false)
		if !ok {
			return nil, false
		}
		ptr.Elem = elem
		ptr.Span = p.spanFrom(start)
		return ptr, true

	case token.Bang:
		p.advance()
		return &ast.NeverType{Span: start}, true

	case token.Underscore:
		p.advance()
		return &ast.InferType{Span: start}, true

	case token.KwFn, token.KwUnsafe, token.KwExtern:
		return p.parseFnType(nil)

	case token.KwFor:
		bl, ok := p.parseBoundLifetimes()
		if !ok {
			return nil, false
		}
		if p.atOr(token.KwFn, token.KwUnsafe, token.KwExtern) {
			return p.parseFnType(bl)
		}
		// `for<'a> Trait<'a>`: трейт-объект без `dyn`
		first, ok := p.parseTraitBound()
		if !ok {
			return nil, false
		}
		first.ForLifetimes = bl
		first.Span = p.spanFrom(start)
		bounds := []ast.Bound{first}
		if allowPlus {
			if _, ok := p.eat(token.Plus); ok {
				rest, ok := p.parseBounds(true)
				if !ok {
					return nil, false
				}
				bounds = append(bounds, rest...)
			}
		}
		return &ast.TraitObjectType{Bounds: bounds, Span: p.spanFrom(start)}, true

	case token.KwDyn:
		p.advance()
		bounds, ok := p.parseBounds(allowPlus)
		if !ok {
			return nil, false
		}
		if len(bounds) == 0 {
			p.err(diag.SynExpectBound, "expected at least one bound after `dyn`")
			return nil, false
		}
		return &ast.TraitObjectType{Dyn: true, Bounds: bounds, Span: p.spanFrom(start)}, true

	case token.KwImpl:
		p.advance()
		bounds, ok := p.parseBounds(allowPlus)
		if !ok {
			return nil, false
		}
		if len(bounds) == 0 {
			p.err(diag.SynExpectBound, "expected at least one bound after `impl`")
			return nil, false
		}
		return &ast.ImplTraitType{Bounds: bounds, Span: p.spanFrom(start)}, true

	case token.Lt:
		return p.parseQualifiedPathType()
	}

	if p.atPathStart() {
		path, ok := p.parsePath(pathTypeStyle)
		if !ok {
			return nil, false
		}
		if p.at(token.Bang) && isOpenDelim(p.peekN(1).Kind) {
			p.advance()
			sp, ok := p.skipDelimited()
			if !ok {
				return nil, false
			}
			return &ast.MacroType{Path: path, Tokens: &ast.Expr{Text: p.text(sp), Span: sp}, Span: p.spanFrom(start)}, true
		}
		return &ast.PathType{Path: path, Span: p.spanFrom(start)}, true
	}

	p.err(diag.SynExpectType, "expected a type")
	return nil, false
}

// parseTupleOrParen: `()`, `(T)`, `(T,)`, `(A, B)`.
func (p *Parser) parseTupleOrParen() (ast.Type, bool) {
	open := p.advance()
	var elems []ast.Type
	trailingComma := false
	for !p.at(token.RParen) {
		ty, ok := p.parseType(true)
		if !ok {
			return nil, false
		}
		elems = append(elems, ty)
		trailingComma = false
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		trailingComma = true
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected `)`"); !ok {
		return nil, false
	}
	sp := p.spanFrom(open.Span)
	if len(elems) == 1 && !trailingComma {
		return &ast.ParenType{Elem: elems[0], Span: sp}, true
	}
	return &ast.TupleType{Elems: elems, Span: sp}, true
}

// parseQualifiedPathType: `<T as Trait>::Assoc` и `<T>::Assoc`.
func (p *Parser) parseQualifiedPathType() (ast.Type, bool) {
	open := p.advance()
	self, ok := p.parseType(true)
	if !ok {
		return nil, false
	}
	q := &ast.QSelf{Type: self}
	if _, ok := p.eat(token.KwAs); ok {
		if q.As, ok = p.parsePath(pathTypeStyle); !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected `>` to close the qualified path"); !ok {
		return nil, false
	}
	q.Span = p.spanFrom(open.Span)
	if _, ok := p.expect(token.ColonColon, diag.SynUnexpectedToken, "expected `::` after a qualified self type"); !ok {
		return nil, false
	}
	rest := &ast.Path{}
	restStart := p.peek().Span
	for {
		seg, ok := p.parsePathSegment(pathTypeStyle)
		if !ok {
			return nil, false
		}
		rest.Segments = append(rest.Segments, seg)
		if !p.at(token.ColonColon) || !p.segmentStartsAt(1) {
			break
		}
		p.advance()
	}
	rest.Span = p.spanFrom(restStart)
	return &ast.PathType{QSelf: q, Path: rest, Span: p.spanFrom(open.Span)}, true
}

// parseFnType: `unsafe extern "C" fn(A, name: B, ...) -> R`.
func (p *Parser) parseFnType(bl *ast.BoundLifetimes) (ast.Type, bool) {
	start := p.peek().Span
	if bl != nil {
		start = bl.Span
	}
	fn := &ast.FnType{ForLifetimes: bl}
	if _, ok := p.eat(token.KwUnsafe); ok {
		fn.Unsafe = true
	}
	if ext, ok := p.eat(token.KwExtern); ok {
		sp := ext.Span
		if abi, ok := p.eat(token.StrLit); ok {
			sp = sp.Cover(abi.Span)
		}
		fn.Abi = p.text(sp)
	}
	if _, ok := p.expect(token.KwFn, diag.SynExpectType, "expected `fn`"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected `(`"); !ok {
		return nil, false
	}
	for !p.at(token.RParen) {
		if p.at(token.DotDot) && p.peekN(1).Kind == token.Dot {
			p.advance()
			p.advance()
			fn.Variadic = true
			break
		}
		name := ""
		if (p.at(token.Ident) || p.at(token.Underscore)) && p.peekN(1).Kind == token.Colon {
			name = p.advance().Text
			p.advance()
		}
		ty, ok := p.parseType(true)
		if !ok {
			return nil, false
		}
		fn.Inputs = append(fn.Inputs, ty)
		fn.Names = append(fn.Names, name)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected `)`"); !ok {
		return nil, false
	}
	if _, ok := p.eat(token.Arrow); ok {
		out, ok := p.parseType(false)
		if !ok {
			return nil, false
		}
		fn.Output = out
	}
	fn.Span = p.spanFrom(start)
	return fn, true
}

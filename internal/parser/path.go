package parser

import (
	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/token"
)

type pathStyle uint8

const (
	// pathModStyle: только сегменты без аргументов (пути атрибутов).
	pathModStyle pathStyle = iota
	// pathTypeStyle: сегменты с `<...>`, `::<...>` и `(...) -> R`.
	pathTypeStyle
)

func (p *Parser) atPathStart() bool {
	if p.at(token.ColonColon) {
		return true
	}
	if p.at(token.Dollar) {
		return p.peekN(1).Kind == token.KwCrate || p.peekN(1).Kind == token.Ident
	}
	return p.peek().IsPathSegmentStart()
}

// parsePath: `$(::)? seg (:: seg)*`.
func (p *Parser) parsePath(style pathStyle) (*ast.Path, bool) {
	start := p.peek().Span
	path := &ast.Path{}
	if tok, ok := p.eat(token.ColonColon); ok {
		path.Leading = true
		path.LeadingSpan = tok.Span
	}
	for {
		seg, ok := p.parsePathSegment(style)
		if !ok {
			return nil, false
		}
		path.Segments = append(path.Segments, seg)
		if !p.at(token.ColonColon) || !p.segmentStartsAt(1) {
			break
		}
		p.advance()
	}
	path.Span = p.spanFrom(start)
	return path, true
}

func (p *Parser) segmentStartsAt(n int) bool {
	tok := p.peekN(n)
	if tok.Kind == token.Dollar {
		return true
	}
	return tok.IsPathSegmentStart()
}

func (p *Parser) parsePathSegment(style pathStyle) (*ast.PathSegment, bool) {
	start := p.peek().Span
	seg := &ast.PathSegment{}
	switch {
	case p.at(token.Dollar):
		dollar := p.advance()
		next := p.peek()
		if next.Kind != token.KwCrate && next.Kind != token.Ident {
			p.err(diag.SynExpectIdentifier, "expected `crate` or a metavariable after `$`")
			return nil, false
		}
		p.advance()
		seg.Name = "$" + next.Text
		seg.NameSpan = dollar.Span.Cover(next.Span)
	case p.peek().IsPathSegmentStart():
		tok := p.advance()
		seg.Name, seg.NameSpan = tok.Text, tok.Span
	default:
		p.err(diag.SynExpectIdentifier, "expected a path segment")
		return nil, false
	}

	if style == pathTypeStyle {
		switch {
		case p.at(token.Lt):
			args, ok := p.parseAngleArgs(false)
			if !ok {
				return nil, false
			}
			seg.Args = args
		case p.at(token.ColonColon) && p.peekN(1).Kind == token.Lt:
			p.advance()
			args, ok := p.parseAngleArgs(true)
			if !ok {
				return nil, false
			}
			seg.Args = args
		case p.at(token.LParen):
			args, ok := p.parseParenArgs()
			if !ok {
				return nil, false
			}
			seg.Args = args
		}
	}
	seg.Span = p.spanFrom(start)
	return seg, true
}

// parseAngleArgs: `<A, 'a, 3, Item = T, Impls: Bound>`.
func (p *Parser) parseAngleArgs(turbofish bool) (*ast.GenericArgs, bool) {
	open := p.advance()
	args := &ast.GenericArgs{Kind: ast.ArgsAngle, Turbofish: turbofish, Open: open.Span}
	for !p.at(token.Gt) {
		arg, ok := p.parseGenericArg()
		if !ok {
			return nil, false
		}
		args.Args = append(args.Args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	closeTok, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected `>` to close the generic arguments")
	if !ok {
		return nil, false
	}
	args.Close = closeTok.Span
	args.Span = p.spanFrom(open.Span)
	return args, true
}

func (p *Parser) parseGenericArg() (ast.GenericArg, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Lifetime:
		return &ast.LifetimeArg{Lifetime: p.parseLifetime()}, true
	case tok.IsLiteral() || tok.Kind == token.Minus || tok.Kind == token.LBrace:
		return &ast.ConstArg{Expr: p.parseConstExpr()}, true
	case tok.Kind == token.Ident:
		if after, ok := p.assocLookahead(); ok {
			return p.parseAssocArg(after)
		}
	}
	ty, ok := p.parseType(true)
	if !ok {
		return nil, false
	}
	return &ast.TypeArg{Type: ty}, true
}

// assocLookahead проверяет форму `Ident <args>? (= | :)` и возвращает
// вид разделителя, ничего не съедая.
func (p *Parser) assocLookahead() (token.Kind, bool) {
	i := 1
	if p.peekN(i).Kind == token.Lt {
		depth := 0
		for {
			switch p.peekN(i).Kind {
			case token.Lt:
				depth++
			case token.Gt:
				depth--
			case token.EOF, token.Semicolon, token.LBrace:
				return token.Invalid, false
			}
			i++
			if depth == 0 {
				break
			}
		}
	}
	switch k := p.peekN(i).Kind; k {
	case token.Eq, token.Colon:
		return k, true
	}
	return token.Invalid, false
}

func (p *Parser) parseAssocArg(sep token.Kind) (ast.GenericArg, bool) {
	name := p.advance()
	var gat *ast.GenericArgs
	if p.at(token.Lt) {
		var ok bool
		if gat, ok = p.parseAngleArgs(false); !ok {
			return nil, false
		}
	}
	p.advance() // `=` или `:`
	if sep == token.Eq {
		arg := &ast.AssocEq{Name: name.Text, NameSpan: name.Span, Args: gat}
		if p.at(token.LBrace) || p.peek().IsLiteral() || p.at(token.Minus) {
			arg.Value = p.parseConstExpr()
		} else {
			ty, ok := p.parseType(true)
			if !ok {
				return nil, false
			}
			arg.Type = ty
		}
		arg.Span = p.spanFrom(name.Span)
		return arg, true
	}
	arg := &ast.AssocConstraint{Name: name.Text, NameSpan: name.Span, Args: gat}
	bounds, ok := p.parseBounds(true)
	if !ok {
		return nil, false
	}
	arg.Bounds = bounds
	arg.Span = p.spanFrom(name.Span)
	return arg, true
}

// parseParenArgs: `(A, B) -> C` у Fn-трейтов.
func (p *Parser) parseParenArgs() (*ast.GenericArgs, bool) {
	open := p.advance()
	args := &ast.GenericArgs{Kind: ast.ArgsParen, Open: open.Span}
	for !p.at(token.RParen) {
		ty, ok := p.parseType(true)
		if !ok {
			return nil, false
		}
		args.Inputs = append(args.Inputs, ty)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected `)` to close the argument list")
	if !ok {
		return nil, false
	}
	args.Close = closeTok.Span
	if _, ok := p.eat(token.Arrow); ok {
		out, ok := p.parseType(false)
		if !ok {
			return nil, false
		}
		args.Output = out
	}
	args.Span = p.spanFrom(open.Span)
	return args, true
}

package parser

import (
	"entail/internal/diag"
	"entail/internal/source"
	"entail/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// eat съедает токен, только если он нужного вида.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// На EOF используем позицию сразу после последнего съеденного токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет, репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return false // нет reporter - ничего не записали
	}
	if p.opts.Enough() && sev == diag.SevError && p.opts.CurrentErrors > p.opts.MaxErrors {
		return false // достигли максимального количества ошибок
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// spanFrom covers everything from start through the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// skipDelimited съедает сбалансированную группу, начиная с открывающей скобки,
// и возвращает её span вместе со скобками.
func (p *Parser) skipDelimited() (source.Span, bool) {
	open := p.advance()
	closer, _ := open.Kind.Closer()
	stack := []token.Kind{closer}
	for len(stack) > 0 {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed delimiter")
			return p.spanFrom(open.Span), false
		case tok.Kind == stack[len(stack)-1]:
			stack = stack[:len(stack)-1]
		case isOpenDelim(tok.Kind):
			c, _ := tok.Kind.Closer()
			stack = append(stack, c)
		case isCloseDelim(tok.Kind):
			p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "mismatched closing delimiter")
			p.advance()
			return p.spanFrom(open.Span), false
		}
		p.advance()
	}
	return p.spanFrom(open.Span), true
}

// skipUntil съедает токены до любого из stop на нулевой глубине скобок
// (сами stop-токены не съедаются) и возвращает span съеденного.
func (p *Parser) skipUntil(stop ...token.Kind) source.Span {
	start := p.peek().Span.ZeroideToStart()
	sp := start
	for !p.at(token.EOF) {
		tok := p.peek()
		if containsKind(stop, tok.Kind) {
			break
		}
		if isOpenDelim(tok.Kind) {
			if _, ok := p.skipDelimited(); !ok {
				break
			}
		} else {
			if isCloseDelim(tok.Kind) {
				break
			}
			p.advance()
		}
		sp = sp.Cover(p.lastSpan)
	}
	return sp
}

// resync пропускает токены до безопасной точки; гарантирует прогресс.
func (p *Parser) resync(stop ...token.Kind) {
	before := p.pos
	p.skipUntil(stop...)
	if p.pos == before && !p.at(token.EOF) && !containsKind(stop, p.peek().Kind) {
		p.advance()
	}
}

func isOpenDelim(k token.Kind) bool {
	_, ok := k.Closer()
	return ok
}

func isCloseDelim(k token.Kind) bool {
	return k == token.RParen || k == token.RBracket || k == token.RBrace
}

func containsKind(kinds []token.Kind, k token.Kind) bool {
	for _, kk := range kinds {
		if kk == k {
			return true
		}
	}
	return false
}

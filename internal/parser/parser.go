// Package parser builds ast nodes from a byte range of a Rust source file.
//
// The input is always a bounded region (one trait declaration, one attribute,
// one type), so the parser lexes it up front and works over a token slice;
// that gives it the unbounded lookahead the generic-argument grammar needs.
package parser

import (
	"slices"

	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/lexer"
	"entail/internal/source"
	"entail/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser: состояние парсера на один диапазон файла
type Parser struct {
	file     *source.File
	toks     []token.Token // всегда заканчивается EOF
	pos      int
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

func newParser(file *source.File, span source.Span, opts Options) *Parser {
	lx := lexer.NewRange(file, span, lexer.Options{Reporter: errorCounter{opts: &opts}})
	toks := lx.All()
	return &Parser{
		file:     file,
		toks:     toks,
		opts:     opts,
		lastSpan: span.ZeroideToStart(),
	}
}

// errorCounter forwards lexer diagnostics and counts the errors, so a
// lexically broken range never parses as clean.
type errorCounter struct{ opts *Options }

func (c errorCounter) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	if sev == diag.SevError {
		c.opts.CurrentErrors++
	}
	if c.opts.Reporter != nil {
		c.opts.Reporter.Report(code, sev, sp, msg, notes)
	}
}

// ParseTrait parses `attrs* vis? unsafe? auto? trait Name ... { ... }` covering
// exactly span. The boolean is false when any error was reported.
func ParseTrait(file *source.File, span source.Span, opts Options) (*ast.Trait, bool) {
	p := newParser(file, span, opts)
	tr, ok := p.parseTrait()
	if ok {
		p.expectEOF()
	}
	return tr, ok && !p.IsError()
}

// ParseAttribute parses a single outer attribute `#[...]`.
func ParseAttribute(file *source.File, span source.Span, opts Options) (*ast.Attribute, bool) {
	p := newParser(file, span, opts)
	attr, ok := p.parseAttribute()
	if ok {
		p.expectEOF()
	}
	return attr, ok && !p.IsError()
}

// ParseType parses a single type expression.
func ParseType(file *source.File, span source.Span, opts Options) (ast.Type, bool) {
	p := newParser(file, span, opts)
	ty, ok := p.parseType(true)
	if ok {
		p.expectEOF()
	}
	return ty, ok && !p.IsError()
}

// ParseWherePredicate parses one predicate of a where clause.
func ParseWherePredicate(file *source.File, span source.Span, opts Options) (ast.WherePredicate, bool) {
	p := newParser(file, span, opts)
	pred, ok := p.parseWherePredicate()
	if ok {
		p.expectEOF()
	}
	return pred, ok && !p.IsError()
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) expectEOF() {
	if !p.at(token.EOF) {
		p.err(diag.SynTrailingTokens, "unexpected tokens after the declaration")
	}
}

// text returns the source bytes under sp.
func (p *Parser) text(sp source.Span) string {
	return string(p.file.Content[sp.Start:sp.End])
}

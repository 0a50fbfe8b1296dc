// Package args parses the argument list of the `#[implied_bounds(...)]`
// attribute: `debug`, `allow_none` and `crate = $(::)? some::path`.
package args

import (
	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/lexer"
	"entail/internal/source"
	"entail/internal/token"
)

// Usage is attached to every argument error.
const Usage = `Usage:

#[implied_bounds(
    // [Optional] Whether to disable the warning about lack of non-implied clauses.
    allow_none,

    // [Optional] Highlight every non-implied clause (via deprecation warnings).
    debug,

    // [Optional] Override ` + "`::implied_bounds::…`" + ` paths in the expansion with ` + "`$(::)? some::path::…`" + `.
    //            Useful when ` + "`macro_rules!`" + ` or middle-libs are involved, and the ` + "`::implied_bounds`" + `
    //            path is no longer (directly, and syntactically) reachable.
    crate = $(::)? some::path,
)]
`

// Args is the parsed argument list. A zero Args means "no arguments".
type Args struct {
	Debug     bool
	AllowNone bool
	Crate     *ast.Path // nil: use the default `::implied_bounds`

	DebugSpan     source.Span
	AllowNoneSpan source.Span
}

type argParser struct {
	toks []token.Token
	pos  int
	file *source.File
	span source.Span
	errs []diag.Diagnostic
}

// Parse reads the arguments covered by span (the text between the attribute's
// parentheses; an empty span means no arguments). On failure the returned
// diagnostics hold the first error followed by the usage error.
func Parse(file *source.File, span source.Span) (*Args, []diag.Diagnostic) {
	p := newArgParser(file, span)
	out := &Args{}
	if len(p.errs) == 0 {
		p.parseInto(out)
	}
	if len(p.errs) > 0 {
		return nil, p.withUsage()
	}
	return out, nil
}

// ParsePath parses a standalone mod-style path, as written in configuration.
func ParsePath(file *source.File, span source.Span) (*ast.Path, []diag.Diagnostic) {
	p := newArgParser(file, span)
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	path, ok := p.parseModPath()
	if ok && p.peek().Kind != token.EOF {
		p.errorf(diag.ArgBadPath, p.peek().Span, "unexpected token after path")
		ok = false
	}
	if !ok {
		return nil, p.errs
	}
	return path, nil
}

func newArgParser(file *source.File, span source.Span) *argParser {
	p := &argParser{file: file, span: span}
	bag := diag.NewBag(0)
	lx := lexer.NewRange(file, span, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	p.toks = lx.All()
	p.errs = append(p.errs, bag.Errors()...)
	return p
}

func (p *argParser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *argParser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *argParser) errorf(code diag.Code, sp source.Span, msg string) {
	p.errs = append(p.errs, diag.NewError(code, sp, msg))
}

func (p *argParser) withUsage() []diag.Diagnostic {
	return append(p.errs, diag.NewError(diag.ArgUsage, p.span, Usage))
}

// parseInto stops at the first error, like a one-shot parse.
func (p *argParser) parseInto(out *Args) {
	for p.peek().Kind != token.EOF {
		tok := p.peek()
		switch {
		case tok.Kind == token.Ident && tok.Text == "debug":
			if out.Debug {
				p.errorf(diag.ArgDuplicate, tok.Span, "duplicate arg")
				return
			}
			p.advance()
			out.Debug, out.DebugSpan = true, tok.Span
		case tok.Kind == token.Ident && tok.Text == "allow_none":
			if out.AllowNone {
				p.errorf(diag.ArgDuplicate, tok.Span, "duplicate arg")
				return
			}
			p.advance()
			out.AllowNone, out.AllowNoneSpan = true, tok.Span
		case tok.Kind == token.KwCrate:
			if out.Crate != nil {
				p.errorf(diag.ArgDuplicate, tok.Span, "duplicate arg")
				return
			}
			p.advance()
			if p.peek().Kind != token.Eq {
				p.errorf(diag.ArgExpectEq, p.peek().Span, "expected `=`")
				return
			}
			p.advance()
			path, ok := p.parseModPath()
			if !ok {
				return
			}
			out.Crate = path
		default:
			p.errorf(diag.ArgUnknown, tok.Span, "expected one of: `debug`, `allow_none`, `crate`")
			return
		}
		if p.peek().Kind == token.Comma {
			p.advance()
		}
	}
}

// parseModPath: `$(::)? seg (:: seg)*` без generic-аргументов.
func (p *argParser) parseModPath() (*ast.Path, bool) {
	start := p.peek().Span
	path := &ast.Path{}
	if p.peek().Kind == token.ColonColon {
		path.Leading = true
		path.LeadingSpan = p.advance().Span
	}
	for {
		seg, ok := p.parseSegment()
		if !ok {
			return nil, false
		}
		path.Segments = append(path.Segments, seg)
		if p.peek().Kind != token.ColonColon {
			break
		}
		p.advance()
	}
	if p.peek().Kind == token.Lt {
		p.errorf(diag.ArgBadPath, p.peek().Span, "generic arguments are not allowed in a module path")
		return nil, false
	}
	last := path.Segments[len(path.Segments)-1]
	path.Span = start.Cover(last.Span)
	return path, true
}

func (p *argParser) parseSegment() (*ast.PathSegment, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Dollar:
		next := p.toks[min(p.pos+1, len(p.toks)-1)]
		if next.Kind != token.KwCrate {
			p.errorf(diag.ArgBadPath, tok.Span, "expected `$crate`")
			return nil, false
		}
		p.advance()
		p.advance()
		sp := tok.Span.Cover(next.Span)
		return &ast.PathSegment{Name: "$crate", NameSpan: sp, Span: sp}, true
	case tok.IsPathSegmentStart():
		p.advance()
		return &ast.PathSegment{Name: tok.Text, NameSpan: tok.Span, Span: tok.Span}, true
	}
	p.errorf(diag.ArgBadPath, tok.Span, "expected identifier")
	return nil, false
}

package lexer

import (
	"golang.org/x/text/unicode/norm"

	"entail/internal/diag"
	"entail/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Non-ASCII identifiers are NFC-normalized, as rustc does, so `Self` spelled
// with combining marks still compares equal.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	ascii := lx.bumpIdentBody()
	if lx.cursor.Off == uint32(start) {
		r, _ := lx.peekRune()
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+string(r))
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	tok := lx.emit(token.Ident, start)
	if !ascii {
		tok.Text = norm.NFC.String(tok.Text)
	}
	if tok.Text == "_" {
		tok.Kind = token.Underscore
		return tok
	}
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanRawIdent reads `r#name`; raw identifiers are never keywords.
func (lx *Lexer) scanRawIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // r
	lx.cursor.Bump() // #
	lx.bumpIdentBody()
	return lx.emit(token.Ident, start)
}

// bumpIdentBody consumes identifier characters and reports whether they were all ASCII.
func (lx *Lexer) bumpIdentBody() bool {
	ascii := true
	first := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if (first && !isIdentStartByte(b)) || (!first && !isIdentContinueByte(b)) {
				break
			}
			lx.cursor.Bump()
		} else {
			r, _ := lx.peekRune()
			if (first && !isIdentStartRune(r)) || (!first && !isIdentContinueRune(r)) {
				break
			}
			ascii = false
			lx.bumpRune()
		}
		first = false
	}
	return ascii
}

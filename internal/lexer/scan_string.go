package lexer

import (
	"entail/internal/diag"
	"entail/internal/token"
)

// atStringPrefix reports `b"`, `b'`, `c"`, `r"`, `r#"`, `br"`, `cr#"` and friends.
func (lx *Lexer) atStringPrefix() bool {
	i := uint32(0)
	switch lx.cursor.Peek() {
	case 'b', 'c':
		i = 1
		if lx.cursor.PeekAt(1) == 'r' {
			i = 2
		} else if lx.cursor.Peek() == 'b' && lx.cursor.PeekAt(1) == '\'' {
			return true
		}
	case 'r':
		i = 1
	default:
		return false
	}
	raw := lx.cursor.PeekAt(i-1) == 'r'
	switch lx.cursor.PeekAt(i) {
	case '"':
		return true
	case '#':
		return raw
	}
	return false
}

func (lx *Lexer) scanPrefixedLiteral() token.Token {
	start := lx.cursor.Mark()
	raw := false
	for lx.cursor.Peek() == 'b' || lx.cursor.Peek() == 'c' || lx.cursor.Peek() == 'r' {
		if lx.cursor.Bump() == 'r' {
			raw = true
			break
		}
	}
	switch {
	case raw:
		return lx.scanRawString(start)
	case lx.cursor.Peek() == '\'':
		lx.cursor.Bump()
		return lx.finishChar(start)
	default:
		return lx.scanString(start)
	}
}

// scanString reads a "..." literal starting at the opening quote.
func (lx *Lexer) scanString(start Mark) token.Token {
	lx.cursor.Bump() // "
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case '"':
			lx.bumpSuffix()
			return lx.emit(token.StrLit, start)
		}
	}
	tok := lx.emit(token.StrLit, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanRawString reads r#"..."# after the `r` has been consumed.
func (lx *Lexer) scanRawString(start Mark) token.Token {
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	if !lx.cursor.Eat('"') {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnterminatedString, tok.Span, "expected '\"' in raw string literal")
		return tok
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			lx.bumpSuffix()
			return lx.emit(token.StrLit, start)
		}
	}
	tok := lx.emit(token.StrLit, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated raw string literal")
	return tok
}

// scanQuote disambiguates a lifetime (`'a`, `'static`) from a char literal (`'a'`, `'\n'`).
func (lx *Lexer) scanQuote() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '

	if lx.cursor.Peek() == '\\' {
		return lx.finishChar(start)
	}
	if b := lx.cursor.Peek(); isIdentStartByte(b) || b >= utf8RuneSelf {
		mark := lx.cursor.Mark()
		lx.bumpIdentBody()
		if lx.cursor.Peek() == '\'' && lx.cursor.Off-uint32(mark) <= 4 && isSingleRune(lx, mark) {
			lx.cursor.Bump()
			return lx.emit(token.CharLit, start)
		}
		if lx.cursor.Off > uint32(mark) {
			return lx.emit(token.Lifetime, start)
		}
	}
	return lx.finishChar(start)
}

func isSingleRune(lx *Lexer, from Mark) bool {
	end := lx.cursor.Off
	lx.cursor.Reset(from)
	lx.bumpRune()
	single := lx.cursor.Off == end
	lx.cursor.Off = end
	return single
}

// finishChar reads the rest of a char literal after the opening quote.
func (lx *Lexer) finishChar(start Mark) token.Token {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		case '\'':
			lx.cursor.Bump()
			return lx.emit(token.CharLit, start)
		case '\n':
			tok := lx.emit(token.CharLit, start)
			lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
			return tok
		default:
			lx.bumpRune()
		}
	}
	tok := lx.emit(token.CharLit, start)
	lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
	return tok
}

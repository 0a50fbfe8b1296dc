package lexer

import (
	"entail/internal/token"
)

// scanNumber reads integer and float literals with Rust suffixes (`1u8`, `2.5f32`).
// Validation is loose: the rewriter only copies literals through.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'o', 'b':
			lx.cursor.Bump()
			lx.cursor.Bump()
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			lx.bumpSuffix()
			return lx.emit(kind, start)
		}
	}

	lx.bumpDigits()
	// `1.0` is a float, `1.foo()` and `1..2` are not.
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.bumpDigits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			kind = token.FloatLit
			lx.cursor.Bump()
			if next == '+' || next == '-' {
				lx.cursor.Bump()
			}
			lx.bumpDigits()
		}
	}
	lx.bumpSuffix()
	return lx.emit(kind, start)
}

func (lx *Lexer) bumpDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) bumpSuffix() {
	if isIdentStartByte(lx.cursor.Peek()) {
		lx.bumpIdentBody()
	}
}

package lexer

import (
	"entail/internal/diag"
	"entail/internal/token"
)

// Only `::`, `->`, `=>` and `..` are glued. Everything else is a single
// character so that `>>`, `&&` and `>=` never need splitting in type position.
var singlePunct = [256]token.Kind{
	'<': token.Lt,
	'>': token.Gt,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'^': token.Caret,
	'&': token.Amp,
	'|': token.Pipe,
	'!': token.Bang,
	'?': token.Question,
	'~': token.Tilde,
	'=': token.Eq,
	'.': token.Dot,
	'#': token.Pound,
	'$': token.Dollar,
	'@': token.At,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	switch {
	case lx.try2(':', ':'):
		return lx.emit(token.ColonColon, start)
	case lx.try2('-', '>'):
		return lx.emit(token.Arrow, start)
	case lx.try2('=', '>'):
		return lx.emit(token.FatArrow, start)
	case lx.try2('.', '.'):
		return lx.emit(token.DotDot, start)
	}

	ch := lx.cursor.Bump()
	if k := singlePunct[ch]; k != token.Invalid {
		return lx.emit(k, start)
	}
	// неизвестный символ: съедаем целую руну, чтобы не резать UTF-8
	lx.cursor.Reset(start)
	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+tok.Text)
	return tok
}

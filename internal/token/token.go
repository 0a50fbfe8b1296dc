package token

import (
	"entail/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal (booleans included).
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StrLit, CharLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAs && t.Kind <= KwWhere
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPathSegmentStart reports whether the token can begin a path segment
// (`foo`, `self`, `Self`, `super`, `crate`, `$crate` is handled by the parser).
func (t Token) IsPathSegmentStart() bool {
	switch t.Kind {
	case Ident, KwSelfValue, KwSelfType, KwSuper, KwCrate:
		return true
	default:
		return false
	}
}

// HasLeadingNewline reports whether a newline precedes the token.
func (t Token) HasLeadingNewline() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

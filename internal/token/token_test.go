package token_test

import (
	"testing"

	"entail/internal/source"
	"entail/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.FloatLit, token.StrLit, token.CharLit, token.KwTrue, token.KwFalse}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwTrait, token.Plus, token.Lifetime}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		text string
		kind token.Kind
		ok   bool
	}{
		{"trait", token.KwTrait, true},
		{"where", token.KwWhere, true},
		{"Self", token.KwSelfType, true},
		{"self", token.KwSelfValue, true},
		{"auto", token.Invalid, false},
		{"SELF", token.Invalid, false},
		{"struct", token.Invalid, false},
	}
	for _, tt := range tests {
		k, ok := token.LookupKeyword(tt.text)
		if ok != tt.ok || (ok && k != tt.kind) {
			t.Errorf("LookupKeyword(%q) = %v,%v; want %v,%v", tt.text, k, ok, tt.kind, tt.ok)
		}
		if ok && !tok(k).IsKeyword() {
			t.Errorf("%v should report IsKeyword", k)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := token.ColonColon.String(); got != "::" {
		t.Errorf("ColonColon.String() = %q", got)
	}
	if got := token.KwSelfType.String(); got != "Self" {
		t.Errorf("KwSelfType.String() = %q", got)
	}
	if closer, ok := token.LParen.Closer(); !ok || closer != token.RParen {
		t.Errorf("LParen.Closer() = %v,%v", closer, ok)
	}
	if _, ok := token.Lt.Closer(); ok {
		t.Error("'<' is not a token-tree delimiter")
	}
}

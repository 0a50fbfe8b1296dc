package lexer_test

import (
	"testing"

	"entail/internal/diag"
	"entail/internal/lexer"
	"entail/internal/source"
	"entail/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(input))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func kindsOf(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := lx.All()
	if bag.HasErrors() {
		t.Fatalf("%q: unexpected lexer errors: %v", input, bag.Items())
	}
	got := kindsOf(tokens)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got kinds %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v (%q), want %v", input, i, got[i], tokens[i].Text, want[i])
		}
	}
	return tokens
}

func TestTraitHeader(t *testing.T) {
	expectKinds(t, "pub trait Trait<U: Clone> where Self::Gat<true>: Send {}",
		token.KwPub, token.KwTrait, token.Ident, token.Lt, token.Ident, token.Colon, token.Ident, token.Gt,
		token.KwWhere, token.KwSelfType, token.ColonColon, token.Ident, token.Lt, token.KwTrue, token.Gt,
		token.Colon, token.Ident, token.LBrace, token.RBrace,
	)
}

func TestNestedGenericsAreNotGlued(t *testing.T) {
	tokens := expectKinds(t, "Vec<Vec<T>>",
		token.Ident, token.Lt, token.Ident, token.Lt, token.Ident, token.Gt, token.Gt)
	if tokens[5].Span.Start+1 != tokens[6].Span.Start {
		t.Errorf("expected adjacent '>' tokens, got spans %v %v", tokens[5].Span, tokens[6].Span)
	}
	expectKinds(t, "&&'a T", token.Amp, token.Amp, token.Lifetime, token.Ident)
}

func TestLifetimesAndChars(t *testing.T) {
	tokens := expectKinds(t, "for<'r> 'static 'a' '\\n' b'x' '_",
		token.KwFor, token.Lt, token.Lifetime, token.Gt, token.Lifetime, token.CharLit, token.CharLit,
		token.CharLit, token.Lifetime)
	if tokens[2].Text != "'r" || tokens[4].Text != "'static" || tokens[8].Text != "'_" {
		t.Errorf("unexpected lifetime texts: %q %q %q", tokens[2].Text, tokens[4].Text, tokens[8].Text)
	}
}

func TestStringsAndNumbers(t *testing.T) {
	tokens := expectKinds(t, `"a\"b" r#"raw "quoted""# b"bytes" 42u8 3.5 1e-3 0xFF`,
		token.StrLit, token.StrLit, token.StrLit, token.IntLit, token.FloatLit, token.FloatLit, token.IntLit)
	if tokens[1].Text != `r#"raw "quoted""#` {
		t.Errorf("raw string text = %q", tokens[1].Text)
	}
	expectKinds(t, "0..N", token.IntLit, token.DotDot, token.Ident)
}

func TestRawIdentAndPaths(t *testing.T) {
	tokens := expectKinds(t, "r#type ::implied_bounds::ImpliedPredicate -> $crate",
		token.Ident, token.ColonColon, token.Ident, token.ColonColon, token.Ident, token.Arrow, token.Dollar, token.KwCrate)
	if tokens[0].Text != "r#type" {
		t.Errorf("raw ident text = %q", tokens[0].Text)
	}
}

func TestTriviaAndDocComments(t *testing.T) {
	lx, _ := makeTestLexer("/// doc\n// plain\n/* block /* nested */ */ trait")
	tok := lx.Next()
	if tok.Kind != token.KwTrait {
		t.Fatalf("expected trait, got %v", tok.Kind)
	}
	var kinds []token.TriviaKind
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaDocLine, token.TriviaNewline, token.TriviaLineComment, token.TriviaNewline,
		token.TriviaBlockComment, token.TriviaSpace,
	}
	if len(kinds) != len(want) {
		t.Fatalf("trivia kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("trivia %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	if !tok.HasLeadingNewline() {
		t.Error("expected a leading newline")
	}
}

func TestUnicodeIdentNormalized(t *testing.T) {
	// "é" written as e + combining acute accent
	tokens := expectKinds(t, "cafe\u0301", token.Ident)
	if tokens[0].Text != "caf\u00e9" {
		t.Errorf("identifier not NFC-normalized: %q", tokens[0].Text)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{"/* never closed", diag.LexUnterminatedBlockComment},
		{"€", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.input)
		lx.All()
		if bag.Len() == 0 || bag.Items()[0].Code != tt.code {
			t.Errorf("%q: diagnostics %v, want code %s", tt.input, bag.Items(), tt.code.ID())
		}
	}
}

func TestRangeLexer(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("range.rs", []byte("fn a() {}\ntrait T {}\nfn b() {}"))
	lx := lexer.NewRange(fs.Get(id), source.Span{File: id, Start: 10, End: 20}, lexer.Options{})
	tokens := lx.All()
	got := kindsOf(tokens)
	want := []token.Kind{token.KwTrait, token.Ident, token.LBrace, token.RBrace, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if tokens[0].Span.Start != 10 {
		t.Errorf("spans must stay file-absolute, got %v", tokens[0].Span)
	}
	if eof := tokens[len(tokens)-1]; eof.Span.Start != 20 {
		t.Errorf("EOF at %v, want 20", eof.Span)
	}
}

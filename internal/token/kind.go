package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input (or of the lexed range).
	EOF

	// Ident is an identifier, including raw identifiers (`r#type`).
	Ident
	// Lifetime is a lifetime or label: `'a`, `'static`, `'_`.
	Lifetime

	IntLit
	FloatLit
	StrLit
	CharLit

	KwAs
	KwConst
	KwCrate
	KwDyn
	KwExtern
	KwFalse
	KwFn
	KwFor
	KwImpl
	KwIn
	KwMut
	KwPub
	KwSelfValue // self
	KwSelfType  // Self
	KwSuper
	KwTrait
	KwTrue
	KwType
	KwUnsafe
	KwUse
	KwWhere

	Lt         // <
	Gt         // >
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	LBrace     // {
	RBrace     // }
	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Caret      // ^
	Amp        // &
	Pipe       // |
	Bang       // !
	Question   // ?
	Tilde      // ~
	Eq         // =
	Arrow      // ->
	FatArrow   // =>
	Dot        // .
	DotDot     // ..
	Pound      // #
	Dollar     // $
	At         // @
	Underscore // _
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	Lifetime:    "Lifetime",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StrLit:      "StrLit",
	CharLit:     "CharLit",
	KwAs:        "as",
	KwConst:     "const",
	KwCrate:     "crate",
	KwDyn:       "dyn",
	KwExtern:    "extern",
	KwFalse:     "false",
	KwFn:        "fn",
	KwFor:       "for",
	KwImpl:      "impl",
	KwIn:        "in",
	KwMut:       "mut",
	KwPub:       "pub",
	KwSelfValue: "self",
	KwSelfType:  "Self",
	KwSuper:     "super",
	KwTrait:     "trait",
	KwTrue:      "true",
	KwType:      "type",
	KwUnsafe:    "unsafe",
	KwUse:       "use",
	KwWhere:     "where",
	Lt:          "<",
	Gt:          ">",
	LParen:      "(",
	RParen:      ")",
	LBracket:    "[",
	RBracket:    "]",
	LBrace:      "{",
	RBrace:      "}",
	Comma:       ",",
	Semicolon:   ";",
	Colon:       ":",
	ColonColon:  "::",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "%",
	Caret:       "^",
	Amp:         "&",
	Pipe:        "|",
	Bang:        "!",
	Question:    "?",
	Tilde:       "~",
	Eq:          "=",
	Arrow:       "->",
	FatArrow:    "=>",
	Dot:         ".",
	DotDot:      "..",
	Pound:       "#",
	Dollar:      "$",
	At:          "@",
	Underscore:  "_",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Closer returns the matching closing delimiter for an opening one.
func (k Kind) Closer() (Kind, bool) {
	switch k {
	case LParen:
		return RParen, true
	case LBracket:
		return RBracket, true
	case LBrace:
		return RBrace, true
	default:
		return Invalid, false
	}
}

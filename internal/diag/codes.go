package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectTrait       Code = 2004
	SynExpectBody        Code = 2005
	SynExpectType        Code = 2006
	SynExpectBound       Code = 2007
	SynExpectColon       Code = 2008
	SynUnclosedAngle     Code = 2009
	SynTrailingTokens    Code = 2010
	SynExpectLifetime    Code = 2011

	// Аргументы атрибута
	ArgUnknown   Code = 3001
	ArgDuplicate Code = 3002
	ArgExpectEq  Code = 3003
	ArgBadPath   Code = 3004
	ArgUsage     Code = 3005

	// Переписывание
	RewriteNotImplied Code = 4001
	RewriteNoneFound  Code = 4002

	// Ввод-вывод и проект
	IOReadFailed   Code = 5001
	PrjBadConfig   Code = 5002
	PrjLocateError Code = 5003
)

var codeTitles = map[Code]string{
	UnknownCode:                 "unknown error",
	LexInfo:                     "lexer info",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexUnterminatedChar:         "unterminated character literal",
	SynInfo:                     "parser info",
	SynUnexpectedToken:          "unexpected token",
	SynUnclosedDelimiter:        "unclosed delimiter",
	SynExpectIdentifier:         "expected identifier",
	SynExpectTrait:              "expected trait declaration",
	SynExpectBody:               "expected trait body",
	SynExpectType:               "expected type",
	SynExpectBound:              "expected bound",
	SynExpectColon:              "expected ':'",
	SynUnclosedAngle:            "unclosed angle bracket",
	SynTrailingTokens:           "unexpected trailing tokens",
	SynExpectLifetime:           "expected lifetime",
	ArgUnknown:                  "unknown attribute argument",
	ArgDuplicate:                "duplicate attribute argument",
	ArgExpectEq:                 "expected '='",
	ArgBadPath:                  "malformed crate path",
	ArgUsage:                    "attribute usage",
	RewriteNotImplied:           "predicate is not implied",
	RewriteNoneFound:            "no non-implied clauses",
	IOReadFailed:                "failed to read input",
	PrjBadConfig:                "invalid configuration",
	PrjLocateError:              "failed to locate annotated traits",
}

// ID returns the stable identifier of the code, e.g. SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("ARG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IMP%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

// Title returns a short human description of the code.
func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

package token

// Only keywords the item grammar cares about are reserved here; the rest
// (`let`, `match`, `struct`, ...) stay identifiers, which is harmless for
// the header grammar and keeps verbatim runs untouched. `auto` and `union`
// are contextual in Rust and are matched on Ident text by the parser.
var keywords = map[string]Kind{
	"as":     KwAs,
	"const":  KwConst,
	"crate":  KwCrate,
	"dyn":    KwDyn,
	"extern": KwExtern,
	"false":  KwFalse,
	"fn":     KwFn,
	"for":    KwFor,
	"impl":   KwImpl,
	"in":     KwIn,
	"mut":    KwMut,
	"pub":    KwPub,
	"self":   KwSelfValue,
	"Self":   KwSelfType,
	"super":  KwSuper,
	"trait":  KwTrait,
	"true":   KwTrue,
	"type":   KwType,
	"unsafe": KwUnsafe,
	"use":    KwUse,
	"where":  KwWhere,
}

// LookupKeyword returns the keyword kind for an identifier, case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

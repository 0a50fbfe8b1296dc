// Package ast models the Rust item syntax the rewriter reads and writes:
// a trait declaration with its generics, supertraits, where clause and body.
//
// Every sum type (Type, Bound, GenericParam, GenericArg, WherePredicate) is a
// closed set: the interface carries an unexported marker method, so only the
// variants declared here satisfy it and a type switch over them is exhaustive.
//
// Nodes are plain pointer trees. Extraction mutates a trait in place; callers
// that need the original keep a CloneTrait copy. Synthesized nodes carry the
// spans of the source text they stand for, never a zero span, so diagnostics
// about generated code still point at something the user wrote.
package ast

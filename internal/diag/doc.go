// Package diag defines the diagnostic model shared by the lexer, the parser,
// the argument parser and the implied-bounds rewriter.
//
// Diagnostic is the central record: Severity, Code, Message, a Primary span
// pointing at the offending source text, and optional Notes.
//
// Phases emit through a Reporter (usually a BagReporter backed by a Bag) and
// never format anything themselves; rendering lives in internal/diagfmt.
//
// Errors and warnings travel differently. Warnings are always attached to a
// successful result. Errors abort a transformation: every error produced for
// one declaration is folded into a single AggregateError so the user sees all
// of them at once instead of fixing them one compile at a time.
package diag

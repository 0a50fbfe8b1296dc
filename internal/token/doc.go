// Package token defines lexical token kinds and trivia for the Rust item syntax
// the rewriter understands.
// Invariants:
//   - Token.Text is the original source slice (raw identifiers keep their `r#`).
//   - Token.Span matches Text exactly.
//   - `<`, `>`, `&` and `=` are always single-character tokens; the parser never
//     has to split `>>` or `&&` when it reads nested generic arguments or references.
//   - Comments and doc comments are leading Trivia and never appear in the token stream.
package token

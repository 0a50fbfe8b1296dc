// Package format renders ast nodes back to Rust source text.
//
// Назначение: печать заголовков трейтов (generics, supertraits, where) после
// переписывания и отладочный вывод типов и ограничений.
// Не форматирует тела трейтов, они переносятся как есть.
// Зависимости: internal/ast.
package format

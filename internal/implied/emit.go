package implied

import (
	"fmt"
	"strings"

	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/format"
)

// Apply prepends the wrappers to tr's where clause. Prepending keeps rustc's
// first complaint on the rewritten clause rather than on a retained duplicate.
func Apply(tr *ast.Trait, wrappers []*ast.TypePredicate) {
	if len(wrappers) == 0 {
		return
	}
	where := tr.Generics.MakeWhereClause()
	preds := make([]ast.WherePredicate, 0, len(wrappers)+len(where.Predicates))
	for _, w := range wrappers {
		preds = append(preds, w)
	}
	where.Predicates = append(preds, where.Predicates...)
}

// WarningDecl is an inert declaration that makes rustc emit msg as a
// deprecation warning pointing at the declaration.
type WarningDecl struct {
	Diagnostic diag.Diagnostic
	Text       string
}

// warningDecl renders a declaration that compiles to nothing but trips the
// `deprecated` lint with msg.
//
// NOTE: the declaration is appended after the trait, so rustc reports the
// warning there rather than at the offending predicate. The first line inside
// the block names the predicate (or the trait) the warning is about.
func warningDecl(d diag.Diagnostic, subject string) WarningDecl {
	var b strings.Builder
	b.WriteString("#[allow(nonstandard_style, clippy::all)]\n")
	b.WriteString("const _: () = {\n")
	if subject != "" {
		fmt.Fprintf(&b, "    // %s\n", subject)
	}
	b.WriteString("    #[allow(nonstandard_style)]\n")
	b.WriteString("    struct implied_bounds_ {\n")
	fmt.Fprintf(&b, "        #[deprecated(note = %s)]\n", rustQuote("\n\n"+d.Message))
	b.WriteString("        custom_warning: ()\n")
	b.WriteString("    }\n")
	b.WriteString("    let _ = implied_bounds_ { custom_warning: () };\n")
	b.WriteString("};")
	return WarningDecl{Diagnostic: d, Text: b.String()}
}

// warningSubject describes what d points at: the constraint extracted at
// its span, or the trait itself.
func warningSubject(d diag.Diagnostic, traitName string, constraints []Constraint) string {
	for _, c := range constraints {
		if c.Site == d.Primary {
			return "about `" + strings.Join(strings.Fields(format.Predicate(c.Predicate)), " ") + "`"
		}
	}
	if traitName == "" {
		return ""
	}
	return "about trait `" + traitName + "`"
}

// rustQuote renders s as a Rust string literal.
func rustQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

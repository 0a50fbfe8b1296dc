package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"entail/internal/ast"
	"entail/internal/format"
	"entail/internal/source"
)

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil {
		return sp.String()
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

type treeLine struct {
	label    string
	children []treeLine
}

func traitTree(tr *ast.Trait, fs *source.FileSet) treeLine {
	root := treeLine{label: fmt.Sprintf("Trait %s (span: %s)", tr.Name, formatSpan(tr.Span, fs))}
	if len(tr.Attrs) > 0 {
		attrs := treeLine{label: "Attrs"}
		for _, a := range tr.Attrs {
			attrs.children = append(attrs.children, treeLine{label: a.Text})
		}
		root.children = append(root.children, attrs)
	}
	if tr.Generics != nil && len(tr.Generics.Params) > 0 {
		params := treeLine{label: "Params"}
		for _, p := range tr.Generics.Params {
			params.children = append(params.children, paramLine(p))
		}
		root.children = append(root.children, params)
	}
	if len(tr.Supertraits) > 0 {
		root.children = append(root.children, treeLine{label: "Supertraits: " + format.Bounds(tr.Supertraits)})
	}
	if tr.Generics != nil && tr.Generics.Where != nil {
		where := treeLine{label: "Where"}
		for _, pred := range tr.Generics.Where.Predicates {
			where.children = append(where.children, treeLine{label: format.Predicate(pred)})
		}
		root.children = append(root.children, where)
	}
	if len(tr.Items) > 0 {
		items := treeLine{label: "Items"}
		for _, it := range tr.Items {
			label := it.Kind.String()
			if it.Name != "" {
				label += " " + it.Name
			}
			items.children = append(items.children, treeLine{label: label})
		}
		root.children = append(root.children, items)
	}
	return root
}

func paramLine(p ast.GenericParam) treeLine {
	switch p := p.(type) {
	case *ast.LifetimeParam:
		return treeLine{label: "lifetime " + p.Lifetime.Name}
	case *ast.TypeParam:
		l := treeLine{label: "type " + p.Name}
		if len(p.Bounds) > 0 {
			l.label += ": " + format.Bounds(p.Bounds)
		}
		return l
	case *ast.ConstParam:
		return treeLine{label: "const " + p.Name + ": " + format.Type(p.Type)}
	}
	return treeLine{label: "?"}
}

func writeTree(w io.Writer, node treeLine, prefix string) {
	for i, child := range node.children {
		branch, next := "├─ ", "│  "
		if i == len(node.children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, child.label) //nolint:errcheck
		writeTree(w, child, prefix+next)
	}
}

// FormatTraitsPretty prints each trait as an indented tree.
func FormatTraitsPretty(w io.Writer, traits []*ast.Trait, fs *source.FileSet) error {
	for _, tr := range traits {
		if tr == nil {
			if _, err := fmt.Fprintln(w, "Trait <unparsed>"); err != nil {
				return err
			}
			continue
		}
		root := traitTree(tr, fs)
		if _, err := fmt.Fprintln(w, root.label); err != nil {
			return err
		}
		writeTree(w, root, "")
	}
	return nil
}

// TraitJSON is the JSON form of a parsed trait.
type TraitJSON struct {
	Name        string       `json:"name"`
	Span        LocationJSON `json:"span"`
	Params      []string     `json:"params,omitempty"`
	Supertraits string       `json:"supertraits,omitempty"`
	Where       []string     `json:"where,omitempty"`
	Items       []string     `json:"items,omitempty"`
}

// FormatTraitsJSON prints the traits as a JSON array; unparsed entries are null.
func FormatTraitsJSON(w io.Writer, traits []*ast.Trait, fs *source.FileSet) error {
	out := make([]*TraitJSON, len(traits))
	for i, tr := range traits {
		if tr == nil {
			continue
		}
		tj := &TraitJSON{
			Name: tr.Name,
			Span: makeLocation(tr.Span, fs, PathModeAuto, true),
		}
		if tr.Generics != nil {
			for _, p := range tr.Generics.Params {
				tj.Params = append(tj.Params, paramLine(p).label)
			}
			if tr.Generics.Where != nil {
				for _, pred := range tr.Generics.Where.Predicates {
					tj.Where = append(tj.Where, format.Predicate(pred))
				}
			}
		}
		if len(tr.Supertraits) > 0 {
			tj.Supertraits = format.Bounds(tr.Supertraits)
		}
		for _, it := range tr.Items {
			tj.Items = append(tj.Items, it.Kind.String()+" "+it.Name)
		}
		out[i] = tj
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

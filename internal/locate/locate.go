// Package locate finds `#[implied_bounds]`-annotated trait declarations in a
// Rust source file. Tree-sitter supplies the item structure; the attribute
// paths themselves are read with the entail parser.
package locate

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/parser"
	"entail/internal/source"
)

// AttrName is the last path segment that marks a trait for rewriting.
const AttrName = "implied_bounds"

// maxDepth bounds the recursion over pathological nesting.
const maxDepth = 512

// Site is one annotated trait.
type Site struct {
	Attr   source.Span // the marking attribute
	Args   source.Span // inside its parentheses; empty without arguments
	Decl   source.Span // first outer attribute through the trait's closing brace
	Trait  source.Span // the trait item alone, as tree-sitter sees it
	Name   string
	Indent string // leading whitespace of the line the declaration starts on
}

type Options struct {
	// Reporter receives a warning when tree-sitter recovered from syntax errors.
	Reporter diag.Reporter
}

// Find returns the annotated traits of file in source order.
func Find(ctx context.Context, file *source.File, opts Options) ([]Site, error) {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() && opts.Reporter != nil {
		sp := firstErrorSpan(root, file.ID)
		opts.Reporter.Report(diag.PrjLocateError, diag.SevWarning, sp,
			"file has syntax errors; only well-formed trait declarations were considered", nil)
	}

	f := finder{file: file}
	f.visit(root, 0)
	return f.sites, nil
}

type finder struct {
	file  *source.File
	sites []Site
}

func (f *finder) visit(node *sitter.Node, depth int) {
	if depth > maxDepth {
		return
	}
	var run []*sitter.Node // подряд идущие attribute_item перед текущим элементом
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(i)
		switch child.Type() {
		case "attribute_item":
			run = append(run, child)
			continue
		case "line_comment", "block_comment":
			continue
		case "trait_item":
			f.consider(run, child)
		}
		run = run[:0]
		if child.ChildCount() > 0 {
			f.visit(child, depth+1)
		}
	}
}

func (f *finder) consider(attrs []*sitter.Node, trait *sitter.Node) {
	for _, a := range attrs {
		sp := f.span(a)
		attr, ok := parser.ParseAttribute(f.file, sp, parser.Options{})
		if !ok || !isMarker(attr.Path) {
			continue
		}
		decl := f.span(attrs[0]).Cover(f.span(trait))
		site := Site{
			Attr:   sp,
			Args:   attr.ArgsInner(),
			Decl:   decl,
			Trait:  f.span(trait),
			Indent: lineIndent(f.file.Content, decl.Start),
		}
		if site.Args.IsZero() {
			site.Args = sp.ZeroideToEnd()
		}
		if name := trait.ChildByFieldName("name"); name != nil {
			site.Name = name.Content(f.file.Content)
		}
		f.sites = append(f.sites, site)
		return
	}
}

func isMarker(p *ast.Path) bool {
	last := p.Last()
	return last != nil && last.Name == AttrName
}

func (f *finder) span(n *sitter.Node) source.Span {
	return source.Span{File: f.file.ID, Start: n.StartByte(), End: n.EndByte()}
}

func lineIndent(content []byte, off uint32) string {
	start := off
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := start
	for end < off && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return string(content[start:end])
}

func firstErrorSpan(node *sitter.Node, id source.FileID) source.Span {
	if node.IsError() || node.IsMissing() {
		return source.Span{File: id, Start: node.StartByte(), End: node.EndByte()}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstErrorSpan(child, id)
		}
	}
	return source.Span{File: id, Start: node.StartByte(), End: node.StartByte()}
}

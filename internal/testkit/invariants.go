package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"entail/internal/ast"
	"entail/internal/source"
)

// CheckTraitSpans runs a minimal set of span invariants on a parsed trait:
// 1) tr.Span is non-empty and within file content bounds
// 2) every attribute, parameter and predicate span is non-empty and inside tr.Span,
//    and every other node span is inside tr.Span
// 3) the name precedes the header, which precedes the body, and the body closes the trait
func CheckTraitSpans(tr *ast.Trait, sf *source.File) error {
	if tr == nil || sf == nil {
		return fmt.Errorf("nil trait or file")
	}

	// 1) trait span sanity
	if tr.Span.End <= tr.Span.Start {
		return fmt.Errorf("trait span is empty: %v", tr.Span)
	}
	if tr.Span.File != sf.ID {
		return fmt.Errorf("trait span points to different file id: got=%d want=%d", tr.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if tr.Span.End > lenContent {
		return fmt.Errorf("trait span end beyond content: %d > %d", tr.Span.End, lenContent)
	}

	// 2) nested spans
	inside := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.Start < tr.Span.Start || sp.End > tr.Span.End {
			return fmt.Errorf("%s span %v is outside trait span %v", what, sp, tr.Span)
		}
		return nil
	}
	for _, a := range tr.Attrs {
		if err := inside("attribute", a.Span); err != nil {
			return err
		}
	}
	header := tr.HeaderSpan()
	if tr.Generics != nil {
		for _, p := range tr.Generics.Params {
			if err := inside("parameter", p.Range()); err != nil {
				return err
			}
			if !header.Contains(p.Range()) {
				return fmt.Errorf("parameter span %v is outside header %v", p.Range(), header)
			}
		}
		if w := tr.Generics.Where; w != nil {
			for _, pred := range w.Predicates {
				if err := inside("predicate", pred.Range()); err != nil {
					return err
				}
				if !w.Span.Contains(pred.Range()) {
					return fmt.Errorf("predicate span %v is outside where clause %v", pred.Range(), w.Span)
				}
			}
		}
	}

	// every node reachable from the trait, down to path segments and lifetimes
	var nodeErr error
	ast.Walk(tr, func(n ast.Node) bool {
		sp := n.Range()
		if nodeErr != nil || sp.IsZero() {
			return nodeErr == nil
		}
		if sp.End < sp.Start || !tr.Span.Contains(sp) {
			nodeErr = fmt.Errorf("%T span %v is outside trait span %v", n, sp, tr.Span)
		}
		return nodeErr == nil
	})
	if nodeErr != nil {
		return nodeErr
	}

	// 3) ordering
	if err := inside("name", tr.NameSpan); err != nil {
		return err
	}
	if err := inside("body", tr.BodySpan); err != nil {
		return err
	}
	if header.Start > header.End {
		return fmt.Errorf("header span is inverted: %v", header)
	}
	if tr.BodySpan.End != tr.Span.End {
		return fmt.Errorf("body %v does not close trait %v", tr.BodySpan, tr.Span)
	}
	bodyLen, err := safecast.Conv[uint32](len(tr.BodyText))
	if err != nil {
		return fmt.Errorf("body length overflow: %w", err)
	}
	if bodyLen != tr.BodySpan.Len() {
		return fmt.Errorf("body text has %d bytes, span covers %d", bodyLen, tr.BodySpan.Len())
	}
	return nil
}

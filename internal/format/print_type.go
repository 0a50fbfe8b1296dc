package format

import "entail/internal/ast"

type printer struct {
	w *Writer
}

func (p *printer) printType(t ast.Type) {
	switch t := t.(type) {
	case *ast.PathType:
		if t.QSelf != nil {
			p.w.WriteString("<")
			p.printType(t.QSelf.Type)
			if t.QSelf.As != nil {
				p.w.WriteString(" as ")
				p.printPath(t.QSelf.As)
			}
			p.w.WriteString(">::")
			joined(p.w, t.Path.Segments, "::", p.printSegment)
			return
		}
		p.printPath(t.Path)
	case *ast.RefType:
		p.w.WriteString("&")
		if t.Lifetime != nil {
			p.w.WriteString(t.Lifetime.Name)
			p.w.WriteString(" ")
		}
		if t.Mut {
			p.w.WriteString("mut ")
		}
		p.printType(t.Elem)
	case *ast.PtrType:
		if t.Mut {
			p.w.WriteString("*mut ")
		} else {
			p.w.WriteString("*const ")
		}
		p.printType(t.Elem)
	case *ast.TupleType:
		p.w.WriteString("(")
		joined(p.w, t.Elems, ", ", p.printType)
		if len(t.Elems) == 1 {
			p.w.WriteString(",")
		}
		p.w.WriteString(")")
	case *ast.ParenType:
		p.w.WriteString("(")
		p.printType(t.Elem)
		p.w.WriteString(")")
	case *ast.SliceType:
		p.w.WriteString("[")
		p.printType(t.Elem)
		p.w.WriteString("]")
	case *ast.ArrayType:
		p.w.WriteString("[")
		p.printType(t.Elem)
		p.w.WriteString("; ")
		p.w.WriteString(t.Len.Text)
		p.w.WriteString("]")
	case *ast.FnType:
		p.printForLifetimes(t.ForLifetimes)
		if t.Unsafe {
			p.w.WriteString("unsafe ")
		}
		if t.Abi != "" {
			p.w.WriteString(t.Abi)
			p.w.WriteString(" ")
		}
		p.w.WriteString("fn(")
		for i, in := range t.Inputs {
			if i > 0 {
				p.w.WriteString(", ")
			}
			if i < len(t.Names) && t.Names[i] != "" {
				p.w.WriteString(t.Names[i])
				p.w.WriteString(": ")
			}
			p.printType(in)
		}
		if t.Variadic {
			if len(t.Inputs) > 0 {
				p.w.WriteString(", ")
			}
			p.w.WriteString("...")
		}
		p.w.WriteString(")")
		p.printOutput(t.Output)
	case *ast.TraitObjectType:
		if t.Dyn {
			p.w.WriteString("dyn ")
		}
		p.printBounds(t.Bounds)
	case *ast.ImplTraitType:
		p.w.WriteString("impl ")
		p.printBounds(t.Bounds)
	case *ast.NeverType:
		p.w.WriteString("!")
	case *ast.InferType:
		p.w.WriteString("_")
	case *ast.MacroType:
		p.printPath(t.Path)
		p.w.WriteString("!")
		p.w.WriteString(t.Tokens.Text)
	}
}

func (p *printer) printOutput(out ast.Type) {
	if out == nil {
		return
	}
	p.w.WriteString(" -> ")
	p.printType(out)
}

func (p *printer) printPath(path *ast.Path) {
	if path.Leading {
		p.w.WriteString("::")
	}
	joined(p.w, path.Segments, "::", p.printSegment)
}

func (p *printer) printSegment(seg *ast.PathSegment) {
	p.w.WriteString(seg.Name)
	if seg.Args != nil {
		p.printGenericArgs(seg.Args)
	}
}

func (p *printer) printGenericArgs(args *ast.GenericArgs) {
	if args.Kind == ast.ArgsParen {
		p.w.WriteString("(")
		joined(p.w, args.Inputs, ", ", p.printType)
		p.w.WriteString(")")
		p.printOutput(args.Output)
		return
	}
	if args.Turbofish {
		p.w.WriteString("::")
	}
	p.w.WriteString("<")
	joined(p.w, args.Args, ", ", p.printGenericArg)
	p.w.WriteString(">")
}

func (p *printer) printGenericArg(arg ast.GenericArg) {
	switch a := arg.(type) {
	case *ast.TypeArg:
		p.printType(a.Type)
	case *ast.LifetimeArg:
		p.w.WriteString(a.Lifetime.Name)
	case *ast.ConstArg:
		p.w.WriteString(a.Expr.Text)
	case *ast.AssocEq:
		p.w.WriteString(a.Name)
		if a.Args != nil {
			p.printGenericArgs(a.Args)
		}
		p.w.WriteString(" = ")
		if a.Value != nil {
			p.w.WriteString(a.Value.Text)
		} else {
			p.printType(a.Type)
		}
	case *ast.AssocConstraint:
		p.w.WriteString(a.Name)
		if a.Args != nil {
			p.printGenericArgs(a.Args)
		}
		p.w.WriteString(":")
		if len(a.Bounds) > 0 {
			p.w.WriteString(" ")
			p.printBounds(a.Bounds)
		}
	}
}

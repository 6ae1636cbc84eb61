package format

import (
	"strconv"

	"vuejsx/internal/ast"
)

func (p *printer) printExpr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	expr := p.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	if p.cleanExpr(id) {
		p.writer.CopySpan(expr.Span)
		return
	}

	exprs := p.builder.Exprs
	switch expr.Kind {
	case ast.ExprRaw:
		raw, _ := exprs.Raw(id)
		p.printRaw(raw.Text, raw.Holes)
	case ast.ExprIdent:
		ident, _ := exprs.Ident(id)
		p.writer.WriteString(p.name(ident.Name))
	case ast.ExprThis:
		p.writer.WriteString("this")
	case ast.ExprNull:
		p.writer.WriteString("null")
	case ast.ExprBool:
		b, _ := exprs.Bool(id)
		p.writer.WriteString(strconv.FormatBool(b.Value))
	case ast.ExprNumber:
		n, _ := exprs.Number(id)
		if n.Raw != "" {
			p.writer.WriteString(n.Raw)
		} else {
			p.writer.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
		}
	case ast.ExprString:
		s, _ := exprs.StringLit(id)
		if s.Raw != "" {
			p.writer.WriteString(s.Raw)
		} else {
			p.writer.WriteString(Quote(p.name(s.Value)))
		}
	case ast.ExprArray:
		arr, _ := exprs.Array(id)
		p.writer.WriteString("[")
		p.printList(arr.Elems)
		p.writer.WriteString("]")
	case ast.ExprObject:
		p.printObject(id)
	case ast.ExprMember:
		p.printMember(id)
	case ast.ExprCall:
		p.printCall(id)
	case ast.ExprArrow:
		p.printArrow(id)
	case ast.ExprFunction:
		fn, _ := exprs.Function(id)
		p.printFunction(fn)
	case ast.ExprCond:
		c, _ := exprs.Cond(id)
		p.printExpr(c.Test)
		p.writer.WriteString(" ? ")
		p.printExpr(c.Cons)
		p.writer.WriteString(" : ")
		p.printExpr(c.Alt)
	case ast.ExprAssign:
		a, _ := exprs.Assign(id)
		p.printExpr(a.Left)
		p.writer.WriteString(" " + a.Op + " ")
		p.printExpr(a.Right)
	case ast.ExprBinary:
		b, _ := exprs.Binary(id)
		p.printExpr(b.Left)
		p.writer.WriteString(" " + b.Op + " ")
		p.printExpr(b.Right)
	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		p.writer.WriteString(u.Op)
		switch u.Op {
		case "typeof", "void", "delete", "await":
			p.writer.WriteString(" ")
		}
		p.printExpr(u.Operand)
	case ast.ExprParen:
		paren, _ := exprs.Paren(id)
		p.writer.WriteString("(")
		p.printExpr(paren.Inner)
		p.writer.WriteString(")")
	case ast.ExprSpread:
		s, _ := exprs.Spread(id)
		p.writer.WriteString("...")
		p.printExpr(s.Arg)
	case ast.ExprJSXEmpty:
	default:
		// JSX, который пережил трансформацию, печатается как в исходнике
		p.writer.CopySpan(expr.Span)
	}
}

// printRaw writes text with every hole replaced by its printed node.
func (p *printer) printRaw(text string, holes []ast.Hole) {
	cursor := 0
	for _, h := range holes {
		start := clampToContent(int(h.Offset), len(text))
		end := clampToContent(start+int(h.Len), len(text))
		if cursor < start {
			p.writer.WriteString(text[cursor:start])
		}
		switch {
		case h.Expr.IsValid():
			p.printExpr(h.Expr)
		case h.Stmt.IsValid():
			p.printStmt(h.Stmt)
		}
		cursor = max(cursor, end)
	}
	if cursor < len(text) {
		p.writer.WriteString(text[cursor:])
	}
}

func (p *printer) printList(items []ast.ExprID) {
	for i, item := range items {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.printExpr(item)
	}
}

func (p *printer) printMember(id ast.ExprID) {
	m, _ := p.builder.Exprs.Member(id)
	p.printExpr(m.Object)
	if m.Computed.IsValid() {
		if m.Optional {
			p.writer.WriteString("?.")
		}
		p.writer.WriteString("[")
		p.printExpr(m.Computed)
		p.writer.WriteString("]")
		return
	}
	if m.Optional {
		p.writer.WriteString("?.")
	} else {
		p.writer.WriteString(".")
	}
	p.writer.WriteString(p.name(m.Property))
}

func (p *printer) printCall(id ast.ExprID) {
	call, _ := p.builder.Exprs.Call(id)
	if call.New {
		p.writer.WriteString("new ")
	}
	p.printExpr(call.Callee)
	p.writer.WriteString(call.TypeArgs)
	if call.Optional {
		p.writer.WriteString("?.")
	}
	p.writer.WriteString("(")
	p.printList(call.Args)
	p.writer.WriteString(")")
}

func (p *printer) printObject(id ast.ExprID) {
	obj, _ := p.builder.Exprs.Object(id)
	if len(obj.Props) == 0 {
		p.writer.WriteString("{}")
		return
	}
	p.writer.WriteString("{ ")
	for i, propID := range obj.Props {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.printProp(propID)
	}
	p.writer.WriteString(" }")
}

func (p *printer) printProp(id ast.PropID) {
	prop := p.builder.Exprs.Prop(id)
	if prop == nil {
		return
	}
	if p.cleanProp(id) {
		p.writer.CopySpan(prop.Span)
		return
	}
	switch prop.Kind {
	case ast.PropShorthand:
		p.printKey(prop.Key)
	case ast.PropSpread:
		p.writer.WriteString("...")
		p.printExpr(prop.Value)
	case ast.PropMethod, ast.PropGetter, ast.PropSetter:
		fn, ok := p.builder.Exprs.Function(prop.Value)
		if !ok {
			p.printKey(prop.Key)
			p.writer.WriteString(": ")
			p.printExpr(prop.Value)
			return
		}
		switch prop.Kind {
		case ast.PropGetter:
			p.writer.WriteString("get ")
		case ast.PropSetter:
			p.writer.WriteString("set ")
		}
		if fn.Sig.Async {
			p.writer.WriteString("async ")
		}
		if fn.Sig.Generator {
			p.writer.WriteString("*")
		}
		p.printKey(prop.Key)
		p.printSigTail(fn.Sig)
		p.writer.WriteString(" ")
		p.printBlock(fn.Block)
	default:
		p.printKey(prop.Key)
		p.writer.WriteString(": ")
		p.printExpr(prop.Value)
	}
}

func (p *printer) printKey(key ast.PropKey) {
	switch key.Kind {
	case ast.KeyIdent:
		p.writer.WriteString(p.name(key.Name))
	case ast.KeyString:
		if key.Raw != "" {
			p.writer.WriteString(key.Raw)
		} else {
			p.writer.WriteString(Quote(p.name(key.Name)))
		}
	case ast.KeyNumber:
		p.writer.WriteString(key.Raw)
	case ast.KeyComputed:
		p.writer.WriteString("[")
		p.printExpr(key.Expr)
		p.writer.WriteString("]")
	}
}

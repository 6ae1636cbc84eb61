package frontend

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"vuejsx/internal/ast"
	"vuejsx/internal/source"
)

func (c *converter) jsx(n sitter.Node) ast.ExprID {
	sp := c.span(n)
	switch n.Type() {
	case "jsx_self_closing_element":
		name, ok := field(n, "name")
		if !ok {
			return c.rawExpr(n)
		}
		return c.b.Exprs.NewJSXElement(sp, ast.ExprJSXElementData{
			Name:        c.jsxName(name),
			Attrs:       c.jsxAttrs(n, name),
			SelfClosing: true,
		})
	case "jsx_fragment":
		from, to := fragmentBounds(n)
		return c.b.Exprs.NewJSXFragment(sp, c.jsxChildren(n, from, to))
	case "jsx_element":
		open, ok1 := field(n, "open_tag")
		closeTag, ok2 := field(n, "close_tag")
		if !ok1 || !ok2 {
			return c.rawExpr(n)
		}
		children := c.jsxChildren(n, open.EndByte(), closeTag.StartByte())
		name, ok := field(open, "name")
		if !ok {
			// `<>...</>` в грамматиках без отдельного jsx_fragment
			return c.b.Exprs.NewJSXFragment(sp, children)
		}
		return c.b.Exprs.NewJSXElement(sp, ast.ExprJSXElementData{
			Name:     c.jsxName(name),
			Attrs:    c.jsxAttrs(open, name),
			Children: children,
		})
	default:
		return c.rawExpr(n)
	}
}

// fragmentBounds finds the byte range between `<>` and `</>`.
func fragmentBounds(n sitter.Node) (from, to uint) {
	from, to = n.StartByte(), n.EndByte()
	seenOpen := false
	for i := range n.ChildCount() {
		child := n.Child(i)
		switch child.Type() {
		case ">":
			if !seenOpen {
				from = child.EndByte()
				seenOpen = true
			}
		case "</":
			to = child.StartByte()
		}
	}
	return from, to
}

func (c *converter) jsxName(n sitter.Node) ast.JSXName {
	name := ast.JSXName{Kind: ast.JSXNameIdent, Span: c.span(n)}
	switch n.Type() {
	case "jsx_namespace_name":
		kids := namedChildren(n)
		if len(kids) == 2 {
			name.Kind = ast.JSXNameNamespaced
			name.NS = c.intern(kids[0])
			name.Local = c.intern(kids[1])
			return name
		}
	case "member_expression", "nested_identifier":
		segs := strings.Split(c.text(n), ".")
		root := strings.TrimSpace(segs[0])
		rootSpan := source.Span{File: c.file.ID, Start: offset(n.StartByte())}
		rootSpan.End = rootSpan.Start + offset(uint(len(segs[0])))
		name.Kind = ast.JSXNameMember
		if root == "this" {
			name.Root = c.b.Exprs.NewThis(rootSpan)
		} else {
			id := c.b.Intern(root)
			name.Root = c.b.Exprs.NewIdent(rootSpan, id, !c.declared(id))
		}
		for _, seg := range segs[1:] {
			name.Path = append(name.Path, c.b.Intern(strings.TrimSpace(seg)))
		}
		return name
	}
	id := c.intern(n)
	name.Root = c.b.Exprs.NewIdent(c.span(n), id, !c.declared(id))
	return name
}

func (c *converter) jsxAttrs(open, nameNode sitter.Node) []ast.JSXAttrID {
	var attrs []ast.JSXAttrID
	for _, child := range namedChildren(open) {
		if sameNode(child, nameNode) {
			continue
		}
		switch child.Type() {
		case "jsx_attribute":
			attrs = append(attrs, c.jsxAttr(child))
		case "jsx_expression":
			kids := namedChildren(child)
			if len(kids) != 1 || kids[0].Type() != "spread_element" {
				continue
			}
			inner := namedChildren(kids[0])
			if len(inner) != 1 {
				continue
			}
			attrs = append(attrs, c.b.Exprs.NewJSXAttr(ast.JSXAttr{
				Kind:  ast.JSXAttrSpread,
				Span:  c.span(child),
				Value: c.expr(inner[0]),
			}))
		}
	}
	return attrs
}

func (c *converter) jsxAttr(n sitter.Node) ast.JSXAttrID {
	attr := ast.JSXAttr{Kind: ast.JSXAttrNamed, Span: c.span(n)}
	kids := namedChildren(n)
	if len(kids) == 0 {
		return c.b.Exprs.NewJSXAttr(attr)
	}
	nameNode := kids[0]
	if nameNode.Type() == "jsx_namespace_name" {
		parts := namedChildren(nameNode)
		if len(parts) == 2 {
			attr.NS = c.intern(parts[0])
			attr.Name = c.intern(parts[1])
		} else {
			attr.Name = c.intern(nameNode)
		}
	} else {
		attr.Name = c.intern(nameNode)
	}
	if len(kids) < 2 {
		return c.b.Exprs.NewJSXAttr(attr)
	}

	value := kids[1]
	switch value.Type() {
	case "string":
		raw := c.text(value)
		attr.ValueKind = ast.JSXValueString
		// JSX-строки не знают escape-последовательностей
		attr.Value = c.b.Exprs.NewString(c.span(value), c.b.Intern(raw[1:len(raw)-1]), raw)
	case "jsx_expression":
		inner := namedChildren(value)
		if len(inner) == 0 {
			attr.ValueKind = ast.JSXValueEmpty
			attr.Value = c.b.Exprs.NewJSXEmpty(c.span(value))
		} else {
			attr.ValueKind = ast.JSXValueExpr
			attr.Value = c.expr(inner[0])
		}
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		attr.ValueKind = ast.JSXValueElement
		attr.Value = c.jsx(value)
	default:
		attr.ValueKind = ast.JSXValueExpr
		attr.Value = c.expr(value)
	}
	return c.b.Exprs.NewJSXAttr(attr)
}

// jsxChildren converts the children between from and to. Text is taken from
// the gaps between structural children so that whitespace survives as written.
func (c *converter) jsxChildren(n sitter.Node, from, to uint) []ast.JSXChildID {
	var out []ast.JSXChildID
	cursor := from
	flushText := func(end uint) {
		if end <= cursor {
			return
		}
		out = append(out, c.b.Exprs.NewJSXChild(ast.JSXChild{
			Kind: ast.JSXChildText,
			Span: source.Span{File: c.file.ID, Start: offset(cursor), End: offset(end)},
			Text: string(c.src[cursor:end]),
		}))
	}

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if child.StartByte() < from || child.EndByte() > to {
			continue
		}
		var entry ast.JSXChild
		switch child.Type() {
		case "jsx_expression":
			entry = c.jsxExprChild(child)
		case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
			entry.Expr = c.jsx(child)
			entry.Kind = ast.JSXChildElement
			if c.b.Exprs.Get(entry.Expr).Kind == ast.ExprJSXFragment {
				entry.Kind = ast.JSXChildFragment
			}
		default:
			// jsx_text, html_character_reference и комментарии остаются текстом
			continue
		}
		flushText(child.StartByte())
		entry.Span = c.span(child)
		out = append(out, c.b.Exprs.NewJSXChild(entry))
		cursor = child.EndByte()
	}
	flushText(to)
	return out
}

func (c *converter) jsxExprChild(n sitter.Node) ast.JSXChild {
	kids := namedChildren(n)
	if len(kids) == 0 {
		return ast.JSXChild{Kind: ast.JSXChildEmpty}
	}
	if kids[0].Type() == "spread_element" {
		inner := namedChildren(kids[0])
		if len(inner) == 1 {
			return ast.JSXChild{Kind: ast.JSXChildSpread, Expr: c.expr(inner[0])}
		}
	}
	return ast.JSXChild{Kind: ast.JSXChildExpr, Expr: c.expr(kids[0])}
}

package transform

import (
	"strconv"

	"vuejsx/internal/ast"
	"vuejsx/internal/source"
)

type childEntry struct {
	expr   ast.ExprID
	spread bool
}

// compileChildren builds the third vnode argument. The returned flag tells
// the caller that a child depends on a binding from outside the file.
func (c *Context) compileChildren(children []ast.JSXChildID, isComponent bool, slots ast.ExprID) (ast.ExprID, bool) {
	var (
		entries []childEntry
		dynamic bool
	)
	for _, childID := range children {
		child := *c.b.Exprs.JSXChild(childID)
		switch child.Kind {
		case ast.JSXChildText:
			text := NormalizeText(child.Text)
			if text == "" {
				continue
			}
			entries = append(entries, childEntry{expr: c.b.Call(c.importVue("createTextVNode"), c.b.Str(text))})
		case ast.JSXChildEmpty:
		case ast.JSXChildExpr, ast.JSXChildSpread:
			if !child.Expr.IsValid() || c.b.Exprs.Get(child.Expr).Kind == ast.ExprJSXEmpty {
				continue
			}
			c.visitExpr(child.Expr)
			if c.externalIdent(child.Expr) {
				dynamic = true
			}
			entries = append(entries, childEntry{expr: child.Expr, spread: child.Kind == ast.JSXChildSpread})
		case ast.JSXChildElement, ast.JSXChildFragment:
			compiled, dyn := c.compileJSX(child.Expr)
			dynamic = dynamic || dyn
			entries = append(entries, childEntry{expr: compiled})
		}
	}
	flag := slotFlagOf(dynamic)

	if len(entries) == 0 {
		if slots.IsValid() {
			return slots, dynamic
		}
		return c.b.Exprs.NewNull(source.Span{}), dynamic
	}

	if len(entries) == 1 && !entries[0].spread && isComponent {
		return c.singleSlot(entries[0].expr, flag, slots), dynamic
	}
	if isComponent {
		return c.wrapChildren(c.entryElems(entries), flag, slots), dynamic
	}
	return c.b.Array(c.entryElems(entries)...), dynamic
}

// singleSlot shapes the only child of a component. Values that may already
// be a slots object are checked at runtime when object slots are enabled.
func (c *Context) singleSlot(expr ast.ExprID, flag SlotFlag, slots ast.ExprID) ast.ExprID {
	node := *c.b.Exprs.Get(expr)
	switch node.Kind {
	case ast.ExprIdent:
		wrapped := c.wrapChildren([]ast.ExprID{expr}, flag, slots)
		if !c.cfg.EnableObjectSlots {
			return wrapped
		}
		test := c.b.Call(c.slotHelperIdent(), expr)
		return c.b.Exprs.NewCond(source.Span{}, test, expr, wrapped)

	case ast.ExprCall:
		call, _ := c.b.Exprs.Call(expr)
		if node.Span.IsSynthetic() || call.New || call.Optional {
			break
		}
		if !c.cfg.EnableObjectSlots {
			return c.wrapChildren([]ast.ExprID{expr}, flag, slots)
		}
		slot := c.slotVar()
		assign := c.b.Exprs.NewAssign(source.Span{}, "=", c.b.Ident(slot), expr)
		test := c.b.Call(c.slotHelperIdent(), assign)
		wrapped := c.wrapChildren([]ast.ExprID{c.b.Ident(slot)}, flag, slots)
		return c.b.Exprs.NewCond(source.Span{}, test, c.b.Ident(slot), wrapped)

	case ast.ExprArrow, ast.ExprFunction:
		return c.b.Object(c.b.KeyValue("default", false, expr))

	case ast.ExprObject:
		obj, _ := c.b.Exprs.Object(expr)
		props := append([]ast.PropID(nil), obj.Props...)
		if c.cfg.Optimize {
			props = append(props, c.slotMarker(flag))
		}
		return c.b.Object(props...)
	}
	return c.wrapChildren([]ast.ExprID{expr}, flag, slots)
}

// wrapChildren builds `{ default: () => [elems], ...slots, _: flag }`.
func (c *Context) wrapChildren(elems []ast.ExprID, flag SlotFlag, slots ast.ExprID) ast.ExprID {
	props := []ast.PropID{
		c.b.KeyValue("default", false, c.b.Arrow(c.b.Array(elems...))),
	}
	if slots.IsValid() {
		if obj, ok := c.b.Exprs.Object(slots); ok {
			props = append(props, obj.Props...)
		} else {
			props = append(props, c.b.SpreadProp(slots))
		}
	}
	if c.cfg.Optimize {
		props = append(props, c.slotMarker(flag))
	}
	return c.b.Object(props...)
}

func (c *Context) slotMarker(flag SlotFlag) ast.PropID {
	n := int(flag)
	return c.b.KeyValue("_", false, c.b.Exprs.NewNumber(source.Span{}, strconv.Itoa(n), float64(n)))
}

func (c *Context) entryElems(entries []childEntry) []ast.ExprID {
	out := make([]ast.ExprID, 0, len(entries))
	for _, e := range entries {
		if e.spread {
			out = append(out, c.b.Exprs.NewSpread(source.Span{}, e.expr))
			continue
		}
		out = append(out, e.expr)
	}
	return out
}

// externalIdent reports a bare identifier with no declaration in the file.
func (c *Context) externalIdent(id ast.ExprID) bool {
	ident, ok := c.b.Exprs.Ident(id)
	return ok && ident.Unresolved
}

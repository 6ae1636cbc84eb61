package transform

import (
	"strconv"

	"vuejsx/internal/ast"
	"vuejsx/internal/source"
)

// compileJSX compiles an element or fragment into its vnode call.
// The flag reports a dependency on bindings from outside the file.
func (c *Context) compileJSX(id ast.ExprID) (ast.ExprID, bool) {
	switch c.b.Exprs.Get(id).Kind {
	case ast.ExprJSXElement:
		return c.compileElement(id)
	case ast.ExprJSXFragment:
		return c.compileFragment(id)
	default:
		c.visitExpr(id)
		return id, false
	}
}

func (c *Context) compileElement(id ast.ExprID) (ast.ExprID, bool) {
	data, _ := c.b.Exprs.JSXElement(id)
	el := *data
	el.Attrs = c.decoupleVModels(el.Attrs)
	c.res.Elements++

	isComponent := c.isComponent(&el.Name)
	attrs := c.compileAttrs(el.Attrs, isComponent)
	tag := c.transformTag(&el.Name)
	children, dynamic := c.compileChildren(el.Children, isComponent, attrs.slots)

	args := []ast.ExprID{tag, attrs.props, children}
	if c.cfg.Optimize {
		if attrs.flags != 0 {
			n := int(attrs.flags)
			args = append(args, c.b.Exprs.NewNumber(source.Span{}, strconv.Itoa(n), float64(n)))
		}
		if len(attrs.dynamicProps) > 0 {
			names := make([]ast.ExprID, 0, len(attrs.dynamicProps))
			for _, name := range attrs.dynamicProps {
				names = append(names, c.b.Str(name))
			}
			args = append(args, c.b.Array(names...))
		}
	}
	call := c.b.Call(c.factory(), args...)
	if len(attrs.directives) == 0 {
		return call, dynamic
	}

	bindings := make([]ast.ExprID, 0, len(attrs.directives))
	for _, d := range attrs.directives {
		entry := []ast.ExprID{c.resolveDirective(d.Name, &el), d.Value}
		if d.Argument.IsValid() {
			entry = append(entry, d.Argument)
		}
		if d.Modifiers.IsValid() {
			entry = append(entry, d.Modifiers)
		}
		bindings = append(bindings, c.b.Array(entry...))
	}
	return c.b.Call(c.importVue("withDirectives"), call, c.b.Array(bindings...)), dynamic
}

func (c *Context) compileFragment(id ast.ExprID) (ast.ExprID, bool) {
	data, _ := c.b.Exprs.JSXFragment(id)
	kids := append([]ast.JSXChildID(nil), data.Children...)
	c.res.Fragments++

	tag := c.importVue("Fragment")
	children, dynamic := c.compileChildren(kids, false, ast.NoExprID)
	return c.b.Call(c.factory(), tag, c.b.Exprs.NewNull(source.Span{}), children), dynamic
}

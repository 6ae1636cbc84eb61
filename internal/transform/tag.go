package transform

import (
	"vuejsx/internal/ast"
	"vuejsx/internal/source"
)

// tagName returns the name isComponent decides on and whether it came
// from a member path.
func (c *Context) tagName(name *ast.JSXName) (string, bool) {
	switch name.Kind {
	case ast.JSXNameMember:
		if len(name.Path) == 0 {
			return "", true
		}
		return c.b.Name(name.Path[len(name.Path)-1]), true
	case ast.JSXNameNamespaced:
		return c.b.Name(name.Local), false
	default:
		return c.b.IdentName(name.Root), false
	}
}

// isComponent decides whether children are compiled into a slots object.
func (c *Context) isComponent(name *ast.JSXName) bool {
	tag, member := c.tagName(name)
	should := tag != "KeepAlive"
	if local, ok := c.fragmentLocal(); ok && tag == local {
		should = false
	}
	if member {
		return should
	}
	if c.cfg.IsCustomElement(tag) {
		return false
	}
	return should && !(startsLower(tag) && IsNativeTag(tag))
}

// transformTag turns the element name into the first vnode argument.
func (c *Context) transformTag(name *ast.JSXName) ast.ExprID {
	switch name.Kind {
	case ast.JSXNameMember:
		obj := name.Root
		for _, seg := range name.Path {
			obj = c.b.Exprs.NewMember(source.Span{}, obj, seg)
		}
		return obj
	case ast.JSXNameNamespaced:
		return c.b.Str(c.b.Name(name.NS) + ":" + c.b.Name(name.Local))
	}

	ident, ok := c.b.Exprs.Ident(name.Root)
	if !ok {
		return name.Root
	}
	unresolved := ident.Unresolved
	tag := c.b.Name(ident.Name)
	switch {
	case startsLower(tag) && IsNativeTag(tag):
		return c.b.Str(tag)
	case tag == "Fragment":
		return c.importVue("Fragment")
	case c.cfg.IsCustomElement(tag):
		return c.b.Str(tag)
	case unresolved:
		return c.b.Call(c.importVue("resolveComponent"), c.b.Str(tag))
	default:
		return name.Root
	}
}

package transform

import (
	"sort"
	"strings"

	"vuejsx/internal/ast"
	"vuejsx/internal/diag"
	"vuejsx/internal/source"
)

// DirectiveKind tags the Directive variant.
type DirectiveKind uint8

const (
	DirNormal DirectiveKind = iota
	DirHTML
	DirText
	DirModel
	DirSlots
)

// Directive is a parsed `v-*` attribute. Argument, TransformedArgument and
// Modifiers are NoExprID when absent; Value is NoExprID only for DirSlots
// without a usable value.
type Directive struct {
	Kind DirectiveKind
	Name string
	// Argument is the raw argument; DirModel uses it for prop keys.
	Argument ast.ExprID
	// TransformedArgument is what a directive binding receives.
	TransformedArgument ast.ExprID
	Modifiers           ast.ExprID
	Value               ast.ExprID
}

// IsDirective reports whether attr is spelled as a directive:
// `v-name`, `vName`, or a namespaced `v-name:arg`.
func IsDirective(b *ast.Builder, attr *ast.JSXAttr) bool {
	if attr.Kind != ast.JSXAttrNamed {
		return false
	}
	name := b.Name(attr.Name)
	if attr.NS != source.NoStringID {
		name = b.Name(attr.NS)
	}
	if len(name) < 2 || name[0] != 'v' {
		return false
	}
	return name[1] == '-' || (name[1] >= 'A' && name[1] <= 'Z')
}

// directiveName splits an attribute name into directive name, argument and
// modifier tokens.
func directiveName(b *ast.Builder, attr *ast.JSXAttr) (name string, arg string, hasArg bool, mods []string) {
	trim := func(s string) string {
		return strings.TrimLeft(strings.TrimLeft(s, "v"), "-")
	}
	if attr.NS != source.NoStringID {
		tokens := strings.Split(b.Name(attr.Name), "_")
		return strings.ToLower(trim(b.Name(attr.NS))), tokens[0], true, tokens[1:]
	}
	tokens := strings.Split(trim(b.Name(attr.Name)), "_")
	name = strings.ToLower(tokens[0])
	if len(tokens) > 1 {
		return name, tokens[1], true, tokens[2:]
	}
	return name, "", false, nil
}

// modifierSet is the sorted, de-duplicated set of modifier names.
type modifierSet map[string]struct{}

func newModifierSet(tokens []string) modifierSet {
	set := make(modifierSet, len(tokens))
	for _, t := range tokens {
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

func (s modifierSet) sorted() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// ParseDirective turns a directive attribute into its variant.
// Misuse is reported and replaced by a placeholder, never fatal.
func (c *Context) ParseDirective(attr *ast.JSXAttr, isComponent bool) Directive {
	name, argName, hasArg, tokens := directiveName(c.b, attr)
	argument := ast.NoExprID
	if hasArg {
		argument = c.b.Str(argName)
	}

	switch name {
	case "html":
		return Directive{Kind: DirHTML, Name: name, Value: c.contentValue(attr, "v-html")}
	case "text":
		return Directive{Kind: DirText, Name: name, Value: c.contentValue(attr, "v-text")}
	case "model":
		return c.parseModel(attr, isComponent, argument, tokens)
	case "slots":
		return c.parseSlots(attr)
	}

	var mods modifierSet
	var value ast.ExprID
	if attr.ValueKind == ast.JSXValueExpr {
		if arr, ok := c.b.Exprs.Array(attr.Value); ok {
			elems := append([]ast.ExprID(nil), arr.Elems...)
			value = c.plainElem(elems, 0)
			if !value.IsValid() {
				value = c.b.Ident("")
			}
			if second := c.plainElem(elems, 1); second.IsValid() {
				if inner, ok := c.b.Exprs.Array(second); ok {
					mods = c.parseModifiers(inner.Elems)
				} else {
					if !argument.IsValid() {
						argument = second
					}
					if third := c.plainElem(elems, 2); third.IsValid() {
						if inner, ok := c.b.Exprs.Array(third); ok {
							mods = c.parseModifiers(inner.Elems)
						}
					}
				}
			} else {
				mods = newModifierSet(tokens)
			}
		} else {
			mods = newModifierSet(tokens)
			value = attr.Value
		}
	} else {
		mods = newModifierSet(tokens)
		value = c.b.Ident("")
	}

	if len(mods) > 0 && !argument.IsValid() {
		argument = c.voidZero()
	}
	return Directive{
		Kind:                DirNormal,
		Name:                name,
		Argument:            argument,
		TransformedArgument: argument,
		Modifiers:           c.modifiersObject(mods, false),
		Value:               value,
	}
}

// contentValue reads the value of v-html / v-text.
func (c *Context) contentValue(attr *ast.JSXAttr, directive string) ast.ExprID {
	switch attr.ValueKind {
	case ast.JSXValueString:
		v, _ := c.b.StringValue(attr.Value)
		return c.b.Str(v)
	case ast.JSXValueExpr, ast.JSXValueElement:
		if arr, ok := c.b.Exprs.Array(attr.Value); ok {
			if first := c.plainElem(arr.Elems, 0); first.IsValid() {
				return first
			}
		}
		return attr.Value
	default:
		c.report(diag.DirectiveNeedsExpression, attr.Span,
			"You have to use JSX Expression inside your `"+directive+"`.")
		return c.b.Exprs.NewBool(source.Span{}, true)
	}
}

func (c *Context) parseModel(attr *ast.JSXAttr, isComponent bool, argument ast.ExprID, tokens []string) Directive {
	var attrValue ast.ExprID
	if attr.ValueKind == ast.JSXValueExpr {
		attrValue = attr.Value
	} else {
		rep := diag.ReportError(c.reporter, diag.DirectiveNeedsExpression, attr.Span,
			"You have to use JSX Expression inside your `v-model`.")
		if attr.ValueKind == ast.JSXValueString {
			if v, ok := c.b.StringValue(attr.Value); ok {
				sp := c.b.Exprs.Get(attr.Value).Span
				if !sp.IsSynthetic() {
					rep.WithFix("wrap in a JSX expression", diag.FixEdit{Span: sp, NewText: "{" + v + "}"})
				}
			}
		}
		rep.Emit()
		attrValue = c.b.Exprs.NewBool(source.Span{}, true)
	}

	var mods modifierSet
	var value ast.ExprID
	if arr, ok := c.b.Exprs.Array(attrValue); ok {
		elems := append([]ast.ExprID(nil), arr.Elems...)
		value = c.plainElem(elems, 0)
		if !value.IsValid() {
			value = c.b.Ident("")
		}
		if second := c.plainElem(elems, 1); second.IsValid() {
			if inner, ok := c.b.Exprs.Array(second); ok {
				if isComponent && !argument.IsValid() {
					argument = c.b.Exprs.NewNull(source.Span{})
				}
				mods = c.parseModifiers(inner.Elems)
			} else {
				if !argument.IsValid() {
					argument = second
				}
				if third := c.plainElem(elems, 2); third.IsValid() {
					if inner, ok := c.b.Exprs.Array(third); ok {
						mods = c.parseModifiers(inner.Elems)
					}
				}
			}
		} else {
			if isComponent && !argument.IsValid() {
				argument = c.b.Exprs.NewNull(source.Span{})
			}
			mods = newModifierSet(tokens)
		}
	} else {
		mods = newModifierSet(tokens)
		value = attrValue
	}

	transformed := argument
	if !isComponent && len(mods) > 0 && !transformed.IsValid() {
		transformed = c.voidZero()
	}
	return Directive{
		Kind:                DirModel,
		Name:                "model",
		Argument:            argument,
		TransformedArgument: transformed,
		Modifiers:           c.modifiersObject(mods, isComponent),
		Value:               value,
	}
}

func (c *Context) parseSlots(attr *ast.JSXAttr) Directive {
	d := Directive{Kind: DirSlots, Name: "slots"}
	if attr.ValueKind != ast.JSXValueExpr {
		return d
	}
	switch c.b.Exprs.Get(attr.Value).Kind {
	case ast.ExprIdent, ast.ExprObject:
		d.Value = attr.Value
	}
	return d
}

// plainElem returns the i-th array element unless it is missing, an
// elision or a spread.
func (c *Context) plainElem(elems []ast.ExprID, i int) ast.ExprID {
	if i >= len(elems) || !elems[i].IsValid() {
		return ast.NoExprID
	}
	if c.b.Exprs.Get(elems[i]).Kind == ast.ExprSpread {
		return ast.NoExprID
	}
	return elems[i]
}

// parseModifiers keeps the string literal entries of a modifier array.
func (c *Context) parseModifiers(elems []ast.ExprID) modifierSet {
	set := make(modifierSet)
	for i := range elems {
		el := c.plainElem(elems, i)
		if !el.IsValid() {
			continue
		}
		if v, ok := c.b.StringValue(el); ok {
			set[v] = struct{}{}
		}
	}
	return set
}

// modifiersObject builds `{ mod: true }`; components get string keys.
func (c *Context) modifiersObject(mods modifierSet, quoted bool) ast.ExprID {
	if len(mods) == 0 {
		return ast.NoExprID
	}
	names := mods.sorted()
	props := make([]ast.PropID, 0, len(names))
	for _, m := range names {
		props = append(props, c.b.KeyValue(m, quoted, c.b.Exprs.NewBool(source.Span{}, true)))
	}
	return c.b.Object(props...)
}

func (c *Context) voidZero() ast.ExprID {
	return c.b.Exprs.NewUnary(source.Span{}, "void", c.b.Exprs.NewNumber(source.Span{}, "0", 0))
}

// resolveDirective picks the runtime directive object for a binding.
func (c *Context) resolveDirective(name string, el *ast.ExprJSXElementData) ast.ExprID {
	switch name {
	case "show":
		return c.importVue("vShow")
	case "model":
		return c.importVue(c.modelDirective(el))
	default:
		return c.b.Call(c.importVue("resolveDirective"), c.b.Str(name))
	}
}

func (c *Context) modelDirective(el *ast.ExprJSXElementData) string {
	if el.Name.Kind == ast.JSXNameIdent {
		switch c.b.IdentName(el.Name.Root) {
		case "select":
			return "vModelSelect"
		case "textarea":
			return "vModelText"
		}
	}
	for _, attrID := range el.Attrs {
		attr := c.b.Exprs.JSXAttr(attrID)
		if attr.Kind != ast.JSXAttrNamed || attr.NS != source.NoStringID || c.b.Name(attr.Name) != "type" {
			continue
		}
		switch attr.ValueKind {
		case ast.JSXValueNone:
			continue
		case ast.JSXValueString:
			v, _ := c.b.StringValue(attr.Value)
			switch v {
			case "checkbox":
				return "vModelCheckbox"
			case "radio":
				return "vModelRadio"
			default:
				return "vModelText"
			}
		default:
			return "vModelDynamic"
		}
	}
	return "vModelText"
}

package transform

import (
	"strings"

	"vuejsx/internal/ast"
	"vuejsx/internal/diag"
	"vuejsx/internal/source"
)

type attrsResult struct {
	props        ast.ExprID
	flags        PatchFlags
	dynamicProps []string
	slots        ast.ExprID
	directives   []Directive
}

// orderedSet keeps first-seen order.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

// compileAttrs turns the attribute list of one element into a props
// expression, patch flags, directive bindings and the v-slots value.
func (c *Context) compileAttrs(attrs []ast.JSXAttrID, isComponent bool) attrsResult {
	res := attrsResult{props: c.b.Exprs.NewNull(source.Span{})}
	if len(attrs) == 0 {
		return res
	}

	var (
		dynamic        orderedSet
		props          []ast.PropID
		mergeArgs      []ast.ExprID
		hasRef         bool
		hasClass       bool
		hasStyle       bool
		hasHydration   bool
		hasDynamicKeys bool
		mergeMode      = c.cfg.MergeProps
	)

	for _, attrID := range attrs {
		attr := *c.b.Exprs.JSXAttr(attrID)
		switch attr.ValueKind {
		case ast.JSXValueExpr, ast.JSXValueElement:
			c.visitExpr(attr.Value)
		}
		if attr.Kind == ast.JSXAttrSpread {
			c.visitExpr(attr.Value)
		}

		switch {
		case attr.Kind == ast.JSXAttrSpread:
			hasDynamicKeys = true
			if len(props) > 0 && mergeMode {
				mergeArgs = append(mergeArgs, c.b.Object(DedupeProps(c.b, props)...))
				props = nil
			}
			if obj, ok := c.b.Exprs.Object(attr.Value); ok {
				if mergeMode {
					mergeArgs = append(mergeArgs, attr.Value)
				} else {
					props = append(props, obj.Props...)
				}
			} else if mergeMode {
				mergeArgs = append(mergeArgs, attr.Value)
			} else {
				props = append(props, c.b.SpreadProp(attr.Value))
			}

		case IsDirective(c.b, &attr):
			d := c.ParseDirective(&attr, isComponent)
			switch d.Kind {
			case DirNormal:
				res.directives = append(res.directives, d)
			case DirHTML:
				props = append(props, c.b.KeyValue("innerHTML", true, d.Value))
				dynamic.add("innerHTML")
			case DirText:
				props = append(props, c.b.KeyValue("textContent", true, d.Value))
				dynamic.add("textContent")
			case DirModel:
				props = c.modelProps(props, d, isComponent, &dynamic, &hasDynamicKeys, &res.directives)
			case DirSlots:
				res.slots = d.Value
			default:
				res.directives = append(res.directives, d)
			}

		default:
			name := c.b.Name(attr.Name)
			if attr.NS != source.NoStringID {
				name = c.b.Name(attr.NS) + ":" + name
			}
			value := c.attrValue(&attr)

			if name == "ref" {
				hasRef = true
			} else if !attrValueConstant(c.b, &attr) {
				if !isComponent && isOn(name) && !strings.EqualFold(name, "onclick") && name != "onUpdate:modelValue" {
					hasHydration = true
				}
				switch {
				case name == "class" && !isComponent:
					hasClass = true
				case name == "style" && !isComponent:
					hasStyle = true
				case name == "key" || name == "on" || name == "ref":
				default:
					dynamic.add(name)
				}
			}

			if c.cfg.TransformOn && (name == "on" || name == "nativeOn") {
				mergeArgs = append(mergeArgs, c.b.Call(c.transformOnHelper(), value))
			} else {
				props = append(props, c.b.KeyValue(name, true, value))
			}
		}
	}

	switch {
	case len(mergeArgs) > 0:
		if len(props) > 0 {
			if mergeMode {
				props = DedupeProps(c.b, props)
			}
			mergeArgs = append(mergeArgs, c.b.Object(props...))
		}
		if len(mergeArgs) == 1 {
			res.props = mergeArgs[0]
		} else {
			res.props = c.b.Call(c.importVue("mergeProps"), mergeArgs...)
		}
	case len(props) > 0:
		if lone := c.b.Exprs.Prop(props[0]); len(props) == 1 && lone.Kind == ast.PropSpread {
			res.props = lone.Value
		} else {
			if mergeMode {
				props = DedupeProps(c.b, props)
			}
			res.props = c.b.Object(props...)
		}
	}

	var flags PatchFlags
	if hasDynamicKeys {
		flags |= FlagFullProps
	} else {
		if hasClass {
			flags |= FlagClass
		}
		if hasStyle {
			flags |= FlagStyle
		}
		if len(dynamic.items) > 0 {
			flags |= FlagProps
		}
		if hasHydration {
			flags |= FlagHydrateEvents
		}
	}
	if (flags == 0 || flags == FlagHydrateEvents) && (hasRef || len(res.directives) > 0) {
		flags |= FlagNeedPatch
	}
	res.flags = flags
	res.dynamicProps = dynamic.items
	return res
}

// attrValue is the props value of a plain attribute.
func (c *Context) attrValue(attr *ast.JSXAttr) ast.ExprID {
	switch attr.ValueKind {
	case ast.JSXValueNone:
		return c.b.Exprs.NewBool(source.Span{}, true)
	case ast.JSXValueString:
		v, _ := c.b.StringValue(attr.Value)
		return c.b.Str(NormalizeText(v))
	case ast.JSXValueEmpty:
		return c.voidZero()
	default:
		return attr.Value
	}
}

// modelProps lowers v-model: component props or a native directive binding,
// plus the update handler in both cases.
func (c *Context) modelProps(props []ast.PropID, d Directive, isComponent bool, dynamic *orderedSet, hasDynamicKeys *bool, directives *[]Directive) []ast.PropID {
	argName, argStatic := c.modelArgName(d.Argument)
	if isComponent {
		var key ast.PropID
		switch {
		case argStatic && argName == "":
			dynamic.add("modelValue")
			key = c.b.KeyValue("modelValue", true, d.Value)
		case argStatic:
			dynamic.add(argName)
			key = c.b.KeyValue(argName, true, d.Value)
		default:
			key = c.b.Computed(d.Argument, d.Value)
		}
		props = append(props, key)
		if d.Modifiers.IsValid() {
			switch {
			case argStatic && argName == "":
				props = append(props, c.b.KeyValue("modelModifiers", true, d.Modifiers))
			case argStatic:
				props = append(props, c.b.KeyValue(argName+"Modifiers", true, d.Modifiers))
			default:
				key := c.b.Exprs.NewBinary(source.Span{}, "+", c.operand(d.Argument), c.b.Str("Modifiers"))
				props = append(props, c.b.Computed(key, d.Modifiers))
			}
		}
	} else {
		*directives = append(*directives, Directive{
			Kind:                DirNormal,
			Name:                "model",
			Argument:            d.TransformedArgument,
			TransformedArgument: d.TransformedArgument,
			Modifiers:           d.Modifiers,
			Value:               d.Value,
		})
	}

	handler := c.b.Arrow(
		c.b.Exprs.NewAssign(source.Span{}, "=", d.Value, c.b.Ident("$event")),
		"$event",
	)
	switch {
	case argStatic && argName == "":
		dynamic.add("onUpdate:modelValue")
		props = append(props, c.b.KeyValue("onUpdate:modelValue", true, handler))
	case argStatic:
		dynamic.add("onUpdate:" + argName)
		props = append(props, c.b.KeyValue("onUpdate:"+argName, true, handler))
	default:
		*hasDynamicKeys = true
		key := c.b.Exprs.NewBinary(source.Span{}, "+", c.b.Str("onUpdate"), c.operand(d.Argument))
		props = append(props, c.b.Computed(key, handler))
	}
	return props
}

// modelArgName classifies a v-model argument: absent or null yields
// ("", true), a string literal its value, anything else is dynamic.
func (c *Context) modelArgName(arg ast.ExprID) (string, bool) {
	if !arg.IsValid() {
		return "", true
	}
	switch c.b.Exprs.Get(arg).Kind {
	case ast.ExprNull:
		return "", true
	case ast.ExprString:
		v, _ := c.b.StringValue(arg)
		return v, true
	default:
		return "", false
	}
}

// operand parenthesizes expressions that would bind looser than `+`.
func (c *Context) operand(id ast.ExprID) ast.ExprID {
	switch c.b.Exprs.Get(id).Kind {
	case ast.ExprIdent, ast.ExprThis, ast.ExprString, ast.ExprNumber, ast.ExprBool, ast.ExprNull,
		ast.ExprArray, ast.ExprObject, ast.ExprMember, ast.ExprCall, ast.ExprParen:
		return id
	default:
		return c.b.Exprs.NewParen(source.Span{}, id)
	}
}

// isOn matches event listener props: `on` followed by a non lower-case letter.
func isOn(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "on") && (name[2] < 'a' || name[2] > 'z')
}

// decoupleVModels expands `v-models={[[a, "x"], [b]]}` into one v-model
// attribute per entry, in place of the original attribute.
func (c *Context) decoupleVModels(attrs []ast.JSXAttrID) []ast.JSXAttrID {
	at := -1
	for i, attrID := range attrs {
		attr := c.b.Exprs.JSXAttr(attrID)
		if attr.Kind == ast.JSXAttrNamed && attr.NS == source.NoStringID && c.b.Name(attr.Name) == "v-models" {
			at = i
			break
		}
	}
	if at < 0 {
		return attrs
	}
	attr := *c.b.Exprs.JSXAttr(attrs[at])
	out := make([]ast.JSXAttrID, 0, len(attrs))
	out = append(out, attrs[:at]...)
	rest := attrs[at+1:]

	var elems []ast.ExprID
	arr, isArray := c.b.Exprs.Array(attr.Value)
	if attr.ValueKind == ast.JSXValueExpr && isArray {
		elems = append(elems, arr.Elems...)
	} else {
		sp := attr.Span
		if attr.Value.IsValid() {
			sp = c.b.Exprs.Get(attr.Value).Span
		}
		rep := diag.ReportError(c.reporter, diag.VModelsNotArray, sp, "you should pass a Two-dimensional Arrays to v-models")
		if text, ok := c.sourceText(sp); ok && attr.ValueKind == ast.JSXValueExpr {
			rep.WithFix("wrap in array", diag.FixEdit{Span: sp, NewText: "[[" + text + "]]"})
		}
		rep.Emit()
		return append(out, rest...)
	}
	name := c.b.Intern("v-model")
	for _, el := range elems {
		if !el.IsValid() || c.b.Exprs.Get(el).Kind == ast.ExprSpread {
			continue
		}
		out = append(out, c.b.Exprs.NewJSXAttr(ast.JSXAttr{
			Kind:      ast.JSXAttrNamed,
			Span:      c.b.Exprs.Get(el).Span,
			Name:      name,
			ValueKind: ast.JSXValueExpr,
			Value:     el,
		}))
	}
	return append(out, rest...)
}

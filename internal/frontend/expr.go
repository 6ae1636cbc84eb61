package frontend

import (
	"strconv"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"vuejsx/internal/ast"
)

func (c *converter) expr(n sitter.Node) ast.ExprID {
	key := nodeKey{start: n.StartByte(), end: n.EndByte(), typ: n.Type()}
	if id, ok := c.memo[key]; ok {
		return id
	}
	id := c.convertExpr(n)
	c.memo[key] = id
	return id
}

func (c *converter) convertExpr(n sitter.Node) ast.ExprID {
	sp := c.span(n)
	exprs := c.b.Exprs
	switch n.Type() {
	case "identifier", "undefined":
		name := c.intern(n)
		return exprs.NewIdent(sp, name, !c.declared(name))
	case "this":
		return exprs.NewThis(sp)
	case "null":
		return exprs.NewNull(sp)
	case "true", "false":
		return exprs.NewBool(sp, n.Type() == "true")
	case "number":
		raw := c.text(n)
		return exprs.NewNumber(sp, raw, parseNumber(raw))
	case "string":
		raw := c.text(n)
		return exprs.NewString(sp, c.b.Intern(unquote(raw)), raw)
	case "array":
		return c.array(n)
	case "object":
		return c.object(n)
	case "member_expression":
		obj, okObj := field(n, "object")
		prop, okProp := field(n, "property")
		if !okObj || !okProp {
			return c.rawExpr(n)
		}
		id := exprs.NewMember(sp, c.expr(obj), c.intern(prop))
		if m, ok := exprs.Member(id); ok {
			m.Optional = hasOptionalChain(n)
		}
		return id
	case "subscript_expression":
		obj, okObj := field(n, "object")
		index, okIndex := field(n, "index")
		if !okObj || !okIndex {
			return c.rawExpr(n)
		}
		id := exprs.NewComputedMember(sp, c.expr(obj), c.expr(index))
		if m, ok := exprs.Member(id); ok {
			m.Optional = hasOptionalChain(n)
		}
		return id
	case "call_expression":
		return c.call(n)
	case "new_expression":
		return c.newExpr(n)
	case "arrow_function":
		return c.arrow(n)
	case "function_expression", "function", "generator_function":
		return c.function(n)
	case "ternary_expression":
		test, ok1 := field(n, "condition")
		cons, ok2 := field(n, "consequence")
		alt, ok3 := field(n, "alternative")
		if !ok1 || !ok2 || !ok3 {
			return c.rawExpr(n)
		}
		return exprs.NewCond(sp, c.expr(test), c.expr(cons), c.expr(alt))
	case "assignment_expression", "augmented_assignment_expression":
		left, ok1 := field(n, "left")
		right, ok2 := field(n, "right")
		if !ok1 || !ok2 {
			return c.rawExpr(n)
		}
		op := "="
		if o, ok := field(n, "operator"); ok {
			op = c.text(o)
		}
		return exprs.NewAssign(sp, op, c.expr(left), c.expr(right))
	case "binary_expression":
		left, ok1 := field(n, "left")
		right, ok2 := field(n, "right")
		op, ok3 := field(n, "operator")
		if !ok1 || !ok2 || !ok3 {
			return c.rawExpr(n)
		}
		return exprs.NewBinary(sp, c.text(op), c.expr(left), c.expr(right))
	case "unary_expression":
		op, ok1 := field(n, "operator")
		arg, ok2 := field(n, "argument")
		if !ok1 || !ok2 {
			return c.rawExpr(n)
		}
		return exprs.NewUnary(sp, c.text(op), c.expr(arg))
	case "parenthesized_expression":
		kids := namedChildren(n)
		if len(kids) != 1 {
			return c.rawExpr(n)
		}
		return exprs.NewParen(sp, c.expr(kids[0]))
	case "spread_element":
		kids := namedChildren(n)
		if len(kids) != 1 {
			return c.rawExpr(n)
		}
		return exprs.NewSpread(sp, c.expr(kids[0]))
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return c.jsx(n)
	default:
		return c.rawExpr(n)
	}
}

func hasOptionalChain(n sitter.Node) bool {
	for i := range n.ChildCount() {
		if n.Child(i).Type() == "optional_chain" {
			return true
		}
	}
	return false
}

func (c *converter) array(n sitter.Node) ast.ExprID {
	if hasElision(n) {
		return c.rawExpr(n)
	}
	kids := namedChildren(n)
	elems := make([]ast.ExprID, 0, len(kids))
	for _, child := range kids {
		elems = append(elems, c.expr(child))
	}
	return c.b.Exprs.NewArray(c.span(n), elems)
}

// hasElision reports `[, a]` style holes, which have no node of their own.
func hasElision(n sitter.Node) bool {
	afterComma := true
	for i := range n.ChildCount() {
		child := n.Child(i)
		switch {
		case child.Type() == ",":
			if afterComma {
				return true
			}
			afterComma = true
		case child.IsNamed() && child.Type() != "comment":
			afterComma = false
		}
	}
	return false
}

func (c *converter) object(n sitter.Node) ast.ExprID {
	kids := namedChildren(n)
	props := make([]ast.PropID, 0, len(kids))
	for _, child := range kids {
		sp := c.span(child)
		switch child.Type() {
		case "pair":
			key, ok1 := field(child, "key")
			value, ok2 := field(child, "value")
			if !ok1 || !ok2 {
				return c.rawExpr(n)
			}
			props = append(props, c.b.Exprs.NewProp(ast.Prop{
				Kind:  ast.PropKeyValue,
				Span:  sp,
				Key:   c.propKey(key),
				Value: c.expr(value),
			}))
		case "shorthand_property_identifier":
			name := c.intern(child)
			props = append(props, c.b.Exprs.NewProp(ast.Prop{
				Kind:  ast.PropShorthand,
				Span:  sp,
				Key:   ast.PropKey{Kind: ast.KeyIdent, Name: name},
				Value: c.b.Exprs.NewIdent(sp, name, !c.declared(name)),
			}))
		case "spread_element":
			inner := namedChildren(child)
			if len(inner) != 1 {
				return c.rawExpr(n)
			}
			props = append(props, c.b.Exprs.NewProp(ast.Prop{
				Kind:  ast.PropSpread,
				Span:  sp,
				Value: c.expr(inner[0]),
			}))
		case "method_definition":
			id, ok := c.method(child)
			if !ok {
				return c.rawExpr(n)
			}
			props = append(props, id)
		default:
			return c.rawExpr(n)
		}
	}
	return c.b.Exprs.NewObject(c.span(n), props)
}

func (c *converter) method(n sitter.Node) (ast.PropID, bool) {
	name, ok1 := field(n, "name")
	body, ok2 := field(n, "body")
	if !ok1 || !ok2 {
		return ast.NoPropID, false
	}
	kind := ast.PropMethod
	switch {
	case hasToken(n, "get"):
		kind = ast.PropGetter
	case hasToken(n, "set"):
		kind = ast.PropSetter
	}
	sig := c.signature(n)
	sig.Generator = hasToken(n, "*")
	fn := c.b.Exprs.NewFunction(c.span(n), ast.ExprFunctionData{
		Sig:   sig,
		Block: c.block(body),
	})
	return c.b.Exprs.NewProp(ast.Prop{
		Kind:  kind,
		Span:  c.span(n),
		Key:   c.propKey(name),
		Value: fn,
	}), true
}

func (c *converter) propKey(n sitter.Node) ast.PropKey {
	switch n.Type() {
	case "string":
		raw := c.text(n)
		return ast.PropKey{Kind: ast.KeyString, Name: c.b.Intern(unquote(raw)), Raw: raw}
	case "number":
		raw := c.text(n)
		return ast.PropKey{Kind: ast.KeyNumber, Name: c.b.Intern(raw), Raw: raw}
	case "computed_property_name":
		kids := namedChildren(n)
		if len(kids) == 1 {
			return ast.PropKey{Kind: ast.KeyComputed, Expr: c.expr(kids[0])}
		}
		return ast.PropKey{Kind: ast.KeyComputed, Expr: c.rawExpr(n)}
	default:
		return ast.PropKey{Kind: ast.KeyIdent, Name: c.intern(n)}
	}
}

func (c *converter) call(n sitter.Node) ast.ExprID {
	fn, ok1 := field(n, "function")
	args, ok2 := field(n, "arguments")
	if !ok1 || !ok2 || args.Type() != "arguments" {
		return c.rawExpr(n)
	}
	data := ast.ExprCallData{
		Callee:   c.expr(fn),
		Args:     c.args(args),
		Optional: hasOptionalChain(n),
	}
	if ta, ok := field(n, "type_arguments"); ok {
		data.TypeArgs = c.text(ta)
	}
	return c.b.Exprs.NewCall(c.span(n), data)
}

func (c *converter) newExpr(n sitter.Node) ast.ExprID {
	ctor, ok := field(n, "constructor")
	if !ok {
		return c.rawExpr(n)
	}
	data := ast.ExprCallData{Callee: c.expr(ctor), New: true}
	if args, ok := field(n, "arguments"); ok {
		data.Args = c.args(args)
	}
	if ta, ok := field(n, "type_arguments"); ok {
		data.TypeArgs = c.text(ta)
	}
	return c.b.Exprs.NewCall(c.span(n), data)
}

func (c *converter) args(n sitter.Node) []ast.ExprID {
	kids := namedChildren(n)
	out := make([]ast.ExprID, 0, len(kids))
	for _, child := range kids {
		out = append(out, c.expr(child))
	}
	return out
}

func (c *converter) arrow(n sitter.Node) ast.ExprID {
	body, ok := field(n, "body")
	if !ok {
		return c.rawExpr(n)
	}
	data := ast.ExprArrowData{Sig: c.signature(n)}
	if body.Type() == "statement_block" {
		data.Block = c.block(body)
	} else {
		data.Body = c.expr(body)
	}
	return c.b.Exprs.NewArrow(c.span(n), data)
}

func (c *converter) function(n sitter.Node) ast.ExprID {
	body, ok := field(n, "body")
	if !ok {
		return c.rawExpr(n)
	}
	data := ast.ExprFunctionData{Sig: c.signature(n)}
	if name, ok := field(n, "name"); ok {
		data.Name = c.intern(name)
	}
	data.Sig.Generator = strings.HasPrefix(n.Type(), "generator") || hasToken(n, "*")
	data.Block = c.block(body)
	return c.b.Exprs.NewFunction(c.span(n), data)
}

// signature reads parameters, type parameters and the return annotation
// of an arrow, function or method node.
func (c *converter) signature(n sitter.Node) ast.FuncSig {
	sig := ast.FuncSig{Async: hasToken(n, "async")}
	if tp, ok := field(n, "type_parameters"); ok {
		sig.TypeParams = c.text(tp)
	}
	if rt, ok := field(n, "return_type"); ok {
		sig.ReturnType = c.text(rt)
	}
	if ps, ok := field(n, "parameters"); ok {
		// параметры сначала, чтобы дырки сырого текста получили те же узлы
		sig.Params = c.params(ps)
		sig.ParamsText = c.rawExpr(ps)
	} else if p, ok := field(n, "parameter"); ok {
		name := c.intern(p)
		sig.Params = []ast.ParamID{c.b.Exprs.NewParam(ast.Param{
			Kind: ast.ParamIdent,
			Span: c.span(p),
			Name: name,
		})}
		sig.ParamsText = c.b.Exprs.NewRaw(c.span(p), c.text(p), nil)
	}
	return sig
}

func (c *converter) params(n sitter.Node) []ast.ParamID {
	kids := namedChildren(n)
	out := make([]ast.ParamID, 0, len(kids))
	for _, child := range kids {
		param := ast.Param{Kind: ast.ParamOther, Span: c.span(child)}
		if child.Type() == "required_parameter" || child.Type() == "optional_parameter" {
			if pat, ok := field(child, "pattern"); ok {
				switch pat.Type() {
				case "identifier":
					param.Kind = ast.ParamIdent
					param.Name = c.intern(pat)
				case "object_pattern":
					param.Kind = ast.ParamObject
				case "array_pattern":
					param.Kind = ast.ParamArray
				case "rest_pattern":
					param.Kind = ast.ParamRest
				}
			}
			if typ, ok := field(child, "type"); ok {
				param.Type = c.typeAnnotation(typ)
			}
			if value, ok := field(child, "value"); ok && param.Kind != ast.ParamRest {
				param.Kind = ast.ParamAssign
				param.Default = c.expr(value)
			}
		}
		out = append(out, c.b.Exprs.NewParam(param))
	}
	return out
}

func parseNumber(raw string) float64 {
	clean := strings.ReplaceAll(raw, "_", "")
	clean = strings.TrimSuffix(clean, "n")
	if v, err := strconv.ParseFloat(clean, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return float64(v)
	}
	return 0
}

package frontend

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"vuejsx/internal/ast"
)

// typeAnnotation unwraps `: T`.
func (c *converter) typeAnnotation(n sitter.Node) ast.TypeID {
	switch n.Type() {
	case "type_annotation", "opting_type_annotation", "omitting_type_annotation", "adding_type_annotation":
		kids := namedChildren(n)
		if len(kids) == 0 {
			return ast.NoTypeID
		}
		return c.typeNode(kids[0])
	default:
		return c.typeNode(n)
	}
}

func (c *converter) typeNode(n sitter.Node) ast.TypeID {
	sp := c.span(n)
	types := c.b.Types
	switch n.Type() {
	case "predefined_type":
		return types.NewKeyword(sp, c.text(n))
	case "type_identifier":
		return types.NewRef(sp, ast.TypeRefData{Name: c.intern(n)})
	case "nested_type_identifier":
		return types.NewRef(sp, c.qualifiedRef(n))
	case "generic_type":
		name, ok := field(n, "name")
		if !ok {
			return types.NewOther(sp, c.text(n))
		}
		ref := ast.TypeRefData{Name: c.intern(name)}
		if name.Type() == "nested_type_identifier" {
			ref = c.qualifiedRef(name)
		}
		if args, ok := field(n, "type_arguments"); ok {
			for _, arg := range namedChildren(args) {
				ref.Args = append(ref.Args, c.typeNode(arg))
			}
		}
		return types.NewRef(sp, ref)
	case "literal_type":
		return c.literalType(n)
	case "template_literal_type":
		return types.NewLiteral(sp, ast.TypeLiteralData{Kind: ast.TypeLitTemplate})
	case "object_type":
		return types.NewTypeLit(sp, c.members(n))
	case "union_type", "intersection_type":
		kind := ast.TypeUnion
		if n.Type() == "intersection_type" {
			kind = ast.TypeIntersection
		}
		var list []ast.TypeID
		for _, child := range namedChildren(n) {
			list = append(list, c.typeNode(child))
		}
		return types.NewList(kind, sp, list)
	case "array_type":
		kids := namedChildren(n)
		if len(kids) != 1 {
			return types.NewOther(sp, c.text(n))
		}
		return types.NewArray(sp, c.typeNode(kids[0]))
	case "tuple_type":
		var elems []ast.TypeID
		for _, child := range namedChildren(n) {
			elems = append(elems, c.tupleElem(child))
		}
		return types.NewList(ast.TypeTuple, sp, elems)
	case "function_type", "constructor_type":
		kind := ast.TypeFn
		if n.Type() == "constructor_type" {
			kind = ast.TypeCtor
		}
		data := ast.TypeFnData{}
		if ps, ok := field(n, "parameters"); ok {
			data.Params = c.fnParams(ps)
		} else {
			for _, child := range namedChildren(n) {
				if child.Type() == "formal_parameters" {
					data.Params = c.fnParams(child)
				}
			}
		}
		if ret, ok := field(n, "return_type"); ok {
			data.Ret = c.typeAnnotation(ret)
		}
		return types.NewFn(kind, sp, data)
	case "parenthesized_type":
		kids := namedChildren(n)
		if len(kids) != 1 {
			return types.NewOther(sp, c.text(n))
		}
		return types.NewWrap(ast.TypeParen, sp, c.typeNode(kids[0]))
	case "optional_type":
		kids := namedChildren(n)
		if len(kids) != 1 {
			return types.NewOther(sp, c.text(n))
		}
		return types.NewWrap(ast.TypeOptional, sp, c.typeNode(kids[0]))
	case "lookup_type", "indexed_access_type":
		kids := namedChildren(n)
		if len(kids) != 2 {
			return types.NewOther(sp, c.text(n))
		}
		return types.NewIndexed(sp, c.typeNode(kids[0]), c.typeNode(kids[1]))
	default:
		return types.NewOther(sp, c.text(n))
	}
}

func (c *converter) qualifiedRef(n sitter.Node) ast.TypeRefData {
	first, _, _ := strings.Cut(c.text(n), ".")
	return ast.TypeRefData{Name: c.b.Intern(strings.TrimSpace(first)), Qualified: true}
}

func (c *converter) tupleElem(n sitter.Node) ast.TypeID {
	switch n.Type() {
	case "optional_type":
		return c.typeNode(n)
	// именованные элементы `[foo: 1, bar?: 'x']` грамматика разбирает как параметры
	case "named_tuple_member", "labeled_tuple_element", "optional_tuple_parameter", "required_tuple_parameter",
		"required_parameter", "optional_parameter":
		if t, ok := field(n, "type"); ok {
			return c.typeAnnotation(t)
		}
		return c.b.Types.NewOther(c.span(n), c.text(n))
	default:
		return c.typeNode(n)
	}
}

func (c *converter) literalType(n sitter.Node) ast.TypeID {
	sp := c.span(n)
	types := c.b.Types
	kids := namedChildren(n)
	if len(kids) != 1 {
		return types.NewOther(sp, c.text(n))
	}
	lit := kids[0]
	switch lit.Type() {
	case "string":
		return types.NewLiteral(sp, ast.TypeLiteralData{
			Kind:  ast.TypeLitString,
			Value: c.b.Intern(unquote(c.text(lit))),
		})
	case "number":
		raw := c.text(lit)
		kind := ast.TypeLitNumber
		if strings.HasSuffix(raw, "n") && !strings.HasPrefix(raw, "0x") {
			kind = ast.TypeLitBigInt
		}
		return types.NewLiteral(sp, ast.TypeLiteralData{Kind: kind, Num: parseNumber(raw)})
	case "unary_expression":
		raw := strings.ReplaceAll(c.text(lit), " ", "")
		return types.NewLiteral(sp, ast.TypeLiteralData{Kind: ast.TypeLitNumber, Num: parseNumber(raw)})
	case "true", "false":
		return types.NewLiteral(sp, ast.TypeLiteralData{Kind: ast.TypeLitBool})
	case "null", "undefined":
		return types.NewKeyword(sp, lit.Type())
	case "template_string":
		return types.NewLiteral(sp, ast.TypeLiteralData{Kind: ast.TypeLitTemplate})
	default:
		return types.NewOther(sp, c.text(n))
	}
}

// members converts the body of an interface or an object type.
func (c *converter) members(body sitter.Node) []ast.TypeMemberID {
	var out []ast.TypeMemberID
	for _, m := range namedChildren(body) {
		member := ast.TypeMember{Span: c.span(m), Optional: hasToken(m, "?")}
		switch m.Type() {
		case "property_signature":
			member.Kind = ast.MemberProperty
			name, ok := field(m, "name")
			if !ok {
				continue
			}
			member.Key = c.propKey(name)
			if t, ok := field(m, "type"); ok {
				member.Type = c.typeAnnotation(t)
			}
		case "method_signature":
			member.Kind = ast.MemberMethod
			switch {
			case hasToken(m, "get"):
				member.Kind = ast.MemberGetter
			case hasToken(m, "set"):
				member.Kind = ast.MemberSetter
			}
			name, ok := field(m, "name")
			if !ok {
				continue
			}
			member.Key = c.propKey(name)
			c.callShape(m, &member)
			if member.Kind == ast.MemberGetter {
				member.Type = member.Ret
			}
		case "call_signature":
			member.Kind = ast.MemberCall
			c.callShape(m, &member)
		case "construct_signature":
			member.Kind = ast.MemberConstruct
			c.callShape(m, &member)
		case "index_signature":
			member.Kind = ast.MemberIndex
			if t, ok := field(m, "type"); ok {
				member.Type = c.typeAnnotation(t)
			}
		default:
			continue
		}
		out = append(out, c.b.Types.NewMember(member))
	}
	return out
}

func (c *converter) callShape(n sitter.Node, member *ast.TypeMember) {
	if ps, ok := field(n, "parameters"); ok {
		member.Params = c.fnParams(ps)
	}
	if ret, ok := field(n, "return_type"); ok {
		member.Ret = c.typeAnnotation(ret)
	}
}

func (c *converter) fnParams(n sitter.Node) []ast.FnTypeParam {
	var out []ast.FnTypeParam
	for _, child := range namedChildren(n) {
		if child.Type() != "required_parameter" && child.Type() != "optional_parameter" {
			continue
		}
		p := ast.FnTypeParam{Optional: child.Type() == "optional_parameter"}
		if pat, ok := field(child, "pattern"); ok {
			if pat.Type() == "rest_pattern" {
				p.Rest = true
			} else {
				p.Name = c.intern(pat)
			}
		}
		if t, ok := field(child, "type"); ok {
			p.Type = c.typeAnnotation(t)
		}
		out = append(out, p)
	}
	return out
}

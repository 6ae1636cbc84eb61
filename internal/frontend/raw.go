package frontend

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"vuejsx/internal/ast"
)

var expressionTypes = map[string]struct{}{
	"identifier": {}, "undefined": {}, "this": {}, "super": {},
	"null": {}, "true": {}, "false": {}, "number": {}, "string": {},
	"template_string": {}, "regex": {},
	"array": {}, "object": {},
	"member_expression": {}, "subscript_expression": {},
	"call_expression": {}, "new_expression": {},
	"arrow_function": {}, "function_expression": {}, "function": {}, "generator_function": {},
	"class": {},
	"ternary_expression": {}, "assignment_expression": {}, "augmented_assignment_expression": {},
	"binary_expression": {}, "unary_expression": {}, "update_expression": {},
	"await_expression": {}, "yield_expression": {},
	"parenthesized_expression": {}, "sequence_expression": {}, "spread_element": {},
	"as_expression": {}, "satisfies_expression": {}, "non_null_expression": {}, "type_assertion": {},
	"jsx_element": {}, "jsx_self_closing_element": {}, "jsx_fragment": {},
}

var statementTypes = map[string]struct{}{
	"expression_statement": {}, "lexical_declaration": {}, "variable_declaration": {},
	"return_statement": {}, "statement_block": {},
	"function_declaration": {}, "generator_function_declaration": {},
	"class_declaration": {}, "abstract_class_declaration": {},
	"if_statement": {}, "for_statement": {}, "for_in_statement": {},
	"while_statement": {}, "do_statement": {}, "try_statement": {},
	"switch_statement": {}, "throw_statement": {}, "break_statement": {},
	"continue_statement": {}, "labeled_statement": {}, "empty_statement": {},
	"debugger_statement": {}, "with_statement": {},
	"import_statement": {}, "export_statement": {},
	"interface_declaration": {}, "type_alias_declaration": {},
	"enum_declaration": {}, "ambient_declaration": {},
	"module": {}, "internal_module": {},
}

func isTypeNode(t string) bool {
	switch t {
	case "type_annotation", "type_arguments", "type_parameters", "type_parameter",
		"predefined_type", "type_identifier", "nested_type_identifier",
		"type_predicate_annotation", "asserts_annotation",
		"opting_type_annotation", "omitting_type_annotation", "adding_type_annotation":
		return true
	}
	return strings.HasSuffix(t, "_type")
}

func (c *converter) rawExpr(n sitter.Node) ast.ExprID {
	text, holes := c.rawParts(n)
	return c.b.Exprs.NewRaw(c.span(n), text, holes)
}

func (c *converter) rawStmt(n sitter.Node) ast.StmtID {
	text, holes := c.rawParts(n)
	return c.b.Stmts.NewRaw(c.span(n), text, holes)
}

// rawParts keeps n verbatim and turns every modeled descendant into a hole,
// so JSX nested in syntax we do not model is still reachable.
func (c *converter) rawParts(n sitter.Node) (string, []ast.Hole) {
	var holes []ast.Hole
	c.collectHoles(n, n.StartByte(), &holes)
	return c.text(n), holes
}

func (c *converter) collectHoles(n sitter.Node, base uint, holes *[]ast.Hole) {
	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		t := child.Type()
		if t == "comment" || isTypeNode(t) {
			continue
		}
		hole := ast.Hole{
			Offset: offset(child.StartByte() - base),
			Len:    offset(child.EndByte() - child.StartByte()),
		}
		if _, ok := statementTypes[t]; ok {
			hole.Stmt = c.stmt(child)
			*holes = append(*holes, hole)
			continue
		}
		if _, ok := expressionTypes[t]; ok {
			hole.Expr = c.expr(child)
			*holes = append(*holes, hole)
			continue
		}
		c.collectHoles(child, base, holes)
	}
}

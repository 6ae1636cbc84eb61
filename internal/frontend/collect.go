package frontend

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"vuejsx/internal/ast"
	"vuejsx/internal/diag"
)

// collect walks the whole tree once before conversion: it gathers comments,
// every name the file declares and reports syntax errors.
func (c *converter) collect(n sitter.Node, inError bool) {
	switch {
	case n.Type() == "comment":
		c.addComment(n)
		return
	case n.Type() == "ERROR":
		if !inError {
			diag.ReportError(c.reporter, diag.ParseSyntaxError, c.span(n), "unexpected syntax").Emit()
		}
		inError = true
	case n.IsMissing():
		diag.ReportError(c.reporter, diag.ParseMissingNode, c.span(n), "missing `"+n.Type()+"`").Emit()
		return
	}

	c.collectBinding(n)

	for i := range n.ChildCount() {
		c.collect(n.Child(i), inError)
	}
}

func (c *converter) collectBinding(n sitter.Node) {
	switch n.Type() {
	case "import_clause":
		for _, child := range namedChildren(n) {
			if child.Type() == "identifier" {
				c.bind(child)
			}
		}
	case "namespace_import":
		for _, child := range namedChildren(n) {
			if child.Type() == "identifier" {
				c.bind(child)
			}
		}
	case "import_specifier":
		if alias, ok := field(n, "alias"); ok {
			c.bind(alias)
		} else if name, ok := field(n, "name"); ok && name.Type() == "identifier" {
			c.bind(name)
		}
	case "variable_declarator":
		if name, ok := field(n, "name"); ok {
			c.bindPattern(name)
		}
	case "function_declaration", "generator_function_declaration",
		"function_expression", "function", "generator_function",
		"class_declaration", "abstract_class_declaration", "class",
		"enum_declaration":
		if name, ok := field(n, "name"); ok {
			c.bind(name)
		}
	case "required_parameter", "optional_parameter":
		if pat, ok := field(n, "pattern"); ok {
			c.bindPattern(pat)
		}
	case "arrow_function":
		if p, ok := field(n, "parameter"); ok {
			c.bindPattern(p)
		}
	case "catch_clause":
		if p, ok := field(n, "parameter"); ok {
			c.bindPattern(p)
		}
	case "for_in_statement":
		if _, ok := field(n, "kind"); !ok {
			return
		}
		if left, ok := field(n, "left"); ok {
			c.bindPattern(left)
		}
	}
}

func (c *converter) bind(n sitter.Node) {
	c.bindings[c.intern(n)] = struct{}{}
}

func (c *converter) bindPattern(n sitter.Node) {
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		c.bind(n)
	case "object_pattern", "array_pattern", "rest_pattern":
		for _, child := range namedChildren(n) {
			c.bindPattern(child)
		}
	case "pair_pattern":
		if v, ok := field(n, "value"); ok {
			c.bindPattern(v)
		}
	case "assignment_pattern", "object_assignment_pattern":
		if left, ok := field(n, "left"); ok {
			c.bindPattern(left)
		}
	}
}

func (c *converter) addComment(n sitter.Node) {
	raw := c.text(n)
	comment := ast.Comment{Span: c.span(n)}
	switch {
	case strings.HasPrefix(raw, "//"):
		comment.Text = raw[2:]
	case strings.HasPrefix(raw, "/*"):
		comment.Text = strings.TrimSuffix(raw[2:], "*/")
		comment.Block = true
	default:
		comment.Text = raw
	}
	c.comments = append(c.comments, comment)
}

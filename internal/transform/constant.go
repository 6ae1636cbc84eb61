package transform

import "vuejsx/internal/ast"

// IsConstant reports whether expr can never change between renders:
// literals, `undefined`, and arrays/objects built only from constants.
func IsConstant(b *ast.Builder, id ast.ExprID) bool {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprString, ast.ExprNumber, ast.ExprBool, ast.ExprNull:
		return true
	case ast.ExprIdent:
		return b.IdentName(id) == "undefined"
	case ast.ExprArray:
		arr, _ := b.Exprs.Array(id)
		for _, el := range arr.Elems {
			if !el.IsValid() || !IsConstant(b, el) {
				return false
			}
		}
		return true
	case ast.ExprObject:
		obj, _ := b.Exprs.Object(id)
		for _, propID := range obj.Props {
			prop := b.Exprs.Prop(propID)
			if prop.Kind != ast.PropKeyValue || prop.Key.Kind == ast.KeyComputed {
				return false
			}
			if !IsConstant(b, prop.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// attrValueConstant applies IsConstant to an attribute value.
// A missing value counts as dynamic.
func attrValueConstant(b *ast.Builder, attr *ast.JSXAttr) bool {
	switch attr.ValueKind {
	case ast.JSXValueString:
		return true
	case ast.JSXValueExpr:
		return IsConstant(b, attr.Value)
	default:
		return false
	}
}

package transform

import (
	"strings"

	"vuejsx/internal/ast"
	"vuejsx/internal/source"
)

// DedupeProps drops repeated static keys of an object literal. Repeated
// `class`, `style` and `on*` values are combined into one array instead;
// computed keys and spreads always stay.
func DedupeProps(b *ast.Builder, props []ast.PropID) []ast.PropID {
	out := make([]ast.PropID, 0, len(props))
	seen := make(map[string]int, len(props))
	for _, propID := range props {
		prop := *b.Exprs.Prop(propID)
		name, static := propName(b, prop)
		if !static {
			out = append(out, propID)
			continue
		}
		at, dup := seen[name]
		if !dup {
			seen[name] = len(out)
			out = append(out, propID)
			continue
		}
		if !mergeable(name) {
			continue
		}
		existing := *b.Exprs.Prop(out[at])
		var elems []ast.ExprID
		if arr, ok := b.Exprs.Array(existing.Value); ok {
			elems = append(elems, arr.Elems...)
		} else {
			elems = append(elems, existing.Value)
		}
		elems = append(elems, prop.Value)
		merged := b.Exprs.NewArray(source.Span{}, elems)
		out[at] = b.Exprs.NewProp(ast.Prop{Kind: ast.PropKeyValue, Key: existing.Key, Value: merged})
	}
	return out
}

func propName(b *ast.Builder, prop ast.Prop) (string, bool) {
	if prop.Kind != ast.PropKeyValue {
		return "", false
	}
	return b.KeyName(prop.Key)
}

func mergeable(name string) bool {
	return name == "class" || name == "style" || strings.HasPrefix(name, "on")
}

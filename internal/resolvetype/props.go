package resolvetype

import (
	"strconv"

	"vuejsx/internal/ast"
	"vuejsx/internal/diag"
	"vuejsx/internal/source"
)

// propIR accumulates everything known about one prop before it is emitted.
type propIR struct {
	key      ast.PropKey
	id       string
	types    ctorSet
	required bool
}

type defaultEntry struct {
	key   ast.PropKey
	id    string
	value ast.ExprID
}

// Infer adds `props` and `emits` options to a defineComponent call when the
// setup function is annotated. It reports whether the call was changed.
func (r *Resolver) Infer(callID ast.ExprID) bool {
	call, ok := r.b.Exprs.Call(callID)
	if !ok || len(call.Args) == 0 {
		return false
	}
	args := append([]ast.ExprID(nil), call.Args...)
	setup := args[0]

	switch {
	case len(args) == 1:
		var props []ast.PropID
		if p, ok := r.propsOption(setup); ok {
			props = append(props, r.b.KeyValue("props", false, p))
		}
		if e, ok := r.emitsOption(setup); ok {
			props = append(props, r.b.KeyValue("emits", false, e))
		}
		if len(props) == 0 {
			return false
		}
		opts := r.b.Object(props...)
		call, _ = r.b.Exprs.Call(callID)
		call.Args = append(args, opts)
		return true

	default:
		objData, isObj := r.b.Exprs.Object(args[1])
		if !isObj {
			return false
		}
		existing := append([]ast.PropID(nil), objData.Props...)
		var added []ast.PropID
		if !r.hasOption(existing, "props") {
			if p, ok := r.propsOption(setup); ok {
				added = append(added, r.b.KeyValue("props", false, p))
			}
		}
		if !r.hasOption(existing, "emits") {
			if e, ok := r.emitsOption(setup); ok {
				added = append(added, r.b.KeyValue("emits", false, e))
			}
		}
		if len(added) == 0 {
			return false
		}
		objData, _ = r.b.Exprs.Object(args[1])
		objData.Props = append(existing, added...)
		return true
	}
}

func (r *Resolver) hasOption(props []ast.PropID, name string) bool {
	for _, id := range props {
		p := r.b.Exprs.Prop(id)
		if p.Kind == ast.PropKeyValue && p.Key.Kind == ast.KeyIdent && r.b.Name(p.Key.Name) == name {
			return true
		}
	}
	return false
}

// setupParams returns the parameters of an arrow or function setup.
func (r *Resolver) setupParams(setup ast.ExprID) []ast.ParamID {
	if arrow, ok := r.b.Exprs.Arrow(setup); ok {
		return append([]ast.ParamID(nil), arrow.Sig.Params...)
	}
	if fn, ok := r.b.Exprs.Function(setup); ok {
		return append([]ast.ParamID(nil), fn.Sig.Params...)
	}
	return nil
}

func (r *Resolver) propsOption(setup ast.ExprID) (ast.ExprID, bool) {
	params := r.setupParams(setup)
	if len(params) == 0 {
		return ast.NoExprID, false
	}
	first := *r.b.Exprs.Param(params[0])
	switch first.Kind {
	case ast.ParamIdent, ast.ParamObject, ast.ParamArray, ast.ParamAssign:
	default:
		return ast.NoExprID, false
	}
	if !first.Type.IsValid() {
		return ast.NoExprID, false
	}

	if first.Kind != ast.ParamAssign || !first.Default.IsValid() {
		return r.propsObject(first.Type, nil), true
	}
	if defaults, ok := r.staticDefaults(first.Default); ok {
		return r.propsObject(first.Type, defaults), true
	}
	obj := r.propsObject(first.Type, nil)
	return r.b.Call(r.runtime("mergeDefaults"), obj, first.Default), true
}

// propsObject builds `{ name: { type, required, default? } }`.
func (r *Resolver) propsObject(typ ast.TypeID, defaults []defaultEntry) ast.ExprID {
	var irs []*propIR
	find := func(id string) *propIR {
		for _, ir := range irs {
			if ir.id == id {
				return ir
			}
		}
		return nil
	}

	for _, el := range r.elements(typ, nil) {
		if el.kind == ast.MemberCall {
			continue
		}
		key, id := r.propName(el)
		var types ctorSet
		switch {
		case el.kind == ast.MemberMethod:
			types.add("Function")
		case el.typ.IsValid():
			types = r.runtimeType(el.typ)
		default:
			types.add("")
		}

		if ir := find(id); ir != nil {
			if el.optional && el.kind != ast.MemberGetter {
				ir.required = false
			}
			ir.types.merge(types)
			continue
		}
		irs = append(irs, &propIR{
			key:      key,
			id:       id,
			types:    types,
			required: el.kind == ast.MemberGetter || !el.optional,
		})
	}

	props := make([]ast.PropID, 0, len(irs))
	for _, ir := range irs {
		fields := []ast.PropID{
			r.b.KeyValue("type", false, r.typeValue(ir.types.items)),
			r.b.KeyValue("required", false, r.b.Exprs.NewBool(source.Span{}, ir.required)),
		}
		for _, d := range defaults {
			if defaultMatches(d, ir) {
				fields = append(fields, r.b.KeyValue("default", false, d.value))
				break
			}
		}
		props = append(props, r.b.Exprs.NewProp(ast.Prop{
			Kind:  ast.PropKeyValue,
			Key:   ir.key,
			Value: r.b.Object(fields...),
		}))
	}
	return r.b.Object(props...)
}

func (r *Resolver) typeValue(ctors []string) ast.ExprID {
	one := func(name string) ast.ExprID {
		if name == "" {
			return r.b.Exprs.NewNull(source.Span{})
		}
		return r.b.Ident(name)
	}
	if len(ctors) == 1 {
		return one(ctors[0])
	}
	elems := make([]ast.ExprID, 0, len(ctors))
	for _, c := range ctors {
		elems = append(elems, one(c))
	}
	return r.b.Array(elems...)
}

// propName turns a member key into the emitted prop key plus an identity
// used to merge repeated members.
func (r *Resolver) propName(el element) (ast.PropKey, string) {
	key := el.key
	if key.Kind == ast.KeyComputed {
		if !key.Expr.IsValid() {
			r.report(diag.TypeUnsupportedPropKey, el.span, msgPropKey)
			return ast.PropKey{Kind: ast.KeyIdent, Name: r.b.Intern("")}, "i:"
		}
		if lit, ok := r.literalKey(key.Expr); ok {
			key = lit
		}
	}
	return key, r.keyID(key)
}

// literalKey unwraps `[ident]`, `["str"]` and `[1]` keys.
func (r *Resolver) literalKey(expr ast.ExprID) (ast.PropKey, bool) {
	if ident, ok := r.b.Exprs.Ident(expr); ok {
		return ast.PropKey{Kind: ast.KeyIdent, Name: ident.Name}, true
	}
	if s, ok := r.b.Exprs.StringLit(expr); ok {
		return ast.PropKey{Kind: ast.KeyString, Name: s.Value, Raw: s.Raw}, true
	}
	if n, ok := r.b.Exprs.Number(expr); ok {
		return ast.PropKey{Kind: ast.KeyNumber, Name: r.b.Intern(n.Raw), Raw: n.Raw}, true
	}
	return ast.PropKey{}, false
}

func (r *Resolver) keyID(key ast.PropKey) string {
	switch key.Kind {
	case ast.KeyIdent:
		return "i:" + r.b.Name(key.Name)
	case ast.KeyString:
		return "s:" + r.b.Name(key.Name)
	case ast.KeyNumber:
		return "n:" + key.Raw
	default:
		sp := r.b.Exprs.Get(key.Expr).Span
		if !sp.IsSynthetic() && int(sp.End) <= len(r.file.Source) {
			return "c:" + string(r.file.Source[sp.Start:sp.End])
		}
		return "c#" + strconv.Itoa(int(key.Expr))
	}
}

// defaultMatches compares keys, treating identifier and string keys of the
// same text as equal.
func defaultMatches(d defaultEntry, ir *propIR) bool {
	if d.id == ir.id {
		return true
	}
	a, b := d.id, ir.id
	if len(a) < 2 || len(b) < 2 {
		return false
	}
	crossed := (a[0] == 'i' && b[0] == 's') || (a[0] == 's' && b[0] == 'i')
	return crossed && a[2:] == b[2:]
}

// staticDefaults reads a defaults object literal entry by entry. Any entry
// whose key is not a literal, or a spread, makes the whole object dynamic.
func (r *Resolver) staticDefaults(expr ast.ExprID) ([]defaultEntry, bool) {
	obj, ok := r.b.Exprs.Object(expr)
	if !ok {
		return nil, false
	}
	props := append([]ast.PropID(nil), obj.Props...)
	out := make([]defaultEntry, 0, len(props))
	for _, id := range props {
		p := *r.b.Exprs.Prop(id)
		switch p.Kind {
		case ast.PropShorthand:
			key := ast.PropKey{Kind: ast.KeyIdent, Name: p.Key.Name}
			if p.Key.Name == source.NoStringID {
				if ident, ok := r.b.Exprs.Ident(p.Value); ok {
					key.Name = ident.Name
				}
			}
			out = append(out, defaultEntry{key: key, id: r.keyID(key), value: r.b.Arrow(p.Value)})

		case ast.PropKeyValue:
			key, ok := r.defaultKey(p.Key)
			if !ok {
				return nil, false
			}
			value := p.Value
			if !r.isLiteral(value) {
				value = r.b.Arrow(value)
			}
			out = append(out, defaultEntry{key: key, id: r.keyID(key), value: value})

		case ast.PropGetter:
			key, ok := r.defaultKey(p.Key)
			fn, isFn := r.b.Exprs.Function(p.Value)
			if !ok || !isFn || !fn.Block.IsValid() {
				return nil, false
			}
			block := fn.Block
			arrow := r.b.Exprs.NewArrow(source.Span{}, ast.ExprArrowData{Block: block})
			out = append(out, defaultEntry{key: key, id: r.keyID(key), value: arrow})

		case ast.PropMethod:
			key, ok := r.defaultKey(p.Key)
			fn, isFn := r.b.Exprs.Function(p.Value)
			if !ok || !isFn {
				return nil, false
			}
			data := *fn
			data.Name = source.NoStringID
			out = append(out, defaultEntry{key: key, id: r.keyID(key), value: r.b.Exprs.NewFunction(source.Span{}, data)})

		default:
			return nil, false
		}
	}
	return out, true
}

func (r *Resolver) defaultKey(key ast.PropKey) (ast.PropKey, bool) {
	if key.Kind != ast.KeyComputed {
		return key, true
	}
	if !key.Expr.IsValid() {
		return ast.PropKey{}, false
	}
	return r.literalKey(key.Expr)
}

func (r *Resolver) isLiteral(id ast.ExprID) bool {
	switch r.b.Exprs.Get(id).Kind {
	case ast.ExprString, ast.ExprNumber, ast.ExprBool, ast.ExprNull:
		return true
	default:
		return false
	}
}

// emitsOption reads `SetupContext<E>` from the second setup parameter.
func (r *Resolver) emitsOption(setup ast.ExprID) (ast.ExprID, bool) {
	params := r.setupParams(setup)
	if len(params) < 2 {
		return ast.NoExprID, false
	}
	second := *r.b.Exprs.Param(params[1])
	switch second.Kind {
	case ast.ParamIdent, ast.ParamObject, ast.ParamArray:
	default:
		return ast.NoExprID, false
	}
	if !second.Type.IsValid() {
		return ast.NoExprID, false
	}
	ref, ok := r.b.Types.Ref(second.Type)
	if !ok || ref.Qualified || r.b.Name(ref.Name) != "SetupContext" || len(ref.Args) == 0 {
		return ast.NoExprID, false
	}
	emitsType := ref.Args[0]

	var names []string
	for _, el := range r.elements(emitsType, nil) {
		switch el.kind {
		case ast.MemberProperty, ast.MemberMethod:
			if r.isStaticKey(el.key) {
				names = append(names, r.b.Name(el.key.Name))
			}
		case ast.MemberCall:
			if len(el.params) > 0 && el.params[0].Type.IsValid() {
				names = append(names, r.stringUnion(el.params[0].Type)...)
			}
		}
	}
	if len(names) == 0 {
		return ast.NoExprID, false
	}
	elems := make([]ast.ExprID, 0, len(names))
	for _, n := range names {
		elems = append(elems, r.b.Str(n))
	}
	return r.b.Array(elems...), true
}

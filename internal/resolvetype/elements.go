package resolvetype

import (
	"vuejsx/internal/ast"
	"vuejsx/internal/diag"
	"vuejsx/internal/source"
)

// element is one member contributing to a props or emits declaration.
type element struct {
	kind     ast.MemberKind // Property, Method, Getter or Call
	span     source.Span
	key      ast.PropKey
	optional bool
	typ      ast.TypeID
	params   []ast.FnTypeParam
}

// Resolver evaluates annotations against the declarations recorded so far.
type Resolver struct {
	b        *ast.Builder
	file     *ast.File
	scopes   *Scopes
	reporter diag.Reporter
	runtime  func(name string) ast.ExprID
}

// New returns a resolver over file. runtime registers a `vue` export and
// returns a reference to its local name.
func New(b *ast.Builder, file *ast.File, scopes *Scopes, reporter diag.Reporter, runtime func(name string) ast.ExprID) *Resolver {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Resolver{b: b, file: file, scopes: scopes, reporter: reporter, runtime: runtime}
}

func (r *Resolver) report(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(r.reporter, code, sp, msg).Emit()
}

const (
	msgUnresolvableRef = "Unresolvable type reference or unsupported built-in utility type."
	msgOtherModule     = "Types from other modules can't be resolved."
	msgUnresolvable    = "Unresolvable type."
	msgIndexKey        = "Unsupported type as index key."
	msgPropKey         = "Unsupported prop key."
)

// elements flattens a type into the members it declares.
func (r *Resolver) elements(id ast.TypeID, out []element) []element {
	t := *r.b.Types.Get(id)
	switch t.Kind {
	case ast.TypeLit:
		lit, _ := r.b.Types.TypeLit(id)
		return r.appendMembers(out, append([]ast.TypeMemberID(nil), lit.Members...))

	case ast.TypeUnion, ast.TypeIntersection:
		list, _ := r.b.Types.List(id)
		for _, inner := range append([]ast.TypeID(nil), list.Types...) {
			out = r.elements(inner, out)
		}
		return out

	case ast.TypeRef:
		refData, _ := r.b.Types.Ref(id)
		ref := *refData
		if ref.Qualified {
			break
		}
		alias, iface, ok := r.scopes.lookup(ref.Name)
		switch {
		case ok && iface == nil:
			return r.elements(alias, out)
		case ok:
			members := append([]ast.TypeMemberID(nil), iface.Members...)
			extends := append([]ast.TypeID(nil), iface.Extends...)
			out = r.appendMembers(out, members)
			for _, parent := range extends {
				if pr, isRef := r.b.Types.Ref(parent); isRef && !pr.Qualified {
					out = r.elements(parent, out)
				}
			}
			return out
		case !r.file.Declares(ref.Name):
			return r.utility(t.Span, r.b.Name(ref.Name), ref.Args, out)
		default:
			r.report(diag.TypeFromOtherModule, t.Span, msgOtherModule)
			return out
		}

	case ast.TypeIndexed:
		idx, _ := r.b.Types.IndexedAccess(id)
		obj, index := idx.Object, idx.Index
		if resolved, ok := r.indexedAccess(obj, index); ok {
			return r.elements(resolved, out)
		}
		r.report(diag.TypeUnresolvable, t.Span, msgUnresolvable)
		return out

	case ast.TypeFn:
		fn, _ := r.b.Types.Fn(id)
		return append(out, element{
			kind:   ast.MemberCall,
			span:   t.Span,
			params: append([]ast.FnTypeParam(nil), fn.Params...),
		})

	case ast.TypeParen, ast.TypeOptional:
		w, _ := r.b.Types.Wrap(id)
		return r.elements(w.Inner, out)
	}
	r.report(diag.TypeUnresolvable, t.Span, msgUnresolvable)
	return out
}

func (r *Resolver) appendMembers(out []element, members []ast.TypeMemberID) []element {
	for _, id := range members {
		m := *r.b.Types.Member(id)
		switch m.Kind {
		case ast.MemberProperty, ast.MemberMethod, ast.MemberGetter, ast.MemberCall:
			out = append(out, element{
				kind:     m.Kind,
				span:     m.Span,
				key:      m.Key,
				optional: m.Optional,
				typ:      m.Type,
				params:   m.Params,
			})
		}
	}
	return out
}

// utility evaluates the built-in mapped types the resolver understands.
func (r *Resolver) utility(sp source.Span, name string, args []ast.TypeID, out []element) []element {
	args = append([]ast.TypeID(nil), args...)
	switch name {
	case "Partial", "Required":
		if len(args) == 0 {
			return out
		}
		for _, el := range r.elements(args[0], nil) {
			if el.kind == ast.MemberProperty || el.kind == ast.MemberMethod {
				el.optional = name == "Partial"
			}
			out = append(out, el)
		}
		return out
	case "Pick", "Omit":
		if len(args) < 2 {
			return out
		}
		keys := toSet(r.stringUnion(args[1]))
		for _, el := range r.elements(args[0], nil) {
			_, listed := keys[r.staticKey(el)]
			switch {
			case el.kind == ast.MemberCall:
				if name == "Omit" {
					out = append(out, el)
				}
			case !r.isStaticKey(el.key):
				if name == "Omit" {
					out = append(out, el)
				}
			case listed == (name == "Pick"):
				out = append(out, el)
			}
		}
		return out
	}
	r.report(diag.TypeUnresolvableRef, sp, msgUnresolvableRef)
	return out
}

func (r *Resolver) isStaticKey(key ast.PropKey) bool {
	return key.Kind == ast.KeyIdent || key.Kind == ast.KeyString
}

func (r *Resolver) staticKey(el element) string {
	if !r.isStaticKey(el.key) {
		return ""
	}
	return r.b.Name(el.key.Name)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// stringUnion reads a string literal or a union of them, following aliases.
func (r *Resolver) stringUnion(id ast.TypeID) []string {
	t := *r.b.Types.Get(id)
	switch t.Kind {
	case ast.TypeLiteral:
		lit, _ := r.b.Types.Literal(id)
		if lit.Kind == ast.TypeLitString {
			return []string{r.b.Name(lit.Value)}
		}
	case ast.TypeUnion:
		list, _ := r.b.Types.List(id)
		var out []string
		for _, inner := range append([]ast.TypeID(nil), list.Types...) {
			if lit, ok := r.b.Types.Literal(inner); ok && lit.Kind == ast.TypeLitString {
				out = append(out, r.b.Name(lit.Value))
				continue
			}
			out = append(out, r.stringUnion(inner)...)
		}
		return out
	case ast.TypeRef:
		refData, _ := r.b.Types.Ref(id)
		ref := *refData
		if ref.Qualified {
			break
		}
		if alias, iface, ok := r.scopes.lookup(ref.Name); ok && iface == nil {
			return r.stringUnion(alias)
		}
		if !r.file.Declares(ref.Name) {
			r.report(diag.TypeUnresolvableRef, t.Span, msgUnresolvableRef)
		} else {
			r.report(diag.TypeFromOtherModule, t.Span, msgOtherModule)
		}
		return nil
	}
	r.report(diag.TypeUnsupportedIndexKey, t.Span, msgIndexKey)
	return nil
}

// indexedAccess evaluates obj[index]; false means the shape is not supported.
func (r *Resolver) indexedAccess(obj, index ast.TypeID) (ast.TypeID, bool) {
	t := *r.b.Types.Get(obj)
	switch t.Kind {
	case ast.TypeRef:
		refData, _ := r.b.Types.Ref(obj)
		ref := *refData
		if ref.Qualified {
			return ast.NoTypeID, false
		}
		alias, iface, ok := r.scopes.lookup(ref.Name)
		switch {
		case ok && iface == nil:
			return r.indexedAccess(alias, index)
		case ok:
			return r.memberTypes(append([]ast.TypeMemberID(nil), iface.Members...), index), true
		case !r.file.Declares(ref.Name) && r.b.Name(ref.Name) == "Array" && len(ref.Args) > 0:
			return ref.Args[0], true
		}
		return ast.NoTypeID, false

	case ast.TypeLit:
		lit, _ := r.b.Types.TypeLit(obj)
		return r.memberTypes(append([]ast.TypeMemberID(nil), lit.Members...), index), true

	case ast.TypeArray:
		arr, _ := r.b.Types.Array(obj)
		elem := arr.Elem
		if r.isNumberIndex(index) {
			return elem, true
		}

	case ast.TypeTuple:
		list, _ := r.b.Types.List(obj)
		elems := append([]ast.TypeID(nil), list.Types...)
		if lit, ok := r.b.Types.Literal(index); ok && lit.Kind == ast.TypeLitNumber {
			i := int(lit.Num)
			if i >= 0 && i < len(elems) && float64(i) == lit.Num {
				return elems[i], true
			}
			return ast.NoTypeID, false
		}
		if kw, ok := r.b.Types.Keyword(index); ok && kw.Name == "number" {
			return r.b.Types.NewList(ast.TypeUnion, source.Span{}, elems), true
		}
	}
	return ast.NoTypeID, false
}

func (r *Resolver) isNumberIndex(index ast.TypeID) bool {
	if kw, ok := r.b.Types.Keyword(index); ok {
		return kw.Name == "number"
	}
	if lit, ok := r.b.Types.Literal(index); ok {
		return lit.Kind == ast.TypeLitNumber
	}
	return false
}

// memberTypes selects member value types by key. Several matches become a union.
func (r *Resolver) memberTypes(members []ast.TypeMemberID, index ast.TypeID) ast.TypeID {
	var types []ast.TypeID
	it := *r.b.Types.Get(index)

	switch {
	case it.Kind == ast.TypeKeyword && r.keyword(index) == "string":
		for _, id := range members {
			m := *r.b.Types.Member(id)
			switch m.Kind {
			case ast.MemberProperty, ast.MemberGetter:
				if r.isStaticKey(m.Key) && m.Type.IsValid() {
					types = append(types, m.Type)
				}
			case ast.MemberIndex:
				if m.Type.IsValid() {
					types = append(types, m.Type)
				}
			case ast.MemberMethod:
				types = append(types, r.functionRef())
			}
		}

	case it.Kind == ast.TypeLiteral && r.isStringLiteral(index), it.Kind == ast.TypeUnion, it.Kind == ast.TypeRef:
		keys := toSet(r.stringUnion(index))
		for _, id := range members {
			m := *r.b.Types.Member(id)
			if !r.isStaticKey(m.Key) {
				continue
			}
			if _, ok := keys[r.b.Name(m.Key.Name)]; !ok {
				continue
			}
			switch m.Kind {
			case ast.MemberProperty, ast.MemberGetter:
				if m.Type.IsValid() {
					types = append(types, m.Type)
				}
			case ast.MemberMethod:
				types = append(types, r.functionRef())
			}
		}
	}

	if len(types) == 1 {
		return types[0]
	}
	return r.b.Types.NewList(ast.TypeUnion, source.Span{}, types)
}

func (r *Resolver) keyword(id ast.TypeID) string {
	if kw, ok := r.b.Types.Keyword(id); ok {
		return kw.Name
	}
	return ""
}

func (r *Resolver) isStringLiteral(id ast.TypeID) bool {
	lit, ok := r.b.Types.Literal(id)
	return ok && lit.Kind == ast.TypeLitString
}

func (r *Resolver) functionRef() ast.TypeID {
	return r.b.Types.NewRef(source.Span{}, ast.TypeRefData{Name: r.b.Intern("Function")})
}

package resolvetype

import (
	"vuejsx/internal/ast"
)

// ctorSet is an ordered set of runtime constructor names; "" stands for null.
type ctorSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *ctorSet) add(name string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.items = append(s.items, name)
}

func (s *ctorSet) merge(other ctorSet) {
	for _, it := range other.items {
		s.add(it)
	}
}

var keywordCtors = map[string]string{
	"string":  "String",
	"number":  "Number",
	"boolean": "Boolean",
	"object":  "Object",
	"bigint":  "BigInt",
	"symbol":  "Symbol",
}

// runtimeType maps a TypeScript type onto the constructors Vue checks props against.
func (r *Resolver) runtimeType(id ast.TypeID) ctorSet {
	var out ctorSet
	t := *r.b.Types.Get(id)
	switch t.Kind {
	case ast.TypeKeyword:
		kw, _ := r.b.Types.Keyword(id)
		out.add(keywordCtors[kw.Name])

	case ast.TypeLit:
		lit, _ := r.b.Types.TypeLit(id)
		r.memberCtors(&out, lit.Members)

	case ast.TypeFn, ast.TypeCtor:
		out.add("Function")

	case ast.TypeArray, ast.TypeTuple:
		out.add("Array")

	case ast.TypeLiteral:
		lit, _ := r.b.Types.Literal(id)
		switch lit.Kind {
		case ast.TypeLitString, ast.TypeLitTemplate:
			out.add("String")
		case ast.TypeLitBool:
			out.add("Boolean")
		default:
			out.add("Number")
		}

	case ast.TypeRef:
		refData, _ := r.b.Types.Ref(id)
		ref := *refData
		if ref.Qualified {
			out.add("Object")
			break
		}
		alias, iface, ok := r.scopes.lookup(ref.Name)
		switch {
		case ok && iface == nil:
			out.merge(r.runtimeType(alias))
		case ok:
			r.memberCtors(&out, iface.Members)
		default:
			r.globalCtors(&out, r.b.Name(ref.Name), append([]ast.TypeID(nil), ref.Args...))
		}

	case ast.TypeParen, ast.TypeOptional:
		w, _ := r.b.Types.Wrap(id)
		out.merge(r.runtimeType(w.Inner))

	case ast.TypeUnion, ast.TypeIntersection:
		list, _ := r.b.Types.List(id)
		for _, inner := range append([]ast.TypeID(nil), list.Types...) {
			out.merge(r.runtimeType(inner))
		}

	case ast.TypeIndexed:
		idx, _ := r.b.Types.IndexedAccess(id)
		obj, index := idx.Object, idx.Index
		if resolved, ok := r.indexedAccess(obj, index); ok {
			out.merge(r.runtimeType(resolved))
		}

	default:
		out.add("Object")
	}
	return out
}

func (r *Resolver) memberCtors(out *ctorSet, members []ast.TypeMemberID) {
	for _, id := range members {
		switch r.b.Types.Member(id).Kind {
		case ast.MemberCall, ast.MemberConstruct:
			out.add("Function")
		default:
			out.add("Object")
		}
	}
}

func (r *Resolver) globalCtors(out *ctorSet, name string, args []ast.TypeID) {
	arg := func(i int) (ast.TypeID, bool) {
		if i < len(args) {
			return args[i], true
		}
		return ast.NoTypeID, false
	}
	switch name {
	case "Array", "Function", "Object", "Set", "Map", "WeakSet", "WeakMap",
		"Date", "Promise", "Error", "RegExp":
		out.add(name)
	case "Partial", "Required", "Readonly", "Record", "Pick", "Omit", "InstanceType":
		out.add("Object")
	case "Uppercase", "Lowercase", "Capitalize", "Uncapitalize":
		out.add("String")
	case "Parameters", "ConstructorParameters":
		out.add("Array")
	case "NonNullable":
		if t, ok := arg(0); ok {
			for _, ctor := range r.runtimeType(t).items {
				if ctor != "" {
					out.add(ctor)
				}
			}
		} else {
			out.add("Object")
		}
	case "Exclude", "OmitThisParameter":
		if t, ok := arg(0); ok {
			out.merge(r.runtimeType(t))
		} else {
			out.add("Object")
		}
	case "Extract":
		if t, ok := arg(1); ok {
			out.merge(r.runtimeType(t))
		} else {
			out.add("Object")
		}
	default:
		out.add("Object")
	}
}

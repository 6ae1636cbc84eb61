package ast

import (
	"vuejsx/internal/source"
)

// TypeKind enumerates the TypeScript type forms the prop inference reads.
// Everything else is TypeOther and only printed.
type TypeKind uint8

const (
	TypeOther TypeKind = iota
	TypeKeyword
	TypeLiteral
	TypeRef
	TypeLit
	TypeUnion
	TypeIntersection
	TypeArray
	TypeTuple
	TypeFn
	TypeCtor
	TypeParen
	TypeOptional
	TypeIndexed
)

type Type struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

type TypeKeywordData struct {
	Name string // string, number, boolean, null, undefined, any, ...
}

type TypeLitKind uint8

const (
	TypeLitString TypeLitKind = iota
	TypeLitNumber
	TypeLitBool
	TypeLitBigInt
	TypeLitTemplate
)

type TypeLiteralData struct {
	Kind  TypeLitKind
	Value source.StringID // decoded string value
	Num   float64
}

type TypeRefData struct {
	Name source.StringID
	// Qualified marks `A.B` names; only the first segment is in Name.
	Qualified bool
	Args      []TypeID
}

type TypeLitData struct {
	Members []TypeMemberID
}

// TypeListData backs unions, intersections and tuples.
type TypeListData struct {
	Types []TypeID
}

type TypeArrayData struct {
	Elem TypeID
}

type FnTypeParam struct {
	Name     source.StringID
	Type     TypeID
	Optional bool
	Rest     bool
}

type TypeFnData struct {
	Params []FnTypeParam
	Ret    TypeID
}

// TypeWrapData backs parenthesized and optional types.
type TypeWrapData struct {
	Inner TypeID
}

type TypeIndexedData struct {
	Object TypeID
	Index  TypeID
}

type TypeOtherData struct {
	Text string
}

type MemberKind uint8

const (
	MemberProperty MemberKind = iota
	MemberMethod
	MemberGetter
	MemberSetter
	MemberCall
	MemberConstruct
	MemberIndex
)

// TypeMember is an interface or type literal member.
type TypeMember struct {
	Kind     MemberKind
	Span     source.Span
	Key      PropKey
	Optional bool
	// Type is the property/getter annotation or the value type of an index signature.
	Type   TypeID
	Params []FnTypeParam
	Ret    TypeID
}

// Types manages allocation of TypeScript types.
type Types struct {
	Arena    *Arena[Type]
	Keywords *Arena[TypeKeywordData]
	Literals *Arena[TypeLiteralData]
	Refs     *Arena[TypeRefData]
	Lits     *Arena[TypeLitData]
	Lists    *Arena[TypeListData]
	Arrays   *Arena[TypeArrayData]
	Fns      *Arena[TypeFnData]
	Wraps    *Arena[TypeWrapData]
	Indexed  *Arena[TypeIndexedData]
	Others   *Arena[TypeOtherData]
	Members  *Arena[TypeMember]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Types{
		Arena:    NewArena[Type](capHint),
		Keywords: NewArena[TypeKeywordData](capHint),
		Literals: NewArena[TypeLiteralData](capHint),
		Refs:     NewArena[TypeRefData](capHint),
		Lits:     NewArena[TypeLitData](capHint),
		Lists:    NewArena[TypeListData](capHint),
		Arrays:   NewArena[TypeArrayData](capHint),
		Fns:      NewArena[TypeFnData](capHint),
		Wraps:    NewArena[TypeWrapData](capHint),
		Indexed:  NewArena[TypeIndexedData](capHint),
		Others:   NewArena[TypeOtherData](capHint),
		Members:  NewArena[TypeMember](capHint),
	}
}

func (t *Types) new(kind TypeKind, span source.Span, payload uint32) TypeID {
	return TypeID(t.Arena.Allocate(Type{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}

func (t *Types) payload(id TypeID, kinds ...TypeKind) (uint32, bool) {
	typ := t.Get(id)
	if typ == nil {
		return 0, false
	}
	for _, k := range kinds {
		if typ.Kind == k {
			return uint32(typ.Payload), true
		}
	}
	return 0, false
}

func (t *Types) NewKeyword(span source.Span, name string) TypeID {
	return t.new(TypeKeyword, span, t.Keywords.Allocate(TypeKeywordData{Name: name}))
}

func (t *Types) Keyword(id TypeID) (*TypeKeywordData, bool) {
	p, ok := t.payload(id, TypeKeyword)
	if !ok {
		return nil, false
	}
	return t.Keywords.Get(p), true
}

func (t *Types) NewLiteral(span source.Span, data TypeLiteralData) TypeID {
	return t.new(TypeLiteral, span, t.Literals.Allocate(data))
}

func (t *Types) Literal(id TypeID) (*TypeLiteralData, bool) {
	p, ok := t.payload(id, TypeLiteral)
	if !ok {
		return nil, false
	}
	return t.Literals.Get(p), true
}

func (t *Types) NewRef(span source.Span, data TypeRefData) TypeID {
	return t.new(TypeRef, span, t.Refs.Allocate(data))
}

func (t *Types) Ref(id TypeID) (*TypeRefData, bool) {
	p, ok := t.payload(id, TypeRef)
	if !ok {
		return nil, false
	}
	return t.Refs.Get(p), true
}

func (t *Types) NewTypeLit(span source.Span, members []TypeMemberID) TypeID {
	return t.new(TypeLit, span, t.Lits.Allocate(TypeLitData{Members: members}))
}

func (t *Types) TypeLit(id TypeID) (*TypeLitData, bool) {
	p, ok := t.payload(id, TypeLit)
	if !ok {
		return nil, false
	}
	return t.Lits.Get(p), true
}

// NewList creates a union, intersection or tuple.
func (t *Types) NewList(kind TypeKind, span source.Span, types []TypeID) TypeID {
	return t.new(kind, span, t.Lists.Allocate(TypeListData{Types: types}))
}

func (t *Types) List(id TypeID) (*TypeListData, bool) {
	p, ok := t.payload(id, TypeUnion, TypeIntersection, TypeTuple)
	if !ok {
		return nil, false
	}
	return t.Lists.Get(p), true
}

func (t *Types) NewArray(span source.Span, elem TypeID) TypeID {
	return t.new(TypeArray, span, t.Arrays.Allocate(TypeArrayData{Elem: elem}))
}

func (t *Types) Array(id TypeID) (*TypeArrayData, bool) {
	p, ok := t.payload(id, TypeArray)
	if !ok {
		return nil, false
	}
	return t.Arrays.Get(p), true
}

// NewFn creates a function or constructor type.
func (t *Types) NewFn(kind TypeKind, span source.Span, data TypeFnData) TypeID {
	return t.new(kind, span, t.Fns.Allocate(data))
}

func (t *Types) Fn(id TypeID) (*TypeFnData, bool) {
	p, ok := t.payload(id, TypeFn, TypeCtor)
	if !ok {
		return nil, false
	}
	return t.Fns.Get(p), true
}

// NewWrap creates a parenthesized or optional type.
func (t *Types) NewWrap(kind TypeKind, span source.Span, inner TypeID) TypeID {
	return t.new(kind, span, t.Wraps.Allocate(TypeWrapData{Inner: inner}))
}

func (t *Types) Wrap(id TypeID) (*TypeWrapData, bool) {
	p, ok := t.payload(id, TypeParen, TypeOptional)
	if !ok {
		return nil, false
	}
	return t.Wraps.Get(p), true
}

func (t *Types) NewIndexed(span source.Span, object, index TypeID) TypeID {
	return t.new(TypeIndexed, span, t.Indexed.Allocate(TypeIndexedData{Object: object, Index: index}))
}

func (t *Types) IndexedAccess(id TypeID) (*TypeIndexedData, bool) {
	p, ok := t.payload(id, TypeIndexed)
	if !ok {
		return nil, false
	}
	return t.Indexed.Get(p), true
}

func (t *Types) NewOther(span source.Span, text string) TypeID {
	return t.new(TypeOther, span, t.Others.Allocate(TypeOtherData{Text: text}))
}

func (t *Types) Other(id TypeID) (*TypeOtherData, bool) {
	p, ok := t.payload(id, TypeOther)
	if !ok {
		return nil, false
	}
	return t.Others.Get(p), true
}

func (t *Types) NewMember(m TypeMember) TypeMemberID {
	return TypeMemberID(t.Members.Allocate(m))
}

func (t *Types) Member(id TypeMemberID) *TypeMember {
	return t.Members.Get(uint32(id))
}

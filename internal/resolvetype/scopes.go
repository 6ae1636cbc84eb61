// Package resolvetype derives runtime prop and emit declarations for
// defineComponent calls from the TypeScript annotations of their setup
// function.
package resolvetype

import (
	"vuejsx/internal/ast"
	"vuejsx/internal/source"
)

// Interface is the merged body of every same-named interface declared in one scope.
type Interface struct {
	Members []ast.TypeMemberID
	Extends []ast.TypeID
}

type frame struct {
	interfaces map[source.StringID]*Interface
	aliases    map[source.StringID]ast.TypeID
}

// Scopes records type declarations per lexical scope, in document order.
type Scopes struct {
	frames []frame
}

// NewScopes returns a table with the module scope open.
func NewScopes() *Scopes {
	s := &Scopes{}
	s.Push()
	return s
}

func (s *Scopes) Push() {
	s.frames = append(s.frames, frame{})
}

// Pop closes the innermost scope. The module scope is never popped.
func (s *Scopes) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *Scopes) top() *frame {
	return &s.frames[len(s.frames)-1]
}

// DeclareInterface records an interface; a repeated name in the same scope
// merges into the earlier declaration.
func (s *Scopes) DeclareInterface(name source.StringID, extends []ast.TypeID, members []ast.TypeMemberID) {
	f := s.top()
	if f.interfaces == nil {
		f.interfaces = make(map[source.StringID]*Interface)
	}
	if prev, ok := f.interfaces[name]; ok {
		prev.Members = append(prev.Members, members...)
		prev.Extends = append(prev.Extends, extends...)
		return
	}
	f.interfaces[name] = &Interface{
		Members: append([]ast.TypeMemberID(nil), members...),
		Extends: append([]ast.TypeID(nil), extends...),
	}
}

// DeclareAlias records `type name = typ`.
func (s *Scopes) DeclareAlias(name source.StringID, typ ast.TypeID) {
	f := s.top()
	if f.aliases == nil {
		f.aliases = make(map[source.StringID]ast.TypeID)
	}
	f.aliases[name] = typ
}

// lookup walks scopes innermost-out. Within one scope an alias wins over
// an interface of the same name.
func (s *Scopes) lookup(name source.StringID) (ast.TypeID, *Interface, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := &s.frames[i]
		if typ, ok := f.aliases[name]; ok {
			return typ, nil, true
		}
		if iface, ok := f.interfaces[name]; ok {
			return ast.NoTypeID, iface, true
		}
	}
	return ast.NoTypeID, nil, false
}

// Depth is the number of open scopes.
func (s *Scopes) Depth() int { return len(s.frames) }

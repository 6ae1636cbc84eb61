package frontend

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fortio.org/safecast"
	"github.com/alexaandru/go-sitter-forest/tsx"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"vuejsx/internal/ast"
	"vuejsx/internal/diag"
	"vuejsx/internal/source"
)

var (
	errNoRootNode = errors.New("frontend: no root node")
	errPoolType   = errors.New("frontend: pool returned unexpected type")
)

var tsxLanguage = sitter.NewLanguage(tsx.GetLanguage())

var parserPool = sync.Pool{
	New: func() any {
		p := sitter.NewParser()
		p.SetLanguage(tsxLanguage)
		return p
	},
}

// Parse converts the file into the arena AST held by b.
//
// Syntax errors are reported through r and the offending regions are kept
// as raw text; only failures of the parser itself are returned as errors.
func Parse(ctx context.Context, fs *source.FileSet, fileID source.FileID, b *ast.Builder, r diag.Reporter) (ast.FileID, error) {
	file := fs.Get(fileID)
	if r == nil {
		r = diag.NopReporter{}
	}

	p, ok := parserPool.Get().(*sitter.Parser)
	if !ok {
		return ast.NoFileID, errPoolType
	}
	defer parserPool.Put(p)

	tree, err := p.ParseString(ctx, nil, file.Content)
	if err != nil {
		return ast.NoFileID, fmt.Errorf("parse %s: %w", file.Path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return ast.NoFileID, errNoRootNode
	}

	c := newConverter(b, file, r)
	c.collect(root, false)
	return c.program(root), nil
}

type nodeKey struct {
	start, end uint
	typ        string
}

type converter struct {
	b        *ast.Builder
	file     *source.File
	src      []byte
	reporter diag.Reporter
	bindings map[source.StringID]struct{}
	comments []ast.Comment
	// один и тот же узел может попасть и в Params, и в дырку сырого текста
	memo map[nodeKey]ast.ExprID
}

func newConverter(b *ast.Builder, file *source.File, r diag.Reporter) *converter {
	return &converter{
		b:        b,
		file:     file,
		src:      file.Content,
		reporter: r,
		bindings: make(map[source.StringID]struct{}),
		memo:     make(map[nodeKey]ast.ExprID),
	}
}

func (c *converter) program(root sitter.Node) ast.FileID {
	end := offset(uint(len(c.src)))
	fileID := c.b.NewFile(source.Span{File: c.file.ID, Start: 0, End: end})

	body := make([]ast.StmtID, 0, root.NamedChildCount())
	for _, child := range namedChildren(root) {
		if child.Type() == "hash_bang_line" {
			continue
		}
		body = append(body, c.stmt(child))
	}

	f := c.b.Files.Get(fileID)
	f.Source = c.src
	f.Body = body
	f.Comments = c.comments
	f.Bindings = c.bindings
	return fileID
}

func (c *converter) span(n sitter.Node) source.Span {
	return source.Span{
		File:  c.file.ID,
		Start: offset(n.StartByte()),
		End:   offset(n.EndByte()),
	}
}

func (c *converter) text(n sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

func (c *converter) intern(n sitter.Node) source.StringID {
	return c.b.Strings.InternBytes(c.src[n.StartByte():n.EndByte()])
}

func (c *converter) declared(name source.StringID) bool {
	_, ok := c.bindings[name]
	return ok
}

func offset(v uint) uint32 {
	off, err := safecast.Conv[uint32](v)
	if err != nil {
		panic(fmt.Errorf("source offset overflow: %w", err))
	}
	return off
}

// namedChildren returns the named children of n without comments.
func namedChildren(n sitter.Node) []sitter.Node {
	out := make([]sitter.Node, 0, n.NamedChildCount())
	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func field(n sitter.Node, name string) (sitter.Node, bool) {
	child := n.ChildByFieldName(name)
	if child.IsNull() {
		return sitter.Node{}, false
	}
	return child, true
}

// hasToken reports whether n has an anonymous child spelled tok.
func hasToken(n sitter.Node, tok string) bool {
	for i := range n.ChildCount() {
		child := n.Child(i)
		if !child.IsNamed() && child.Type() == tok {
			return true
		}
	}
	return false
}

func sameNode(a, b sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

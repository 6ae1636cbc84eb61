package format

import (
	"errors"

	"vuejsx/internal/ast"
	"vuejsx/internal/source"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}

type printer struct {
	builder *ast.Builder
	file    *ast.File
	writer  *Writer
	opt     Options

	exprClean map[ast.ExprID]bool
	stmtClean map[ast.StmtID]bool
}

func newPrinter(b *ast.Builder, file *ast.File, w *Writer, opt Options) *printer {
	return &printer{
		builder:   b,
		file:      file,
		writer:    w,
		opt:       opt,
		exprClean: make(map[ast.ExprID]bool),
		stmtClean: make(map[ast.StmtID]bool),
	}
}

// FormatFile prints the file fid. Statements between rewritten nodes keep
// their original text, comments and blank lines.
func FormatFile(sf *source.File, b *ast.Builder, fid ast.FileID, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	if !fid.IsValid() {
		return nil, errors.New("format: invalid file id")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}

	opt = opt.withDefaults()
	w := NewWriter(sf.ID, sf.Content, opt)
	pr := newPrinter(b, file, w, opt)
	pr.printFile()
	return w.Bytes(), nil
}

// PrintExpr renders one expression. src is the content its spans point
// into and may be nil for fully synthesized trees.
func PrintExpr(b *ast.Builder, fileID source.FileID, src []byte, id ast.ExprID) string {
	w := NewWriter(fileID, src, Options{})
	pr := newPrinter(b, nil, w, Options{}.withDefaults())
	pr.printExpr(id)
	return string(w.Bytes())
}

func (p *printer) printFile() {
	contentLen := len(p.writer.src)
	prev := 0
	for _, stmtID := range p.file.Body {
		stmt := p.builder.Stmts.Get(stmtID)
		if stmt == nil {
			continue
		}
		if !spanValid(stmt.Span) {
			// вставки финализатора стоят в начале модуля
			if prev > 0 {
				p.writer.Newline("")
			}
			p.printStmt(stmtID)
			if prev == 0 {
				p.writer.Newline("")
			}
			continue
		}
		start := clampToContent(int(stmt.Span.Start), contentLen)
		if prev < start {
			p.writer.CopyRange(prev, start)
		}
		p.printStmt(stmtID)
		prev = max(clampToContent(int(stmt.Span.End), contentLen), start)
	}
	if prev < contentLen {
		p.writer.CopyRange(prev, contentLen)
	}
}

func (p *printer) name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return p.builder.Strings.MustLookup(id)
}

func clampToContent(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}

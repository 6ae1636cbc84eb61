package format

import (
	"strings"

	"vuejsx/internal/source"
)

// Writer accumulates output and provides helpers for copying source
// fragments and emitting canonical whitespace.
type Writer struct {
	fileID source.FileID
	src    []byte
	opt    Options
	buf    []byte
}

// NewWriter creates a writer that copies verbatim fragments from src.
func NewWriter(fileID source.FileID, src []byte, opt Options) *Writer {
	return &Writer{
		fileID: fileID,
		src:    src,
		opt:    opt.withDefaults(),
		buf:    make([]byte, 0, len(src)+len(src)/4),
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteString writes s verbatim.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// WriteByte writes a single byte to the output.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline writes a newline followed by indent.
func (w *Writer) Newline(indent string) {
	w.buf = append(w.buf, '\n')
	w.buf = append(w.buf, indent...)
}

// LineIndent returns the leading whitespace of the line being written.
func (w *Writer) LineIndent() string {
	start := 0
	for i := len(w.buf) - 1; i >= 0; i-- {
		if w.buf[i] == '\n' {
			start = i + 1
			break
		}
	}
	end := start
	for end < len(w.buf) && (w.buf[end] == ' ' || w.buf[end] == '\t') {
		end++
	}
	return string(w.buf[start:end])
}

// IndentStep is one level of indentation for synthesized blocks.
func (w *Writer) IndentStep() string {
	if w.opt.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", w.opt.IndentWidth)
}

// CopySpan copies a span from the source file to the output.
func (w *Writer) CopySpan(sp source.Span) {
	if !spanValid(sp) || sp.File != w.fileID {
		return
	}
	w.CopyRange(int(sp.Start), int(sp.End))
}

// CopyRange copies a range of bytes from the source file to the output.
func (w *Writer) CopyRange(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(w.src) {
		end = len(w.src)
	}
	if start >= end {
		return
	}
	w.buf = append(w.buf, w.src[start:end]...)
}

// Range returns the source bytes in [start, end) clamped to the file.
func (w *Writer) Range(start, end int) string {
	start = clampToContent(start, len(w.src))
	end = clampToContent(end, len(w.src))
	if start >= end {
		return ""
	}
	return string(w.src[start:end])
}

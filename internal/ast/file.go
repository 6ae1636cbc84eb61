package ast

import (
	"vuejsx/internal/source"
)

// Comment is a source comment with its delimiters stripped.
type Comment struct {
	Span  source.Span
	Text  string
	Block bool
}

type File struct {
	Span source.Span
	// Source is the file content the spans point into.
	Source []byte
	Body   []StmtID
	// Comments are sorted by position.
	Comments []Comment
	// Bindings holds every name declared anywhere in the file:
	// imports, variables, functions, classes, parameters, catch clauses.
	Bindings map[source.StringID]struct{}
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span:     sp,
		Body:     make([]StmtID, 0),
		Bindings: make(map[source.StringID]struct{}),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}

// Declares reports whether name is bound somewhere in the file.
func (f *File) Declares(name source.StringID) bool {
	_, ok := f.Bindings[name]
	return ok
}

// LeadingComments returns comments that end at or before pos and are
// separated from it only by whitespace or other comments.
func (f *File) LeadingComments(pos uint32) []Comment {
	end := pos
	first := len(f.Comments)
	for i := len(f.Comments) - 1; i >= 0; i-- {
		c := f.Comments[i]
		if c.Span.End > end {
			continue
		}
		if !onlySpace(f.Source, c.Span.End, end) {
			break
		}
		first = i
		end = c.Span.Start
	}
	if first == len(f.Comments) {
		return nil
	}
	out := make([]Comment, 0, len(f.Comments)-first)
	for _, c := range f.Comments[first:] {
		if c.Span.End <= pos {
			out = append(out, c)
		}
	}
	return out
}

func onlySpace(content []byte, from, to uint32) bool {
	if int(to) > len(content) || from > to {
		return false
	}
	for _, ch := range content[from:to] {
		switch ch {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}

package codegen

import (
	"fmt"
	"strings"

	"github.com/njreid/compgen/pkg/ir"
)

// SourceMapping pairs a template span with the generated text written for it.
type SourceMapping struct {
	Original  ir.Span
	Generated ir.Span
}

// Directive is a source mapping in line/column form. Lines and columns are
// zero-based.
type Directive struct {
	GeneratedLine   int
	GeneratedColumn int
	OriginalFile    string
	OriginalLine    int
	OriginalColumn  int
	Length          int
}

// CodeWriter accumulates generated source and tracks the position of every
// write. Lines are indented with tabs.
type CodeWriter struct {
	sb       strings.Builder
	abs      int
	line     int
	col      int
	indent   int
	mappings []SourceMapping
}

func NewCodeWriter() *CodeWriter { return &CodeWriter{} }

// Write appends s, indenting lines that start with text.
func (w *CodeWriter) Write(s string) *CodeWriter {
	for s != "" {
		if w.col == 0 && s[0] != '\n' {
			w.raw(strings.Repeat("\t", w.indent))
		}
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			w.raw(s)
			return w
		}
		w.raw(s[:i+1])
		s = s[i+1:]
	}
	return w
}

func (w *CodeWriter) Writef(format string, args ...any) *CodeWriter {
	return w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes s followed by a newline.
func (w *CodeWriter) WriteLine(s string) *CodeWriter {
	return w.Write(s).Write("\n")
}

// NewLine ends the current line unless it is empty.
func (w *CodeWriter) NewLine() *CodeWriter {
	if w.col != 0 {
		w.Write("\n")
	}
	return w
}

// WriteMapped writes text and records a mapping to span. Nothing is mapped
// when span is nil or text is empty.
func (w *CodeWriter) WriteMapped(span *ir.Span, text string) *CodeWriter {
	if w.col == 0 && text != "" && text[0] != '\n' {
		w.raw(strings.Repeat("\t", w.indent))
	}
	start := ir.Span{AbsoluteIndex: w.abs, LineIndex: w.line, CharacterIndex: w.col, Length: len(text)}
	w.Write(text)
	if span != nil && text != "" {
		w.mappings = append(w.mappings, SourceMapping{Original: *span, Generated: start})
	}
	return w
}

// Indent increases the indentation of the following lines.
func (w *CodeWriter) Indent() *CodeWriter {
	w.indent++
	return w
}

func (w *CodeWriter) Dedent() *CodeWriter {
	if w.indent > 0 {
		w.indent--
	}
	return w
}

// Location returns the position of the next write.
func (w *CodeWriter) Location() ir.Span {
	return ir.Span{AbsoluteIndex: w.abs, LineIndex: w.line, CharacterIndex: w.col}
}

func (w *CodeWriter) Mappings() []SourceMapping {
	return append([]SourceMapping(nil), w.mappings...)
}

// Directives returns the mappings as line/column tuples.
func (w *CodeWriter) Directives() []Directive {
	out := make([]Directive, len(w.mappings))
	for i, m := range w.mappings {
		out[i] = Directive{
			GeneratedLine:   m.Generated.LineIndex,
			GeneratedColumn: m.Generated.CharacterIndex,
			OriginalFile:    m.Original.FilePath,
			OriginalLine:    m.Original.LineIndex,
			OriginalColumn:  m.Original.CharacterIndex,
			Length:          m.Original.Length,
		}
	}
	return out
}

func (w *CodeWriter) String() string { return w.sb.String() }

func (w *CodeWriter) raw(s string) {
	w.sb.WriteString(s)
	w.abs += len(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.line += strings.Count(s, "\n")
		w.col = len(s) - i - 1
	} else {
		w.col += len(s)
	}
}

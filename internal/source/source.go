// Package source holds the translation unit's source text and the
// positional information attached to every token and AST node.
package source

import "fmt"

// File is a single translation unit's content. It is created once by the
// driver and lives for the lifetime of the compiler run; tokens and
// locations hold non-owning views into its Content.
type File struct {
	Path string
	Content []byte
}

// New creates a source file from raw content.
func New(path string, content []byte) *File {
	return &File{Path: path, Content: content}
}

// Line returns the text of the given 1-based line number, without its
// terminator. It returns "" if the line does not exist.
func (f *File) Line(n int) string {
	if n < 1 {
		return ""
	}
	line := 1
	start := 0
	for i := 0; i < len(f.Content); i++ {
		if line == n {
			start = i
			for i < len(f.Content) && f.Content[i] != '\n' {
				i++
			}
			end := i
			if end > start && f.Content[end-1] == '\r' {
				end--
			}
			return string(f.Content[start:end])
		}
		if f.Content[i] == '\n' {
			line++
		}
	}
	if line == n {
		return string(f.Content[start:])
	}
	return ""
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	if len(f.Content) == 0 {
		return 0
	}
	n := 1
	for _, b := range f.Content {
		if b == '\n' {
			n++
		}
	}
	return n
}

// Location identifies a single point in a source file: its file, 1-based
// row and column, and 0-based byte offset. Every token and AST node
// carries one. Locations are immutable after emission.
type Location struct {
	File *File
	Row int
	Column int
	Offset int
}

// String renders "path:row:col".
func (l Location) String() string {
	path := "<input>"
	if l.File != nil && l.File.Path != "" {
		path = l.File.Path
	}
	return fmt.Sprintf("%s:%d:%d", path, l.Row, l.Column)
}

// Valid reports whether the location's offset falls within its file's
// content bounds, or the location has no file at
// all (synthetic locations used in a few builtin contexts).
func (l Location) Valid() bool {
	if l.File == nil {
		return true
	}
	return l.Offset >= 0 && l.Offset <= len(l.File.Content)
}

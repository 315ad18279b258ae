// Package token defines the stable token-type enumeration,
// the Token value itself, and its literal payload variants.
package token

import (
	"math/big"

	"github.com/accc-project/accc/internal/ident"
	"github.com/accc-project/accc/internal/source"
)

// Type is the tag of a Token. The zero value is NONE.
//
//go:generate go run golang.org/x/tools/cmd/stringer@latest -type Type
type Type byte

const (
	// Structural
	NONE Type = iota
	EOF
	ERROR
	COMMENT
	HORIZONTAL_WHITESPACE
	NEW_LINE
	IDENTIFIER

	// Literals
	LITERAL_BOOL
	LITERAL_CHAR
	LITERAL_INTEGER
	LITERAL_FLOAT
	LITERAL_STRING
	LITERAL_NULL

	// Keywords
	IF
	ELSE
	FOR
	WHILE
	RETURN
	STRUCT
	ENUM
	SIZEOF
	TYPEOF

	// Punctuation
	HASH
	DOUBLE_HASH
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R
	SQUARE_L
	SQUARE_R
	COMMA
	SEMI_COLON
	COLON
	QUESTION
	BACKSLASH
	DOLLAR
	QUOTE
	DOUBLE_QUOTE
	DOT
	DOUBLE_DOT
	TRIPLE_DOT
	ARROW
	TILDE
	TILDE_EQUAL

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	CARET
	AMP
	PIPE
	EXCLAM
	EQUAL
	DOUBLE_EQUAL
	NOT_EQUAL
	LESS
	GREATER
	LESS_EQUAL
	GREATER_EQUAL
	DOUBLE_LESS
	DOUBLE_GREATER
	DOUBLE_AMP
	DOUBLE_PIPE
	PLUS_EQUAL
	MINUS_EQUAL
	STAR_EQUAL
	SLASH_EQUAL
	PERCENT_EQUAL
	CARET_EQUAL
	AMP_EQUAL
	PIPE_EQUAL
)

// keywords maps canonical keyword spelling to its Type. LookupKeyword
// is a map lookup; the lexer gives a matched keyword token the interned
// identifier text as its Text, not this table's string.
var keywords = map[string]Type{
	"if": IF,
	"else": ELSE,
	"for": FOR,
	"while": WHILE,
	"return": RETURN,
	"struct": STRUCT,
	"enum": ENUM,
	"sizeof": SIZEOF,
	"typeof": TYPEOF,
}

// LookupKeyword returns the Type for text if it names a keyword.
func LookupKeyword(text string) (Type, bool) {
	t, ok := keywords[text]
	return t, ok
}

// glyphs holds the canonical printable spelling for punctuation and
// operator token types, used by ToDisplayString.
var glyphs = map[Type]string{
	HASH: "#", DOUBLE_HASH: "##",
	PAREN_L: "(", PAREN_R: ")",
	BRACE_L: "{", BRACE_R: "}",
	SQUARE_L: "[", SQUARE_R: "]",
	COMMA: ",", SEMI_COLON: ";", COLON: ":", QUESTION: "?",
	BACKSLASH: "\\", DOLLAR: "$", QUOTE: "'", DOUBLE_QUOTE: "\"",
	DOT: ".", DOUBLE_DOT: "..", TRIPLE_DOT: "...", ARROW: "->",
	TILDE: "~", TILDE_EQUAL: "~=",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	CARET: "^", AMP: "&", PIPE: "|", EXCLAM: "!", EQUAL: "=",
	DOUBLE_EQUAL: "==", NOT_EQUAL: "!=",
	LESS: "<", GREATER: ">", LESS_EQUAL: "<=", GREATER_EQUAL: ">=",
	DOUBLE_LESS: "<<", DOUBLE_GREATER: ">>",
	DOUBLE_AMP: "&&", DOUBLE_PIPE: "||",
	PLUS_EQUAL: "+=", MINUS_EQUAL: "-=", STAR_EQUAL: "*=", SLASH_EQUAL: "/=",
	PERCENT_EQUAL: "%=", CARET_EQUAL: "^=", AMP_EQUAL: "&=", PIPE_EQUAL: "|=",
}

// ToDisplayString returns the canonical printable form of t: a stable
// glyph for punctuation/operators, "end-of-line" for EOF, and a
// category placeholder like "<identifier>" for the rest.
func ToDisplayString(t Type) string {
	if g, ok := glyphs[t]; ok {
		return g
	}
	switch t {
	case EOF:
		return "end-of-line"
	case IDENTIFIER:
		return "<identifier>"
	case LITERAL_BOOL, LITERAL_CHAR, LITERAL_INTEGER, LITERAL_FLOAT, LITERAL_STRING, LITERAL_NULL:
		return "<literal>"
	case COMMENT:
		return "<comment>"
	case HORIZONTAL_WHITESPACE:
		return "<whitespace>"
	case NEW_LINE:
		return "<newline>"
	case ERROR:
		return "<error>"
	default:
		for text, kw := range keywords {
			if kw == t {
				return text
			}
		}
		return "<none>"
	}
}

// NumberFlags records the parsed shape of a numeric literal.
type NumberFlags struct {
	Overflow bool
	IsFloat bool
	IsDouble bool // absence of the 'f'/'F' suffix on a float literal
	Unsigned bool
	LongDepth int // 0, 1 ("l"/"L") or 2 ("ll"/"LL")
}

// StringFlags records the literal's encoding prefix.
type StringFlags struct {
	UTF8 bool
	UTF16 bool
	UTF32 bool
	Wide bool
}

// Literal is the payload of a literal token.
type Literal struct {
	Int *big.Int
	Float float64
	String string
	Char rune
	Bool bool

	Number NumberFlags
	Str StringFlags
}

// Token is a single lexical unit.
type Token struct {
	Type Type
	Loc source.Location

	// Text is the verbatim source slice for literals, comments,
	// whitespace and identifiers, or the canonical keyword/operator
	// spelling otherwise.
	Text string

	// Ident is set for IDENTIFIER and keyword tokens: the lexer interns
	// every identifier-shaped spelling.
	Ident *ident.Handle

	// Lit is set for LITERAL_* token types.
	Lit *Literal

	// PreviousWasSpace is true when this token was preceded by
	// horizontal whitespace on the same line.
	PreviousWasSpace bool

	// BeginningOfLine is true when no non-whitespace, non-comment
	// token precedes this one on its logical source line (used to
	// recognize directive lines).
	BeginningOfLine bool

	// CannotExpand records Ident.CannotExpand at the time the token
	// was lexed. Macro expansion does not read it; it checks the
	// identifier's live Ident.CannotExpand flag.
	CannotExpand bool

	// IsPrematureEOF marks a COMMENT token cut off by end of input, or
	// a string/char literal token cut off by end of line or end of
	// input (an unterminated construct).
	IsPrematureEOF bool
}

// Is reports whether the token's type is in the given list.
func (t Token) Is(types...Type) bool {
	for _, ty := range types {
		if t.Type == ty {
			return true
		}
	}
	return false
}

// IdentifierText returns the interned identifier's text (identifiers
// and keywords), or Text for tokens without an interned identifier.
func (t Token) IdentifierText() string {
	if t.Ident != nil {
		return t.Ident.Text
	}
	return t.Text
}

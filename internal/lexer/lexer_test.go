package lexer

import (
	"testing"

	"github.com/accc-project/accc/internal/astarena"
	"github.com/accc-project/accc/internal/ident"
	"github.com/accc-project/accc/internal/source"
	"github.com/accc-project/accc/internal/token"
)

// lexAll runs the lexer to completion, returning every token up to and
// including the first EOF.
func lexAll(src string) []token.Token {
	f := source.New("test.c", []byte(src))
	l := New(f, ident.New(astarena.New()))
	var out []token.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Type == token.EOF {
			return out
		}
	}
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func typesEqual(a, b []token.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexerTokenTypes(t *testing.T) {
	tests := []struct {
		input string
		want []token.Type
	}{
		{
			input: "int x;",
			want: []token.Type{
				token.IDENTIFIER, token.HORIZONTAL_WHITESPACE, token.IDENTIFIER,
				token.SEMI_COLON, token.EOF,
			},
		},
		{
			input: "// a comment\nx",
			want: []token.Type{
				token.COMMENT, token.NEW_LINE, token.IDENTIFIER, token.EOF,
			},
		},
		{
			input: "/* block */x",
			want: []token.Type{token.COMMENT, token.IDENTIFIER, token.EOF},
		},
		{
			input: "010",
			want: []token.Type{token.LITERAL_INTEGER, token.EOF},
		},
		{
			input: "0x1p4",
			want: []token.Type{token.LITERAL_FLOAT, token.EOF},
		},
		{
			input: "1'2'3",
			want: []token.Type{token.LITERAL_INTEGER, token.EOF},
		},
		{
			input: `"hi" 'c'`,
			want: []token.Type{
				token.LITERAL_STRING, token.HORIZONTAL_WHITESPACE, token.LITERAL_CHAR, token.EOF,
			},
		},
		{
			input: "a->b ## c",
			want: []token.Type{
				token.IDENTIFIER, token.ARROW, token.IDENTIFIER,
				token.HORIZONTAL_WHITESPACE, token.DOUBLE_HASH, token.HORIZONTAL_WHITESPACE,
				token.IDENTIFIER, token.EOF,
			},
		},
	}

	for _, test := range tests {
		got := types(lexAll(test.input))
		if !typesEqual(got, test.want) {
			t.Errorf("input %q\ngot: %v\nwant: %v", test.input, got, test.want)
		}
	}
}

// TestLeadingZeroIsDecimal pins down the explicit "010 == decimal 10,
// not octal 8" literal rule.
func TestLeadingZeroIsDecimal(t *testing.T) {
	toks := lexAll("010")
	if toks[0].Lit == nil || toks[0].Lit.Int == nil {
		t.Fatalf("expected integer literal payload, got %+v", toks[0])
	}
	if got := toks[0].Lit.Int.Int64(); got != 10 {
		t.Errorf("010 = %d, want 10 (decimal, not octal)", got)
	}
}

func TestDigitSeparatorsStripped(t *testing.T) {
	toks := lexAll("1'2'3")
	if got := toks[0].Lit.Int.Int64(); got != 123 {
		t.Errorf("1'2'3 = %d, want 123", got)
	}
	toks = lexAll("1_2_3")
	if got := toks[0].Lit.Int.Int64(); got != 123 {
		t.Errorf("1_2_3 = %d, want 123", got)
	}
}

// TestIntegerLiteralScenario pins down the full lexeme sequence from
// the S1 end-to-end scenario.
func TestIntegerLiteralScenario(t *testing.T) {
	toks := lexAll("0 00 01 10 123 123u 123ull 0b101 0X2A 0x2aULL 1'2'3 1_2_3")
	var ints []token.Token
	for _, tok := range toks {
		if tok.Type == token.LITERAL_INTEGER {
			ints = append(ints, tok)
		}
	}
	want := []int64{0, 0, 1, 10, 123, 123, 123, 5, 42, 42, 123, 123}
	if len(ints) != len(want) {
		t.Fatalf("got %d integer literals, want %d", len(ints), len(want))
	}
	for i, tok := range ints {
		if tok.Lit == nil || tok.Lit.Int == nil {
			t.Fatalf("literal %d: missing integer payload", i)
		}
		if got := tok.Lit.Int.Int64(); got != want[i] {
			t.Errorf("literal %d: got %d, want %d", i, got, want[i])
		}
		if tok.Lit.Number.Overflow {
			t.Errorf("literal %d: unexpected overflow", i)
		}
	}
}

func TestIdentifierInterning(t *testing.T) {
	idents := ident.New(astarena.New())
	f := source.New("t.c", []byte("foo foo bar"))
	l := New(f, idents)

	first := l.Next()
	l.Next() // whitespace
	second := l.Next()
	l.Next() // whitespace
	third := l.Next()

	if first.Ident != second.Ident {
		t.Errorf("two occurrences of %q should share a Handle", "foo")
	}
	if first.Ident == third.Ident {
		t.Errorf("distinct identifiers should not share a Handle")
	}
}

func TestSnapshotRestore(t *testing.T) {
	f := source.New("t.c", []byte("abc"))
	l := New(f, ident.New(astarena.New()))

	snap := l.Save()
	first := l.Next()
	l.Restore(snap)
	replay := l.Next()

	if first.Text != replay.Text {
		t.Errorf("replayed token after Restore = %q, want %q", replay.Text, first.Text)
	}
}

func TestSwapBuffer(t *testing.T) {
	f := source.New("t.c", []byte("x"))
	l := New(f, ident.New(astarena.New()))

	snap := l.SwapBuffer("pasted")
	tok := l.Next()
	if tok.Text != "pasted" {
		t.Errorf("SwapBuffer token = %q, want %q", tok.Text, "pasted")
	}
	l.Restore(snap)
	orig := l.Next()
	if orig.Text != "x" {
		t.Errorf("after Restore, token = %q, want %q", orig.Text, "x")
	}
}

func TestLineTerminatorVariants(t *testing.T) {
	tests := []struct {
		name string
		input string
		want []token.Type
	}{
		{"lf", "a\nb", []token.Type{token.IDENTIFIER, token.NEW_LINE, token.IDENTIFIER, token.EOF}},
		{"cr", "a\rb", []token.Type{token.IDENTIFIER, token.NEW_LINE, token.IDENTIFIER, token.EOF}},
		{"crlf", "a\r\nb", []token.Type{token.IDENTIFIER, token.NEW_LINE, token.IDENTIFIER, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := types(lexAll(tt.input))
			if !typesEqual(got, tt.want) {
				t.Errorf("types(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBareCRAdvancesRow(t *testing.T) {
	f := source.New("t.c", []byte("a\rb"))
	l := New(f, ident.New(astarena.New()))

	l.Next() // "a"
	l.Next() // CR as NEW_LINE
	b := l.Next()

	if b.Loc.Row != 2 {
		t.Errorf("row after bare CR = %d, want 2", b.Loc.Row)
	}
	if !b.BeginningOfLine {
		t.Errorf("token after bare CR should be BeginningOfLine")
	}
}

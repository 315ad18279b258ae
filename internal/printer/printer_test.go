package printer_test

import (
	"strings"
	"testing"

	"github.com/accc-project/accc/internal/ast"
	"github.com/accc-project/accc/internal/astarena"
	"github.com/accc-project/accc/internal/diag"
	"github.com/accc-project/accc/internal/ident"
	"github.com/accc-project/accc/internal/lexer"
	"github.com/accc-project/accc/internal/parser"
	"github.com/accc-project/accc/internal/preproc"
	"github.com/accc-project/accc/internal/printer"
	"github.com/accc-project/accc/internal/source"
)

// compile runs the full load -> lex -> preprocess -> parse pipeline.
func compile(t *testing.T, code string) *ast.TopLevel {
	t.Helper()
	file := source.New("test.c", []byte(code))
	arena := astarena.New()
	idents := ident.New(arena)
	lex := lexer.New(file, idents)
	macros := preproc.NewMacroTable()
	bag := diag.NewBag(0)
	pp := preproc.New(lex, macros, bag)
	astArena := ast.NewArena()
	p := parser.New(pp, astArena, bag)
	top := p.ParseTopLevel()
	if bag.HasError() {
		t.Fatalf("unexpected parse errors: %v", bag.Errors())
	}
	if top == nil {
		t.Fatalf("ParseTopLevel returned nil")
	}
	return top
}

var documentTests = []struct {
	in, out string
}{
	{"int x;\n", "int x;\n"},
	{"int x = 314;\n", "int x = 314;\n"},
	{"int main();\n", "int main();\n"},
	{"int main() { return 0; }\n",
		"int main() {\n return 0;\n}\n"},
	{"int add(int a, int b) { return a; }\n",
		"int add(int a, int b) {\n return a;\n}\n"},
	{"int x = -1;\n", "int x = -1;\n"},
}

func TestPrintDocument(t *testing.T) {
	for _, test := range documentTests {
		top := compile(t, test.in)
		var buf strings.Builder
		var p printer.Printer
		if err := p.Document(&buf, top); err != nil {
			t.Fatalf("%q: write error: %v", test.in, err)
		}
		if buf.String() != test.out {
			t.Errorf("%q: got:\n%s\nwant:\n%s", test.in, buf.String(), test.out)
		}
	}
}

func TestPrintDocumentCustomIndent(t *testing.T) {
	top := compile(t, "int main() { return 0; }\n")
	var buf strings.Builder
	var p printer.Printer
	p.SetIndent("\t")
	if err := p.Document(&buf, top); err != nil {
		t.Fatalf("write error: %v", err)
	}
	want := "int main() {\n\treturn 0;\n}\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

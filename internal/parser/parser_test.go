package parser_test

import (
	"embed"
	"sort"
	"testing"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"

	"github.com/accc-project/accc/internal/ast"
	"github.com/accc-project/accc/internal/astarena"
	"github.com/accc-project/accc/internal/diag"
	"github.com/accc-project/accc/internal/ident"
	"github.com/accc-project/accc/internal/lexer"
	"github.com/accc-project/accc/internal/parser"
	"github.com/accc-project/accc/internal/preproc"
	"github.com/accc-project/accc/internal/source"
)

//go:embed testdata/*.yaml
var testdataFS embed.FS

type parserTestCase struct {
	Code string `yaml:"code"`
	Want struct {
		Kind string `yaml:"kind"`
		Identifier string `yaml:"identifier"`
		HasInitializer bool `yaml:"has_initializer"`
		HasBody bool `yaml:"has_body"`
	} `yaml:"want"`
}

func loadParserTests(t *testing.T) map[string]parserTestCase {
	t.Helper()
	f, err := testdataFS.Open("testdata/parser-tests.yaml")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	cases := make(map[string]parserTestCase)
	if err := dec.Decode(&cases); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return cases
}

// parseTopLevel runs the full load -> lex -> preprocess -> parse
// pipeline over code and returns the resulting top level plus any
// diagnostics recorded.
func parseTopLevel(t *testing.T, code string) (*ast.TopLevel, *diag.Bag) {
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
	return top, bag
}

func TestParseDeclarations(t *testing.T) {
	cases := loadParserTests(t)

	names := maps.Keys(cases)
	sort.Strings(names)

	for _, name := range names {
		tc := cases[name]
		t.Run(name, func(t *testing.T) {
			top, bag := parseTopLevel(t, tc.Code)
			if bag.HasError() {
				t.Fatalf("unexpected errors: %v", bag.Errors())
			}
			if top == nil {
				t.Fatalf("ParseTopLevel returned nil")
			}
			if len(top.Block.Statements) != 1 {
				t.Fatalf("got %d top-level statements, want 1", len(top.Block.Statements))
			}
			decl, ok := top.Block.Statements[0].(*ast.Declaration)
			if !ok {
				t.Fatalf("got %T, want *ast.Declaration", top.Block.Statements[0])
			}
			if tc.Want.Kind != "declaration" {
				t.Fatalf("fixture specifies unsupported kind %q", tc.Want.Kind)
			}
			if decl.Identifier.Text != tc.Want.Identifier {
				t.Errorf("got identifier %q, want %q", decl.Identifier.Text, tc.Want.Identifier)
			}
			if (decl.Initializer != nil) != tc.Want.HasInitializer {
				t.Errorf("got has_initializer %v, want %v", decl.Initializer != nil, tc.Want.HasInitializer)
			}
			if (decl.FunctionBody != nil) != tc.Want.HasBody {
				t.Errorf("got has_body %v, want %v", decl.FunctionBody != nil, tc.Want.HasBody)
			}
		})
	}
}

func TestEndToEndInitializedInt(t *testing.T) {
	// the parser side of the S2 scenario, with the macro already
	// expanded: "int x = 314;" -> a single Declaration with type int,
	// identifier x, initializer literal integer 314.
	top, bag := parseTopLevel(t, "int x = 314;\n")
	if bag.HasError() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	decl := top.Block.Statements[0].(*ast.Declaration)
	if decl.TypeSpecifier.Identifier.Text != "int" {
		t.Errorf("got type %q, want int", decl.TypeSpecifier.Identifier.Text)
	}
	lit, ok := decl.Initializer.(*ast.Literal)
	if !ok {
		t.Fatalf("got initializer %T, want *ast.Literal", decl.Initializer)
	}
	if lit.Kind != ast.LiteralInt || lit.Int.Int64() != 314 {
		t.Errorf("got literal %+v, want int 314", lit)
	}
}

func TestEndToEndMainReturnsZero(t *testing.T) {
	// the S6 scenario: TopLevel -> block containing one Declaration
	// with type int, identifier main, empty parameters, function body
	// block containing a Return of LiteralInteger(0).
	top, bag := parseTopLevel(t, "int main() { return 0; }\n")
	if bag.HasError() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	decl := top.Block.Statements[0].(*ast.Declaration)
	if decl.Identifier.Text != "main" {
		t.Fatalf("got identifier %q, want main", decl.Identifier.Text)
	}
	if len(decl.Parameters.List) != 0 {
		t.Fatalf("got %d parameters, want 0", len(decl.Parameters.List))
	}
	if decl.FunctionBody == nil || len(decl.FunctionBody.Statements) != 1 {
		t.Fatalf("expected a one-statement function body")
	}
	ret, ok := decl.FunctionBody.Statements[0].(*ast.Return)
	if !ok {
		t.Fatalf("got %T, want *ast.Return", decl.FunctionBody.Statements[0])
	}
	lit, ok := ret.Expression.(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralInt || lit.Int.Int64() != 0 {
		t.Fatalf("got return expression %+v, want literal int 0", ret.Expression)
	}
}

func TestUnknownTypeSpecifierIsRejected(t *testing.T) {
	_, bag := parseTopLevel(t, "float x;\n")
	if !bag.HasError() {
		t.Fatalf("expected an error for a non-'int' type specifier")
	}
}

func TestMissingSemicolonIsRejected(t *testing.T) {
	_, bag := parseTopLevel(t, "int x\n")
	if !bag.HasError() {
		t.Fatalf("expected an error for a missing ';'")
	}
}

func TestFunctionCallIsNotImplemented(t *testing.T) {
	_, bag := parseTopLevel(t, "int main() { return f(1); }\n")
	if !bag.HasError() {
		t.Fatalf("expected an error: function calls are reserved, not implemented")
	}
}

func TestUnaryMinusLiteral(t *testing.T) {
	top, bag := parseTopLevel(t, "int x = -1;\n")
	if bag.HasError() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	decl := top.Block.Statements[0].(*ast.Declaration)
	u, ok := decl.Initializer.(*ast.Unary)
	if !ok {
		t.Fatalf("got initializer %T, want *ast.Unary", decl.Initializer)
	}
	lit, ok := u.Operand.(*ast.Literal)
	if !ok || lit.Int.Int64() != 1 {
		t.Fatalf("got unary operand %+v, want literal int 1", u.Operand)
	}
}

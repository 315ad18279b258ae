package cc_test

import (
	"embed"
	"sort"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"

	"github.com/accc-project/accc/cc"
	"github.com/accc-project/accc/internal/ast"
)

//go:embed testdata/*.yaml
var testdataFS embed.FS

type preprocessTestCase struct {
	Code string `yaml:"code"`
	Want string `yaml:"want"`
}

func loadPreprocessTests(t *testing.T) map[string]preprocessTestCase {
	t.Helper()
	f, err := testdataFS.Open("testdata/preprocess-tests.yaml")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	cases := make(map[string]preprocessTestCase)
	if err := dec.Decode(&cases); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return cases
}

func TestPreprocess(t *testing.T) {
	cases := loadPreprocessTests(t)
	names := maps.Keys(cases)
	sort.Strings(names)

	for _, name := range names {
		tc := cases[name]
		t.Run(name, func(t *testing.T) {
			c := cc.NewCompiler(nil)
			unit := c.Preprocess(name, tc.Code)
			if c.Failed() {
				t.Fatalf("unexpected errors: %v", c.Errors())
			}
			got := strings.TrimSpace(unit.Preprocessed)
			if got != tc.Want {
				t.Errorf("got %q, want %q", got, tc.Want)
			}
		})
	}
}

// TestCompileStringEndToEnd covers the S6 scenario through the full
// driver: CompileString -> ast.TopLevel.
func TestCompileStringEndToEnd(t *testing.T) {
	c := cc.NewCompiler(nil)
	unit := c.CompileString("main.c", "int main() { return 0; }\n")
	if c.Failed() {
		t.Fatalf("unexpected errors: %v", c.Errors())
	}
	if unit == nil || unit.TopLevel == nil {
		t.Fatalf("expected a TopLevel result")
	}
	decl, ok := unit.TopLevel.Block.Statements[0].(*ast.Declaration)
	if !ok || decl.Identifier.Text != "main" {
		t.Fatalf("got %+v, want a Declaration named main", unit.TopLevel.Block.Statements[0])
	}
}

// TestObjectLikeMacroEndToEnd covers the S2 scenario: a macro use
// feeding the parser through the full driver.
func TestObjectLikeMacroEndToEnd(t *testing.T) {
	c := cc.NewCompiler(nil)
	unit := c.CompileString("main.c", "#define PI 314\nint x = PI;\n")
	if c.Failed() {
		t.Fatalf("unexpected errors: %v", c.Errors())
	}
	decl, ok := unit.TopLevel.Block.Statements[0].(*ast.Declaration)
	if !ok || decl.Identifier.Text != "x" {
		t.Fatalf("got %+v, want a Declaration named x", unit.TopLevel.Block.Statements[0])
	}
	lit, ok := decl.Initializer.(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralInt || lit.Int.Int64() != 314 {
		t.Fatalf("got initializer %+v, want literal integer 314", decl.Initializer)
	}
}

// TestCompileFileThroughFS mirrors the existing fstest.MapFS-backed
// CompileFile test shape.
func TestCompileFileThroughFS(t *testing.T) {
	fsys := fstest.MapFS{
		"main.c": &fstest.MapFile{Data: []byte("int x = 7;\n")},
	}
	c := cc.NewCompiler(fsys)
	unit := c.CompileFile("main.c")
	if c.Failed() {
		t.Fatalf("unexpected errors: %v", c.Errors())
	}
	decl := unit.TopLevel.Block.Statements[0].(*ast.Declaration)
	if decl.Identifier.Text != "x" {
		t.Fatalf("got identifier %q, want x", decl.Identifier.Text)
	}
}

func TestCompileFileMissing(t *testing.T) {
	fsys := fstest.MapFS{}
	c := cc.NewCompiler(fsys)
	unit := c.CompileFile("missing.c")
	if unit != nil {
		t.Fatalf("expected nil unit for a missing file")
	}
	if !c.Failed() {
		t.Fatalf("expected a recorded error for a missing file")
	}
}

// TestEmitRoundTrip exercises the printer collaborator through the
// driver.
func TestEmitRoundTrip(t *testing.T) {
	c := cc.NewCompiler(nil)
	unit := c.CompileString("main.c", "int main() { return 0; }\n")
	if c.Failed() {
		t.Fatalf("unexpected errors: %v", c.Errors())
	}
	var buf strings.Builder
	if err := c.Emit(&buf, unit.TopLevel); err != nil {
		t.Fatalf("emit error: %v", err)
	}
	want := "int main() {\n return 0;\n}\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

// TestRejectHexFloat covers the --reject-hex-float flag.
func TestRejectHexFloat(t *testing.T) {
	c := cc.NewCompiler(nil)
	c.SetRejectHexFloat(true)
	c.Preprocess("main.c", "0x1.8p1\n")
	if !c.Failed() {
		t.Fatalf("expected an error for a hex-float literal under --reject-hex-float")
	}
}

func TestHexFloatAcceptedByDefault(t *testing.T) {
	c := cc.NewCompiler(nil)
	c.Preprocess("main.c", "0x1.8p1\n")
	if c.Failed() {
		t.Fatalf("unexpected errors: %v", c.Errors())
	}
}

// TestUnknownTypeSpecifierReported covers a parse-phase error
// propagating all the way through the driver's Errors().
func TestUnknownTypeSpecifierReported(t *testing.T) {
	c := cc.NewCompiler(nil)
	unit := c.CompileString("main.c", "float x;\n")
	if !c.Failed() {
		t.Fatalf("expected an error for an unrecognized type specifier")
	}
	if unit.TopLevel != nil {
		t.Fatalf("expected a nil TopLevel on parse failure")
	}
}

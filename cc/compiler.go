// Package cc is the compiler driver: it owns one translation unit's
// arenas and orchestrates load -> lex -> preprocess -> parse -> optional
// emit, the way the existing asm.Compiler orchestrates
// parse -> expand -> assemble.
//
// Grounded on asm/compiler.go: NewCompiler(fsys), setter-style
// configuration (SetDebugLexer/SetMaxErrors/SetIncludeDepthLimit there,
// SetDebugParser/SetMaxErrors/SetColoredOutput/... here),
// CompileString/CompileFile reading through an fs.FS, and an
// accumulating Errors() list (the cap-then-abort behavior itself lives
// one layer down, in internal/diag.Bag, rather than in the driver).
package cc

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/accc-project/accc/internal/ast"
	"github.com/accc-project/accc/internal/astarena"
	"github.com/accc-project/accc/internal/diag"
	"github.com/accc-project/accc/internal/ident"
	"github.com/accc-project/accc/internal/lexer"
	"github.com/accc-project/accc/internal/parser"
	"github.com/accc-project/accc/internal/preproc"
	"github.com/accc-project/accc/internal/printer"
	"github.com/accc-project/accc/internal/source"
	"github.com/accc-project/accc/internal/token"
)

// Compiler performs one translation unit's front-end pipeline. A
// Compiler value is reusable across multiple Compile* calls; each call
// gets its own arenas and diagnostic bag, but Errors/Warnings accumulate across
// calls the way the existing Compiler.errors does.
type Compiler struct {
	fsys fs.FS

	debugParser bool
	preserveComment bool
	rejectHexFloat bool
	colored bool
	maxErrors int
	surroundingLines int
	outputExtension string
	systemIncludeDirs []string
	userIncludeDirs []string

	diagnostics []error
}

// NewCompiler creates a Compiler. fsys resolves the file names passed to
// CompileFile; it is not consulted for `#include`, since `#include` is
// recognized but not implemented in this core.
func NewCompiler(fsys fs.FS) *Compiler {
	return &Compiler{
		fsys: fsys,
		maxErrors: 0,
		surroundingLines: 1,
		outputExtension: ".g.c",
	}
}

// SetDebugParser enables/disables printing of the token stream to
// stderr as the parser consumes it.
func (c *Compiler) SetDebugParser(on bool) { c.debugParser = on }

// SetPreserveComment records the `--preserve-comment` setting. It has
// no effect on output: the preprocessor drops comment tokens, so
// Preprocess output never contains comments.
func (c *Compiler) SetPreserveComment(on bool) { c.preserveComment = on }

// SetRejectHexFloat treats hex-float literals as errors rather than
// accepting them. The check runs only in Preprocess; CompileString and
// CompileFile accept hex-float literals regardless of this setting.
func (c *Compiler) SetRejectHexFloat(on bool) { c.rejectHexFloat = on }

// SetColoredOutput enables/disables ANSI coloring of diagnostics.
func (c *Compiler) SetColoredOutput(on bool) { c.colored = on }

// SetMaxErrors sets the limit on accumulated errors before a
// translation unit's diagnostic bag aborts it. 0 (the default) means no
// limit.
func (c *Compiler) SetMaxErrors(limit int) { c.maxErrors = limit }

// SetDisplaySurroundingLines configures how many lines of source
// context accompany each diagnostic.
func (c *Compiler) SetDisplaySurroundingLines(n int) { c.surroundingLines = n }

// SetOutputExtension configures the suffix used for emitted C files
//.
func (c *Compiler) SetOutputExtension(ext string) { c.outputExtension = ext }

// AddSystemIncludeDir appends to the system include search path.
// Recorded for parity with the CLI contract; consulted by nothing yet,
// since `#include` is not implemented.
func (c *Compiler) AddSystemIncludeDir(dir string) {
	c.systemIncludeDirs = append(c.systemIncludeDirs, dir)
}

// AddUserIncludeDir appends to the user include search path.
func (c *Compiler) AddUserIncludeDir(dir string) {
	c.userIncludeDirs = append(c.userIncludeDirs, dir)
}

// OutputExtension returns the configured output extension.
func (c *Compiler) OutputExtension() string { return c.outputExtension }

// Unit is the result of compiling one translation unit: the parsed AST
// (nil if parsing failed, and always nil from Preprocess),
// the rendered preprocessed token text (only populated in --preprocess
// mode), and the pragmas the preprocessor recorded.
type Unit struct {
	TopLevel *ast.TopLevel
	Preprocessed string
	Pragmas []preproc.Pragma
}

// CompileString compiles in-memory source text under the given display
// name (used only for diagnostics; it is not looked up in fsys).
func (c *Compiler) CompileString(name, input string) *Unit {
	return c.compile(source.New(name, []byte(input)), false)
}

// CompileFile reads filename from fsys and compiles it.
func (c *Compiler) CompileFile(filename string) *Unit {
	content, err := fs.ReadFile(c.fsys, filename)
	if err != nil {
		c.diagnostics = append(c.diagnostics, err)
		return nil
	}
	return c.compile(source.New(filename, content), false)
}

// Preprocess runs only the lexer and preprocessor over input and
// returns the rendered token text.
func (c *Compiler) Preprocess(name, input string) *Unit {
	return c.compile(source.New(name, []byte(input)), true)
}

// compile runs one translation unit's pipeline. A bag with a finite
// maxErrors can panic(errAbort) mid-scan once its cap is exceeded
// (internal/diag's documented abort mechanism); CatchAbort recovers
// that here so a loud file simply stops early with its partial
// diagnostics, the same way the existing Compiler.compile recovers
// errCancelCompilation around its own pipeline.
func (c *Compiler) compile(file *source.File, preprocessOnly bool) (unit *Unit) {
	arena := astarena.New()
	idents := ident.New(arena)
	lex := lexer.New(file, idents)
	macros := preproc.NewMacroTable()
	bag := diag.NewBag(c.maxErrors)
	defer bag.CatchAbort()
	defer func() { c.collectDiagnostics(bag) }()

	pp := preproc.New(lex, macros, bag)

	if preprocessOnly {
		toks := c.drainPreprocessed(pp, bag)
		var buf bytes.Buffer
		preproc.WriteTokens(&buf, toks)
		return &Unit{Preprocessed: buf.String(), Pragmas: pp.Pragmas()}
	}

	astArena := ast.NewArena()
	p := parser.New(pp, astArena, bag)
	if c.debugParser {
		p.SetDebug(os.Stderr)
	}
	top := p.ParseTopLevel()

	return &Unit{TopLevel: top, Pragmas: pp.Pragmas()}
}

// drainPreprocessed pulls every token through pp to EOF, applying
// --reject-hex-float as it goes. Comments never reach pp.Next(), and
// --preserve-comment is not consulted here or anywhere else.
func (c *Compiler) drainPreprocessed(pp *preproc.Preprocessor, bag *diag.Bag) []token.Token {
	var toks []token.Token
	for {
		tok := pp.Next()
		if tok.Type == token.EOF {
			break
		}
		if c.rejectHexFloat && tok.Type == token.LITERAL_FLOAT && isHexFloatText(tok.Text) {
			bag.AddAt(tok.Loc, errHexFloatRejected)
		}
		toks = append(toks, tok)
	}
	return toks
}

func isHexFloatText(text string) bool {
	return strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X")
}

func (c *Compiler) collectDiagnostics(bag *diag.Bag) {
	c.diagnostics = append(c.diagnostics, bag.All()...)
}

// Errors returns every real (non-warning) diagnostic accumulated across
// all Compile*/Preprocess calls made on this Compiler.
func (c *Compiler) Errors() []error {
	var out []error
	for _, err := range c.diagnostics {
		if !diag.IsWarning(err) {
			out = append(out, err)
		}
	}
	return out
}

// Warnings returns every warning diagnostic accumulated so far.
func (c *Compiler) Warnings() []error {
	var out []error
	for _, err := range c.diagnostics {
		if diag.IsWarning(err) {
			out = append(out, err)
		}
	}
	return out
}

// Failed reports whether any real error has been recorded.
func (c *Compiler) Failed() bool {
	for _, err := range c.diagnostics {
		if !diag.IsWarning(err) {
			return true
		}
	}
	return false
}

// FormatDiagnostics renders every accumulated diagnostic in 's
// shape, using the Compiler's configured coloring/context settings.
func (c *Compiler) FormatDiagnostics() []string {
	opts := diag.Options{Colored: c.colored, SurroundingLines: c.surroundingLines}
	out := make([]string, len(c.diagnostics))
	for i, err := range c.diagnostics {
		out[i] = diag.Format(opts, err)
	}
	return out
}

// Emit writes top's equivalent C source to w, using the printer
// collaborator.
func (c *Compiler) Emit(w io.Writer, top *ast.TopLevel) error {
	var p printer.Printer
	return p.Document(w, top)
}

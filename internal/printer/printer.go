// Package printer implements the "back-end converter to C" collaborator
// describes and deliberately leaves unprescribed: it consumes
// a *ast.TopLevel and writes equivalent C source, indenting with a
// configurable pattern and emitting declarations, function definitions,
// parameter lists, literals, and return statements. It never modifies
// the AST.
//
// Grounded on the existing internal/printer.Printer (buffered
// io.Writer, SetIndent, byte/string/newline helpers, a panic-based
// internal error sentinel recovered at the single public entry point,
// and one type-switch per AST category); retargeted from assembly
// statement printing to C declaration printing, since does
// not prescribe a wire format to match byte-for-byte.
package printer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/accc-project/accc/internal/ast"
	"github.com/accc-project/accc/internal/token"
)

const defaultIndent = " "

// Printer configures and performs C emission for one TopLevel.
type Printer struct {
	out writer
	wrapped bool
	lineLength int

	indent string
	indentSet bool
	depth int
}

type writer interface {
	WriteString(string) (int, error)
	WriteByte(byte) error
}

// SetIndent configures the indentation unit used for each nesting
// level. The default is a single space.
func (p *Printer) SetIndent(s string) {
	p.indent = s
	p.indentSet = true
}

func (p *Printer) reset(w io.Writer) {
	p.out = bufio.NewWriter(w)
	p.wrapped = true
	p.depth = 0
	if !p.indentSet {
		p.indent = defaultIndent
	}
}

type printError struct{ e error }

// Document writes top as C source to w.
func (p *Printer) Document(w io.Writer, top *ast.TopLevel) (err error) {
	defer p.finish(&err)
	p.reset(w)

	for _, st := range top.Block.Statements {
		p.statement(st)
		p.newline()
	}
	return
}

func (p *Printer) finish(err *error) {
	r := recover()
	if r == nil {
		if p.wrapped {
			*err = p.out.(*bufio.Writer).Flush()
		}
		return
	}
	if pe, ok := r.(printError); ok {
		*err = pe.e
		return
	}
	panic(r)
}

func (p *Printer) byte(b byte) {
	p.lineLength++
	if err := p.out.WriteByte(b); err != nil {
		panic(printError{err})
	}
}

func (p *Printer) string(s string) {
	p.lineLength += len(s)
	if _, err := p.out.WriteString(s); err != nil {
		panic(printError{err})
	}
}

func (p *Printer) newline() {
	p.byte('\n')
	p.lineLength = 0
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth; i++ {
		p.string(p.indent)
	}
}

// statement writes one statement.
func (p *Printer) statement(st ast.Statement) {
	p.writeIndent()
	switch st := st.(type) {
	case *ast.Declaration:
		p.declaration(st)

	case *ast.Return:
		p.string("return")
		if st.Expression != nil {
			p.byte(' ')
			p.expr(st.Expression, nil)
		}
		p.byte(';')

	case *ast.EmptyStatement:
		p.byte(';')

	default:
		panic(printError{fmt.Errorf("BUG: unhandled statement type %T", st)})
	}
}

// declaration writes a Declaration in one of its four declarator-tail
// shapes.
func (p *Printer) declaration(d *ast.Declaration) {
	p.string(d.TypeSpecifier.Identifier.Text)
	p.byte(' ')
	p.string(d.Identifier.Text)

	switch {
	case d.Parameters != nil:
		p.parameterList(d.Parameters)
		if d.FunctionBody != nil {
			p.byte(' ')
			p.block(d.FunctionBody)
			return
		}
		p.byte(';')

	case d.Initializer != nil:
		p.string(" = ")
		p.expr(d.Initializer, nil)
		p.byte(';')

	default:
		p.byte(';')
	}
}

// block writes a brace-delimited statement sequence, indenting its
// contents one level deeper than the block itself.
func (p *Printer) block(b *ast.Block) {
	p.byte('{')
	if len(b.Statements) == 0 {
		p.byte('}')
		return
	}
	p.depth++
	for _, st := range b.Statements {
		p.newline()
		p.statement(st)
	}
	p.depth--
	p.newline()
	p.writeIndent()
	p.byte('}')
}

// parameterList writes a Parameters list.
func (p *Printer) parameterList(params *ast.Parameters) {
	p.byte('(')
	for i, param := range params.List {
		if i > 0 {
			p.string(", ")
		}
		p.parameter(param)
	}
	p.byte(')')
}

func (p *Printer) parameter(param *ast.Parameter) {
	if param.IsVarArgs {
		p.string("...")
		return
	}
	p.string(param.TypeName.Text)
	for i := 0; i < param.PointerDepth; i++ {
		p.byte('*')
	}
	if param.Declarator != nil {
		p.byte(' ')
		p.string(param.Declarator.Identifier.Text)
	}
}

// expr writes an expression, adding parens
// around a unary's operand only when the operand is itself a unary
// expression, to keep output unambiguous without over-parenthesizing.
func (p *Printer) expr(e ast.Expr, parent ast.Expr) {
	switch e := e.(type) {
	case *ast.Literal:
		p.literal(e)

	case *ast.Identifier:
		p.string(e.Name.Text)

	case *ast.Unary:
		p.string(token.ToDisplayString(e.Op))
		if _, nested := e.Operand.(*ast.Unary); nested {
			p.byte('(')
			p.expr(e.Operand, e)
			p.byte(')')
		} else {
			p.expr(e.Operand, e)
		}

	case *ast.Binary:
		p.expr(e.Left, e)
		p.byte(' ')
		p.string(token.ToDisplayString(e.Op))
		p.byte(' ')
		p.expr(e.Right, e)

	default:
		panic(printError{fmt.Errorf("BUG: unhandled expr type %T", e)})
	}
}

func (p *Printer) literal(lit *ast.Literal) {
	switch lit.Kind {
	case ast.LiteralBool:
		if lit.Bool {
			p.string("true")
		} else {
			p.string("false")
		}
	case ast.LiteralInt:
		p.string(lit.Int.String())
	case ast.LiteralFloat:
		p.string(fmt.Sprintf("%g", lit.Float))
	case ast.LiteralNull:
		p.string("NULL")
	case ast.LiteralString:
		p.quotedString(lit.String)
	default:
		panic(printError{fmt.Errorf("BUG: unhandled literal kind %v", lit.Kind)})
	}
}

func (p *Printer) quotedString(s string) {
	p.byte('"')
	for _, c := range s {
		switch c {
		case '\\':
			p.string(`\\`)
		case '"':
			p.string(`\"`)
		default:
			p.string(string(c))
		}
	}
	p.byte('"')
}

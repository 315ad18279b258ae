// Package parser implements the recursive-descent parser:
// a current-token model that advances via goto_next, where every
// productive function returns a new AST node allocated in the AST
// arena, or nil after reporting exactly one diagnostic. There is no
// error recovery: one failure ends the production rather than
// resyncing to the next statement, since that resync is future work
// rather than current contract.
package parser

import (
	"fmt"
	"io"

	"github.com/accc-project/accc/internal/ast"
	"github.com/accc-project/accc/internal/preproc"
	"github.com/accc-project/accc/internal/source"
	"github.com/accc-project/accc/internal/token"
)

// onlyRecognizedType is the sole type-specifier spelling this core
// accepts.
const onlyRecognizedType = "int"

// Diagnostics is the subset of diag.Bag the parser needs.
type Diagnostics interface {
	AddAt(loc source.Location, err error)
}

// Parser consumes a Preprocessor's token stream and builds an AST in
// arena.
type Parser struct {
	pp *preproc.Preprocessor
	arena *ast.Arena
	diags Diagnostics
	current token.Token

	debug io.Writer
}

// New creates a Parser reading from pp, allocating nodes in arena, and
// reporting through diags. It primes the first current token.
func New(pp *preproc.Preprocessor, arena *ast.Arena, diags Diagnostics) *Parser {
	p := &Parser{pp: pp, arena: arena, diags: diags}
	p.advance()
	return p
}

// SetDebug makes the parser trace every token it consumes to w, in the
// shape the existing lexer.emit trace uses for its own `-debug` output.
func (p *Parser) SetDebug(w io.Writer) {
	p.debug = w
	if w != nil {
		fmt.Fprintf(w, "%4d:%-3d (%-20v) %s\n", p.current.Loc.Row, p.current.Loc.Column, p.current.Type, p.current.Text)
	}
}

func (p *Parser) advance() {
	p.current = p.pp.Next()
	if p.debug != nil {
		fmt.Fprintf(p.debug, "%4d:%-3d (%-20v) %s\n", p.current.Loc.Row, p.current.Loc.Column, p.current.Type, p.current.Text)
	}
}

// expect advances past current if it has type t, else reports
// errExpectedToken and returns false.
func (p *Parser) expect(t token.Type) bool {
	if p.current.Type != t {
		p.diags.AddAt(p.current.Loc, &parseError{c: errExpectedToken, expected: token.ToDisplayString(t), actual: p.current})
		return false
	}
	p.advance()
	return true
}

// ParseTopLevel parses the whole token stream as 's
// `top-level := { declaration }`, returning nil if any declaration
// failed to parse.
func (p *Parser) ParseTopLevel() *ast.TopLevel {
	loc := p.current.Loc
	block := p.arena.NewBlock()
	block.Loc = loc

	for p.current.Type != token.EOF {
		stmt := p.parseTopLevelDeclaration()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
	}

	top := p.arena.NewTopLevel()
	top.Loc = loc
	top.Block = block
	return top
}

// parseTopLevelDeclaration rejects anything that isn't the start of a
// declaration.
func (p *Parser) parseTopLevelDeclaration() *ast.Declaration {
	if p.current.Type != token.IDENTIFIER {
		p.diags.AddAt(p.current.Loc, &parseError{c: errOnlyDeclarationsAtTopLevel, actual: p.current})
		return nil
	}
	return p.parseDeclaration()
}

// parseDeclaration implements `declaration := type-spec identifier
// declarator-tail`, dispatching on the four
// declarator-tail alternatives.
func (p *Parser) parseDeclaration() *ast.Declaration {
	typeTok := p.current
	if typeTok.IdentifierText() != onlyRecognizedType {
		p.diags.AddAt(typeTok.Loc, &parseError{c: errUnknownTypeSpecifier, actual: typeTok})
		return nil
	}
	typeSpec := p.arena.NewTypeSpecifier()
	typeSpec.Loc = typeTok.Loc
	typeSpec.Identifier = typeTok.Ident
	p.advance()

	if p.current.Type != token.IDENTIFIER {
		p.diags.AddAt(p.current.Loc, &parseError{c: errExpectedToken, expected: "<identifier>", actual: p.current})
		return nil
	}
	nameTok := p.current
	p.advance()

	decl := p.arena.NewDeclaration()
	decl.Loc = typeTok.Loc
	decl.TypeSpecifier = typeSpec
	decl.Identifier = nameTok.Ident

	switch p.current.Type {
	case token.SEMI_COLON:
		// case 1: bare declaration
		p.advance()
		return decl

	case token.EQUAL:
		// case 2: initialized declaration
		p.advance()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		decl.Initializer = expr
		if !p.expect(token.SEMI_COLON) {
			return nil
		}
		return decl

	case token.PAREN_L:
		p.advance()
		params, ok := p.parseParameterList()
		if !ok {
			return nil
		}
		if !p.expect(token.PAREN_R) {
			return nil
		}
		decl.Parameters = params

		switch p.current.Type {
		case token.SEMI_COLON:
			// case 3: function prototype
			p.advance()
			return decl
		case token.BRACE_L:
			// case 4: function definition
			body := p.parseBlock(params)
			if body == nil {
				return nil
			}
			decl.FunctionBody = body
			return decl
		default:
			p.diags.AddAt(p.current.Loc, &parseError{c: errExpectedToken, expected: "';' or '{'", actual: p.current})
			return nil
		}

	default:
		p.diags.AddAt(p.current.Loc, &parseError{c: errExpectedToken, expected: "';', '=' or '('", actual: p.current})
		return nil
	}
}

// parseParameterList parses a parenthesized parameter list with the
// opening '(' already consumed.
func (p *Parser) parseParameterList() (*ast.Parameters, bool) {
	loc := p.current.Loc
	params := p.arena.NewParameters()
	params.Loc = loc

	if p.current.Type == token.PAREN_R {
		return params, true
	}

	for {
		param, ok := p.parseParameter()
		if !ok {
			return nil, false
		}
		params.List = append(params.List, param)

		if p.current.Type != token.COMMA {
			break
		}
		p.advance()
	}
	return params, true
}

// parseParameter parses one `type-spec ('*')* identifier?` entry, or
// the `...` var-args marker.
func (p *Parser) parseParameter() (*ast.Parameter, bool) {
	loc := p.current.Loc

	if p.current.Type == token.TRIPLE_DOT {
		p.advance()
		param := p.arena.NewParameter()
		param.Loc = loc
		param.IsVarArgs = true
		return param, true
	}

	if p.current.Type != token.IDENTIFIER {
		p.diags.AddAt(p.current.Loc, &parseError{c: errExpectedToken, expected: "<identifier>", actual: p.current})
		return nil, false
	}
	typeTok := p.current
	if typeTok.IdentifierText() != onlyRecognizedType {
		p.diags.AddAt(typeTok.Loc, &parseError{c: errUnknownTypeSpecifier, actual: typeTok})
		return nil, false
	}
	p.advance()

	param := p.arena.NewParameter()
	param.Loc = loc
	param.TypeName = typeTok.Ident
	for p.current.Type == token.STAR {
		param.PointerDepth++
		p.advance()
	}

	if p.current.Type == token.IDENTIFIER {
		declLoc := p.current.Loc
		declIdent := p.current.Ident
		p.advance()
		decl := p.arena.NewDeclarator()
		decl.Loc = declLoc
		decl.Identifier = declIdent
		decl.PointerDepth = param.PointerDepth
		param.Declarator = decl
	}
	return param, true
}

// parseBlock implements the unexpanded `block` production implied by
// declarator-tail case 4: `'{' { statement } '}'`, with statements
// limited to the grammar subset's declaration/return-stmt/empty-stmt
//.
func (p *Parser) parseBlock(params *ast.Parameters) *ast.Block {
	if !p.expect(token.BRACE_L) {
		return nil
	}
	block := p.arena.NewBlock()
	block.Parameters = params

	for p.current.Type != token.BRACE_R {
		if p.current.Type == token.EOF {
			p.diags.AddAt(p.current.Loc, &parseError{c: errUnexpectedEOFAfter, expected: "statement"})
			return nil
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
	}
	p.advance()
	return block
}

// parseStatement parses one of the grammar subset's statement kinds.
func (p *Parser) parseStatement() ast.Statement {
	switch p.current.Type {
	case token.SEMI_COLON:
		loc := p.current.Loc
		p.advance()
		empty := p.arena.NewEmptyStatement()
		empty.Loc = loc
		return empty

	case token.RETURN:
		return p.parseReturn()

	case token.IDENTIFIER:
		return p.parseDeclaration()

	default:
		p.diags.AddAt(p.current.Loc, &parseError{c: errExpectedToken, expected: "a statement", actual: p.current})
		return nil
	}
}

// parseReturn implements `return-stmt := 'return' expression`.
func (p *Parser) parseReturn() *ast.Return {
	loc := p.current.Loc
	p.advance() // consume 'return'

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	if !p.expect(token.SEMI_COLON) {
		return nil
	}
	ret := p.arena.NewReturn()
	ret.Loc = loc
	ret.Expression = expr
	return ret
}

// parseExpression implements the grammar subset's expression grammar:
// `primary` preceded by an optional `unary` prefix. Binary operators
// are reserved and not parsed here.
func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrimary()
}

var unaryOps = map[token.Type]bool{
	token.AMP: true, token.DOT: true, token.EXCLAM: true,
	token.MINUS: true, token.PLUS: true, token.STAR: true, token.TILDE: true,
}

// parsePrimary implements `primary := literal | identifier-use | '('
// expression ')' | unary`, applying the postfix dispatch after an
// identifier-use.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.current

	if unaryOps[tok.Type] {
		loc := tok.Loc
		p.advance()
		operand := p.parsePrimary()
		if operand == nil {
			return nil
		}
		u := p.arena.NewUnary()
		u.Loc = loc
		u.Op = tok.Type
		u.Operand = operand
		return u
	}

	switch tok.Type {
	case token.LITERAL_BOOL:
		p.advance()
		lit := p.arena.NewLiteral()
		lit.Loc = tok.Loc
		lit.Kind = ast.LiteralBool
		lit.Bool = tok.Lit.Bool
		return lit

	case token.LITERAL_INTEGER:
		p.advance()
		lit := p.arena.NewLiteral()
		lit.Loc = tok.Loc
		lit.Kind = ast.LiteralInt
		lit.Int = tok.Lit.Int
		return lit

	case token.LITERAL_FLOAT:
		p.advance()
		lit := p.arena.NewLiteral()
		lit.Loc = tok.Loc
		lit.Kind = ast.LiteralFloat
		lit.Float = tok.Lit.Float
		return lit

	case token.LITERAL_STRING:
		p.advance()
		lit := p.arena.NewLiteral()
		lit.Loc = tok.Loc
		lit.Kind = ast.LiteralString
		lit.String = tok.Lit.String
		return lit

	case token.LITERAL_NULL:
		p.advance()
		lit := p.arena.NewLiteral()
		lit.Loc = tok.Loc
		lit.Kind = ast.LiteralNull
		return lit

	case token.PAREN_L:
		p.advance()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		if !p.expect(token.PAREN_R) {
			return nil
		}
		return inner

	case token.IDENTIFIER:
		return p.parseIdentifierUse(tok)

	default:
		p.diags.AddAt(tok.Loc, &parseError{c: errExpectedToken, expected: "an expression", actual: tok})
		return nil
	}
}

// parseIdentifierUse implements the postfix dispatch after an
// identifier in expression position: '(' and '[' and '.' are reserved
// (function call, array access, member access); another identifier
// means the preceding one was actually a type-spec and this is a
// nested declaration, not an expression.
func (p *Parser) parseIdentifierUse(tok token.Token) ast.Expr {
	p.advance()

	switch p.current.Type {
	case token.PAREN_L:
		p.diags.AddAt(p.current.Loc, &parseError{c: errNotImplemented, feature: "function calls"})
		return nil
	case token.SQUARE_L:
		p.diags.AddAt(p.current.Loc, &parseError{c: errNotImplemented, feature: "array access"})
		return nil
	case token.DOT:
		p.diags.AddAt(p.current.Loc, &parseError{c: errNotImplemented, feature: "member access"})
		return nil
	}

	id := p.arena.NewIdentifier()
	id.Loc = tok.Loc
	id.Name = tok.Ident
	return id
}

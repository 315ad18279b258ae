// Package preproc implements the macro preprocessor: a
// directive-dispatching, token-stack-based expander sitting between the
// lexer and the parser.
//
// Recursion prevention uses a sticky CannotExpand bit on the interned
// identifier itself, unlocked when its owning TokenStack frame pops,
// rather than a per-expansion hideset map, because this ties the lock
// to the identifier's lifetime rather than to one expansion call.
package preproc

import (
	"github.com/accc-project/accc/internal/ident"
	"github.com/accc-project/accc/internal/lexer"
	"github.com/accc-project/accc/internal/source"
	"github.com/accc-project/accc/internal/token"
)

// Pragma is a recognized-but-inert `#pragma name value...` directive.
// Pragmas are recorded in source order and exposed through
// Preprocessor.Pragmas rather than discarded like the other
// unimplemented directives; the parser does not attach them to the AST.
type Pragma struct {
	Loc source.Location
	Name string
	Value []token.Token
}

// Diagnostics is the subset of diag.Bag the preprocessor needs; kept as
// an interface so package preproc does not import package diag's error
// cap/panic machinery directly, only the two calls it makes.
type Diagnostics interface {
	Add(errs...error) bool
	AddAt(loc source.Location, err error)
}

// Preprocessor sits between a Lexer and a Diagnostics sink, producing
// the post-expansion, directive-free token stream the parser consumes.
type Preprocessor struct {
	lex *lexer.Lexer
	macros *MacroTable
	diags Diagnostics
	stack *tokenStack

	pragmas []Pragma
}

// New creates a Preprocessor reading from lex, expanding against
// macros, and reporting through diags.
func New(lex *lexer.Lexer, macros *MacroTable, diags Diagnostics) *Preprocessor {
	p := &Preprocessor{lex: lex, macros: macros, diags: diags}
	p.stack = &tokenStack{fallback: func() (token.Token, bool) {
		return p.lex.Next(), true
	}}
	return p
}

// Macros returns the live macro table (shared across #include'd files
// within one translation unit).
func (p *Preprocessor) Macros() *MacroTable { return p.macros }

// Pragmas returns every `#pragma` directive seen so far, in source
// order.
func (p *Preprocessor) Pragmas() []Pragma { return p.pragmas }

// popSignificant pops from s, skipping HORIZONTAL_WHITESPACE and
// COMMENT but returning NEW_LINE/EOF as-is: directive parsing needs
// horizontal whitespace and comments skipped while newlines are still
// visible as a directive's end.
func (p *Preprocessor) popSignificant(s *tokenStack) token.Token {
	for {
		tok, _ := s.pop()
		if tok.Type == token.HORIZONTAL_WHITESPACE || tok.Type == token.COMMENT {
			continue
		}
		return tok
	}
}

// Next returns the next token the parser should see: directives are
// consumed and dispatched, macro identifiers are expanded (possibly
// repeatedly, since expansion can produce further expandable
// identifiers — step 7), and whitespace/comments/newlines
// never reach the caller.
func (p *Preprocessor) Next() token.Token {
	for {
		tok := p.popSignificant(p.stack)
		if tok.Type == token.NEW_LINE {
			continue
		}
		if tok.Type == token.HASH && tok.BeginningOfLine {
			p.handleDirective(tok)
			continue
		}
		if p.tryExpandOnStack(p.stack, tok) {
			continue
		}
		return tok
	}
}

// handleDirective dispatches on the directive word following a
// beginning-of-line HASH token.
func (p *Preprocessor) handleDirective(hashTok token.Token) {
	word := p.popSignificant(p.stack)
	if word.Type != token.IDENTIFIER {
		p.diags.AddAt(word.Loc, &ppError{c: errDirectiveMissingIdentifier})
		p.discardToEOL(word)
		return
	}
	switch word.IdentifierText() {
	case "define":
		p.handleDefine()
	case "undef":
		p.handleUndef()
	case "pragma":
		p.handlePragma(hashTok)
	default:
		p.diags.AddAt(word.Loc, &ppError{c: errUnknownDirective, text: word.IdentifierText()})
		p.discardToEOL(word)
	}
}

// discardToEOL consumes remaining directive tokens through the
// terminating NEW_LINE/EOF.
func (p *Preprocessor) discardToEOL(last token.Token) {
	for last.Type != token.NEW_LINE && last.Type != token.EOF {
		last = p.popSignificant(p.stack)
	}
}

// handleDefine implements `#define`.
func (p *Preprocessor) handleDefine() {
	nameTok := p.popSignificant(p.stack)
	if nameTok.Type != token.IDENTIFIER {
		p.diags.AddAt(nameTok.Loc, &ppError{c: errDirectiveMissingIdentifier})
		p.discardToEOL(nameTok)
		return
	}

	m := &Macro{Name: nameTok.Ident}

	next := p.popSignificant(p.stack)
	if next.Type == token.PAREN_L && !next.PreviousWasSpace {
		m.IsFunctionLike = true
		m.Params = p.parseParamList()
	} else {
		p.stack.unpop(next)
	}

	m.Body = p.collectBody()
	p.macros.Define(m)
}

// parseParamList reads a function-like macro's parameter list, with
// the opening '(' already consumed.
func (p *Preprocessor) parseParamList() []*ident.Handle {
	var params []*ident.Handle
	tok := p.popSignificant(p.stack)
	if tok.Type == token.PAREN_R {
		return params
	}
	for {
		if tok.Type == token.IDENTIFIER {
			params = append(params, tok.Ident)
		} else {
			p.diags.AddAt(tok.Loc, &ppError{c: errDirectiveMissingIdentifier})
		}
		sep := p.popSignificant(p.stack)
		if sep.Type == token.PAREN_R {
			break
		}
		if sep.Type != token.COMMA {
			p.diags.AddAt(sep.Loc, &ppError{c: errDirectiveMissingIdentifier})
			break
		}
		tok = p.popSignificant(p.stack)
	}
	return params
}

// collectBody reads a macro body up to (not including) the terminating
// NEW_LINE/EOF, rejecting a leading or trailing ##.
func (p *Preprocessor) collectBody() []token.Token {
	var body []token.Token
	for {
		tok := p.popSignificant(p.stack)
		if tok.Type == token.NEW_LINE || tok.Type == token.EOF {
			break
		}
		body = append(body, tok)
	}
	if len(body) > 0 {
		if body[0].Type == token.DOUBLE_HASH {
			p.diags.AddAt(body[0].Loc, &ppError{c: errDoubleHashAtBoundary, text: "start"})
		}
		if body[len(body)-1].Type == token.DOUBLE_HASH {
			p.diags.AddAt(body[len(body)-1].Loc, &ppError{c: errDoubleHashAtBoundary, text: "end"})
		}
	}
	return body
}

// handleUndef implements `#undef`.
func (p *Preprocessor) handleUndef() {
	nameTok := p.popSignificant(p.stack)
	if nameTok.Type != token.IDENTIFIER {
		p.diags.AddAt(nameTok.Loc, &ppError{c: errDirectiveMissingIdentifier})
		p.discardToEOL(nameTok)
		return
	}
	p.macros.Undef(nameTok.Ident)

	trailing := p.popSignificant(p.stack)
	if trailing.Type != token.NEW_LINE && trailing.Type != token.EOF {
		p.diags.AddAt(trailing.Loc, &ppError{c: errExtraTokensAfterUndef, text: nameTok.IdentifierText()})
		p.discardToEOL(trailing)
	}
}

// handlePragma records a `#pragma` directive's name and value tokens
// rather than discarding them.
func (p *Preprocessor) handlePragma(hashTok token.Token) {
	nameTok := p.popSignificant(p.stack)
	if nameTok.Type != token.IDENTIFIER {
		p.diags.AddAt(nameTok.Loc, &ppError{c: errDirectiveMissingIdentifier})
		p.discardToEOL(nameTok)
		return
	}
	var value []token.Token
	tok := p.popSignificant(p.stack)
	for tok.Type != token.NEW_LINE && tok.Type != token.EOF {
		value = append(value, tok)
		tok = p.popSignificant(p.stack)
	}
	p.pragmas = append(p.pragmas, Pragma{Loc: hashTok.Loc, Name: nameTok.IdentifierText(), Value: value})
}

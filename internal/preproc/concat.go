package preproc

import "github.com/accc-project/accc/internal/token"

// spliceBody builds a macro's replacement token list, substituting
// parameters by pointer identity against args and resolving any ##
// concatenation. args is nil for
// object-like macros, which have none.
func (p *Preprocessor) spliceBody(m *Macro, args [][]token.Token, callTok token.Token) []token.Token {
	var out []token.Token
	for _, bt := range m.Body {
		if bt.Ident != nil {
			if idx, ok := m.ParamIndex(bt.Ident); ok {
				var argToks []token.Token
				if idx < len(args) {
					argToks = args[idx]
				}
				out = p.appendTokens(out, argToks)
				continue
			}
		}
		out = p.appendWithConcat(out, bt)
	}
	if len(out) > 0 {
		out[0].PreviousWasSpace = callTok.PreviousWasSpace
		out[0].BeginningOfLine = callTok.BeginningOfLine
	}
	return out
}

// appendTokens appends a run of tokens (typically a substituted
// argument), pasting only its first token against a preceding ##
//.
func (p *Preprocessor) appendTokens(out []token.Token, toks []token.Token) []token.Token {
	for i, t := range toks {
		if i == 0 {
			out = p.appendWithConcat(out, t)
		} else {
			out = append(out, t)
		}
	}
	return out
}

// appendWithConcat appends tok to out, performing ## concatenation if
// the token already at the top of out is a DOUBLE_HASH marker: the two
// tokens straddling ## are concatenated into one.
func (p *Preprocessor) appendWithConcat(out []token.Token, tok token.Token) []token.Token {
	if n := len(out); n >= 2 && out[n-1].Type == token.DOUBLE_HASH {
		left := out[n-2]
		out = out[:n-2]
		return append(out, p.concat(left, tok)...)
	}
	return append(out, tok)
}

// concat joins left and right's verbatim text into the preprocessor's
// concatenation scratch buffer and re-lexes it with the same lexer
// instance swapped onto that buffer.
func (p *Preprocessor) concat(left, right token.Token) []token.Token {
	snap := p.lex.SwapBuffer(left.Text + right.Text)
	defer p.lex.Restore(snap)

	var out []token.Token
	for {
		tok := p.lex.Next()
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.HORIZONTAL_WHITESPACE || tok.Type == token.COMMENT || tok.Type == token.NEW_LINE {
			continue
		}
		tok.Loc = left.Loc
		tok.PreviousWasSpace = left.PreviousWasSpace
		out = append(out, tok)
	}
	return out
}

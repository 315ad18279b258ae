package preproc

import "github.com/accc-project/accc/internal/token"

// tryExpandOnStack runs macro expansion against an arbitrary
// tokenStack: the live translation-unit stack when called from Next,
// or a bounded per-argument stack when called recursively while
// expanding a function-like macro's arguments, since each argument's
// own tokens are themselves expanded before substitution.
//
// It returns true when tok was consumed and an expansion was pushed
// onto s for the caller to re-fetch. When tok names a function-like
// macro that is not followed by '(', the lookahead token is pushed back
// and false is returned, so the caller emits tok itself.
func (p *Preprocessor) tryExpandOnStack(s *tokenStack, tok token.Token) bool {
	if tok.Ident == nil {
		return false
	}
	m, ok := p.macros.Lookup(tok.Ident)
	if !ok || tok.Ident.CannotExpand {
		return false
	}

	if !m.IsFunctionLike {
		p.pushExpansion(s, m, p.spliceBody(m, nil, tok))
		return true
	}

	next, ok := s.pop()
	if !ok || next.Type != token.PAREN_L {
		if ok {
			s.unpop(next)
		}
		return false
	}

	args, ok := p.parseCallArgs(s, m, tok)
	if !ok {
		// Diagnostic already recorded; drop the call rather than risk
		// looping forever on a malformed stream.
		return true
	}
	p.pushExpansion(s, m, p.spliceBody(m, args, tok))
	return true
}

// pushExpansion locks m and pushes its spliced replacement tokens as a
// new frame.
func (p *Preprocessor) pushExpansion(s *tokenStack, m *Macro, body []token.Token) {
	m.Name.CannotExpand = true
	s.push(&tokenList{tokens: body, macro: m})
}

// expandAll fully expands a bounded token slice in isolation (no lexer
// fallback), used for argument pre-expansion.
func (p *Preprocessor) expandAll(toks []token.Token) []token.Token {
	s := &tokenStack{frames: []*tokenList{{tokens: toks}}}
	var out []token.Token
	for {
		tok, ok := s.pop()
		if !ok {
			return out
		}
		if tok.Type == token.HORIZONTAL_WHITESPACE || tok.Type == token.COMMENT {
			continue
		}
		if p.tryExpandOnStack(s, tok) {
			continue
		}
		out = append(out, tok)
	}
}

// parseCallArgs parses and pre-expands a function-like macro call's
// argument list, with the opening '(' already consumed. An argument
// whose parameter appears next to ## anywhere in the body is not
// pre-expanded; it is substituted as written at every use of that
// parameter.
func (p *Preprocessor) parseCallArgs(s *tokenStack, m *Macro, callTok token.Token) ([][]token.Token, bool) {
	var rawArgs [][]token.Token
	var cur []token.Token
	depth := 1

	for {
		tok, ok := s.pop()
		if !ok || tok.Type == token.EOF {
			p.diags.AddAt(callTok.Loc, &ppError{c: errMacroCallMissingRParen, text: callTok.IdentifierText()})
			return nil, false
		}
		if tok.Type == token.HORIZONTAL_WHITESPACE || tok.Type == token.COMMENT {
			continue
		}
		switch {
		case tok.Type == token.PAREN_L:
			depth++
			cur = append(cur, tok)
		case tok.Type == token.PAREN_R:
			depth--
			if depth == 0 {
				if len(cur) > 0 || len(rawArgs) > 0 || len(m.Params) > 0 {
					rawArgs = append(rawArgs, cur)
				}
				goto done
			}
			cur = append(cur, tok)
		case tok.Type == token.COMMA && depth == 1:
			rawArgs = append(rawArgs, cur)
			cur = nil
		default:
			cur = append(cur, tok)
		}
	}
done:

	if len(rawArgs) < len(m.Params) {
		p.diags.AddAt(callTok.Loc, &ppError{c: errMacroCallMissingArgs, text: callTok.IdentifierText()})
		return nil, false
	}

	expanded := make([][]token.Token, len(rawArgs))
	for i, a := range rawArgs {
		pasted := false
		for j, bt := range m.Body {
			if i < len(m.Params) && bt.Ident == m.Params[i] &&
				((j > 0 && m.Body[j-1].Type == token.DOUBLE_HASH) ||
					(j+1 < len(m.Body) && m.Body[j+1].Type == token.DOUBLE_HASH)) {
				pasted = true
			}
		}
		if pasted {
			expanded[i] = a
		} else {
			expanded[i] = p.expandAll(a)
		}
	}
	return expanded, true
}

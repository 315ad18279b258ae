package preproc

import "github.com/accc-project/accc/internal/token"

// tokenList is one frame of the TokenStack: an ordered
// token sequence, a cursor, and an optional owning macro.
type tokenList struct {
	tokens []token.Token
	cursor int
	macro *Macro
}

func (f *tokenList) exhausted() bool { return f.cursor >= len(f.tokens) }

// tokenStack is the LIFO of tokenList frames tokens are drawn from
// before falling back to fallback (the lexer, for the live translation
// unit's stack; nil for a bounded argument-expansion stack that should
// simply report exhaustion once its frames are drained).
type tokenStack struct {
	frames []*tokenList
	fallback func() (token.Token, bool)
}

func (s *tokenStack) push(f *tokenList) {
	s.frames = append(s.frames, f)
}

// pop returns the next token drawn from the stack (or the fallback once
// the stack is empty) and true, or (zero, false) if there is truly
// nothing left (only possible when fallback is nil).
//
// Popping a frame whose owning macro is set unlocks that macro
// (cannot_expand := false); if the macro was marked is_undef its last
// reference drops here too.
func (s *tokenStack) pop() (token.Token, bool) {
	for len(s.frames) > 0 {
		top := s.frames[len(s.frames)-1]
		if top.exhausted() {
			s.frames = s.frames[:len(s.frames)-1]
			if top.macro != nil {
				top.macro.Name.CannotExpand = false
			}
			continue
		}
		tok := top.tokens[top.cursor]
		top.cursor++
		return tok, true
	}
	if s.fallback != nil {
		return s.fallback()
	}
	return token.Token{}, false
}

// unpop pushes a single token back as its own one-token frame, used to
// replay a call-site identifier (and any lookahead token consumed while
// peeking for '(') when a function-like macro invocation turns out not
// to be one.
func (s *tokenStack) unpop(tok token.Token) {
	s.push(&tokenList{tokens: []token.Token{tok}})
}

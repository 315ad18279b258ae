// Package lexer turns source bytes into a stream of tokens.
//
// The scanner is a rune-at-a-time reader with next/backup/peek primitives,
// the same discipline the existing assembly lexer uses (stateFn-style
// next/backup/peek/accept/acceptRun over a rune buffer), generalized here
// to C's richer token set: numeric literals across bases 2/8/10/16
// (including hex-floats and digit separators), string/char literals with
// encoding prefixes, and comments/whitespace preserved as tokens rather
// than discarded, invariant 6.
package lexer

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/accc-project/accc/internal/ident"
	"github.com/accc-project/accc/internal/source"
	"github.com/accc-project/accc/internal/token"
)

const eof = -1

// Lexer scans one source file into tokens on demand via Next.
type Lexer struct {
	file *source.File
	src string
	idents *ident.Table

	pos int // byte offset of the rune about to be read
	start int // byte offset of the token being built
	row, col int
	startRow int
	startCol int

	prevWasSpace bool
	atBeginningLine bool

	// errCount is informational only; the lexer never aborts, it emits
	// ERROR tokens and keeps going.
	errCount int
}

// New creates a Lexer over file. idents is shared across the whole
// translation unit so that identifiers lexed from included files and the
// main file intern into the same table.
func New(file *source.File, idents *ident.Table) *Lexer {
	return &Lexer{
		file: file,
		src: string(file.Content),
		idents: idents,
		row: 1,
		col: 1,
		atBeginningLine: true,
	}
}

// Snapshot is an opaque save point for the lexer's cursor, used to swap
// the lexer onto a scratch buffer for ## concatenation and to restore it
// afterward.
type Snapshot struct {
	file *source.File
	src string
	pos, start int
	row, col int
	startRow int
	startCol int
	prevWasSpace bool
	atBeginningLine bool
}

// Save captures the lexer's current position.
func (l *Lexer) Save() Snapshot {
	return Snapshot{
		file: l.file, src: l.src,
		pos: l.pos, start: l.start,
		row: l.row, col: l.col,
		startRow: l.startRow, startCol: l.startCol,
		prevWasSpace: l.prevWasSpace, atBeginningLine: l.atBeginningLine,
	}
}

// Restore rewinds the lexer to a previously captured Snapshot.
func (l *Lexer) Restore(s Snapshot) {
	l.file, l.src = s.file, s.src
	l.pos, l.start = s.pos, s.start
	l.row, l.col = s.row, s.col
	l.startRow, l.startCol = s.startRow, s.startCol
	l.prevWasSpace, l.atBeginningLine = s.prevWasSpace, s.atBeginningLine
}

// SwapBuffer points the lexer at an unrelated scratch string (used by the
// preprocessor's ## operator, step 3), returning a Snapshot
// that restores the original file/position when passed to Restore.
func (l *Lexer) SwapBuffer(text string) Snapshot {
	s := l.Save()
	l.file = nil
	l.src = text
	l.pos, l.start = 0, 0
	l.row, l.col = 1, 1
	l.startRow, l.startCol = 1, 1
	l.prevWasSpace = false
	l.atBeginningLine = true
	return s
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.src) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += w
	if r == '\n' {
		l.row++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) backup(prev rune) {
	if prev == eof {
		return
	}
	l.pos -= utf8.RuneLen(prev)
	if prev == '\n' {
		l.row--
		l.col = 1 // column tracking across a backed-up newline is approximate
	} else {
		l.col--
	}
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup(r)
	return r
}

func (l *Lexer) peekAt(offset int) rune {
	pos := l.pos
	for i := 0; i < offset; i++ {
		if pos >= len(l.src) {
			return eof
		}
		_, w := utf8.DecodeRuneInString(l.src[pos:])
		pos += w
	}
	if pos >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.src[pos:])
	return r
}

func (l *Lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.peek()) {
		l.next()
		return true
	}
	return false
}

func (l *Lexer) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.peek()) {
		l.next()
	}
}

func (l *Lexer) text() string {
	return l.src[l.start:l.pos]
}

func (l *Lexer) loc() source.Location {
	return source.Location{File: l.file, Row: l.startRow, Column: l.startCol, Offset: l.start}
}

func (l *Lexer) emit(typ token.Type) token.Token {
	t := token.Token{
		Type: typ,
		Loc: l.loc(),
		Text: l.text(),
		PreviousWasSpace: l.prevWasSpace,
		BeginningOfLine: l.atBeginningLine,
	}
	if typ != token.HORIZONTAL_WHITESPACE && typ != token.COMMENT {
		l.atBeginningLine = false
		l.prevWasSpace = false
	}
	l.start = l.pos
	l.startRow, l.startCol = l.row, l.col
	return t
}

func (l *Lexer) errorf(format string, args...interface{}) token.Token {
	l.errCount++
	t := token.Token{Type: token.ERROR, Loc: l.loc(), Text: fmt.Sprintf(format, args...)}
	l.start = l.pos
	l.startRow, l.startCol = l.row, l.col
	l.atBeginningLine = false
	return t
}

// Next scans and returns the next token. It never returns a nil-typed
// zero value: after the source is exhausted it returns an endless stream
// of EOF tokens, consistent with the existing runLexer "keep emitting
// eof" convention.
func (l *Lexer) Next() token.Token {
	l.start = l.pos
	l.startRow, l.startCol = l.row, l.col

	r := l.next()
	switch {
	case r == eof:
		return l.emit(token.EOF)
	case r == '\n':
		tok := l.emit(token.NEW_LINE)
		l.atBeginningLine = true
		l.prevWasSpace = false
		return tok
	case r == '\r':
		// A lone CR is its own line terminator; a CR immediately
		// followed by LF is one CRLF terminator, not two.
		if l.peek() == '\n' {
			l.next()
		} else {
			l.row++
			l.col = 1
		}
		tok := l.emit(token.NEW_LINE)
		l.atBeginningLine = true
		l.prevWasSpace = false
		return tok
	case r == ' ' || r == '\t' || r == '\v' || r == '\f':
		l.acceptRun(" \t\v\f")
		tok := l.emit(token.HORIZONTAL_WHITESPACE)
		l.prevWasSpace = true
		return tok
	case r == '/' && l.peek() == '/':
		return l.lexLineComment()
	case r == '/' && l.peek() == '*':
		return l.lexBlockComment()
	case r == '\\' && l.peek() == '\n':
		// line continuation: consume and splice, produced as whitespace
		l.next()
		tok := l.emit(token.HORIZONTAL_WHITESPACE)
		l.prevWasSpace = true
		return tok
	case isDigit(r) || (r == '.' && isDigit(l.peek())):
		l.backup(r)
		return l.lexNumber()
	case isIdentStart(r):
		l.backup(r)
		return l.lexIdentifier()
	case r == '"':
		return l.lexString('"', token.LITERAL_STRING)
	case r == '\'':
		return l.lexString('\'', token.LITERAL_CHAR)
	default:
		l.backup(r)
		return l.lexPunct()
	}
}

func (l *Lexer) lexLineComment() token.Token {
	l.next() // second '/'
	for {
		r := l.peek()
		if r == '\n' || r == eof {
			break
		}
		l.next()
	}
	return l.emit(token.COMMENT)
}

func (l *Lexer) lexBlockComment() token.Token {
	l.next() // '*'
	for {
		r := l.next()
		if r == eof {
			tok := l.emit(token.COMMENT)
			tok.IsPrematureEOF = true
			return tok
		}
		if r == '*' && l.peek() == '/' {
			l.next()
			break
		}
	}
	return l.emit(token.COMMENT)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r >= utf8.RuneSelf
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// stringPrefixes maps an encoding-prefix spelling to the StringFlags it
// sets, checked when an identifier is immediately followed by a quote
//.
var stringPrefixes = map[string]token.StringFlags{
	"u8": {UTF8: true},
	"u": {UTF16: true},
	"U": {UTF32: true},
	"L": {Wide: true},
}

func (l *Lexer) lexIdentifier() token.Token {
	for isIdentCont(l.peek()) {
		l.next()
	}
	text := l.text()
	if flags, ok := stringPrefixes[text]; ok {
		if q := l.peek(); q == '"' || q == '\'' {
			l.next()
			typ := token.LITERAL_STRING
			if q == '\'' {
				typ = token.LITERAL_CHAR
			}
			tok := l.lexString(q, typ)
			if tok.Lit != nil {
				tok.Lit.Str = flags
			}
			return tok
		}
	}
	// true/false/NULL lex directly to their dedicated literal token types
	// rather than IDENTIFIER.
	switch text {
	case "true", "false":
		tok := l.emit(token.LITERAL_BOOL)
		tok.Lit = &token.Literal{Bool: text == "true"}
		return tok
	case "NULL":
		tok := l.emit(token.LITERAL_NULL)
		tok.Lit = &token.Literal{}
		return tok
	}

	typ := token.IDENTIFIER
	if kw, ok := token.LookupKeyword(text); ok {
		typ = kw
	}
	loc := l.loc()
	prevSpace, bol := l.prevWasSpace, l.atBeginningLine
	// Every identifier-shaped spelling is interned, keywords included,
	// so the preprocessor can look macros up by pointer equality even
	// when a keyword spelling has been #define'd.
	h := l.idents.Intern(text)
	tok := token.Token{
		Type: typ, Loc: loc, Text: h.Text,
		Ident: h, PreviousWasSpace: prevSpace, BeginningOfLine: bol,
		CannotExpand: h.CannotExpand,
	}
	l.atBeginningLine = false
	l.prevWasSpace = false
	l.start = l.pos
	l.startRow, l.startCol = l.row, l.col
	return tok
}

// lexString scans a string or character literal, including any encoding
// prefix (u8"...", u"...", U"...", L"...") that may already have been
// consumed as part of an identifier lookahead by the caller... in this
// lexer the prefix is detected before the quote is seen (see lexPunct's
// caller ordering: lexIdentifier runs first and hands off to here when
// the identifier turns out to be a string/char prefix).
func (l *Lexer) lexString(quote rune, typ token.Type) token.Token {
	var flags token.StringFlags
	for {
		r := l.next()
		if r == eof {
			tok := l.emit(typ)
			tok.IsPrematureEOF = true
			tok.Lit = &token.Literal{Str: flags}
			return tok
		}
		if r == '\\' {
			l.next() // escape target; validated by a later semantic pass, not here
			continue
		}
		if r == quote {
			break
		}
		if r == '\n' {
			l.backup(r)
			tok := l.emit(typ)
			tok.IsPrematureEOF = true
			tok.Lit = &token.Literal{Str: flags}
			return tok
		}
	}
	raw := l.text()
	inner := raw[strings.IndexRune(raw, quote)+1 : len(raw)-1]
	lit := &token.Literal{Str: flags}
	if typ == token.LITERAL_CHAR {
		lit.Char = decodeCharLiteral(inner)
	} else {
		lit.String = decodeStringLiteral(inner)
	}
	tok := l.emit(typ)
	tok.Lit = lit
	return tok
}

func decodeStringLiteral(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			c, adv := unescape(s[i+1:])
			b.WriteRune(c)
			i += adv
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func decodeCharLiteral(s string) rune {
	if len(s) == 0 {
		return 0
	}
	if s[0] == '\\' {
		c, _ := unescape(s[1:])
		return c
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func unescape(s string) (rune, int) {
	if len(s) == 0 {
		return 0, 0
	}
	switch s[0] {
	case 'n':
		return '\n', 1
	case 't':
		return '\t', 1
	case 'r':
		return '\r', 1
	case '0':
		return 0, 1
	case '\\':
		return '\\', 1
	case '\'':
		return '\'', 1
	case '"':
		return '"', 1
	default:
		r, w := utf8.DecodeRuneInString(s)
		return r, w
	}
}

// lexNumber scans an integer or floating-point literal. Bases 2 ("0b"/"0B"), 8 ("0o"/"0O"; a plain
// leading zero stays decimal, see the override below), 10 and 16
// ("0x"/"0X", including hex-floats with a mandatory p/P exponent) are
// recognized. '\'' and '_' are accepted as transparent digit separators
// in any base.
func (l *Lexer) lexNumber() token.Token {
	const (
		decDigits = "0123456789"
		hexDigits = "0123456789abcdefABCDEF"
		octDigits = "01234567"
		binDigits = "01"
		seps = "'_"
	)

	base := 10
	isFloat := false

	if l.peek() == '0' {
		l.next()
		switch l.peek() {
		case 'x', 'X':
			l.next()
			base = 16
			l.acceptDigitsWithSeparators(hexDigits, seps)
			if l.peek() == '.' {
				isFloat = true
				l.next()
				l.acceptDigitsWithSeparators(hexDigits, seps)
			}
			if r := l.peek(); r == 'p' || r == 'P' {
				isFloat = true
				l.next()
				if r := l.peek(); r == '+' || r == '-' {
					l.next()
				}
				l.acceptDigitsWithSeparators(decDigits, seps)
			}
		case 'b', 'B':
			l.next()
			base = 2
			l.acceptDigitsWithSeparators(binDigits, seps)
		case 'o', 'O':
			l.next()
			base = 8
			l.acceptDigitsWithSeparators(octDigits, seps)
		default:
			// : a leading zero followed by decimal digits is
			// NOT octal — it is treated as a decimal literal (an
			// intentionally preserved quirk of the original compiler).
			base = 10
			l.acceptDigitsWithSeparators(decDigits, seps)
			isFloat = l.acceptFloatTail(decDigits, seps)
		}
	} else {
		l.acceptDigitsWithSeparators(decDigits, seps)
		isFloat = l.acceptFloatTail(decDigits, seps)
	}

	suffixStart := l.pos
	var flags token.NumberFlags
	flags.IsFloat = isFloat
	if isFloat {
		flags.IsDouble = true
		for {
			switch l.peek() {
			case 'f', 'F':
				flags.IsDouble = false
				l.next()
				continue
			case 'l', 'L':
				l.next()
				continue
			}
			break
		}
	} else {
		for {
			switch l.peek() {
			case 'u', 'U':
				flags.Unsigned = true
				l.next()
				continue
			case 'l', 'L':
				if flags.LongDepth < 2 {
					flags.LongDepth++
				}
				l.next()
				continue
			}
			break
		}
	}

	digitsText := stripSeparators(l.src[l.start:suffixStart], seps)
	lit := &token.Literal{Number: flags}

	if isFloat {
		f, _ := strconv.ParseFloat(digitsText, 64)
		lit.Float = f
		tok := l.emit(token.LITERAL_FLOAT)
		tok.Lit = lit
		return tok
	}

	body := digitsText
	switch base {
	case 16:
		body = strings.TrimPrefix(strings.TrimPrefix(body, "0x"), "0X")
	case 2:
		body = strings.TrimPrefix(strings.TrimPrefix(body, "0b"), "0B")
	case 8:
		body = strings.TrimPrefix(strings.TrimPrefix(body, "0o"), "0O")
	}
	n := new(big.Int)
	_, ok := n.SetString(body, base)
	if !ok {
		n.SetInt64(0)
	}
	lit.Int = n
	if n.BitLen() > 64 {
		lit.Number.Overflow = true
	}
	tok := l.emit(token.LITERAL_INTEGER)
	tok.Lit = lit
	return tok
}

func (l *Lexer) acceptDigitsWithSeparators(digits, seps string) {
	for {
		r := l.peek()
		if strings.ContainsRune(digits, r) {
			l.next()
			continue
		}
		if strings.ContainsRune(seps, r) && strings.ContainsRune(digits, l.peekAt(1)) {
			l.next()
			continue
		}
		break
	}
}

// acceptFloatTail consumes a fractional part and/or exponent if present,
// reporting whether the literal is a float.
func (l *Lexer) acceptFloatTail(digits, seps string) bool {
	isFloat := false
	if l.peek() == '.' {
		isFloat = true
		l.next()
		l.acceptDigitsWithSeparators(digits, seps)
	}
	if r := l.peek(); r == 'e' || r == 'E' {
		isFloat = true
		l.next()
		if r := l.peek(); r == '+' || r == '-' {
			l.next()
		}
		l.acceptDigitsWithSeparators(digits, seps)
	}
	return isFloat
}

func stripSeparators(s, seps string) string {
	if !strings.ContainsAny(s, seps) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(seps, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// punctTable is checked longest-match-first.
var punctTable = []struct {
	text string
	typ token.Type
}{
	{"...", token.TRIPLE_DOT},
	{"->", token.ARROW},
	{"==", token.DOUBLE_EQUAL},
	{"!=", token.NOT_EQUAL},
	{"<=", token.LESS_EQUAL},
	{">=", token.GREATER_EQUAL},
	{"<<", token.DOUBLE_LESS},
	{">>", token.DOUBLE_GREATER},
	{"&&", token.DOUBLE_AMP},
	{"||", token.DOUBLE_PIPE},
	{"+=", token.PLUS_EQUAL},
	{"-=", token.MINUS_EQUAL},
	{"*=", token.STAR_EQUAL},
	{"/=", token.SLASH_EQUAL},
	{"%=", token.PERCENT_EQUAL},
	{"^=", token.CARET_EQUAL},
	{"&=", token.AMP_EQUAL},
	{"|=", token.PIPE_EQUAL},
	{"~=", token.TILDE_EQUAL},
	{"##", token.DOUBLE_HASH},
	{"..", token.DOUBLE_DOT},
	{"#", token.HASH},
	{"(", token.PAREN_L}, {")", token.PAREN_R},
	{"{", token.BRACE_L}, {"}", token.BRACE_R},
	{"[", token.SQUARE_L}, {"]", token.SQUARE_R},
	{",", token.COMMA}, {";", token.SEMI_COLON}, {":", token.COLON},
	{"?", token.QUESTION}, {"$", token.DOLLAR},
	{".", token.DOT},
	{"+", token.PLUS}, {"-", token.MINUS}, {"*", token.STAR}, {"/", token.SLASH},
	{"%", token.PERCENT}, {"^", token.CARET}, {"&", token.AMP}, {"|", token.PIPE},
	{"!", token.EXCLAM}, {"=", token.EQUAL}, {"<", token.LESS}, {">", token.GREATER},
	{"~", token.TILDE},
}

func (l *Lexer) lexPunct() token.Token {
	for _, p := range punctTable {
		if strings.HasPrefix(l.src[l.pos:], p.text) {
			for range p.text {
				l.next()
			}
			return l.emit(p.typ)
		}
	}
	r := l.next()
	return l.errorf("unrecognized character %q", r)
}

package preproc

import "fmt"

// code enumerates the preprocessor's diagnostic kinds.
type code int

const (
	errUnknownDirective code = iota
	errDirectiveMissingIdentifier
	errExtraTokensAfterUndef
	errDoubleHashAtBoundary
	errMacroCallMissingArgs
	errMacroCallMissingRParen
	errInternalDirectiveNotNewlineTerminated
	errUnterminatedMacroArgs
)

// ppError pairs a code with the offending text (directive word, macro
// name,...); the message is built lazily so the same code can carry
// different detail without a combinatorial explosion of sentinels.
type ppError struct {
	c code
	text string
}

func (e *ppError) Error() string {
	switch e.c {
	case errUnknownDirective:
		return fmt.Sprintf("unknown directive %q", e.text)
	case errDirectiveMissingIdentifier:
		return "directive requires an identifier"
	case errExtraTokensAfterUndef:
		return "extra tokens after #undef " + e.text
	case errDoubleHashAtBoundary:
		return "## cannot appear at the " + e.text + " of a macro body"
	case errMacroCallMissingArgs:
		return fmt.Sprintf("macro call to %s missing arguments", e.text)
	case errMacroCallMissingRParen:
		return fmt.Sprintf("macro call to %s missing closing ')'", e.text)
	case errInternalDirectiveNotNewlineTerminated:
		return "internal error: directive did not terminate at newline"
	case errUnterminatedMacroArgs:
		return fmt.Sprintf("unterminated argument list for macro %s", e.text)
	default:
		return "preprocessor error"
	}
}

// IsWarning reports whether this diagnostic is merely advisory. Only
// "extra tokens after #undef" is.
func (e *ppError) IsWarning() bool { return e.c == errExtraTokensAfterUndef }

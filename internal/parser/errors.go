package parser

import (
	"fmt"

	"github.com/accc-project/accc/internal/token"
)

// code enumerates the parser's diagnostic kinds.
type code int

const (
	errExpectedToken code = iota
	errUnexpectedEOFAfter
	errOnlyDeclarationsAtTopLevel
	errUnknownTypeSpecifier
	errNotImplemented
)

// parseError pairs a code with whatever detail its message needs: the
// expected symbolic name and actual token (errExpectedToken), the
// production that was interrupted (errUnexpectedEOFAfter), the
// offending type name (errUnknownTypeSpecifier), or the reserved
// feature's name (errNotImplemented).
type parseError struct {
	c code
	expected string
	actual token.Token
	feature string
}

func (e *parseError) Error() string {
	switch e.c {
	case errExpectedToken:
		return fmt.Sprintf("expected %s, found %s %q", e.expected, token.ToDisplayString(e.actual.Type), e.actual.Text)
	case errUnexpectedEOFAfter:
		return fmt.Sprintf("unexpected end of file after %s", e.expected)
	case errOnlyDeclarationsAtTopLevel:
		return fmt.Sprintf("only declarations are allowed at the top level, found %s %q", token.ToDisplayString(e.actual.Type), e.actual.Text)
	case errUnknownTypeSpecifier:
		return fmt.Sprintf("only %q is recognized as a type, found %q", "int", e.actual.Text)
	case errNotImplemented:
		return fmt.Sprintf("%s is not implemented in this core", e.feature)
	default:
		return "parse error"
	}
}

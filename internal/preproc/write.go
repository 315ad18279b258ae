package preproc

import (
	"io"

	"github.com/accc-project/accc/internal/token"
)

// WriteTokens reconstructs source-like text from a post-preprocessing
// token stream, the way GCC's `-E` does. Spacing is rebuilt from each
// token's PreviousWasSpace flag rather than replayed verbatim.
func WriteTokens(w io.Writer, toks []token.Token) error {
	for i, t := range toks {
		if i > 0 && t.PreviousWasSpace {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, t.Text); err != nil {
			return err
		}
	}
	return nil
}

package preproc

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/accc-project/accc/internal/ident"
	"github.com/accc-project/accc/internal/token"
)

// Macro is a single #define record.
type Macro struct {
	Name *ident.Handle
	IsFunctionLike bool
	Params []*ident.Handle
	Body []token.Token

	// IsUndef marks a macro removed by #undef while still locked by an
	// in-progress expansion; its storage is dropped only once the
	// owning TokenList frame pops.
	IsUndef bool
}

// ExpandedArgs returns a copy of the macro body, verbatim. Expansion
// frames are not built from it: tryExpandOnStack pushes the output of
// spliceBody, for object-like and function-like macros alike.
func (m *Macro) ExpandedArgs() []token.Token {
	out := make([]token.Token, len(m.Body))
	copy(out, m.Body)
	return out
}

// ParamIndex returns the index of h among m.Params, using pointer
// equality step 5 ("find its parameter index
// (pointer-equality against parameter identifier tokens)").
func (m *Macro) ParamIndex(h *ident.Handle) (int, bool) {
	for i, p := range m.Params {
		if p == h {
			return i, true
		}
	}
	return 0, false
}

// MacroTable maps interned identifiers to their current Macro definition.
// Weak keys: the table holds interned identifier pointers, never its
// own copy of the text.
type MacroTable struct {
	byHandle map[*ident.Handle]*Macro
}

// NewMacroTable creates an empty table.
func NewMacroTable() *MacroTable {
	return &MacroTable{byHandle: make(map[*ident.Handle]*Macro)}
}

// Lookup returns the Macro currently defined for h, if any.
func (t *MacroTable) Lookup(h *ident.Handle) (*Macro, bool) {
	m, ok := t.byHandle[h]
	return m, ok
}

// Define installs m, silently replacing any prior definition for the
// same identity ("Install in MacroTable (replacing any prior
// definition silently...)").
func (t *MacroTable) Define(m *Macro) {
	t.byHandle[m.Name] = m
}

// Undef removes the macro bound to h. If it is currently locked
// (expanding), the removal only marks it for deferred destruction; the
// TokenStack's pop handler performs the actual drop.
func (t *MacroTable) Undef(h *ident.Handle) (*Macro, bool) {
	m, ok := t.byHandle[h]
	if !ok {
		return nil, false
	}
	delete(t.byHandle, h)
	if h.CannotExpand {
		m.IsUndef = true
	}
	return m, true
}

// byText is an intermediate map keyed by identifier text, used only to
// recover a deterministic iteration order over the table below; the
// table itself is keyed by pointer.
func (t *MacroTable) byText() map[string]*ident.Handle {
	out := make(map[string]*ident.Handle, len(t.byHandle))
	for h := range t.byHandle {
		out[h.Text] = h
	}
	return out
}

// Names returns every currently-defined macro name in a deterministic
// order, for diagnostic dumps (the "--preprocess" style tooling).
func (t *MacroTable) Names() []*ident.Handle {
	byText := t.byText()
	out := make([]*ident.Handle, 0, len(byText))
	for _, name := range sortedKeys(byText) {
		out = append(out, byText[name])
	}
	return out
}

// sortedKeys orders a map's keys deterministically.
func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Package ident implements identifier interning: canonicalizing
// textually-equal identifier/keyword spellings to a single Handle so
// that equality checks in the preprocessor and parser are pointer
// comparisons rather than string comparisons.
package ident

import "github.com/accc-project/accc/internal/astarena"

// Handle is an interned identifier. Two Handles are the same identifier
// if and only if they are the same pointer: for all interned
// identifiers i, j, i.Text == j.Text iff i == j.
type Handle struct {
	Text string

	// CannotExpand is the sticky "currently expanding" bit the
	// preprocessor sets while an expansion of the macro (object-like or
	// function-like) named by this identifier is on the expansion stack.
	CannotExpand bool
}

// Table interns identifier text against an arena-backed store.
type Table struct {
	arena *astarena.Arena
	nodes *astarena.Nodes[Handle]
	byText map[string]*Handle
}

// New creates an empty interning table.
func New(arena *astarena.Arena) *Table {
	return &Table{
		arena: arena,
		nodes: astarena.NewNodes[Handle](),
		byText: make(map[string]*Handle),
	}
}

// Intern returns the canonical Handle for text, creating one on first
// sighting.
func (t *Table) Intern(text string) *Handle {
	if h, ok := t.byText[text]; ok {
		return h
	}
	h := t.nodes.New()
	h.Text = t.arena.AllocString(text)
	t.byText[h.Text] = h
	return h
}

// Lookup returns the Handle for text if it has already been interned,
// without creating a new one.
func (t *Table) Lookup(text string) (*Handle, bool) {
	h, ok := t.byText[text]
	return h, ok
}

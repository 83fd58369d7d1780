package source

import (
	"slices"
)

// StringID identifies an interned string.
type StringID uint32

// NoStringID is the ID of the empty string.
const NoStringID StringID = 0

// Interner collapses repeated equal text into one shared instance. Symbol
// names, documentation, and shape tokens are all funneled through it so that
// downstream passes compare IDs instead of bytes.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the ID for s, allocating one if the text is new.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// Copy so the interner never pins the caller's backing buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns the given bytes as a string.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup returns the string for id, or ("", false) for an unknown ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for id and panics on an unknown ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("source: invalid string ID")
	}
	return s
}

// Has reports whether id was produced by this interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len counts interned strings, including the empty string at ID 0.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings, indexed by ID.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}

// RestoreInterner rebuilds an interner from a snapshot. Entry 0 must be the
// empty string; a snapshot that lost it is rejected as nil.
func RestoreInterner(snapshot []string) *Interner {
	if len(snapshot) == 0 || snapshot[0] != "" {
		return nil
	}
	in := &Interner{
		byID:  slices.Clone(snapshot),
		index: make(map[string]StringID, len(snapshot)),
	}
	for id, s := range in.byID {
		in.index[s] = StringID(id)
	}
	return in
}

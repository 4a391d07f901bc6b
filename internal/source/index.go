package source

import "sort"

// Index maps paths, inferred roles, and base names to source units. It
// is built once before matching begins and handed read-only to matchers
// that need cross-file knowledge, keeping individual matchers stateless.
type Index struct {
	byPath map[string]*Unit
	byRole map[Role][]*Unit
	byBase map[string][]*Unit
}

// NewIndex builds an index over the corpus. Units within a role bucket
// are ordered by path so lookups are deterministic.
func NewIndex(units []*Unit) *Index {
	ix := &Index{
		byPath: make(map[string]*Unit, len(units)),
		byRole: make(map[Role][]*Unit),
		byBase: make(map[string][]*Unit),
	}
	for _, u := range units {
		ix.byPath[u.Path] = u
		ix.byRole[u.Role] = append(ix.byRole[u.Role], u)
		ix.byBase[u.BaseName()] = append(ix.byBase[u.BaseName()], u)
	}
	for r := range ix.byRole {
		us := ix.byRole[r]
		sort.Slice(us, func(i, j int) bool { return us[i].Path < us[j].Path })
	}
	for b := range ix.byBase {
		us := ix.byBase[b]
		sort.Slice(us, func(i, j int) bool { return us[i].Path < us[j].Path })
	}
	return ix
}

// Role returns all units with the given role, ordered by path.
func (ix *Index) Role(r Role) []*Unit {
	return ix.byRole[r]
}

// Base returns all units whose base name matches exactly.
func (ix *Index) Base(name string) []*Unit {
	return ix.byBase[name]
}

// UniqueBase returns the unit with the given base name when exactly one
// exists in the corpus.
func (ix *Index) UniqueBase(name string) (*Unit, bool) {
	us := ix.byBase[name]
	if len(us) == 1 {
		return us[0], true
	}
	return nil, false
}

// Lookup returns the unit for a path, if it is part of the corpus.
func (ix *Index) Lookup(path string) (*Unit, bool) {
	u, ok := ix.byPath[path]
	return u, ok
}

// RoleOf returns the role recorded for a path, or RoleOther when the
// path is not part of the corpus.
func (ix *Index) RoleOf(path string) Role {
	if u, ok := ix.byPath[path]; ok {
		return u.Role
	}
	return RoleOther
}

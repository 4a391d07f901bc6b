package review

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ktlens/ktlens/internal/source"
)

var collaboratorRef = regexp.MustCompile(`\b[A-Z]\w*(Repository|UseCase|Interactor|Dao|DataSource)\b`)

// Link fills in RelatedIDs by role adjacency: a finding in a ViewModel
// unit links to findings in the Repository/UseCase units the ViewModel
// references, either by a direct name in the finding's evidence or by a
// unique shared-prefix role match (UserViewModel -> UserRepository).
//
// The relation is stored as symmetric id pairs, never as live pointers,
// so findings stay independently serializable and symmetry is easy to
// check. Linking is best-effort: absence of a link is not an error, and
// no linking outcome can fail the run.
func Link(findings []Finding, ix *source.Index) {
	byPath := make(map[string][]int)
	for i, f := range findings {
		for _, loc := range f.Locations {
			byPath[loc.Path] = append(byPath[loc.Path], i)
		}
	}

	edges := make(map[[2]int]bool)
	for i, f := range findings {
		for _, loc := range f.Locations {
			u, ok := ix.Lookup(loc.Path)
			if !ok || u.Role != source.RoleViewModel {
				continue
			}
			for _, target := range collaboratorUnits(f, u, ix) {
				for _, j := range byPath[target.Path] {
					if i == j {
						continue
					}
					lo, hi := i, j
					if lo > hi {
						lo, hi = hi, lo
					}
					edges[[2]int{lo, hi}] = true
				}
			}
		}
	}

	for e := range edges {
		a, b := e[0], e[1]
		findings[a].RelatedIDs = append(findings[a].RelatedIDs, findings[b].ID)
		findings[b].RelatedIDs = append(findings[b].RelatedIDs, findings[a].ID)
	}
	for i := range findings {
		sort.Strings(findings[i].RelatedIDs)
		findings[i].RelatedIDs = dedupStrings(findings[i].RelatedIDs)
	}
}

// collaboratorUnits resolves the Repository/UseCase units a ViewModel
// finding relates to.
func collaboratorUnits(f Finding, vm *source.Unit, ix *source.Index) []*source.Unit {
	seen := make(map[string]bool)
	var out []*source.Unit
	add := func(u *source.Unit) {
		if u != nil && u.Path != vm.Path && !seen[u.Path] {
			seen[u.Path] = true
			out = append(out, u)
		}
	}

	// Direct references captured in the finding's evidence.
	for _, ev := range append([]string{f.Rationale}, f.Evidence...) {
		for _, name := range collaboratorRef.FindAllString(ev, -1) {
			if u, ok := ix.UniqueBase(name); ok {
				add(u)
			}
		}
	}

	// Unique role match by shared prefix: UserViewModel -> UserRepository.
	base := vm.BaseName()
	if prefix := strings.TrimSuffix(base, "ViewModel"); prefix != base && prefix != "" {
		for _, suffix := range []string{"Repository", "UseCase"} {
			if u, ok := ix.UniqueBase(prefix + suffix); ok {
				add(u)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func dedupStrings(ss []string) []string {
	if len(ss) < 2 {
		return ss
	}
	out := ss[:1]
	for _, s := range ss[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

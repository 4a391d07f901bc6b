package review

import (
	"sort"

	"github.com/ktlens/ktlens/internal/rules"
	"github.com/ktlens/ktlens/internal/source"
)

// Classify assigns final severities and puts findings into presentation
// order.
//
// Severity always starts from the rule's default, so running Classify
// again over already-classified findings changes nothing. Two modifiers
// apply, demotion first:
//
//   - test-context demotion: every location inside a test-role unit
//     lowers the severity one level (anti-patterns are lower risk in
//     test code);
//   - production-entry escalation: a Security finding with any location
//     in an entry-point unit goes Major -> Critical. Evaluated after
//     demotion so a security hit at an entry point stays Critical even
//     when the pattern also shows up in test code.
func Classify(findings []Finding, cat *rules.Catalog, ix *source.Index) ([]Finding, error) {
	out := append([]Finding(nil), findings...)
	for i := range out {
		rule, err := cat.Get(out[i].RuleID)
		if err != nil {
			return nil, err
		}
		out[i].Severity = modifiedSeverity(rule, out[i], ix)
	}

	// Presentation order must be strict and total: severity, fixed
	// category order, first path, first line, then rule and finding id
	// so no two distinct findings ever compare equal.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := rules.SeverityRank(a.Severity), rules.SeverityRank(b.Severity); ra != rb {
			return ra > rb
		}
		if ca, cb := rules.CategoryRank(a.Category), rules.CategoryRank(b.Category); ca != cb {
			return ca < cb
		}
		if pa, pb := a.Locations[0].Path, b.Locations[0].Path; pa != pb {
			return pa < pb
		}
		if la, lb := a.Locations[0].StartLine, b.Locations[0].StartLine; la != lb {
			return la < lb
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.ID < b.ID
	})
	return out, nil
}

func modifiedSeverity(rule rules.Rule, f Finding, ix *source.Index) rules.Severity {
	sev := rule.Severity
	if rule.Positive {
		return sev
	}

	allTest := len(f.Locations) > 0
	anyEntry := false
	for _, loc := range f.Locations {
		switch ix.RoleOf(loc.Path) {
		case source.RoleTest:
		default:
			allTest = false
		}
		if ix.RoleOf(loc.Path) == source.RoleEntryPoint {
			anyEntry = true
		}
	}

	if allTest {
		sev = rules.Demote(sev)
	}
	if f.Category == rules.CategorySecurity && anyEntry && sev == rules.SeverityMajor {
		sev = rules.SeverityCritical
	}
	return sev
}

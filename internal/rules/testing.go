package rules

import "github.com/ktlens/ktlens/internal/source"

func testingRules() []Rule {
	return []Rule{
		{
			ID:        "TEST-MISSING-VIEWMODEL-TEST",
			Category:  CategoryTesting,
			Severity:  SeverityMinor,
			Title:     "ViewModel without a test",
			Rationale: "No test unit covers this ViewModel. State logic without tests regresses silently the next time someone touches it.",
			Fix:       "Add a <Name>ViewModelTest exercising the ViewModel's state transitions.",
			Match:     matchMissingViewModelTest,
		},
		{
			ID:        "TEST-VIEWMODEL-COVERED",
			Category:  CategoryTesting,
			Severity:  SeverityGood,
			Positive:  true,
			Title:     "ViewModel has a matching test",
			Rationale: "A dedicated test unit covers this ViewModel's logic.",
			Fix:       "",
			Match:     matchCoveredViewModel,
		},
	}
}

func matchMissingViewModelTest(u *source.Unit, ix *source.Index) []Match {
	if u.Role != source.RoleViewModel || hasMatchingTest(u, ix) {
		return nil
	}
	line, decl := declarationLine(u)
	return []Match{{StartLine: line, EndLine: line, Captured: decl}}
}

func matchCoveredViewModel(u *source.Unit, ix *source.Index) []Match {
	if u.Role != source.RoleViewModel || !hasMatchingTest(u, ix) {
		return nil
	}
	line, decl := declarationLine(u)
	return []Match{{StartLine: line, EndLine: line, Captured: decl}}
}

// hasMatchingTest looks for a test unit named <Base>Test or <Base>Tests
// in the corpus index.
func hasMatchingTest(u *source.Unit, ix *source.Index) bool {
	base := u.BaseName()
	for _, suffix := range []string{"Test", "Tests"} {
		for _, candidate := range ix.Base(base + suffix) {
			if candidate.Role == source.RoleTest {
				return true
			}
		}
	}
	return false
}

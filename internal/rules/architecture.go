package rules

import (
	"regexp"

	"github.com/ktlens/ktlens/internal/source"
)

var (
	dataLayerRef    = regexp.MustCompile(`\b[A-Z]\w*(Repository|Dao)\b`)
	androidViewDep  = regexp.MustCompile(`^\s*import\s+android\.(view|widget)\.`)
	repositoryToken = regexp.MustCompile(`\b[A-Z]\w*Repository\b`)
)

func architectureRules() []Rule {
	return []Rule{
		{
			ID:        "ARCH-UI-DATA-ACCESS",
			Category:  CategoryArchitecture,
			Severity:  SeverityMajor,
			Title:     "UI layer reaches into the data layer",
			Rationale: "A UI unit references {capture} directly, bypassing the ViewModel. UI code that talks to repositories or DAOs cannot be tested in isolation and couples rendering to data concerns.",
			Fix:       "Move the {capture} call behind a ViewModel and expose the result as observable state.",
			Match: onlyRoles(
				findScrubbed(dataLayerRef),
				source.RoleComposable, source.RoleEntryPoint,
			),
		},
		{
			ID:        "ARCH-VIEWMODEL-ANDROID-VIEW",
			Category:  CategoryArchitecture,
			Severity:  SeverityMajor,
			Title:     "ViewModel depends on Android view classes",
			Rationale: "The ViewModel imports {capture}. View dependencies tie the ViewModel to the Android framework, break unit testing on the JVM, and invite leaked view references.",
			Fix:       "Replace the view dependency with plain state the UI layer observes; keep android.view/android.widget imports out of ViewModels.",
			Match: onlyRoles(
				findScrubbed(androidViewDep),
				source.RoleViewModel,
			),
		},
		{
			ID:        "ARCH-USECASE-NO-REPOSITORY",
			Category:  CategoryArchitecture,
			Severity:  SeverityMinor,
			Title:     "UseCase has no backing repository",
			Rationale: "This use case neither references a repository nor has a matching one in the corpus. A use case that owns its own data access duplicates the data layer's responsibilities.",
			Fix:       "Inject a repository into the use case and route data access through it.",
			Match:     matchUseCaseWithoutRepository,
		},
	}
}

// matchUseCaseWithoutRepository is a cross-file matcher: it consults the
// role index built before matching began, never other rules' state.
func matchUseCaseWithoutRepository(u *source.Unit, ix *source.Index) []Match {
	if u.Role != source.RoleUseCase {
		return nil
	}
	if containsToken(u, repositoryToken) {
		return nil
	}
	// A repository sharing the use case's name prefix counts as backing
	// even without a direct reference (wired up via DI).
	prefix := trimRoleSuffix(u.BaseName(), "UseCase", "Interactor")
	if prefix != "" {
		if _, ok := ix.UniqueBase(prefix + "Repository"); ok {
			return nil
		}
	}
	line, decl := declarationLine(u)
	return []Match{{StartLine: line, EndLine: line, Captured: decl}}
}

func trimRoleSuffix(base string, suffixes ...string) string {
	for _, s := range suffixes {
		if len(base) > len(s) && base[len(base)-len(s):] == s {
			return base[:len(base)-len(s)]
		}
	}
	return ""
}

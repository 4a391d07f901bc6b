package rules

import (
	"regexp"
	"strings"

	"github.com/ktlens/ktlens/internal/source"
)

var (
	mutableStateCall = regexp.MustCompile(`\bmutableStateOf\s*\(`)
	rememberCall     = regexp.MustCompile(`\bremember(Saveable)?\b`)
	lazyContainer    = regexp.MustCompile(`\bLazy(Column|Row|VerticalGrid)\b`)
	lazyItemsCall    = regexp.MustCompile(`\bitems(Indexed)?\s*\(`)
	lazyItemsKey     = regexp.MustCompile(`\bkey\s*=`)
	bareLaunchCall   = regexp.MustCompile(`\bscope\s*\.\s*launch\b|\bCoroutineScope\s*\([^)]*\)\s*\.\s*launch\b`)
	launchedEffect   = regexp.MustCompile(`\bLaunchedEffect\b|\brememberCoroutineScope\b`)
)

func uiFrameworkRules() []Rule {
	return []Rule{
		{
			ID:        "UI-STATE-NO-REMEMBER",
			Category:  CategoryUIFramework,
			Severity:  SeverityMajor,
			Title:     "Compose state created without remember",
			Rationale: "{capture} allocates fresh state on every recomposition, so the value resets each time the composable re-executes and the UI can loop between states.",
			Fix:       "Wrap the state in remember { mutableStateOf(...) } or hoist it out of the composable.",
			Match: onlyRoles(
				matchStateWithoutRemember,
				source.RoleComposable,
			),
		},
		{
			ID:        "UI-LAZY-NO-KEY",
			Category:  CategoryUIFramework,
			Severity:  SeverityMinor,
			Title:     "Lazy list items without keys",
			Rationale: "{capture} emits list items without stable keys. When the backing list changes, Compose matches items by position, recomposing more than necessary and losing per-item state.",
			Fix:       "Pass key = { it.id } (or another stable identity) to the items call.",
			Match: onlyRoles(
				matchLazyItemsWithoutKey,
				source.RoleComposable,
			),
		},
		{
			ID:        "UI-EFFECT-IN-COMPOSITION",
			Category:  CategoryUIFramework,
			Severity:  SeverityMinor,
			Title:     "Coroutine launched during composition",
			Rationale: "{capture} starts work directly in the composition body. Composition can run many times and be abandoned; side effects belong in LaunchedEffect or a rememberCoroutineScope callback.",
			Fix:       "Move the launch into LaunchedEffect(key) { ... } or trigger it from an event handler via rememberCoroutineScope().",
			Match: onlyRoles(
				matchLaunchInComposition,
				source.RoleComposable,
			),
		},
	}
}

func matchStateWithoutRemember(u *source.Unit, _ *source.Index) []Match {
	var out []Match
	lines := u.ScrubbedLines()
	for i, line := range lines {
		if !mutableStateCall.MatchString(line) || rememberCall.MatchString(line) {
			continue
		}
		// remember { on the previous line also covers this allocation.
		if i > 0 && rememberCall.MatchString(lines[i-1]) && strings.Contains(lines[i-1], "{") {
			continue
		}
		out = append(out, Match{
			StartLine: i + 1,
			EndLine:   i + 1,
			Captured:  strings.TrimSpace(u.Line(i + 1)),
		})
	}
	return out
}

func matchLazyItemsWithoutKey(u *source.Unit, _ *source.Index) []Match {
	if !containsToken(u, lazyContainer) {
		return nil
	}
	var out []Match
	for i, line := range u.ScrubbedLines() {
		if lazyItemsCall.MatchString(line) && !lazyItemsKey.MatchString(line) {
			out = append(out, Match{
				StartLine: i + 1,
				EndLine:   i + 1,
				Captured:  strings.TrimSpace(u.Line(i + 1)),
			})
		}
	}
	return out
}

func matchLaunchInComposition(u *source.Unit, _ *source.Index) []Match {
	if containsToken(u, launchedEffect) {
		return nil
	}
	return findAll(u, u.ScrubbedLines(), bareLaunchCall)
}

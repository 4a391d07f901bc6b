package rules

import (
	"regexp"
	"strings"

	"github.com/ktlens/ktlens/internal/source"
)

var (
	notNullAssert   = regexp.MustCompile(`!!`)
	unsafeCast      = regexp.MustCompile(`\bas\s+[A-Z]\w*`)
	emptyCatch      = regexp.MustCompile(`\bcatch\s*\([^)]*\)\s*\{\s*\}`)
	catchOpen       = regexp.MustCompile(`\bcatch\s*\([^)]*\)\s*\{\s*$`)
	runCatchingCall = regexp.MustCompile(`\brunCatching\b`)
	resultConsumed  = regexp.MustCompile(`\.(onFailure|getOrThrow|getOrElse|getOrDefault|exceptionOrNull|fold|recover)\b`)
)

func kotlinIdiomRules() []Rule {
	return []Rule{
		{
			ID:        "IDIOM-NOT-NULL-ASSERT",
			Category:  CategoryKotlinIdiom,
			Severity:  SeverityMajor,
			Title:     "Not-null assertion (!!)",
			Rationale: "{capture} converts a null into a KotlinNPE at the exact point the type system warned about. The operator trades a compile-time question for a runtime crash.",
			Fix:       "Handle the null explicitly: ?. with a fallback, ?: error(\"...\") with a message, or restructure so the value is non-null by construction.",
			Match:     findScrubbed(notNullAssert),
		},
		{
			ID:        "IDIOM-UNSAFE-CAST",
			Category:  CategoryKotlinIdiom,
			Severity:  SeverityMinor,
			Title:     "Unsafe cast with as",
			Rationale: "{capture} throws ClassCastException when the runtime type disagrees. The safe cast operator makes the failure case explicit instead.",
			Fix:       "Use as? and handle the null result, or a when over the expected types.",
			Match:     matchUnsafeCast,
		},
		{
			ID:        "IDIOM-SILENT-RUNCATCHING",
			Category:  CategoryKotlinIdiom,
			Severity:  SeverityMinor,
			Title:     "runCatching result never inspected",
			Rationale: "{capture} wraps the failure in a Result that this unit never reads. The exception is captured and then dropped, which is an empty catch with extra steps.",
			Fix:       "Consume the Result: onFailure { ... }, getOrElse, or fold; if the failure truly does not matter, say so with an explicit handler.",
			Match:     matchSilentRunCatching,
		},
		{
			ID:        "IDIOM-EMPTY-CATCH",
			Category:  CategoryKotlinIdiom,
			Severity:  SeverityMinor,
			Title:     "Exception swallowed by an empty catch",
			Rationale: "{capture} discards the exception entirely. Failures vanish without a trace, which turns real bugs into silent misbehavior.",
			Fix:       "Log the exception, rethrow it, or handle it with an explicit recovery path; never leave the block empty.",
			Match:     matchEmptyCatch,
		},
	}
}

// matchUnsafeCast flags `as T`. The safe cast `as? T` never matches the
// pattern (the '?' breaks the required whitespace), so only import
// aliases need excluding.
func matchUnsafeCast(u *source.Unit, _ *source.Index) []Match {
	var out []Match
	for i, line := range u.ScrubbedLines() {
		if strings.HasPrefix(strings.TrimSpace(line), "import ") {
			continue
		}
		for range unsafeCast.FindAllStringIndex(line, -1) {
			captured := strings.TrimSpace(u.Line(i + 1))
			out = append(out, Match{StartLine: i + 1, EndLine: i + 1, Captured: captured})
		}
	}
	return out
}

// matchSilentRunCatching flags runCatching when the unit never touches a
// Result accessor. Unit-scoped like the receiver and stream checks: the
// Result may be consumed far from where it was produced, so per-call
// tracking would only add false positives.
func matchSilentRunCatching(u *source.Unit, _ *source.Index) []Match {
	if containsToken(u, resultConsumed) {
		return nil
	}
	return findAll(u, u.ScrubbedLines(), runCatchingCall)
}

// matchEmptyCatch handles both the single-line `catch (e: X) {}` shape
// and a brace pair spread over adjacent lines.
func matchEmptyCatch(u *source.Unit, _ *source.Index) []Match {
	var out []Match
	lines := u.ScrubbedLines()
	for i, line := range lines {
		if emptyCatch.MatchString(line) {
			out = append(out, Match{
				StartLine: i + 1,
				EndLine:   i + 1,
				Captured:  strings.TrimSpace(u.Line(i + 1)),
			})
			continue
		}
		if catchOpen.MatchString(line) && i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "}" {
			out = append(out, Match{
				StartLine: i + 1,
				EndLine:   i + 2,
				Captured:  strings.TrimSpace(u.Line(i + 1)),
			})
		}
	}
	return out
}

package rules

import (
	"regexp"
	"strings"

	"github.com/ktlens/ktlens/internal/source"
)

// findAll scans the given line view and returns one Match per regexp hit,
// in order of first occurrence. The capture is taken from the original
// line so evidence quotes real code even when the scanned view is
// scrubbed.
func findAll(u *source.Unit, lines []string, re *regexp.Regexp) []Match {
	var out []Match
	orig := u.Lines()
	for i, line := range lines {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			captured := line[loc[0]:loc[1]]
			if i < len(orig) {
				if c := captureOriginal(orig[i], loc); c != "" {
					captured = c
				}
			}
			out = append(out, Match{
				StartLine: i + 1,
				EndLine:   i + 1,
				Captured:  strings.TrimSpace(captured),
			})
		}
	}
	return out
}

func captureOriginal(origLine string, loc []int) string {
	if loc[0] >= len(origLine) {
		return ""
	}
	end := loc[1]
	if end > len(origLine) {
		end = len(origLine)
	}
	return origLine[loc[0]:end]
}

// findScrubbed matches against the comment-and-string-stripped view.
func findScrubbed(re *regexp.Regexp) MatchFunc {
	return func(u *source.Unit, _ *source.Index) []Match {
		return findAll(u, u.ScrubbedLines(), re)
	}
}

// findCode matches against the comment-stripped view with string
// literals intact, for rules whose trigger lives inside a literal.
func findCode(re *regexp.Regexp) MatchFunc {
	return func(u *source.Unit, _ *source.Index) []Match {
		return findAll(u, u.CodeLines(), re)
	}
}

// onlyRoles restricts a matcher to units with one of the given roles.
func onlyRoles(m MatchFunc, roles ...source.Role) MatchFunc {
	return func(u *source.Unit, ix *source.Index) []Match {
		for _, r := range roles {
			if u.Role == r {
				return m(u, ix)
			}
		}
		return nil
	}
}

// containsToken reports whether any scrubbed line matches the regexp.
func containsToken(u *source.Unit, re *regexp.Regexp) bool {
	for _, line := range u.ScrubbedLines() {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// declarationLine returns the 1-based line of the first class/object/fun
// declaration, falling back to line 1. Whole-file findings (a missing
// companion call, a missing test) anchor here.
func declarationLine(u *source.Unit) (int, string) {
	for i, line := range u.ScrubbedLines() {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "class ") ||
			strings.HasPrefix(trimmed, "object ") ||
			strings.HasPrefix(trimmed, "interface ") ||
			strings.HasPrefix(trimmed, "fun ") ||
			strings.Contains(trimmed, " class ") {
			return i + 1, strings.TrimSpace(u.Line(i + 1))
		}
	}
	return 1, strings.TrimSpace(u.Line(1))
}

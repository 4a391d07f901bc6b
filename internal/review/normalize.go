package review

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/ktlens/ktlens/internal/rules"
)

// Normalize converts raw matches into findings, collapsing matches that
// share a rule and overlap within one unit.
//
// Matches are sorted up front by (path, rule, line range), so grouping
// and the derived finding IDs never depend on the iteration order of any
// upstream structure. Two independent runs over the same corpus produce
// identical findings, which is what makes report diffing possible.
func Normalize(matches []RawMatch, cat *rules.Catalog) ([]Finding, error) {
	sorted := append([]RawMatch(nil), matches...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.EndLine < b.EndLine
	})

	var findings []Finding
	for i := 0; i < len(sorted); {
		group := []RawMatch{sorted[i]}
		end := sorted[i].EndLine
		j := i + 1
		// Same rule + same unit + any shared line collapses into one
		// finding. Non-overlapping ranges and other rules never merge.
		for ; j < len(sorted); j++ {
			m := sorted[j]
			if m.Path != sorted[i].Path || m.RuleID != sorted[i].RuleID || m.StartLine > end {
				break
			}
			group = append(group, m)
			if m.EndLine > end {
				end = m.EndLine
			}
		}

		rule, err := cat.Get(sorted[i].RuleID)
		if err != nil {
			return nil, err
		}
		findings = append(findings, buildFinding(rule, group))
		i = j
	}
	return findings, nil
}

func buildFinding(rule rules.Rule, group []RawMatch) Finding {
	first := group[0]
	start, end := first.StartLine, first.EndLine
	var evidence []string
	seenSnippets := make(map[string]bool)
	for _, m := range group {
		if m.EndLine > end {
			end = m.EndLine
		}
		if !seenSnippets[m.Snippet] {
			seenSnippets[m.Snippet] = true
			evidence = append(evidence, m.Snippet)
		}
	}

	return Finding{
		ID:        findingID(rule.ID, first.Path, start, first.Captured),
		RuleID:    rule.ID,
		Category:  rule.Category,
		Severity:  rule.Severity,
		Title:     rule.Title,
		Rationale: expandTemplate(rule.Rationale, first.Captured),
		Fix:       expandTemplate(rule.Fix, first.Captured),
		Positive:  rule.Positive,
		Locations: []Location{{Path: first.Path, StartLine: start, EndLine: end}},
		Evidence:  evidence,
	}
}

// findingID derives a stable id from rule, location, and captured
// content, in that order of significance.
func findingID(ruleID, path string, line int, captured string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", ruleID, path, line, captured)))
	return fmt.Sprintf("%x", sum[:8])
}

func expandTemplate(tmpl, captured string) string {
	return strings.ReplaceAll(tmpl, "{capture}", captured)
}

package output

import (
	"io"
	"strings"

	"github.com/ktlens/ktlens/internal/review"
	"github.com/ktlens/ktlens/internal/rules"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	ew.printf("## ktlens Code Review\n\n")
	ew.printf("**Verdict: %s** (%d units reviewed)\n\n", report.Summary.Verdict, report.Inputs.Units)

	ew.printf("| Category | Critical | Major | Minor | Good |\n")
	ew.printf("|----------|----------|-------|-------|------|\n")
	for _, row := range report.Summary.PerCategory {
		ew.printf("| %s | %d | %d | %d | %d |\n",
			categoryLabel(row.Category),
			row.Counts.Critical, row.Counts.Major, row.Counts.Minor, row.Counts.Good)
	}
	c := report.Summary.Counts
	ew.printf("| **Total** | **%d** | **%d** | **%d** | **%d** |\n\n", c.Critical, c.Major, c.Minor, c.Good)

	if c.Critical+c.Major+c.Minor == 0 {
		ew.printf("No issues found. :white_check_mark:\n\n")
	}

	for _, sev := range []rules.Severity{rules.SeverityCritical, rules.SeverityMajor, rules.SeverityMinor} {
		findings := findingsAt(report.Findings, sev)
		if len(findings) == 0 {
			continue
		}

		ew.printf("<details>\n<summary>%s %s (%d)</summary>\n\n",
			mdSeverityIcon(sev), strings.ToUpper(string(sev)), len(findings))

		for _, f := range findings {
			loc := f.Locations[0]
			ew.printf("### %s\n\n", f.Title)
			ew.printf("**`%s:%d-%d`** | %s | `%s`\n\n",
				loc.Path, loc.StartLine, loc.EndLine, categoryLabel(f.Category), f.RuleID)
			ew.printf("%s\n\n", f.Rationale)
			for _, ev := range f.Evidence {
				ew.printf("```kotlin\n%s\n```\n\n", ev)
			}
			if f.Fix != "" {
				ew.printf("**Suggestion:** %s\n\n", f.Fix)
			}
			if len(f.RelatedIDs) > 0 {
				ew.printf("Related: `%s`\n\n", strings.Join(f.RelatedIDs, "`, `"))
			}
			ew.printf("---\n\n")
		}

		ew.printf("</details>\n\n")
	}

	good := positiveFindings(report.Findings)
	ew.printf("### Good Practices (%d)\n\n", report.Summary.GoodPractices)
	for _, f := range good {
		loc := f.Locations[0]
		ew.printf("- :sparkles: `%s:%d` %s\n", loc.Path, loc.StartLine, f.Title)
	}
	if len(good) > 0 {
		ew.printf("\n")
	}

	if len(report.ActionItems) > 0 {
		ew.printf("### Action Items\n\n")
		for i, item := range report.ActionItems {
			ew.printf("%d. %s\n", i+1, item)
		}
		ew.printf("\n")
	}

	if len(report.Diagnostics) > 0 {
		ew.printf("### Diagnostics\n\n")
		for _, d := range report.Diagnostics {
			ew.printf("- %s\n", diagnosticLine(d))
		}
		ew.printf("\n")
	}

	ew.printf("*run %s*\n", report.RunID)
	return ew.err
}

func mdSeverityIcon(s rules.Severity) string {
	switch s {
	case rules.SeverityCritical:
		return ":red_circle:"
	case rules.SeverityMajor:
		return ":orange_circle:"
	case rules.SeverityMinor:
		return ":yellow_circle:"
	default:
		return ":white_circle:"
	}
}

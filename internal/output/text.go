package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ktlens/ktlens/internal/review"
	"github.com/ktlens/ktlens/internal/rules"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	ew.printf("ktlens review — %s mode\n", report.Inputs.Mode)
	if report.Inputs.Target != "" {
		ew.printf("Target: %s\n", report.Inputs.Target)
	}
	ew.printf("Units reviewed: %d\n", report.Inputs.Units)
	ew.println(strings.Repeat("─", 64))

	// Summary table: one row per category in fixed order.
	ew.printf("%-14s %9s %7s %7s %6s\n", "Category", "Critical", "Major", "Minor", "Good")
	for _, row := range report.Summary.PerCategory {
		ew.printf("%-14s %9d %7d %7d %6d\n",
			categoryLabel(row.Category),
			row.Counts.Critical, row.Counts.Major, row.Counts.Minor, row.Counts.Good)
	}
	c := report.Summary.Counts
	ew.println(strings.Repeat("─", 64))
	ew.printf("%-14s %9d %7d %7d %6d\n", "Total", c.Critical, c.Major, c.Minor, c.Good)
	ew.printf("\nVerdict: %s\n", report.Summary.Verdict)

	for _, sev := range []rules.Severity{rules.SeverityCritical, rules.SeverityMajor, rules.SeverityMinor} {
		findings := findingsAt(report.Findings, sev)
		if len(findings) == 0 {
			continue
		}
		ew.printf("\n%s %s (%d)\n", severityIcon(sev), strings.ToUpper(string(sev)), len(findings))
		ew.println(strings.Repeat("─", 40))
		for _, f := range findings {
			loc := f.Locations[0]
			ew.printf("\n  %s:%d  %s  [%s]\n", loc.Path, loc.StartLine, f.Title, f.RuleID)
			for _, ev := range f.Evidence {
				for _, line := range strings.Split(ev, "\n") {
					ew.printf("    %s\n", line)
				}
			}
			for _, line := range wrapText(f.Rationale, 70) {
				ew.printf("    %s\n", line)
			}
			if f.Fix != "" {
				ew.println("  Suggested fix:")
				for _, line := range wrapText(f.Fix, 70) {
					ew.printf("    %s\n", line)
				}
			}
			if len(f.RelatedIDs) > 0 {
				ew.printf("  Related findings: %s\n", strings.Join(f.RelatedIDs, ", "))
			}
		}
	}

	// Good practices: report the true count, however small.
	good := positiveFindings(report.Findings)
	ew.printf("\nGood practices observed: %d\n", report.Summary.GoodPractices)
	for _, f := range good {
		loc := f.Locations[0]
		ew.printf("  + %s:%d  %s\n", loc.Path, loc.StartLine, f.Title)
	}

	if len(report.ActionItems) > 0 {
		ew.println("\nAction items:")
		for i, item := range report.ActionItems {
			ew.printf("  %d. %s\n", i+1, item)
		}
	}

	if len(report.Diagnostics) > 0 {
		ew.println("\nDiagnostics:")
		for _, d := range report.Diagnostics {
			ew.printf("  - %s\n", diagnosticLine(d))
		}
	}

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func findingsAt(findings []review.Finding, sev rules.Severity) []review.Finding {
	var out []review.Finding
	for _, f := range findings {
		if f.Severity == sev && !f.Positive {
			out = append(out, f)
		}
	}
	return out
}

func positiveFindings(findings []review.Finding) []review.Finding {
	var out []review.Finding
	for _, f := range findings {
		if f.Positive {
			out = append(out, f)
		}
	}
	return out
}

func categoryLabel(c rules.Category) string {
	switch c {
	case rules.CategoryArchitecture:
		return "Architecture"
	case rules.CategoryConcurrency:
		return "Concurrency"
	case rules.CategoryLifecycle:
		return "Lifecycle"
	case rules.CategorySecurity:
		return "Security"
	case rules.CategoryUIFramework:
		return "UI Framework"
	case rules.CategoryKotlinIdiom:
		return "Kotlin Idiom"
	case rules.CategoryTesting:
		return "Testing"
	default:
		return string(c)
	}
}

func severityIcon(s rules.Severity) string {
	switch s {
	case rules.SeverityCritical:
		return "[!!!]"
	case rules.SeverityMajor:
		return "[!!]"
	case rules.SeverityMinor:
		return "[!]"
	default:
		return "[-]"
	}
}

func diagnosticLine(d review.Diagnostic) string {
	switch {
	case d.RuleID != "" && d.Path != "":
		return fmt.Sprintf("%s on %s: %s", d.RuleID, d.Path, d.Reason)
	case d.Path != "":
		return fmt.Sprintf("%s: %s", d.Path, d.Reason)
	default:
		return d.Reason
	}
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

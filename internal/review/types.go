package review

import (
	"github.com/ktlens/ktlens/internal/rules"
)

// RawMatch is one matcher hit against one source unit, before
// normalization. Immutable once produced by the engine.
type RawMatch struct {
	RuleID    string `json:"ruleId"`
	Path      string `json:"path"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Captured  string `json:"captured"`
	Snippet   string `json:"snippet"`
}

// Location is a file position covered by a finding.
type Location struct {
	Path      string `json:"path"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Finding is the normalized, reportable unit: one anti-pattern instance,
// possibly merged from several overlapping raw matches.
type Finding struct {
	ID         string         `json:"id"`
	RuleID     string         `json:"ruleId"`
	Category   rules.Category `json:"category"`
	Severity   rules.Severity `json:"severity"`
	Title      string         `json:"title"`
	Rationale  string         `json:"rationale"`
	Fix        string         `json:"fix,omitempty"`
	Positive   bool           `json:"positive,omitempty"`
	Locations  []Location     `json:"locations"`
	Evidence   []string       `json:"evidence"`
	RelatedIDs []string       `json:"relatedIds,omitempty"`
}

// Diagnostic records a recovered per-rule or per-unit failure. Diagnostics
// ride along with the report; they are never silently dropped.
type Diagnostic struct {
	RuleID string `json:"ruleId,omitempty"`
	Path   string `json:"path,omitempty"`
	Reason string `json:"reason"`
}

// Verdict is the aggregate review outcome.
type Verdict string

const (
	VerdictApprove     Verdict = "APPROVE"
	VerdictNeedsWork   Verdict = "NEEDS WORK"
	VerdictMajorIssues Verdict = "MAJOR ISSUES"
)

// SeverityCounts holds finding counts by severity tier.
type SeverityCounts struct {
	Critical int `json:"critical"`
	Major    int `json:"major"`
	Minor    int `json:"minor"`
	Good     int `json:"good"`
}

// CategoryCount is one summary-table row.
type CategoryCount struct {
	Category rules.Category `json:"category"`
	Counts   SeverityCounts `json:"counts"`
}

// Summary provides the report overview: per-category rows, per-severity
// totals, the true count of positive findings, and the verdict.
type Summary struct {
	Counts        SeverityCounts  `json:"counts"`
	PerCategory   []CategoryCount `json:"perCategory"`
	GoodPractices int             `json:"goodPractices"`
	Verdict       Verdict         `json:"verdict"`
}

// InputInfo describes what was reviewed.
type InputInfo struct {
	Mode   string `json:"mode"`
	Target string `json:"target,omitempty"`
	Units  int    `json:"units"`
}

// Report is the full review-run snapshot handed to the synthesizer. It
// is a deterministic function of the rule set and corpus; rendering any
// format from it performs no further analysis.
type Report struct {
	Tool        string       `json:"tool"`
	Version     string       `json:"version"`
	RunID       string       `json:"runId"`
	Inputs      InputInfo    `json:"inputs"`
	Summary     Summary      `json:"summary"`
	Findings    []Finding    `json:"findings"`
	ActionItems []string     `json:"actionItems"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// ComputeSummary calculates the summary from classified findings.
// Positive findings count toward the Good tier and the good-practices
// total; they never affect the verdict.
func ComputeSummary(findings []Finding) Summary {
	s := Summary{}
	perCat := make(map[rules.Category]*SeverityCounts)
	for _, c := range rules.Categories {
		perCat[c] = &SeverityCounts{}
	}
	for _, f := range findings {
		row, ok := perCat[f.Category]
		if !ok {
			row = &SeverityCounts{}
			perCat[f.Category] = row
		}
		switch f.Severity {
		case rules.SeverityCritical:
			s.Counts.Critical++
			row.Critical++
		case rules.SeverityMajor:
			s.Counts.Major++
			row.Major++
		case rules.SeverityMinor:
			s.Counts.Minor++
			row.Minor++
		case rules.SeverityGood:
			s.Counts.Good++
			row.Good++
		}
		if f.Positive {
			s.GoodPractices++
		}
	}
	for _, c := range rules.Categories {
		s.PerCategory = append(s.PerCategory, CategoryCount{Category: c, Counts: *perCat[c]})
	}
	s.Verdict = ComputeVerdict(s.Counts)
	return s
}

// ComputeVerdict maps severity totals to the aggregate verdict.
func ComputeVerdict(c SeverityCounts) Verdict {
	switch {
	case c.Critical > 0:
		return VerdictMajorIssues
	case c.Major > 0:
		return VerdictNeedsWork
	default:
		return VerdictApprove
	}
}

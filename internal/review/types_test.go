package review

import (
	"testing"

	"github.com/ktlens/ktlens/internal/rules"
)

func TestComputeVerdict(t *testing.T) {
	tests := []struct {
		name   string
		counts SeverityCounts
		want   Verdict
	}{
		{"clean", SeverityCounts{}, VerdictApprove},
		{"good only", SeverityCounts{Good: 3}, VerdictApprove},
		{"minor only", SeverityCounts{Minor: 5}, VerdictApprove},
		{"major", SeverityCounts{Major: 1, Minor: 2}, VerdictNeedsWork},
		{"critical", SeverityCounts{Critical: 1, Major: 4}, VerdictMajorIssues},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeVerdict(tt.counts); got != tt.want {
				t.Errorf("ComputeVerdict(%+v) = %s, want %s", tt.counts, got, tt.want)
			}
		})
	}
}

func TestComputeSummary(t *testing.T) {
	findings := []Finding{
		{Category: rules.CategorySecurity, Severity: rules.SeverityCritical},
		{Category: rules.CategorySecurity, Severity: rules.SeverityMajor},
		{Category: rules.CategoryKotlinIdiom, Severity: rules.SeverityMinor},
		{Category: rules.CategoryLifecycle, Severity: rules.SeverityGood, Positive: true},
	}
	s := ComputeSummary(findings)

	if s.Counts != (SeverityCounts{Critical: 1, Major: 1, Minor: 1, Good: 1}) {
		t.Errorf("Counts = %+v", s.Counts)
	}
	if s.GoodPractices != 1 {
		t.Errorf("GoodPractices = %d, want 1", s.GoodPractices)
	}
	if s.Verdict != VerdictMajorIssues {
		t.Errorf("Verdict = %s, want MAJOR ISSUES", s.Verdict)
	}
	if len(s.PerCategory) != len(rules.Categories) {
		t.Fatalf("PerCategory has %d rows, want one per category", len(s.PerCategory))
	}
	for i, row := range s.PerCategory {
		if row.Category != rules.Categories[i] {
			t.Errorf("row %d = %s, want fixed order %s", i, row.Category, rules.Categories[i])
		}
	}
	var sec SeverityCounts
	for _, row := range s.PerCategory {
		if row.Category == rules.CategorySecurity {
			sec = row.Counts
		}
	}
	if sec != (SeverityCounts{Critical: 1, Major: 1}) {
		t.Errorf("security row = %+v", sec)
	}
}

func TestComputeSummaryPositivesDoNotGateVerdict(t *testing.T) {
	findings := []Finding{
		{Category: rules.CategoryTesting, Severity: rules.SeverityGood, Positive: true},
		{Category: rules.CategoryLifecycle, Severity: rules.SeverityGood, Positive: true},
	}
	if s := ComputeSummary(findings); s.Verdict != VerdictApprove {
		t.Errorf("Verdict = %s, want APPROVE for positive-only report", s.Verdict)
	}
}

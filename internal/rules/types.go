package rules

import "github.com/ktlens/ktlens/internal/source"

// Severity represents the remediation urgency of a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
	SeverityGood     Severity = "good"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityMajor:
		return 3
	case SeverityMinor:
		return 2
	case SeverityGood:
		return 1
	default:
		return 0
	}
}

// Demote lowers a severity by one level. Minor is the floor; Good never
// changes, it is not a defect tier.
func Demote(s Severity) Severity {
	switch s {
	case SeverityCritical:
		return SeverityMajor
	case SeverityMajor:
		return SeverityMinor
	default:
		return s
	}
}

// MeetsThreshold returns true if severity is at or above the threshold.
func MeetsThreshold(s Severity, threshold string) bool {
	if threshold == "none" || threshold == "" {
		return false
	}
	return SeverityRank(s) >= SeverityRank(Severity(threshold))
}

// Category represents the anti-pattern family a rule belongs to.
type Category string

const (
	CategoryArchitecture Category = "architecture"
	CategoryConcurrency  Category = "concurrency"
	CategoryLifecycle    Category = "lifecycle"
	CategorySecurity     Category = "security"
	CategoryUIFramework  Category = "uiframework"
	CategoryKotlinIdiom  Category = "kotlinidiom"
	CategoryTesting      Category = "testing"
)

// Categories is the fixed presentation order used by reports and as the
// secondary sort key for findings.
var Categories = []Category{
	CategoryArchitecture,
	CategoryConcurrency,
	CategoryLifecycle,
	CategorySecurity,
	CategoryUIFramework,
	CategoryKotlinIdiom,
	CategoryTesting,
}

// CategoryRank returns the fixed presentation position of a category.
// Unknown categories sort last.
func CategoryRank(c Category) int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return len(Categories)
}

// Match is a single raw hit produced by a rule's matcher: a 1-based line
// range within the scanned unit plus the text that triggered the rule.
type Match struct {
	StartLine int
	EndLine   int
	Captured  string
}

// MatchFunc is a pure predicate over one source unit. The index carries
// the role mapping for matchers that need cross-file knowledge; matchers
// hold no state of their own, which is what makes parallel evaluation
// safe. Matches are returned in order of first occurrence in the file.
type MatchFunc func(u *source.Unit, ix *source.Index) []Match

// Rule is an immutable detection definition. Rationale and Fix are
// templates; every "{capture}" placeholder is replaced with the matched
// text when a finding is built.
type Rule struct {
	ID        string
	Category  Category
	Severity  Severity
	Title     string
	Rationale string
	Fix       string
	Positive  bool
	Match     MatchFunc
}

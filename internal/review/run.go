package review

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/ktlens/ktlens/internal/redact"
	"github.com/ktlens/ktlens/internal/rules"
	"github.com/ktlens/ktlens/internal/source"
)

// Tool and Version identify report provenance.
const (
	Tool    = "ktlens"
	Version = "0.3.0"
)

// ErrNoSources indicates that no source units could be gathered. This is
// a configuration-level error: the run aborts before any report exists.
var ErrNoSources = errors.New("no source units to review")

// Options configures a single pipeline run.
type Options struct {
	Mode        string
	Target      string
	Engine      EngineOptions
	MaxFindings int
}

// Run executes the full pipeline over an already-gathered corpus:
// match, normalize, link, classify, summarize. The returned report is
// the only artifact; the corpus and intermediate state are discarded
// with the run.
func Run(cat *rules.Catalog, units []*source.Unit, opts Options) (*Report, error) {
	if len(units) == 0 {
		return nil, ErrNoSources
	}

	matches, diags := Match(cat, units, opts.Engine)

	findings, err := Normalize(matches, cat)
	if err != nil {
		return nil, fmt.Errorf("normalizing matches: %w", err)
	}

	ix := source.NewIndex(units)
	Link(findings, ix)

	findings, err = Classify(findings, cat, ix)
	if err != nil {
		return nil, fmt.Errorf("classifying findings: %w", err)
	}

	// Evidence quotes real source lines; strip credential material so
	// the report does not republish what a secret finding points at.
	for i := range findings {
		findings[i].Rationale = redact.Secrets(findings[i].Rationale)
		for j := range findings[i].Evidence {
			findings[i].Evidence[j] = redact.Secrets(findings[i].Evidence[j])
		}
	}

	if opts.MaxFindings > 0 && len(findings) > opts.MaxFindings {
		diags = append(diags, Diagnostic{
			Reason: fmt.Sprintf("finding list truncated to %d of %d", opts.MaxFindings, len(findings)),
		})
		findings = findings[:opts.MaxFindings]
	}

	return &Report{
		Tool:        Tool,
		Version:     Version,
		RunID:       runID(cat, units),
		Inputs:      InputInfo{Mode: opts.Mode, Target: opts.Target, Units: len(units)},
		Summary:     ComputeSummary(findings),
		Findings:    findings,
		ActionItems: actionItems(findings),
		Diagnostics: diags,
	}, nil
}

// runID is derived from the rule set and corpus content rather than a
// clock, so identical inputs always produce an identical report.
func runID(cat *rules.Catalog, units []*source.Unit) string {
	h := sha256.New()
	for _, r := range cat.List("") {
		fmt.Fprintf(h, "%s\n", r.ID)
	}
	for _, u := range units {
		fmt.Fprintf(h, "%s\n", u.Path)
		h.Write([]byte(u.Content))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil)[:16])
}

// actionItems lists remediation steps for defect findings, in the same
// order the findings are presented.
func actionItems(findings []Finding) []string {
	var items []string
	for _, f := range findings {
		if f.Positive || f.Severity == rules.SeverityGood {
			continue
		}
		loc := f.Locations[0]
		items = append(items, fmt.Sprintf("[%s] %s:%d — %s", f.Severity, loc.Path, loc.StartLine, f.Title))
	}
	return items
}

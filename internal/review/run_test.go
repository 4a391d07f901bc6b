package review

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ktlens/ktlens/internal/rules"
	"github.com/ktlens/ktlens/internal/source"
)

func TestRunNotNullAssertEndToEnd(t *testing.T) {
	u := mustUnit(t, "app/src/main/Util.kt", "fun f(x: String?): Int = x!!.length")
	rep, err := Run(rules.NewCatalog(), []*source.Unit{u}, Options{Mode: "tree", Target: "."})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(rep.Findings) != 1 {
		t.Fatalf("got %d findings, want exactly 1", len(rep.Findings))
	}
	f := rep.Findings[0]
	if f.RuleID != "IDIOM-NOT-NULL-ASSERT" || f.Category != rules.CategoryKotlinIdiom {
		t.Errorf("wrong finding: %s / %s", f.RuleID, f.Category)
	}
	if f.Severity != rules.SeverityMajor {
		t.Errorf("severity = %s, want major", f.Severity)
	}
	if f.Locations[0].StartLine != 1 {
		t.Errorf("StartLine = %d, want 1", f.Locations[0].StartLine)
	}
	if len(f.Evidence) == 0 || !strings.Contains(f.Evidence[0], "x!!.length") {
		t.Errorf("evidence does not quote the offending line: %v", f.Evidence)
	}
	if rep.Summary.Verdict != VerdictNeedsWork {
		t.Errorf("verdict = %s, want NEEDS WORK", rep.Summary.Verdict)
	}
	if len(rep.ActionItems) != 1 || !strings.Contains(rep.ActionItems[0], "app/src/main/Util.kt:1") {
		t.Errorf("action items = %v", rep.ActionItems)
	}
}

func TestRunDemotesFindingInTestUnit(t *testing.T) {
	u := mustUnit(t, "app/src/test/UtilTest.kt", "fun f(x: String?): Int = x!!.length")
	rep, err := Run(rules.NewCatalog(), []*source.Unit{u}, Options{Mode: "tree"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(rep.Findings))
	}
	if rep.Findings[0].Severity != rules.SeverityMinor {
		t.Errorf("severity = %s, want minor in test code", rep.Findings[0].Severity)
	}
	if rep.Summary.Verdict != VerdictApprove {
		t.Errorf("verdict = %s, want APPROVE", rep.Summary.Verdict)
	}
}

func TestRunEscalatesEntryPointSecurity(t *testing.T) {
	u := mustUnit(t, "MainActivity.kt", `class MainActivity : AppCompatActivity() {
  val base = "http://api.example.com/v1"
}`)
	rep, err := Run(rules.NewCatalog(), []*source.Unit{u}, Options{Mode: "tree"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(rep.Findings))
	}
	f := rep.Findings[0]
	if f.RuleID != "SEC-CLEARTEXT-HTTP" || f.Severity != rules.SeverityCritical {
		t.Errorf("got %s at %s, want SEC-CLEARTEXT-HTTP at critical", f.RuleID, f.Severity)
	}
	if rep.Summary.Verdict != VerdictMajorIssues {
		t.Errorf("verdict = %s, want MAJOR ISSUES", rep.Summary.Verdict)
	}
}

func TestRunDeterministic(t *testing.T) {
	units := []*source.Unit{
		mustUnit(t, "a/Util.kt", "val y = a!!\nval s = v as String"),
		mustUnit(t, "b/Sync.kt", "val j = GlobalScope.launch { }"),
	}
	cat := rules.NewCatalog()
	opts := Options{Mode: "tree", Engine: EngineOptions{Threads: 4}}

	first, err := Run(cat, units, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Run(cat, units, opts)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced a different report", i)
		}
	}
	if first.RunID == "" {
		t.Error("report missing run id")
	}
}

func TestRunNoSources(t *testing.T) {
	if _, err := Run(rules.NewCatalog(), nil, Options{}); !errors.Is(err, ErrNoSources) {
		t.Errorf("want ErrNoSources, got %v", err)
	}
}

func TestRunRedactsSecretsFromReport(t *testing.T) {
	u := mustUnit(t, "Cfg.kt", `object Cfg { val apiKey = "sk-live-4f9a8b7c6d5e" }`)
	rep, err := Run(rules.NewCatalog(), []*source.Unit{u}, Options{Mode: "tree"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Findings) != 1 || rep.Findings[0].RuleID != "SEC-HARDCODED-SECRET" {
		t.Fatalf("unexpected findings: %+v", rep.Findings)
	}
	for _, ev := range rep.Findings[0].Evidence {
		if strings.Contains(ev, "sk-live") {
			t.Errorf("evidence republishes the secret: %q", ev)
		}
	}
	if strings.Contains(rep.Findings[0].Rationale, "sk-live") {
		t.Errorf("rationale republishes the secret: %q", rep.Findings[0].Rationale)
	}
}

func TestRunTruncatesAtMaxFindings(t *testing.T) {
	u := mustUnit(t, "Util.kt", "val a = x!!\nval b = y as String")
	rep, err := Run(rules.NewCatalog(), []*source.Unit{u}, Options{Mode: "tree", MaxFindings: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Findings) != 1 {
		t.Fatalf("got %d findings, want truncation to 1", len(rep.Findings))
	}
	truncated := false
	for _, d := range rep.Diagnostics {
		if strings.Contains(d.Reason, "truncated") {
			truncated = true
		}
	}
	if !truncated {
		t.Error("truncation must be reported as a diagnostic")
	}
}

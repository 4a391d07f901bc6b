package review

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ktlens/ktlens/internal/rules"
	"github.com/ktlens/ktlens/internal/source"
)

func mustUnit(t *testing.T, path, content string) *source.Unit {
	t.Helper()
	u, err := source.NewUnit(path, content, source.ProjectMeta{})
	if err != nil {
		t.Fatalf("NewUnit(%s): %v", path, err)
	}
	return u
}

func TestMatchDeterministicAcrossRuns(t *testing.T) {
	units := []*source.Unit{
		mustUnit(t, "a/Util.kt", "fun f(x: String?) = x!!.length\nval s = value as String"),
		mustUnit(t, "b/Poll.kt", "fun wait() {\n  Thread.sleep(500)\n}"),
		mustUnit(t, "c/Sync.kt", "val job = GlobalScope.launch { sync() }"),
	}
	cat := rules.NewCatalog()
	opts := EngineOptions{Threads: 8}

	first, _ := Match(cat, units, opts)
	if len(first) == 0 {
		t.Fatal("fixture produced no matches")
	}
	for i := 0; i < 10; i++ {
		again, _ := Match(cat, units, opts)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged from first run", i)
		}
	}
}

func TestMatchPanicIsolation(t *testing.T) {
	boom := rules.Rule{
		ID:        "ZZZ-BOOM",
		Category:  rules.CategoryKotlinIdiom,
		Severity:  rules.SeverityMinor,
		Title:     "always panics",
		Rationale: "n/a",
		Match: func(*source.Unit, *source.Index) []rules.Match {
			panic("matcher bug")
		},
	}
	steady := rules.Rule{
		ID:        "AAA-STEADY",
		Category:  rules.CategoryKotlinIdiom,
		Severity:  rules.SeverityMinor,
		Title:     "always matches",
		Rationale: "n/a",
		Match: func(u *source.Unit, _ *source.Index) []rules.Match {
			return []rules.Match{{StartLine: 1, EndLine: 1, Captured: u.Line(1)}}
		},
	}
	cat := rules.NewCatalogWith([]rules.Rule{boom, steady})
	units := []*source.Unit{
		mustUnit(t, "A.kt", "class A"),
		mustUnit(t, "B.kt", "class B"),
	}

	matches, diags := Match(cat, units, EngineOptions{})
	if len(matches) != 2 {
		t.Errorf("steady rule produced %d matches, want 2", len(matches))
	}
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want one per panicking pair", len(diags))
	}
	for _, d := range diags {
		if d.RuleID != "ZZZ-BOOM" || d.Path == "" {
			t.Errorf("diagnostic missing attribution: %+v", d)
		}
		if !strings.Contains(d.Reason, "matcher bug") {
			t.Errorf("diagnostic lost the panic value: %q", d.Reason)
		}
	}
}

func TestMatchMaxPairsDiagnostic(t *testing.T) {
	units := []*source.Unit{mustUnit(t, "Util.kt", "val y = a!!")}
	cat := rules.NewCatalog()

	matches, diags := Match(cat, units, EngineOptions{MaxPairs: 1})
	if len(matches) == 0 {
		t.Error("bound diagnostic must not suppress matching")
	}
	found := false
	for _, d := range diags {
		if strings.Contains(d.Reason, "corpus bound exceeded") {
			found = true
		}
	}
	if !found {
		t.Error("exceeding MaxPairs must surface a diagnostic")
	}
}

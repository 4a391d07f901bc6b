package rules

import (
	"strings"
	"testing"
)

func TestGlobalScope(t *testing.T) {
	u := mustUnit(t, "Sync.kt", "fun sync() {\n  GlobalScope.launch { upload() }\n}")
	ms := matchRule(t, "CONC-GLOBAL-SCOPE", u, emptyIndex())
	if len(ms) != 1 {
		t.Fatalf("got %d matches, want 1", len(ms))
	}
	if !strings.Contains(ms[0].Captured, "GlobalScope.launch") {
		t.Errorf("Captured = %q", ms[0].Captured)
	}
}

func TestGlobalScopeAsync(t *testing.T) {
	u := mustUnit(t, "Sync.kt", "val d = GlobalScope.async { fetch() }")
	if ms := matchRule(t, "CONC-GLOBAL-SCOPE", u, emptyIndex()); len(ms) != 1 {
		t.Errorf("got %d matches, want 1", len(ms))
	}
}

func TestRunBlocking(t *testing.T) {
	u := mustUnit(t, "Repo.kt", "fun load() = runBlocking { api.fetch() }")
	if ms := matchRule(t, "CONC-RUN-BLOCKING", u, emptyIndex()); len(ms) != 1 {
		t.Errorf("got %d matches, want 1", len(ms))
	}
}

func TestThreadSleep(t *testing.T) {
	u := mustUnit(t, "Poll.kt", "while (true) {\n  Thread.sleep(1000)\n}")
	if ms := matchRule(t, "CONC-THREAD-SLEEP", u, emptyIndex()); len(ms) != 1 {
		t.Errorf("got %d matches, want 1", len(ms))
	}
}

func TestViewModelScopePositive(t *testing.T) {
	u := mustUnit(t, "UserViewModel.kt", "class UserViewModel : ViewModel() {\n  fun load() { viewModelScope.launch { refresh() } }\n}")
	ms := matchRule(t, "GOOD-VIEWMODEL-SCOPE", u, emptyIndex())
	if len(ms) != 1 {
		t.Fatalf("got %d matches, want 1", len(ms))
	}
}

func TestViewModelScopeOnlyInViewModels(t *testing.T) {
	u := mustUnit(t, "Helper.kt", "fun go(s: Scope) { viewModelScope.launch { } }")
	if ms := matchRule(t, "GOOD-VIEWMODEL-SCOPE", u, emptyIndex()); len(ms) != 0 {
		t.Errorf("non-ViewModel unit matched %d times", len(ms))
	}
}

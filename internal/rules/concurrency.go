package rules

import (
	"regexp"

	"github.com/ktlens/ktlens/internal/source"
)

var (
	globalScopeCall    = regexp.MustCompile(`\bGlobalScope\s*\.\s*(launch|async)\b`)
	runBlockingCall    = regexp.MustCompile(`\brunBlocking\b`)
	threadSleepCall    = regexp.MustCompile(`\bThread\.sleep\s*\(`)
	viewModelScopeCall = regexp.MustCompile(`\bviewModelScope\s*\.\s*(launch|async)\b`)
)

func concurrencyRules() []Rule {
	return []Rule{
		{
			ID:        "CONC-GLOBAL-SCOPE",
			Category:  CategoryConcurrency,
			Severity:  SeverityMajor,
			Title:     "Coroutine launched on GlobalScope",
			Rationale: "{capture} creates a coroutine outliving every lifecycle in the app. Work on GlobalScope is never cancelled, survives configuration changes, and keeps references alive after their owners are gone.",
			Fix:       "Launch from a scope tied to the owner's lifecycle (viewModelScope, lifecycleScope, or an injected CoroutineScope).",
			Match:     findScrubbed(globalScopeCall),
		},
		{
			ID:        "CONC-RUN-BLOCKING",
			Category:  CategoryConcurrency,
			Severity:  SeverityMajor,
			Title:     "runBlocking in production code",
			Rationale: "{capture} blocks the calling thread until the coroutine completes. On the main thread this freezes the UI; on a dispatcher thread it starves the pool.",
			Fix:       "Use a suspend function or launch into an appropriate scope instead of bridging with runBlocking.",
			Match:     findScrubbed(runBlockingCall),
		},
		{
			ID:        "CONC-THREAD-SLEEP",
			Category:  CategoryConcurrency,
			Severity:  SeverityMinor,
			Title:     "Thread.sleep used for waiting",
			Rationale: "{capture} blocks a whole thread to pass time. Inside coroutines it defeats structured concurrency; in tests it makes runs slow and flaky.",
			Fix:       "Use delay() inside coroutines, or an explicit scheduling/test-clock mechanism.",
			Match:     findScrubbed(threadSleepCall),
		},
		{
			ID:        "GOOD-VIEWMODEL-SCOPE",
			Category:  CategoryConcurrency,
			Severity:  SeverityGood,
			Positive:  true,
			Title:     "Coroutines scoped to the ViewModel",
			Rationale: "{capture} ties coroutine work to the ViewModel's lifecycle, so it is cancelled automatically when the ViewModel is cleared.",
			Fix:       "",
			Match: onlyRoles(
				findScrubbed(viewModelScopeCall),
				source.RoleViewModel,
			),
		},
	}
}

package review

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ktlens/ktlens/internal/rules"
	"github.com/ktlens/ktlens/internal/source"
)

// EngineOptions bound and tune the matching phase.
type EngineOptions struct {
	// Threads caps the matcher worker pool; <=0 means GOMAXPROCS.
	Threads int
	// MaxPairs bounds units*rules for one run. Exceeding it is reported
	// as a diagnostic, not a failure; the run still completes.
	MaxPairs int
	// ContextLines controls how much surrounding code a snippet quotes.
	ContextLines int
}

// Match evaluates every (rule, unit) pair and collects raw matches.
//
// Evaluations are independent (matchers are stateless), so they fan out
// across a worker pool. Each result lands in a slot indexed by its pair,
// and the slots are flattened in corpus-then-catalog order after the
// barrier, so the output order never depends on goroutine scheduling. A
// matcher that panics costs only its own slot: the failure is recorded
// as a diagnostic and every other pair still reports.
func Match(cat *rules.Catalog, units []*source.Unit, opts EngineOptions) ([]RawMatch, []Diagnostic) {
	ruleSet := cat.List("")
	ix := source.NewIndex(units)

	type task struct {
		unitIdx int
		ruleIdx int
	}

	var diags []Diagnostic
	pairs := len(units) * len(ruleSet)
	if opts.MaxPairs > 0 && pairs > opts.MaxPairs {
		diags = append(diags, Diagnostic{
			Reason: fmt.Sprintf("corpus bound exceeded: %d unit×rule pairs > configured max %d; run latency may suffer", pairs, opts.MaxPairs),
		})
	}

	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > pairs && pairs > 0 {
		threads = pairs
	}

	context := opts.ContextLines
	if context <= 0 {
		context = 1
	}

	slots := make([][]RawMatch, pairs)
	slotDiags := make([]*Diagnostic, pairs)
	tasks := make(chan task)

	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				slot := t.unitIdx*len(ruleSet) + t.ruleIdx
				slots[slot], slotDiags[slot] = evalPair(ruleSet[t.ruleIdx], units[t.unitIdx], ix, context)
			}
		}()
	}

	for ui := range units {
		for ri := range ruleSet {
			tasks <- task{unitIdx: ui, ruleIdx: ri}
		}
	}
	close(tasks)
	wg.Wait() // single collection barrier before normalization

	var out []RawMatch
	for slot := 0; slot < pairs; slot++ {
		out = append(out, slots[slot]...)
		if d := slotDiags[slot]; d != nil {
			diags = append(diags, *d)
		}
	}
	return out, diags
}

// evalPair runs one matcher over one unit, converting a panic into a
// diagnostic so a buggy rule cannot abort the run.
func evalPair(rule rules.Rule, u *source.Unit, ix *source.Index, context int) (out []RawMatch, diag *Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			diag = &Diagnostic{
				RuleID: rule.ID,
				Path:   u.Path,
				Reason: fmt.Sprintf("rule evaluation failed: %v", r),
			}
		}
	}()

	for _, m := range rule.Match(u, ix) {
		out = append(out, RawMatch{
			RuleID:    rule.ID,
			Path:      u.Path,
			StartLine: m.StartLine,
			EndLine:   m.EndLine,
			Captured:  m.Captured,
			Snippet:   u.Snippet(m.StartLine, m.EndLine, context),
		})
	}
	return out, nil
}

package rules

import (
	"regexp"
	"strings"

	"github.com/ktlens/ktlens/internal/source"
)

var (
	companionDecl      = regexp.MustCompile(`\bcompanion\s+object\b`)
	contextField       = regexp.MustCompile(`\b(?:lateinit\s+var|var|val)\s+\w+\s*:\s*(Context|Activity|AppCompatActivity|Fragment|View)\b`)
	registerReceiver   = regexp.MustCompile(`\bregisterReceiver\s*\(`)
	unregisterReceiver = regexp.MustCompile(`\bunregisterReceiver\s*\(`)
	streamOpen         = regexp.MustCompile(`\b(FileInputStream|FileOutputStream|openFileInput|openFileOutput|BufferedReader|FileReader|FileWriter)\s*\(`)
	streamRelease      = regexp.MustCompile(`\.(use\s*\{|close\s*\(\))`)
	useBlock           = regexp.MustCompile(`\.use\s*\{`)
)

func lifecycleRules() []Rule {
	return []Rule{
		{
			ID:        "LIFE-STATIC-CONTEXT",
			Category:  CategoryLifecycle,
			Severity:  SeverityCritical,
			Title:     "Long-lived holder retains a Context",
			Rationale: "{capture} stores a Context, Activity, or View in a companion object. The static holder outlives the component it points at, so the whole Activity tree (and its views and bitmaps) can never be garbage collected.",
			Fix:       "Hold the applicationContext if a Context is genuinely needed, or scope the reference to the component's own lifecycle.",
			Match:     matchStaticContext,
		},
		{
			ID:        "LIFE-UNRELEASED-RECEIVER",
			Category:  CategoryLifecycle,
			Severity:  SeverityMajor,
			Title:     "Receiver registered but never unregistered",
			Rationale: "{capture} registers a broadcast receiver with no matching unregisterReceiver in this unit. The receiver keeps its enclosing component reachable and continues firing after the UI is gone.",
			Fix:       "Pair every registerReceiver with unregisterReceiver in the corresponding teardown callback (onStop/onDestroy).",
			Match:     matchUnreleasedReceiver,
		},
		{
			ID:        "LIFE-UNCLOSED-STREAM",
			Category:  CategoryLifecycle,
			Severity:  SeverityMajor,
			Title:     "Stream opened without use{} or close()",
			Rationale: "{capture} opens a stream but the unit never calls use {} or close(). Leaked file handles accumulate until the process hits its descriptor limit.",
			Fix:       "Wrap the stream in Kotlin's use {} block so it is closed on every path, including exceptions.",
			Match:     matchUnclosedStream,
		},
		{
			ID:        "GOOD-USE-BLOCK",
			Category:  CategoryLifecycle,
			Severity:  SeverityGood,
			Positive:  true,
			Title:     "Resources released through use{}",
			Rationale: "{capture} releases the underlying resource on every path, including exceptional ones.",
			Fix:       "",
			Match:     findScrubbed(useBlock),
		},
	}
}

// matchStaticContext flags Context-typed fields declared inside a
// companion object block. Block extent is approximated by brace
// counting on the scrubbed view, which is safe because scrubbing has
// removed braces in comments and strings.
func matchStaticContext(u *source.Unit, _ *source.Index) []Match {
	lines := u.ScrubbedLines()
	var out []Match
	depth := 0
	inCompanion := false
	companionDepth := 0
	for i, line := range lines {
		if !inCompanion && companionDecl.MatchString(line) {
			inCompanion = true
			companionDepth = depth
		}
		if inCompanion && contextField.MatchString(line) {
			out = append(out, Match{
				StartLine: i + 1,
				EndLine:   i + 1,
				Captured:  strings.TrimSpace(u.Line(i + 1)),
			})
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if inCompanion && depth <= companionDepth && strings.Contains(line, "}") {
			inCompanion = false
		}
	}
	return out
}

// matchUnreleasedReceiver reports each registerReceiver call when the
// unit contains no unregisterReceiver at all: an absent companion call
// within the same scope, detected lexically.
func matchUnreleasedReceiver(u *source.Unit, _ *source.Index) []Match {
	if containsToken(u, unregisterReceiver) {
		return nil
	}
	return findAll(u, u.ScrubbedLines(), registerReceiver)
}

func matchUnclosedStream(u *source.Unit, _ *source.Index) []Match {
	if containsToken(u, streamRelease) {
		return nil
	}
	return findAll(u, u.ScrubbedLines(), streamOpen)
}

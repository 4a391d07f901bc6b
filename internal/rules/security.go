package rules

import (
	"regexp"

	"github.com/ktlens/ktlens/internal/source"
)

var (
	hardcodedSecret = regexp.MustCompile(`(?i)\b(?:api[_-]?key|apikey|secret|password|passwd|token|auth[_-]?key)\w*\s*=\s*"[^"]{8,}"`)
	cleartextURL    = regexp.MustCompile(`"http://[^"]*"`)
	loopbackURL     = regexp.MustCompile(`http://(localhost|127\.0\.0\.1|10\.0\.2\.2)`)
	webViewJS       = regexp.MustCompile(`\bsetJavaScriptEnabled\s*\(\s*true\s*\)|\bjavaScriptEnabled\s*=\s*true\b`)
	sensitiveLog    = regexp.MustCompile(`(?i)\bLog\.[vdiwe]\s*\([^)]*\b(password|token|secret|credential)`)
)

func securityRules() []Rule {
	return []Rule{
		{
			ID:        "SEC-HARDCODED-SECRET",
			Category:  CategorySecurity,
			Severity:  SeverityMajor,
			Title:     "Credential hardcoded in source",
			Rationale: "{capture} embeds a credential in the binary. Anything shipped in an APK can be extracted with a decompiler; a leaked key cannot be rotated without a release.",
			Fix:       "Load the value from secure storage or build-time injection (local.properties, BuildConfig backed by CI secrets) and rotate the exposed credential.",
			Match:     findCode(hardcodedSecret),
		},
		{
			ID:        "SEC-CLEARTEXT-HTTP",
			Category:  CategorySecurity,
			Severity:  SeverityMajor,
			Title:     "Cleartext HTTP endpoint",
			Rationale: "{capture} talks to a server without TLS. Traffic on http:// can be read and altered by anyone on the network path.",
			Fix:       "Switch the endpoint to https:// and enable a network security config that forbids cleartext traffic.",
			Match:     matchCleartextHTTP,
		},
		{
			ID:        "SEC-WEBVIEW-JS",
			Category:  CategorySecurity,
			Severity:  SeverityMajor,
			Title:     "JavaScript enabled on a WebView",
			Rationale: "{capture} turns on JavaScript execution for loaded pages. Combined with loading remote or user-influenced content, this opens the app to script injection.",
			Fix:       "Leave JavaScript disabled unless the loaded content is fully trusted, and never expose JavascriptInterface objects to untrusted pages.",
			Match:     findScrubbed(webViewJS),
		},
		{
			ID:        "SEC-SENSITIVE-LOG",
			Category:  CategorySecurity,
			Severity:  SeverityMinor,
			Title:     "Sensitive value written to the log",
			Rationale: "{capture} sends credential material to logcat, which other processes and bug reports can read.",
			Fix:       "Remove the value from the log call or redact it before logging.",
			Match:     findScrubbed(sensitiveLog),
		},
	}
}

// matchCleartextHTTP scans the comment-stripped view because the trigger
// lives inside a string literal. Loopback addresses are exempt: emulator
// and localhost traffic never leaves the device.
func matchCleartextHTTP(u *source.Unit, _ *source.Index) []Match {
	var out []Match
	for _, m := range findAll(u, u.CodeLines(), cleartextURL) {
		if loopbackURL.MatchString(m.Captured) {
			continue
		}
		out = append(out, m)
	}
	return out
}

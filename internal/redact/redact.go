// Package redact masks credential material quoted into review reports.
// A finding about a hardcoded secret should point at the line without
// republishing the secret in the report artifact.
package redact

import "regexp"

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for credential shapes that show up
// in Android/Kotlin source.
var secretPatterns = []*regexp.Regexp{
	// Assignments of key-like names to quoted literals
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|secret|token|password|passwd|credential|auth[_-]?key)\w*\s*=\s*"[^"]{8,}"`),
	// Google API keys
	regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs (three base64 segments separated by dots)
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
}

// Secrets replaces detected credential material in text with [REDACTED].
// Replacement is regex-driven and deterministic, so redaction never
// breaks report reproducibility.
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllLiteralString(result, placeholder)
	}
	return result
}

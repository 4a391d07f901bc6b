// Package ignore matches paths against a .ktlensignore file in
// gitignore syntax.
package ignore

import (
	"os"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher holds parsed ignore patterns. The zero value matches nothing.
type Matcher struct{ ps []gitignore.Pattern }

// Load parses the ignore file at path. A missing file is not an error;
// it just yields an empty matcher.
func Load(path string) (Matcher, error) {
	var m Matcher
	data, err := os.ReadFile(path)
	if err != nil {
		return m, nil
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.ps = append(m.ps, gitignore.ParsePattern(line, nil))
	}
	return m, nil
}

// FromPatterns builds a matcher from raw gitignore-syntax patterns.
func FromPatterns(patterns []string) Matcher {
	var m Matcher
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		m.ps = append(m.ps, gitignore.ParsePattern(p, nil))
	}
	return m
}

// Match reports whether a slash-separated relative path is ignored.
func (m Matcher) Match(p string) bool {
	parts := strings.Split(p, "/")
	for _, pat := range m.ps {
		if pat.Match(parts, false) == gitignore.Exclude {
			return true
		}
	}
	return false
}

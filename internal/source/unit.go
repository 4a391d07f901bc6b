package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"
)

// ErrMalformed indicates a source unit that cannot be scanned (empty,
// binary, or not valid UTF-8). Callers skip the unit and record a
// diagnostic; the rest of the corpus is still processed.
var ErrMalformed = errors.New("malformed source unit")

// ProjectMeta seeds role inference. It comes from the context collector
// (project config), never from build-file discovery inside the engine.
type ProjectMeta struct {
	TestDirs       []string
	FrameworkHints []string
}

// Hint reports whether a framework hint is active. An empty hint set
// means "no information", which enables every heuristic.
func (m ProjectMeta) Hint(name string) bool {
	if len(m.FrameworkHints) == 0 {
		return true
	}
	for _, h := range m.FrameworkHints {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}

// Unit is a single source file in scope for a review run. It is built
// once, never mutated, and discarded when the run completes. The line
// views are computed lazily because not every rule needs every view.
type Unit struct {
	Path    string
	Content string
	Role    Role

	once          sync.Once
	lines         []string
	codeLines     []string
	scrubbedLines []string
}

// NewUnit builds a Unit, inferring its logical role from path and
// content. Empty, binary, or non-UTF-8 content yields ErrMalformed.
func NewUnit(path, content string, meta ProjectMeta) (*Unit, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %s: empty content", ErrMalformed, path)
	}
	if !utf8.ValidString(content) {
		return nil, fmt.Errorf("%w: %s: not valid UTF-8", ErrMalformed, path)
	}
	if strings.ContainsRune(content, 0) {
		return nil, fmt.Errorf("%w: %s: binary content", ErrMalformed, path)
	}
	return &Unit{
		Path:    path,
		Content: content,
		Role:    InferRole(path, content, meta),
	}, nil
}

// BaseName returns the file name without directory or .kt/.kts suffix,
// e.g. "UserViewModel" for "app/src/main/UserViewModel.kt".
func (u *Unit) BaseName() string {
	base := filepath.Base(u.Path)
	base = strings.TrimSuffix(base, ".kts")
	base = strings.TrimSuffix(base, ".kt")
	return base
}

func (u *Unit) build() {
	u.once.Do(func() {
		code, scrubbed := scrub(u.Content)
		u.lines = strings.Split(u.Content, "\n")
		u.codeLines = strings.Split(code, "\n")
		u.scrubbedLines = strings.Split(scrubbed, "\n")
	})
}

// Lines returns the original file content split into lines.
func (u *Unit) Lines() []string {
	u.build()
	return u.lines
}

// CodeLines returns the file with comment regions blanked out but
// string literals kept. String-sensitive rules (hardcoded secrets,
// cleartext URLs) scan this view.
func (u *Unit) CodeLines() []string {
	u.build()
	return u.codeLines
}

// ScrubbedLines returns the file with both comment regions and string
// literal contents blanked out. Most rules scan this view so that a
// commented-out line or a string containing trigger text can never
// produce a match.
func (u *Unit) ScrubbedLines() []string {
	u.build()
	return u.scrubbedLines
}

// Line returns the original text of a 1-based line number, or "" when
// out of range.
func (u *Unit) Line(n int) string {
	lines := u.Lines()
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// LineCount returns the number of lines in the unit.
func (u *Unit) LineCount() int {
	return len(u.Lines())
}

// Snippet quotes original lines [start, end] plus context lines on each
// side, prefixed with 1-based line numbers, for use as finding evidence.
func (u *Unit) Snippet(start, end, context int) string {
	lines := u.Lines()
	lo := start - context
	if lo < 1 {
		lo = 1
	}
	hi := end + context
	if hi > len(lines) {
		hi = len(lines)
	}
	var b strings.Builder
	for n := lo; n <= hi; n++ {
		fmt.Fprintf(&b, "%4d | %s\n", n, lines[n-1])
	}
	return strings.TrimSuffix(b.String(), "\n")
}

package source

import (
	"regexp"
	"strings"
)

// Role is the inferred logical role of a source unit. Roles drive
// contextual severity modifiers and cross-file finding links; inference
// is heuristic and deliberately cheap (naming plus a few content
// signals), never a semantic model.
type Role string

const (
	RoleViewModel  Role = "viewmodel"
	RoleRepository Role = "repository"
	RoleUseCase    Role = "usecase"
	RoleComposable Role = "composable"
	RoleEntryPoint Role = "entrypoint"
	RoleTest       Role = "test"
	RoleOther      Role = "other"
)

var (
	entryPointDecl = regexp.MustCompile(`:\s*(AppCompatActivity|ComponentActivity|Activity|Application|Fragment)\s*\(`)
	viewModelDecl  = regexp.MustCompile(`:\s*(AndroidViewModel|ViewModel)\s*\(`)
	junitImport    = regexp.MustCompile(`(?m)^import\s+(org\.junit|kotlin\.test|io\.kotest)\b`)
)

// InferRole classifies a unit by path and content. Test detection runs
// first so that an entry-point-shaped class inside a test tree is still
// treated as test code.
func InferRole(path, content string, meta ProjectMeta) Role {
	base := baseName(path)

	if isTestPath(path, base, meta) || junitImport.MatchString(content) {
		return RoleTest
	}
	if meta.Hint("android") {
		if entryPointDecl.MatchString(content) || base == "MainActivity" {
			return RoleEntryPoint
		}
	}
	if strings.Contains(content, "fun main(") {
		return RoleEntryPoint
	}
	if strings.HasSuffix(base, "ViewModel") || viewModelDecl.MatchString(content) {
		return RoleViewModel
	}
	if strings.HasSuffix(base, "Repository") || strings.HasSuffix(base, "Dao") || strings.HasSuffix(base, "DataSource") {
		return RoleRepository
	}
	if strings.HasSuffix(base, "UseCase") || strings.HasSuffix(base, "Interactor") {
		return RoleUseCase
	}
	if meta.Hint("compose") && strings.Contains(content, "@Composable") {
		return RoleComposable
	}
	return RoleOther
}

func isTestPath(path, base string, meta ProjectMeta) bool {
	norm := strings.ReplaceAll(path, "\\", "/")
	for _, dir := range meta.TestDirs {
		dir = strings.TrimSuffix(strings.ReplaceAll(dir, "\\", "/"), "/")
		if dir != "" && (norm == dir || strings.HasPrefix(norm, dir+"/")) {
			return true
		}
	}
	if strings.Contains(norm, "/test/") || strings.Contains(norm, "/androidTest/") {
		return true
	}
	return strings.HasSuffix(base, "Test") || strings.HasSuffix(base, "Tests")
}

func baseName(path string) string {
	norm := strings.ReplaceAll(path, "\\", "/")
	if i := strings.LastIndexByte(norm, '/'); i >= 0 {
		norm = norm[i+1:]
	}
	norm = strings.TrimSuffix(norm, ".kts")
	norm = strings.TrimSuffix(norm, ".kt")
	return norm
}

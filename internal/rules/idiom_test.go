package rules

import (
	"strings"
	"testing"
)

func TestNotNullAssert(t *testing.T) {
	u := mustUnit(t, "Foo.kt", "class Foo {\n  fun f(x: String?) = x!!.length\n}")
	ms := matchRule(t, "IDIOM-NOT-NULL-ASSERT", u, emptyIndex())
	if len(ms) != 1 {
		t.Fatalf("got %d matches, want 1", len(ms))
	}
	if ms[0].StartLine != 2 {
		t.Errorf("StartLine = %d, want 2", ms[0].StartLine)
	}
}

func TestNotNullAssertIgnoresCommentsAndStrings(t *testing.T) {
	src := strings.Join([]string{
		"class Foo {",
		"  // careful: x!! would crash",
		"  /* x!! */",
		`  val doc = "never write x!!"`,
		"}",
	}, "\n")
	u := mustUnit(t, "Foo.kt", src)
	if ms := matchRule(t, "IDIOM-NOT-NULL-ASSERT", u, emptyIndex()); len(ms) != 0 {
		t.Errorf("comment/string text produced %d false matches", len(ms))
	}
}

func TestNotNullAssertMultiplePerLine(t *testing.T) {
	u := mustUnit(t, "Foo.kt", "val y = a!!.b!!.c")
	if ms := matchRule(t, "IDIOM-NOT-NULL-ASSERT", u, emptyIndex()); len(ms) != 2 {
		t.Errorf("got %d matches, want 2", len(ms))
	}
}

func TestUnsafeCast(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"unsafe", "val s = value as String", 1},
		{"safe cast", "val s = value as? String", 0},
		{"import alias", "import foo.Bar as Baz", 0},
		{"lowercase word", "val has = increased", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := mustUnit(t, "Foo.kt", tt.src)
			if ms := matchRule(t, "IDIOM-UNSAFE-CAST", u, emptyIndex()); len(ms) != tt.want {
				t.Errorf("got %d matches, want %d", len(ms), tt.want)
			}
		})
	}
}

func TestEmptyCatch(t *testing.T) {
	src := strings.Join([]string{
		"try {",
		"  work()",
		"} catch (e: Exception) {",
		"}",
		"try {",
		"  more()",
		"} catch (e: Exception) { log(e) }",
	}, "\n")
	u := mustUnit(t, "Foo.kt", src)
	ms := matchRule(t, "IDIOM-EMPTY-CATCH", u, emptyIndex())
	if len(ms) != 1 {
		t.Fatalf("got %d matches, want 1", len(ms))
	}
	if ms[0].StartLine != 3 {
		t.Errorf("StartLine = %d, want 3", ms[0].StartLine)
	}
}

func TestSilentRunCatching(t *testing.T) {
	u := mustUnit(t, "Sync.kt", "fun sync() {\n  runCatching { upload() }\n}")
	ms := matchRule(t, "IDIOM-SILENT-RUNCATCHING", u, emptyIndex())
	if len(ms) != 1 {
		t.Fatalf("got %d matches, want 1", len(ms))
	}
	if ms[0].StartLine != 2 {
		t.Errorf("StartLine = %d, want 2", ms[0].StartLine)
	}
}

func TestRunCatchingConsumedOK(t *testing.T) {
	src := "fun sync() {\n  runCatching { upload() }.onFailure { log(it) }\n}"
	u := mustUnit(t, "Sync.kt", src)
	if ms := matchRule(t, "IDIOM-SILENT-RUNCATCHING", u, emptyIndex()); len(ms) != 0 {
		t.Errorf("consumed Result matched %d times", len(ms))
	}
}

func TestEmptyCatchSingleLine(t *testing.T) {
	u := mustUnit(t, "Foo.kt", "try { x() } catch (e: Exception) {}")
	if ms := matchRule(t, "IDIOM-EMPTY-CATCH", u, emptyIndex()); len(ms) != 1 {
		t.Errorf("got %d matches, want 1", len(ms))
	}
}

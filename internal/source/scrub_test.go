package source

import (
	"strings"
	"testing"
)

func TestScrubLineComment(t *testing.T) {
	code, scrubbed := scrub("val x = y!! // old: z!!")
	if strings.Count(code, "!!") != 1 {
		t.Errorf("code view should keep only the real assertion, got %q", code)
	}
	if strings.Count(scrubbed, "!!") != 1 {
		t.Errorf("scrubbed view should keep only the real assertion, got %q", scrubbed)
	}
	if !strings.Contains(code, "val x = y!!") {
		t.Errorf("code before comment must survive, got %q", code)
	}
}

func TestScrubBlockCommentNested(t *testing.T) {
	src := "a /* one /* two */ still comment */ b"
	code, _ := scrub(src)
	if strings.Contains(code, "still comment") {
		t.Errorf("nested block comment not fully stripped: %q", code)
	}
	if !strings.Contains(code, "a ") || !strings.HasSuffix(code, " b") {
		t.Errorf("code around comment must survive: %q", code)
	}
}

func TestScrubBlockCommentPreservesLines(t *testing.T) {
	src := "a\n/*\nx!!\n*/\nb"
	code, scrubbed := scrub(src)
	if got := strings.Count(code, "\n"); got != 4 {
		t.Errorf("line structure changed: %d newlines", got)
	}
	if strings.Contains(scrubbed, "!!") {
		t.Errorf("comment content leaked: %q", scrubbed)
	}
}

func TestScrubStringLiteral(t *testing.T) {
	src := `val s = "GlobalScope.launch" + name`
	code, scrubbed := scrub(src)
	if !strings.Contains(code, "GlobalScope") {
		t.Errorf("code view must keep string contents, got %q", code)
	}
	if strings.Contains(scrubbed, "GlobalScope") {
		t.Errorf("scrubbed view must blank string contents, got %q", scrubbed)
	}
	if !strings.Contains(scrubbed, "+ name") {
		t.Errorf("code after literal must survive, got %q", scrubbed)
	}
}

func TestScrubEscapedQuote(t *testing.T) {
	src := `val s = "a\"b!!" + x!!`
	_, scrubbed := scrub(src)
	if strings.Count(scrubbed, "!!") != 1 {
		t.Errorf("escaped quote terminated literal early: %q", scrubbed)
	}
}

func TestScrubRawString(t *testing.T) {
	src := "val q = \"\"\"\nrunBlocking { }\n\"\"\"\nrunBlocking { }"
	_, scrubbed := scrub(src)
	if strings.Count(scrubbed, "runBlocking") != 1 {
		t.Errorf("raw string contents leaked or real call lost: %q", scrubbed)
	}
}

func TestScrubCommentMarkerInsideString(t *testing.T) {
	src := `val url = "http://example.com" // comment`
	code, _ := scrub(src)
	if !strings.Contains(code, "http://example.com") {
		t.Errorf("// inside a string must not start a comment: %q", code)
	}
	if strings.Contains(code, "comment") {
		t.Errorf("trailing comment must be stripped: %q", code)
	}
}

func TestScrubCharLiteral(t *testing.T) {
	src := `val c = '!' ; val d = '!'`
	_, scrubbed := scrub(src)
	if strings.Contains(scrubbed, "!") {
		t.Errorf("char literal contents leaked: %q", scrubbed)
	}
	if !strings.Contains(scrubbed, ";") {
		t.Errorf("code between literals must survive: %q", scrubbed)
	}
}

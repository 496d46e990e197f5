package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	got := strings.Join(Topics(), ",")
	if got != "calendars,config,grid" {
		t.Fatalf("topics=%q", got)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	body, ok := Get(" Grid ")
	if !ok || !strings.Contains(body, "6 rows x 7 columns") {
		t.Fatalf("Get(grid) ok=%v body=%q", ok, body)
	}
	for _, topic := range []string{"", "missing", "../docs", "content/grid"} {
		if _, ok := Get(topic); ok {
			t.Fatalf("Get(%q) should fail", topic)
		}
	}
}

func TestRender_PlainStyle(t *testing.T) {
	t.Parallel()

	out := Render("# Title\n\nSome *text*.", 60, Style(false, false))
	if !strings.Contains(out, "Title") || !strings.Contains(out, "text") {
		t.Fatalf("render=%q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("plain style should not emit escapes: %q", out)
	}
}

func TestStyle(t *testing.T) {
	t.Parallel()

	if Style(false, true) != "notty" || Style(true, true) != "dark" || Style(true, false) != "light" {
		t.Fatalf("unexpected style names")
	}
}

package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hilal/internal/calendar"
	"hilal/internal/monthgrid"
	"hilal/internal/store"
)

type fakeMarks map[int][]store.Mark

func (f fakeMarks) ListMarks(_ context.Context, _ string, _ int, month int) ([]store.Mark, error) {
	return f[month], nil
}

type failingMarks struct{}

func (failingMarks) ListMarks(context.Context, string, int, int) ([]store.Mark, error) {
	return nil, errors.New("boom")
}

func TestRenderMonthMarkdown_TableAndMarks(t *testing.T) {
	t.Parallel()

	h, err := monthgrid.New(calendar.Hijri, 1445, 9)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	md := RenderMonthMarkdown(h, []store.Mark{{Day: 27, Label: "Laylat al-Qadr"}}, RenderOptions{ShowOtherMonths: true})

	for _, want := range []string{
		"# Ramadan 1445",
		"| Su | Mo | Tu | We | Th | Fr | Sa |",
		"| _29_ | 1 | 2 | 3 | 4 | 5 | 6 |",
		"| 21 | 22 | 23 | 24 | 25 | 26 | **27** |",
		"| 28 | 29 | 30 | _1_ | _2_ | _3_ | _4_ |",
		"## Marks",
		"- 27 Ramadan 1445 (2024-04-06): Laylat al-Qadr",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}

	md = RenderMonthMarkdown(h, nil, RenderOptions{})
	if strings.Contains(md, "_29_") || strings.Contains(md, "## Marks") {
		t.Fatalf("other months and marks should be absent:\n%s", md)
	}
	if !strings.Contains(md, "|  | 1 | 2 |") {
		t.Fatalf("expected blank leading cell:\n%s", md)
	}
}

func TestWriteMonth_Overwrite(t *testing.T) {
	t.Parallel()

	to := t.TempDir()
	res, err := WriteMonth(context.Background(), nil, calendar.Hijri, 1445, 9, to, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteMonth: %v", err)
	}
	want := filepath.Join(to, "hijri", "1445", "09.md")
	if len(res.Written) != 1 || res.Written[0] != want {
		t.Fatalf("written=%v, want [%s]", res.Written, want)
	}

	if _, err := WriteMonth(context.Background(), nil, calendar.Hijri, 1445, 9, to, WriteOptions{}); err == nil {
		t.Fatalf("expected error without overwrite")
	}
	if _, err := WriteMonth(context.Background(), nil, calendar.Hijri, 1445, 9, to, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("WriteMonth overwrite: %v", err)
	}
	if _, err := WriteMonth(context.Background(), nil, calendar.Hijri, 1445, 9, " ", WriteOptions{}); err == nil {
		t.Fatalf("expected missing --to error")
	}
	if _, err := WriteMonth(context.Background(), failingMarks{}, calendar.Hijri, 1445, 9, to, WriteOptions{Overwrite: true}); err == nil {
		t.Fatalf("expected mark source error")
	}
}

func TestWriteYear_WritesIndexAndMonths(t *testing.T) {
	t.Parallel()

	to := t.TempDir()
	marks := fakeMarks{9: {{Day: 27, Label: "Laylat al-Qadr"}, {Day: 1, Label: "Fast"}}}
	res, err := WriteYear(context.Background(), marks, calendar.Hijri, 1445, to, WriteOptions{WeekStart: 1})
	if err != nil {
		t.Fatalf("WriteYear: %v", err)
	}
	if len(res.Written) != 13 {
		t.Fatalf("expected index + 12 months; got %d (%v)", len(res.Written), res.Written)
	}

	index, err := os.ReadFile(filepath.Join(to, "hijri", "1445", "index.md"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	for _, want := range []string{"# 1445 (hijri)", "- [Muharram](01.md)", "- [Ramadan](09.md) (2 marked)"} {
		if !strings.Contains(string(index), want) {
			t.Fatalf("expected %q in index:\n%s", want, index)
		}
	}

	page, err := os.ReadFile(filepath.Join(to, "hijri", "1445", "09.md"))
	if err != nil {
		t.Fatalf("read 09.md: %v", err)
	}
	if !strings.Contains(string(page), "| Mo | Tu | We | Th | Fr | Sa | Su |") {
		t.Fatalf("expected monday header:\n%s", page)
	}
	if i, j := strings.Index(string(page), "- 1 Ramadan"), strings.Index(string(page), "- 27 Ramadan"); i < 0 || j < i {
		t.Fatalf("marks should be sorted by day:\n%s", page)
	}
}

func TestWriteYear_SkipsFirstMonthOfEra(t *testing.T) {
	t.Parallel()

	to := t.TempDir()
	res, err := WriteYear(context.Background(), nil, calendar.Hijri, 1, to, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteYear: %v", err)
	}
	if len(res.Written) != 12 {
		t.Fatalf("expected index + 11 months; got %d", len(res.Written))
	}
	if _, err := os.Stat(filepath.Join(to, "hijri", "1", "01.md")); !os.IsNotExist(err) {
		t.Fatalf("01.md should not exist: %v", err)
	}

	if _, err := WriteYear(context.Background(), nil, calendar.Hijri, 0, to, WriteOptions{}); !errors.Is(err, calendar.ErrInvalidDate) {
		t.Fatalf("year 0: got %v", err)
	}
}

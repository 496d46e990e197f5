package publish

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"hilal/internal/calendar"
	"hilal/internal/monthgrid"
	"hilal/internal/store"
)

type RenderOptions struct {
	// ShowOtherMonths prints spill-over days of the adjacent months in italics.
	ShowOtherMonths bool
}

// RenderMonthMarkdown renders the helper's month as a markdown table followed by
// a list of its marks. Marked days are bold.
func RenderMonthMarkdown(h *monthgrid.Helper, marks []store.Mark, opt RenderOptions) string {
	p := h.Provider()
	marked := make(map[int]bool, len(marks))
	for _, m := range marks {
		marked[m.Day] = true
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn(fmt.Sprintf("# %s %d", calendar.MonthName(p, h.Month()), h.Year()))
	writeLn("")

	header := calendar.WeekdayHeader(h.WeekStartDay())
	writeLn("| " + strings.Join(header[:], " | ") + " |")
	sep := make([]string, monthgrid.Columns)
	for i := range sep {
		sep[i] = "---:"
	}
	writeLn("|" + strings.Join(sep, "|") + "|")

	for _, c := range h.Cells() {
		if c.Column == 0 {
			buf.WriteString("|")
		}
		buf.WriteString(" " + cellText(c, marked, opt) + " |")
		if c.Column == monthgrid.Columns-1 {
			buf.WriteString("\n")
		}
	}

	if len(marks) > 0 {
		sorted := append([]store.Mark(nil), marks...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Day < sorted[j].Day })

		writeLn("")
		writeLn("## Marks")
		writeLn("")
		for _, m := range sorted {
			writeLn("- " + markLine(p, h, m))
		}
	}
	return buf.String()
}

func cellText(c monthgrid.Cell, marked map[int]bool, opt RenderOptions) string {
	day := strconv.Itoa(c.Day)
	switch {
	case c.Position != monthgrid.Current:
		if !opt.ShowOtherMonths {
			return ""
		}
		return "_" + day + "_"
	case marked[c.Day]:
		return "**" + day + "**"
	default:
		return day
	}
}

func markLine(p calendar.Provider, h *monthgrid.Helper, m store.Mark) string {
	date := fmt.Sprintf("%d %s %d", m.Day, calendar.MonthName(p, h.Month()), h.Year())
	if jp, ok := p.(calendar.JDNProvider); ok {
		if t, err := calendar.ToTime(jp, h.Year(), h.Month(), m.Day); err == nil {
			date += " (" + t.Format("2006-01-02") + ")"
		}
	}
	return date + ": " + m.Label
}

// RenderYearIndexMarkdown links the month pages written for one year.
func RenderYearIndexMarkdown(p calendar.Provider, year int, months []int, markCounts map[int]int) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %d (%s)\n\n", year, p.Name())
	for _, month := range months {
		line := fmt.Sprintf("- [%s](%s)", calendar.MonthName(p, month), monthFileName(month))
		if n := markCounts[month]; n > 0 {
			line += fmt.Sprintf(" (%d marked)", n)
		}
		buf.WriteString(line + "\n")
	}
	return buf.String()
}

func monthFileName(month int) string {
	return fmt.Sprintf("%02d.md", month)
}

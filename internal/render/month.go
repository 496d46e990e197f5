// Package render draws a month grid as terminal text.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"hilal/internal/calendar"
	"hilal/internal/monthgrid"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// cellWidth is two digits plus the mark column.
const cellWidth = 3

// Options controls what the month rendering highlights.
type Options struct {
	// ShowOtherMonths prints the spill-over days of the adjacent months (faint).
	ShowOtherMonths bool

	// Selected and Today are days of the current month (0 = none).
	Selected int
	Today    int

	// Marks maps a day of the current month to its labels.
	Marks map[int][]string

	// Profile selects the escape sequences emitted; termenv.Ascii renders plain text.
	Profile termenv.Profile

	// DarkBackground picks the dark variant of adaptive colors.
	DarkBackground bool
}

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	other    lipgloss.Style
	today    lipgloss.Style
	selected lipgloss.Style
	marked   lipgloss.Style
	legend   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Bold(true),
		header:   r.NewStyle().Foreground(ac("240", "245")),
		other:    r.NewStyle().Foreground(ac("250", "240")),
		today:    r.NewStyle().Bold(true).Underline(true),
		selected: r.NewStyle().Background(ac("#e9e9e9", "#262626")).Foreground(ac("235", "255")).Bold(true),
		marked:   r.NewStyle().Foreground(ac("27", "62")),
		legend:   r.NewStyle().Foreground(ac("238", "250")),
	}
}

// OutputProfile returns the color profile to use for w, honoring NO_COLOR and
// CLICOLOR_FORCE and falling back to plain text for non-terminals.
func OutputProfile(w io.Writer) termenv.Profile {
	return termenv.NewOutput(w).EnvColorProfile()
}

// Width is the rendered width of a month grid in cells.
func Width() int {
	return monthgrid.Columns*cellWidth + monthgrid.Columns - 1
}

// Month renders the helper's current month: a title, the weekday header, six rows
// and, when there are marks, a legend.
func Month(h *monthgrid.Helper, opts Options) string {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(opts.Profile)
	r.SetHasDarkBackground(opts.DarkBackground)
	st := newStyles(r)

	var b strings.Builder

	title := fmt.Sprintf("%s %d", calendar.MonthName(h.Provider(), h.Month()), h.Year())
	b.WriteString(st.title.Render(center(title, Width())))
	b.WriteByte('\n')

	header := calendar.WeekdayHeader(h.WeekStartDay())
	labels := make([]string, len(header))
	for i, l := range header {
		labels[i] = st.header.Render(pad(l, cellWidth))
	}
	b.WriteString(strings.Join(labels, " "))
	b.WriteByte('\n')

	cells := h.Cells()
	for row := 0; row < monthgrid.Rows; row++ {
		out := make([]string, monthgrid.Columns)
		for col := 0; col < monthgrid.Columns; col++ {
			out[col] = renderCell(st, cells[row*monthgrid.Columns+col], opts)
		}
		b.WriteString(strings.Join(out, " "))
		if row < monthgrid.Rows-1 {
			b.WriteByte('\n')
		}
	}

	if legend := renderLegend(st, opts.Marks); legend != "" {
		b.WriteString("\n\n")
		b.WriteString(legend)
	}
	return b.String()
}

func renderCell(st styles, c monthgrid.Cell, opts Options) string {
	if c.Position != monthgrid.Current {
		if !opts.ShowOtherMonths {
			return strings.Repeat(" ", cellWidth)
		}
		return st.other.Render(fmt.Sprintf("%2d ", c.Day))
	}

	mark := " "
	if len(opts.Marks[c.Day]) > 0 {
		mark = st.marked.Render("*")
	}
	digits := fmt.Sprintf("%2d", c.Day)
	switch {
	case c.Day == opts.Selected:
		digits = st.selected.Render(digits)
	case c.Day == opts.Today:
		digits = st.today.Render(digits)
	}
	return digits + mark
}

func renderLegend(st styles, marks map[int][]string) string {
	if len(marks) == 0 {
		return ""
	}
	days := make([]int, 0, len(marks))
	for d := range marks {
		days = append(days, d)
	}
	sort.Ints(days)
	var lines []string
	for _, d := range days {
		for _, label := range marks[d] {
			lines = append(lines, st.legend.Render(fmt.Sprintf("%2d* %s", d, label)))
		}
	}
	return strings.Join(lines, "\n")
}

// pad right-pads s to w terminal cells.
func pad(s string, w int) string {
	n := xansi.StringWidth(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}

func center(s string, w int) string {
	n := xansi.StringWidth(s)
	if n >= w {
		return s
	}
	left := (w - n) / 2
	return strings.Repeat(" ", left) + s
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hilal/internal/calendar"
	"hilal/internal/monthgrid"
	"hilal/internal/render"
	"hilal/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const defaultMarkLabel = "marked"

// Options configures the month view.
type Options struct {
	Provider  calendar.JDNProvider
	WeekStart int

	// Year and Month select the first month shown; zero means today's month.
	Year  int
	Month int
	// Day is the initially selected day (clamped to the month).
	Day int

	// Store persists marks and the last viewed month. Nil disables both.
	Store  *store.Store
	Logger *zap.Logger

	ShowOtherMonths bool
	// Profile is the appearance profile ("default" or "mono").
	Profile string

	Now func() time.Time
}

type monthModel struct {
	opts Options
	log  *zap.Logger

	grid     *monthgrid.Helper
	selected int
	marks    map[int][]store.Mark

	keys     keyMap
	help     help.Model
	input    textinput.Model
	labeling bool

	status string
	err    error
}

func newMonthModel(opts Options) (monthModel, error) {
	if opts.Provider == nil {
		return monthModel{}, fmt.Errorf("tui: no calendar")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	year, month, day := opts.Year, opts.Month, opts.Day
	if year == 0 || month == 0 {
		y, mo, d, err := calendar.FromTime(opts.Provider, opts.Now())
		if err != nil {
			return monthModel{}, err
		}
		year, month = y, mo
		if day == 0 {
			day = d
		}
	}
	grid, err := monthgrid.NewWithWeekStart(opts.Provider, year, month, opts.WeekStart)
	if err != nil {
		return monthModel{}, err
	}

	input := textinput.New()
	input.Placeholder = "Label"
	input.CharLimit = 120
	input.Width = 30

	m := monthModel{
		opts:     opts,
		log:      log,
		grid:     grid,
		selected: clampDay(day, grid.NumberOfDaysInMonth()),
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    input,
	}
	m.reloadMarks()
	return m, nil
}

func clampDay(day, n int) int {
	if day < 1 {
		return 1
	}
	if day > n {
		return n
	}
	return day
}

func (m monthModel) Init() tea.Cmd { return nil }

func (m monthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.labeling {
			return m.updateLabel(msg)
		}
		m.err = nil
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.moveDays(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveDays(1)
		case key.Matches(msg, m.keys.Up):
			m.moveDays(-monthgrid.Columns)
		case key.Matches(msg, m.keys.Down):
			m.moveDays(monthgrid.Columns)
		case key.Matches(msg, m.keys.PrevMonth):
			m.moveMonth(m.grid.PreviousMonth)
		case key.Matches(msg, m.keys.NextMonth):
			m.moveMonth(m.grid.NextMonth)
		case key.Matches(msg, m.keys.Today):
			m.goToday()
		case key.Matches(msg, m.keys.Mark):
			return m.toggleMark()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// moveDays moves the selection by at most a week, crossing into the adjacent month
// when it leaves the current one.
func (m *monthModel) moveDays(delta int) {
	day := m.selected + delta
	n := m.grid.NumberOfDaysInMonth()
	switch {
	case day < 1:
		if err := m.grid.PreviousMonth(); err != nil {
			m.err = err
			return
		}
		day += m.grid.NumberOfDaysInMonth()
	case day > n:
		if err := m.grid.NextMonth(); err != nil {
			m.err = err
			return
		}
		day -= n
	default:
		m.selected = day
		return
	}
	m.selected = day
	m.reloadMarks()
}

func (m *monthModel) moveMonth(step func() error) {
	if err := step(); err != nil {
		m.err = err
		return
	}
	m.selected = clampDay(m.selected, m.grid.NumberOfDaysInMonth())
	m.reloadMarks()
}

func (m *monthModel) goToday() {
	y, mo, d, err := calendar.FromTime(m.opts.Provider, m.opts.Now())
	if err != nil {
		m.err = err
		return
	}
	grid, err := monthgrid.NewWithWeekStart(m.opts.Provider, y, mo, m.grid.WeekStartDay())
	if err != nil {
		m.err = err
		return
	}
	m.grid = grid
	m.selected = d
	m.reloadMarks()
}

func (m *monthModel) reloadMarks() {
	if m.opts.Store == nil {
		m.marks = nil
		return
	}
	marks, err := m.opts.Store.MarkedDays(context.Background(), m.grid.Provider().Name(), m.grid.Year(), m.grid.Month())
	if err != nil {
		m.log.Warn("load marks", zap.Error(err))
		m.err = err
		return
	}
	m.marks = marks
}

func (m monthModel) toggleMark() (tea.Model, tea.Cmd) {
	if m.opts.Store == nil {
		m.status = "marks are disabled (no state directory)"
		return m, nil
	}
	if existing := m.marks[m.selected]; len(existing) > 0 {
		for _, mk := range existing {
			if err := m.opts.Store.DeleteMark(context.Background(), mk.ID); err != nil {
				m.err = err
				return m, nil
			}
		}
		m.status = fmt.Sprintf("unmarked day %d", m.selected)
		m.reloadMarks()
		return m, nil
	}
	m.labeling = true
	m.input.Reset()
	return m, m.input.Focus()
}

func (m monthModel) updateLabel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.labeling = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.labeling = false
		m.input.Blur()
		label := strings.TrimSpace(m.input.Value())
		if label == "" {
			label = defaultMarkLabel
		}
		mk, err := m.opts.Store.AddMark(context.Background(), store.Mark{
			Calendar: m.grid.Provider().Name(),
			Year:     m.grid.Year(),
			Month:    m.grid.Month(),
			Day:      m.selected,
			Label:    label,
		})
		if err != nil {
			m.err = err
			return m, nil
		}
		m.log.Debug("marked day", zap.String("id", mk.ID), zap.Int("day", mk.Day))
		m.status = fmt.Sprintf("marked day %d", m.selected)
		m.reloadMarks()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// todayInView returns today's day number when today falls in the shown month.
func (m monthModel) todayInView() int {
	y, mo, d, err := calendar.FromTime(m.opts.Provider, m.opts.Now())
	if err != nil || y != m.grid.Year() || mo != m.grid.Month() {
		return 0
	}
	return d
}

func (m monthModel) markLabels() map[int][]string {
	if len(m.marks) == 0 {
		return nil
	}
	out := make(map[int][]string, len(m.marks))
	for day, marks := range m.marks {
		for _, mk := range marks {
			out[day] = append(out[day], mk.Label)
		}
	}
	return out
}

func (m monthModel) selectedLine() string {
	p := m.grid.Provider()
	line := fmt.Sprintf("%d %s %d (%s)", m.selected, calendar.MonthName(p, m.grid.Month()), m.grid.Year(), p.Name())
	if t, err := calendar.ToTime(m.opts.Provider, m.grid.Year(), m.grid.Month(), m.selected); err == nil {
		line += "  " + t.Format("Mon 2006-01-02")
	}
	return line
}

func (m monthModel) View() string {
	var b strings.Builder
	b.WriteString(render.Month(m.grid, render.Options{
		ShowOtherMonths: m.opts.ShowOtherMonths,
		Selected:        m.selected,
		Today:           m.todayInView(),
		Marks:           m.markLabels(),
		Profile:         lipgloss.ColorProfile(),
		DarkBackground:  lipgloss.HasDarkBackground(),
	}))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(colorAccent).Render(m.selectedLine()))

	switch {
	case m.labeling:
		b.WriteString("\n")
		b.WriteString(m.input.View())
	case m.err != nil:
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorError).Render("error: " + m.err.Error()))
	case m.status != "":
		b.WriteString("\n")
		b.WriteString(styleMuted().Render(m.status))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m monthModel) viewState() store.ViewState {
	return store.ViewState{
		Calendar:    m.grid.Provider().Name(),
		Year:        m.grid.Year(),
		Month:       m.grid.Month(),
		SelectedDay: m.selected,
	}
}

// Package monthgrid lays the days of a calendar month out on a fixed 6x7 grid.
//
// The grid starts on a configurable weekday. Cells before day 1 show the trailing
// days of the previous month and cells after the last day show the first days of
// the next month. All queries are answered from values cached when the helper is
// built or navigated; the calendar provider is only consulted at those points.
//
// A Helper is not safe for concurrent use.
package monthgrid

import (
	"hilal/internal/calendar"
)

const (
	Rows      = 6
	Columns   = 7
	CellCount = Rows * Columns
)

// Helper holds the displayed year/month and the cached values the grid math needs.
type Helper struct {
	p calendar.Provider

	// display pref
	weekStartDay int

	year  int
	month int

	daysInMonth     int
	daysInPrevMonth int
	firstDayOfWeek  int
	offset          int
}

// New returns a helper for year/month with weeks starting on Sunday.
func New(p calendar.Provider, year, month int) (*Helper, error) {
	return NewWithWeekStart(p, year, month, calendar.Sunday)
}

// NewWithWeekStart returns a helper for year/month whose first column is weekStart
// (calendar.Sunday..calendar.Saturday).
func NewWithWeekStart(p calendar.Provider, year, month, weekStart int) (*Helper, error) {
	if err := checkRange("week start day", weekStart, calendar.Sunday, calendar.Saturday); err != nil {
		return nil, err
	}
	h := &Helper{p: p, weekStartDay: weekStart}
	if err := h.moveTo(year, month); err != nil {
		return nil, err
	}
	return h, nil
}

// Provider returns the calendar the grid is laid out in.
func (h *Helper) Provider() calendar.Provider { return h.p }

// Year returns the year of the current month.
func (h *Helper) Year() int { return h.year }

// Month returns the current month (1-based).
func (h *Helper) Month() int { return h.month }

// WeekStartDay returns the weekday shown in column 0.
func (h *Helper) WeekStartDay() int { return h.weekStartDay }

// FirstDayOfMonth returns the weekday of day 1 (calendar.Sunday..calendar.Saturday).
func (h *Helper) FirstDayOfMonth() int { return h.firstDayOfWeek }

// NumberOfDaysInMonth returns the length of the current month.
func (h *Helper) NumberOfDaysInMonth() int { return h.daysInMonth }

// NumberOfDaysInPrevMonth returns the length of the month before the current one.
func (h *Helper) NumberOfDaysInPrevMonth() int { return h.daysInPrevMonth }

// Offset is the number of leading cells in row 0 before day 1. If weeks start on
// Sunday and the month starts on a Wednesday, the offset is 3.
func (h *Helper) Offset() int { return h.offset }

// PreviousMonth moves the helper one month back.
func (h *Helper) PreviousMonth() error {
	return h.shift(-1)
}

// NextMonth moves the helper one month forward.
func (h *Helper) NextMonth() error {
	return h.shift(1)
}

func (h *Helper) shift(delta int) error {
	y, m, err := h.p.AddMonths(h.year, h.month, delta)
	if err != nil {
		return err
	}
	return h.moveTo(y, m)
}

// moveTo recalculates the cached values for year/month and only commits them once
// every provider call has succeeded.
func (h *Helper) moveTo(year, month int) error {
	days, err := h.p.DaysInMonth(year, month)
	if err != nil {
		return err
	}
	py, pm, err := h.p.AddMonths(year, month, -1)
	if err != nil {
		return err
	}
	prevDays, err := h.p.DaysInMonth(py, pm)
	if err != nil {
		return err
	}
	first, err := h.p.DayOfWeek(year, month, 1)
	if err != nil {
		return err
	}

	offset := first - h.weekStartDay
	if offset < 0 {
		offset += 7
	}

	h.year, h.month = year, month
	h.daysInMonth = days
	h.daysInPrevMonth = prevDays
	h.firstDayOfWeek = first
	h.offset = offset
	return nil
}

// Clone returns an independent copy; navigating the copy leaves h unchanged.
func (h *Helper) Clone() *Helper {
	c := *h
	return &c
}

package monthgrid

import "hilal/internal/calendar"

// Layout is a serialisable snapshot of a helper's month.
type Layout struct {
	Calendar        string             `json:"calendar"`
	Year            int                `json:"year"`
	Month           int                `json:"month"`
	MonthName       string             `json:"monthName"`
	WeekStartDay    int                `json:"weekStartDay"`
	FirstDayOfMonth int                `json:"firstDayOfMonth"`
	DaysInMonth     int                `json:"daysInMonth"`
	DaysInPrevMonth int                `json:"daysInPrevMonth"`
	Offset          int                `json:"offset"`
	Weekdays        [Columns]string    `json:"weekdays"`
	Rows            [Rows][Columns]int `json:"rows"`
	Cells           []Cell             `json:"cells,omitempty"`
}

// Snapshot captures the current month. Cells are included when withCells is set.
func (h *Helper) Snapshot(withCells bool) Layout {
	l := Layout{
		Calendar:        h.p.Name(),
		Year:            h.year,
		Month:           h.month,
		MonthName:       calendar.MonthName(h.p, h.month),
		WeekStartDay:    h.weekStartDay,
		FirstDayOfMonth: h.firstDayOfWeek,
		DaysInMonth:     h.daysInMonth,
		DaysInPrevMonth: h.daysInPrevMonth,
		Offset:          h.offset,
		Weekdays:        calendar.WeekdayHeader(h.weekStartDay),
	}
	for row := 0; row < Rows; row++ {
		for column := 0; column < Columns; column++ {
			l.Rows[row][column] = h.dayAt(row, column)
		}
	}
	if withCells {
		cells := h.Cells()
		l.Cells = cells[:]
	}
	return l
}

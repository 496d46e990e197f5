package monthgrid

// Position says which month a grid cell belongs to.
type Position int

const (
	Previous Position = iota - 1
	Current
	Next
)

func (p Position) String() string {
	switch p {
	case Previous:
		return "previous"
	case Current:
		return "current"
	case Next:
		return "next"
	default:
		return "unknown"
	}
}

// MarshalText lets encoders print positions by name.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Cell is one grid slot.
type Cell struct {
	Row      int      `json:"row"`
	Column   int      `json:"column"`
	Day      int      `json:"day"`
	Position Position `json:"position"`
}

func checkCell(row, column int) error {
	if err := checkRange("row", row, 0, Rows-1); err != nil {
		return err
	}
	return checkRange("column", column, 0, Columns-1)
}

// DayAt returns the day number shown at row (0-5), column (0-6).
//
// The number may belong to the previous or next month; use IsWithinCurrentMonth
// or CellAt to tell which.
func (h *Helper) DayAt(row, column int) (int, error) {
	if err := checkCell(row, column); err != nil {
		return 0, err
	}
	return h.dayAt(row, column), nil
}

func (h *Helper) dayAt(row, column int) int {
	if row == 0 && column < h.offset {
		return h.daysInPrevMonth + column - h.offset + 1
	}
	day := 7*row + column - h.offset + 1
	if day > h.daysInMonth {
		return day - h.daysInMonth
	}
	return day
}

// DigitsForRow returns the seven day numbers of row (0-5) in column order.
func (h *Helper) DigitsForRow(row int) ([Columns]int, error) {
	var out [Columns]int
	if err := checkRange("row", row, 0, Rows-1); err != nil {
		return out, err
	}
	for column := range out {
		out[column] = h.dayAt(row, column)
	}
	return out, nil
}

// RowOf returns the row of a day of the current month (1..NumberOfDaysInMonth).
func (h *Helper) RowOf(day int) int {
	return (day + h.offset - 1) / 7
}

// ColumnOf returns the column of a day of the current month (1..NumberOfDaysInMonth).
func (h *Helper) ColumnOf(day int) int {
	return (day + h.offset - 1) % 7
}

// IsWithinCurrentMonth reports whether the cell shows a day of the current month.
// Coordinates outside the grid report false.
func (h *Helper) IsWithinCurrentMonth(row, column int) bool {
	if row < 0 || column < 0 || row >= Rows || column >= Columns {
		return false
	}
	return h.position(row, column) == Current
}

// position expects in-range coordinates.
func (h *Helper) position(row, column int) Position {
	if row == 0 && column < h.offset {
		return Previous
	}
	if 7*row+column-h.offset+1 > h.daysInMonth {
		return Next
	}
	return Current
}

// CellAt is DayAt plus the month the day belongs to.
func (h *Helper) CellAt(row, column int) (Cell, error) {
	if err := checkCell(row, column); err != nil {
		return Cell{}, err
	}
	return Cell{Row: row, Column: column, Day: h.dayAt(row, column), Position: h.position(row, column)}, nil
}

// Cells returns the whole grid in row-major order.
func (h *Helper) Cells() [CellCount]Cell {
	var out [CellCount]Cell
	for i := range out {
		row, column := i/Columns, i%Columns
		out[i] = Cell{Row: row, Column: column, Day: h.dayAt(row, column), Position: h.position(row, column)}
	}
	return out
}

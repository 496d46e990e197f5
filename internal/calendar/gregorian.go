package calendar

import (
	"fmt"
	"time"
)

// Gregorian is the proleptic Gregorian calendar backed by package time.
var Gregorian = gregorian{}

type gregorian struct{}

func (gregorian) Name() string { return "gregorian" }

func (gregorian) DaysInMonth(year, month int) (int, error) {
	if err := checkYearMonth(year, month); err != nil {
		return 0, err
	}
	// Day 0 of next month is last day of this month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

func (g gregorian) DayOfWeek(year, month, day int) (int, error) {
	if _, err := g.JDN(year, month, day); err != nil {
		return 0, err
	}
	return int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()), nil
}

func (gregorian) AddMonths(year, month, delta int) (int, int, error) {
	return addMonths(year, month, delta)
}

func (g gregorian) JDN(year, month, day int) (int, error) {
	n, err := g.DaysInMonth(year, month)
	if err != nil {
		return 0, err
	}
	if day < 1 || day > n {
		return 0, fmt.Errorf("%w: day %d out of range (1-%d)", ErrInvalidDate, day, n)
	}
	return jdnFromCivil(year, month, day), nil
}

func (gregorian) FromJDN(jdn int) (int, int, int, error) {
	y, m, d := civilFromJDN(jdn)
	if y < 1 {
		return 0, 0, 0, fmt.Errorf("%w: jdn %d before year 1", ErrInvalidDate, jdn)
	}
	return y, m, d, nil
}

func (gregorian) MonthName(month int) string {
	if month < 1 || month > MonthsPerYear {
		return ""
	}
	return time.Month(month).String()
}

// jdnOfUnixEpoch is the Julian Day Number of 1970-01-01.
const jdnOfUnixEpoch = 2440588

func jdnFromCivil(year, month, day int) int {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return jdnOfUnixEpoch + int(floorDiv64(t.Unix(), 86400))
}

func civilFromJDN(jdn int) (int, int, int) {
	t := time.Unix(int64(jdn-jdnOfUnixEpoch)*86400, 0).UTC()
	return t.Year(), int(t.Month()), t.Day()
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

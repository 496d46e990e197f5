package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Weekday numbering shared by every provider: 0 = Sunday ... 6 = Saturday.
const (
	Sunday    = 0
	Monday    = 1
	Tuesday   = 2
	Wednesday = 3
	Thursday  = 4
	Friday    = 5
	Saturday  = 6
)

// MonthsPerYear is the month count of every bundled calendar. Months are 1-based.
const MonthsPerYear = 12

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrUnknownCalendar = errors.New("unknown calendar")
)

// Provider is the date engine a month grid is laid out against.
//
// Months are 1-based (1..12), days are 1-based and weekdays use the Sunday..Saturday
// constants above. Implementations must be stateless: every call is a pure function of
// its arguments.
type Provider interface {
	Name() string
	DaysInMonth(year, month int) (int, error)
	DayOfWeek(year, month, day int) (int, error)
	AddMonths(year, month, delta int) (int, int, error)
}

// JDNProvider is a Provider that can map dates to and from Julian Day Numbers,
// which is what lets two calendars be converted into each other.
type JDNProvider interface {
	Provider
	JDN(year, month, day int) (int, error)
	FromJDN(jdn int) (year, month, day int, err error)
}

// MonthNamer is implemented by providers with display names for their months.
type MonthNamer interface {
	MonthName(month int) string
}

var registry = map[string]Provider{
	"hijri":     Hijri,
	"hijra":     Hijra,
	"gregorian": Gregorian,
}

// Default is the calendar used when nothing else is configured.
const Default = "hijri"

// Lookup returns the registered provider for name (case-insensitive).
func Lookup(name string) (Provider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Default
	}
	p, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalendar, name)
	}
	return p, nil
}

// Names returns the registered calendar names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MonthName returns the provider's name for month, or the month number when the
// provider has no names.
func MonthName(p Provider, month int) string {
	if n, ok := p.(MonthNamer); ok {
		if s := n.MonthName(month); s != "" {
			return s
		}
	}
	return strconv.Itoa(month)
}

var weekdayShort = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// WeekdayShort returns a two letter label for weekday d (0 = Sunday).
func WeekdayShort(d int) string {
	return weekdayShort[floorMod(d, 7)]
}

// WeekdayHeader returns the seven column labels of a grid starting on weekStart.
func WeekdayHeader(weekStart int) [7]string {
	var out [7]string
	for i := range out {
		out[i] = WeekdayShort(weekStart + i)
	}
	return out
}

// ParseWeekday accepts a number (0-6) or an English weekday name or prefix.
func ParseWeekday(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("%w: empty weekday", ErrInvalidDate)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	for d := Sunday; d <= Saturday; d++ {
		name := strings.ToLower(time.Weekday(d).String())
		if len(s) >= 2 && strings.HasPrefix(name, s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidDate, s)
}

// FromTime returns the date of t's calendar day (in t's location) in calendar p.
func FromTime(p JDNProvider, t time.Time) (year, month, day int, err error) {
	return p.FromJDN(jdnFromCivil(t.Year(), int(t.Month()), t.Day()))
}

// ToTime returns midnight UTC of the given date of calendar p.
func ToTime(p JDNProvider, year, month, day int) (time.Time, error) {
	jdn, err := p.JDN(year, month, day)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := civilFromJDN(jdn)
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), nil
}

// Convert maps a date of calendar from onto calendar to.
func Convert(from, to JDNProvider, year, month, day int) (int, int, int, error) {
	jdn, err := from.JDN(year, month, day)
	if err != nil {
		return 0, 0, 0, err
	}
	return to.FromJDN(jdn)
}

func weekdayOfJDN(jdn int) int {
	return floorMod(jdn+1, 7)
}

// addMonths is month arithmetic with year rollover shared by the 12-month calendars.
func addMonths(year, month, delta int) (int, int, error) {
	if month < 1 || month > MonthsPerYear {
		return 0, 0, fmt.Errorf("%w: month %d out of range (1-%d)", ErrInvalidDate, month, MonthsPerYear)
	}
	total := year*MonthsPerYear + (month - 1) + delta
	y := floorDiv(total, MonthsPerYear)
	m := floorMod(total, MonthsPerYear) + 1
	if y < 1 {
		return 0, 0, fmt.Errorf("%w: year %d before epoch", ErrInvalidDate, y)
	}
	return y, m, nil
}

func checkYearMonth(year, month int) error {
	if year < 1 {
		return fmt.Errorf("%w: year %d before epoch", ErrInvalidDate, year)
	}
	if month < 1 || month > MonthsPerYear {
		return fmt.Errorf("%w: month %d out of range (1-%d)", ErrInvalidDate, month, MonthsPerYear)
	}
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

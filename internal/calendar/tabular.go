package calendar

import "fmt"

// Epochs of the tabular Islamic calendar (JDN of 1 Muharram 1 AH).
const (
	// CivilEpoch is Friday 16 July 622 (Julian).
	CivilEpoch = 1948440
	// AstronomicalEpoch is Thursday 15 July 622 (Julian).
	AstronomicalEpoch = 1948439
)

var (
	// Hijri is the tabular Islamic calendar counted from the civil epoch.
	Hijri = Tabular{name: "hijri", epoch: CivilEpoch}
	// Hijra is the tabular Islamic calendar counted from the astronomical epoch.
	Hijra = Tabular{name: "hijra", epoch: AstronomicalEpoch}
)

var hijriMonthNames = [MonthsPerYear]string{
	"Muharram",
	"Safar",
	"Rabi al-Awwal",
	"Rabi al-Thani",
	"Jumada al-Ula",
	"Jumada al-Akhirah",
	"Rajab",
	"Shaban",
	"Ramadan",
	"Shawwal",
	"Dhu al-Qadah",
	"Dhu al-Hijjah",
}

// Tabular is the arithmetic Islamic calendar: 30 day odd months, 29 day even
// months, and a 30 year cycle with 11 leap years (2, 5, 7, 10, 13, 16, 18, 21,
// 24, 26, 29) in which Dhu al-Hijjah has 30 days.
type Tabular struct {
	name  string
	epoch int
}

// NewTabular returns a tabular calendar counted from the given epoch JDN.
func NewTabular(name string, epoch int) Tabular {
	return Tabular{name: name, epoch: epoch}
}

func (c Tabular) Name() string { return c.name }

func (c Tabular) Epoch() int { return c.epoch }

// IsLeapYear reports whether year has 355 days.
func (c Tabular) IsLeapYear(year int) bool {
	return floorMod(11*year+14, 30) < 11
}

func (c Tabular) DaysInMonth(year, month int) (int, error) {
	if err := checkYearMonth(year, month); err != nil {
		return 0, err
	}
	if month%2 == 1 {
		return 30, nil
	}
	if month == MonthsPerYear && c.IsLeapYear(year) {
		return 30, nil
	}
	return 29, nil
}

func (c Tabular) DayOfWeek(year, month, day int) (int, error) {
	jdn, err := c.JDN(year, month, day)
	if err != nil {
		return 0, err
	}
	return weekdayOfJDN(jdn), nil
}

func (c Tabular) AddMonths(year, month, delta int) (int, int, error) {
	return addMonths(year, month, delta)
}

func (c Tabular) JDN(year, month, day int) (int, error) {
	n, err := c.DaysInMonth(year, month)
	if err != nil {
		return 0, err
	}
	if day < 1 || day > n {
		return 0, fmt.Errorf("%w: day %d out of range (1-%d)", ErrInvalidDate, day, n)
	}
	return c.jdn(year, month, day), nil
}

func (c Tabular) jdn(year, month, day int) int {
	// ceil(29.5 * (month-1)) days precede the month.
	monthDays := (59*(month-1) + 1) / 2
	return day + monthDays + (year-1)*354 + floorDiv(3+11*year, 30) + c.epoch - 1
}

func (c Tabular) FromJDN(jdn int) (int, int, int, error) {
	if jdn < c.epoch {
		return 0, 0, 0, fmt.Errorf("%w: jdn %d before %s epoch", ErrInvalidDate, jdn, c.name)
	}
	year := floorDiv(30*(jdn-c.epoch)+10646, 10631)
	// Months alternate 30/29 days, so month m starts ceil(29.5*(m-1)) days in.
	k := jdn - 29 - c.jdn(year, 1, 1)
	month := ceilDiv(2*k, 59) + 1
	if month > MonthsPerYear {
		month = MonthsPerYear
	}
	if month < 1 {
		month = 1
	}
	day := jdn - c.jdn(year, month, 1) + 1
	return year, month, day, nil
}

func (c Tabular) MonthName(month int) string {
	if month < 1 || month > MonthsPerYear {
		return ""
	}
	return hijriMonthNames[month-1]
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

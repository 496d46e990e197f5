package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestTabularKnownDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		cal              Tabular
		year, month, day int
		want             time.Time
		wantWeekday      int
	}{
		{
			name: "civil epoch", cal: Hijri, year: 1, month: 1, day: 1,
			want: time.Date(622, time.July, 19, 0, 0, 0, 0, time.UTC), wantWeekday: Friday,
		},
		{
			name: "civil 1 Ramadan 1445", cal: Hijri, year: 1445, month: 9, day: 1,
			want: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), wantWeekday: Monday,
		},
		{
			name: "astronomical 1 Ramadan 1445", cal: Hijra, year: 1445, month: 9, day: 1,
			want: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), wantWeekday: Sunday,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ToTime(tt.cal, tt.year, tt.month, tt.day)
			if err != nil {
				t.Fatalf("ToTime: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ToTime: got %s, want %s", got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
			wd, err := tt.cal.DayOfWeek(tt.year, tt.month, tt.day)
			if err != nil {
				t.Fatalf("DayOfWeek: %v", err)
			}
			if wd != tt.wantWeekday {
				t.Fatalf("DayOfWeek: got %d, want %d", wd, tt.wantWeekday)
			}
		})
	}
}

func TestTabularEpochs(t *testing.T) {
	t.Parallel()

	// 622-07-16 Julian is 622-07-19 proleptic Gregorian.
	if jdn, _ := Hijri.JDN(1, 1, 1); jdn != CivilEpoch {
		t.Fatalf("civil epoch: got %d, want %d", jdn, CivilEpoch)
	}
	if jdn, _ := Hijra.JDN(1, 1, 1); jdn != AstronomicalEpoch {
		t.Fatalf("astronomical epoch: got %d, want %d", jdn, AstronomicalEpoch)
	}
	if wd, _ := Hijra.DayOfWeek(1, 1, 1); wd != Thursday {
		t.Fatalf("astronomical epoch weekday: got %d, want %d", wd, Thursday)
	}
}

func TestTabularLeapYears(t *testing.T) {
	t.Parallel()

	leap := map[int]bool{2: true, 5: true, 7: true, 10: true, 13: true, 16: true, 18: true, 21: true, 24: true, 26: true, 29: true}
	for y := 1; y <= 30; y++ {
		for _, cycle := range []int{0, 30 * 47} {
			year := y + cycle
			if got := Hijri.IsLeapYear(year); got != leap[y] {
				t.Fatalf("IsLeapYear(%d): got %v, want %v", year, got, leap[y])
			}
			n, err := Hijri.DaysInMonth(year, 12)
			if err != nil {
				t.Fatalf("DaysInMonth: %v", err)
			}
			want := 29
			if leap[y] {
				want = 30
			}
			if n != want {
				t.Fatalf("DaysInMonth(%d, 12): got %d, want %d", year, n, want)
			}
		}
	}
}

func TestTabularJDNRoundTrip(t *testing.T) {
	t.Parallel()

	for _, cal := range []Tabular{Hijri, Hijra} {
		start, err := cal.JDN(1440, 1, 1)
		if err != nil {
			t.Fatalf("JDN: %v", err)
		}
		prevY, prevM, prevD := 0, 0, 0
		for jdn := start; jdn < start+30*355; jdn++ {
			y, m, d, err := cal.FromJDN(jdn)
			if err != nil {
				t.Fatalf("%s FromJDN(%d): %v", cal.Name(), jdn, err)
			}
			back, err := cal.JDN(y, m, d)
			if err != nil {
				t.Fatalf("%s JDN(%d, %d, %d): %v", cal.Name(), y, m, d, err)
			}
			if back != jdn {
				t.Fatalf("%s round trip: %d -> %d-%d-%d -> %d", cal.Name(), jdn, y, m, d, back)
			}
			if prevY != 0 && d != prevD+1 && d != 1 {
				t.Fatalf("%s non-consecutive day after %d-%d-%d: %d-%d-%d", cal.Name(), prevY, prevM, prevD, y, m, d)
			}
			prevY, prevM, prevD = y, m, d
		}
	}
}

func TestAddMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		year, month, delta int
		wantY, wantM       int
	}{
		{1445, 1, -1, 1444, 12},
		{1445, 12, 1, 1446, 1},
		{1445, 6, 0, 1445, 6},
		{1445, 6, 25, 1447, 7},
		{1445, 6, -18, 1443, 12},
	}
	for _, tt := range tests {
		y, m, err := Hijri.AddMonths(tt.year, tt.month, tt.delta)
		if err != nil {
			t.Fatalf("AddMonths(%d, %d, %d): %v", tt.year, tt.month, tt.delta, err)
		}
		if y != tt.wantY || m != tt.wantM {
			t.Fatalf("AddMonths(%d, %d, %d): got %d-%d, want %d-%d", tt.year, tt.month, tt.delta, y, m, tt.wantY, tt.wantM)
		}
	}

	if _, _, err := Hijri.AddMonths(1, 1, -1); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("AddMonths before epoch: expected ErrInvalidDate, got %v", err)
	}
}

func TestInvalidDates(t *testing.T) {
	t.Parallel()

	for _, p := range []JDNProvider{Hijri, Hijra, Gregorian} {
		if _, err := p.DaysInMonth(1445, 13); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%s DaysInMonth month 13: expected ErrInvalidDate, got %v", p.Name(), err)
		}
		if _, err := p.DaysInMonth(1445, 0); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%s DaysInMonth month 0: expected ErrInvalidDate, got %v", p.Name(), err)
		}
		if _, err := p.DayOfWeek(1445, 2, 30); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%s DayOfWeek day 30 of month 2: expected ErrInvalidDate, got %v", p.Name(), err)
		}
		if _, err := p.JDN(0, 1, 1); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%s JDN year 0: expected ErrInvalidDate, got %v", p.Name(), err)
		}
	}
}

func TestGregorianMatchesTime(t *testing.T) {
	t.Parallel()

	if jdn, _ := Gregorian.JDN(2000, 1, 1); jdn != 2451545 {
		t.Fatalf("JDN(2000-01-01): got %d, want 2451545", jdn)
	}
	n, _ := Gregorian.DaysInMonth(2024, 2)
	if n != 29 {
		t.Fatalf("DaysInMonth(2024, 2): got %d, want 29", n)
	}
	wd, _ := Gregorian.DayOfWeek(2024, 3, 11)
	if wd != Monday {
		t.Fatalf("DayOfWeek(2024-03-11): got %d, want %d", wd, Monday)
	}
}

func TestFromTimeAndConvert(t *testing.T) {
	t.Parallel()

	y, m, d, err := FromTime(Hijri, time.Date(2024, time.March, 11, 23, 59, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FromTime: %v", err)
	}
	if y != 1445 || m != 9 || d != 1 {
		t.Fatalf("FromTime: got %d-%d-%d, want 1445-9-1", y, m, d)
	}

	y, m, d, err = Convert(Hijri, Gregorian, 1445, 9, 1)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if y != 2024 || m != 3 || d != 11 {
		t.Fatalf("Convert: got %d-%d-%d, want 2024-3-11", y, m, d)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	p, err := Lookup(" HIJRA ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.Name() != "hijra" {
		t.Fatalf("Lookup: got %q", p.Name())
	}
	if p, _ := Lookup(""); p.Name() != Default {
		t.Fatalf("Lookup empty: got %q, want %q", p.Name(), Default)
	}
	if _, err := Lookup("julian"); !errors.Is(err, ErrUnknownCalendar) {
		t.Fatalf("Lookup unknown: expected ErrUnknownCalendar, got %v", err)
	}
	names := Names()
	if len(names) != 3 || names[0] != "gregorian" {
		t.Fatalf("Names: got %v", names)
	}
}

func TestWeekdayHelpers(t *testing.T) {
	t.Parallel()

	h := WeekdayHeader(Saturday)
	if h[0] != "Sa" || h[1] != "Su" || h[6] != "Fr" {
		t.Fatalf("WeekdayHeader(Saturday): got %v", h)
	}
	for in, want := range map[string]int{"0": 0, "6": 6, "mon": Monday, "Saturday": Saturday, "su": Sunday} {
		got, err := ParseWeekday(in)
		if err != nil {
			t.Fatalf("ParseWeekday(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseWeekday(%q): got %d, want %d", in, got, want)
		}
	}
	if _, err := ParseWeekday("x"); err == nil {
		t.Fatalf("ParseWeekday(x): expected error")
	}
	if MonthName(Hijri, 9) != "Ramadan" {
		t.Fatalf("MonthName(Hijri, 9): got %q", MonthName(Hijri, 9))
	}
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"hilal/internal/calendar"

	"github.com/sahilm/fuzzy"
)

type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type unknownCalendarError struct {
	name        string
	suggestions []string
}

func (e unknownCalendarError) Error() string {
	msg := fmt.Sprintf("unknown calendar %q", e.name)
	if len(e.suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(e.suggestions, ", ") + "?)"
	} else {
		msg += " (expected one of: " + strings.Join(calendar.Names(), ", ") + ")"
	}
	return msg
}

func (e unknownCalendarError) Unwrap() error { return calendar.ErrUnknownCalendar }

func errUnknownCalendar(name string) error {
	name = strings.TrimSpace(name)
	var suggestions []string
	for _, m := range fuzzy.Find(strings.ToLower(name), calendar.Names()) {
		suggestions = append(suggestions, m.Str)
	}
	return unknownCalendarError{name: name, suggestions: suggestions}
}

func atoiArg(name, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, usageErrorf("%s: expected an integer, got %q", name, v)
	}
	return n, nil
}

// parseYearMonth accepts [], [year month] or ["year-month"]. ok is false when no
// month was given.
func parseYearMonth(args []string) (year, month int, ok bool, err error) {
	switch len(args) {
	case 0:
		return 0, 0, false, nil
	case 1:
		parts := strings.FieldsFunc(args[0], func(r rune) bool { return r == '-' || r == '/' })
		if len(parts) != 2 {
			return 0, 0, false, usageErrorf("expected year-month, got %q", args[0])
		}
		args = parts
	case 2:
	default:
		return 0, 0, false, usageErrorf("expected [year month], got %d arguments", len(args))
	}
	if year, err = atoiArg("year", args[0]); err != nil {
		return 0, 0, false, err
	}
	if month, err = atoiArg("month", args[1]); err != nil {
		return 0, 0, false, err
	}
	return year, month, true, nil
}

// parseDate accepts year-month-day (or year/month/day).
func parseDate(s string) (year, month, day int, err error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '/' })
	if len(parts) != 3 {
		return 0, 0, 0, usageErrorf("expected year-month-day, got %q", s)
	}
	if year, err = atoiArg("year", parts[0]); err != nil {
		return 0, 0, 0, err
	}
	if month, err = atoiArg("month", parts[1]); err != nil {
		return 0, 0, 0, err
	}
	if day, err = atoiArg("day", parts[2]); err != nil {
		return 0, 0, 0, err
	}
	return year, month, day, nil
}

package cli

import (
	"time"

	"hilal/internal/calendar"

	"github.com/spf13/cobra"
)

type dateOutput struct {
	Calendar  string `json:"calendar"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"monthName"`
	Day       int    `json:"day"`
	Weekday   int    `json:"weekday"`
}

func newDateOutput(p calendar.JDNProvider, y, m, d int) (dateOutput, error) {
	wd, err := p.DayOfWeek(y, m, d)
	if err != nil {
		return dateOutput{}, err
	}
	return dateOutput{
		Calendar:  p.Name(),
		Year:      y,
		Month:     m,
		MonthName: calendar.MonthName(p, m),
		Day:       d,
		Weekday:   wd,
	}, nil
}

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's date in the selected calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.provider()
			if err != nil {
				return err
			}
			now := app.now()
			y, m, d, err := calendar.FromTime(p, now)
			if err != nil {
				return err
			}
			out, err := newDateOutput(p, y, m, d)
			if err != nil {
				return err
			}
			return writeData(cmd, app, map[string]any{
				"date":      out,
				"gregorian": now.Format(time.DateOnly),
			})
		},
	}
}

func newConvertCmd(app *App) *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "convert <year-month-day>",
		Short: "Convert a Gregorian date to the selected calendar (or back with --reverse)",
		Args:  cobra.ExactArgs(1),
		Example: `  hilal convert 2024-03-11
  hilal convert --reverse 1445-09-01
  hilal convert --calendar hijra 622-07-18`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.provider()
			if err != nil {
				return err
			}
			y, m, d, err := parseDate(args[0])
			if err != nil {
				return err
			}

			var from, to calendar.JDNProvider = calendar.Gregorian, p
			if reverse {
				from, to = p, calendar.Gregorian
			}
			ty, tm, td, err := calendar.Convert(from, to, y, m, d)
			if err != nil {
				return err
			}
			src, err := newDateOutput(from, y, m, d)
			if err != nil {
				return err
			}
			dst, err := newDateOutput(to, ty, tm, td)
			if err != nil {
				return err
			}
			return writeData(cmd, app, map[string]any{"from": src, "to": dst})
		},
	}
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Convert from the selected calendar to Gregorian")
	return cmd
}

func newCalendarsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "calendars",
		Short: "List the available calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := app.provider()
			if err != nil {
				return err
			}
			var out []map[string]any
			for _, name := range calendar.Names() {
				p, err := calendar.Lookup(name)
				if err != nil {
					return err
				}
				entry := map[string]any{
					"name":     name,
					"selected": name == selected.Name(),
				}
				if t, ok := p.(calendar.Tabular); ok {
					entry["epochJdn"] = t.Epoch()
				}
				out = append(out, entry)
			}
			return writeData(cmd, app, out)
		},
	}
}

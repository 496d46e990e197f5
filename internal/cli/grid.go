package cli

import (
	"context"

	"hilal/internal/calendar"
	"hilal/internal/monthgrid"
	"hilal/internal/render"

	"github.com/spf13/cobra"
)

func newGridCmd(app *App) *cobra.Command {
	var cells bool

	cmd := &cobra.Command{
		Use:   "grid [year month]",
		Short: "Print the 6x7 layout of a month",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.helper(cmd.Context(), args)
			if err != nil {
				return err
			}
			return writeData(cmd, app, h.Snapshot(cells))
		},
	}
	cmd.Flags().BoolVar(&cells, "cells", false, "Include every cell with the month it belongs to")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var otherMonths bool
	var noMarks bool

	cmd := &cobra.Command{
		Use:   "show [year month]",
		Short: "Render a month as text (other formats print the layout)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.helper(cmd.Context(), args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("other-months") {
				otherMonths = app.cfg.ShowOtherMonths()
			}
			opts := render.Options{
				ShowOtherMonths: otherMonths,
				Today:           app.todayIn(h),
				Profile:         render.OutputProfile(cmd.OutOrStdout()),
			}
			if !noMarks {
				if opts.Marks, err = app.markLabels(cmd.Context(), h); err != nil {
					return err
				}
			}
			sheet := render.NewSheet(h, false, opts)
			if !app.formatSet {
				return writeOut(cmd, app.withFormat("text"), sheet)
			}
			return writeData(cmd, app, sheet)
		},
	}
	cmd.Flags().BoolVar(&otherMonths, "other-months", true, "Show the spill-over days of the adjacent months")
	cmd.Flags().BoolVar(&noMarks, "no-marks", false, "Do not highlight marked days")
	return cmd
}

// withFormat returns a copy of app writing in format f.
func (app *App) withFormat(f string) *App {
	c := *app
	c.Format = f
	return &c
}

// todayIn returns today's day number when h shows the current month, else 0.
func (app *App) todayIn(h *monthgrid.Helper) int {
	p, ok := h.Provider().(calendar.JDNProvider)
	if !ok {
		return 0
	}
	y, m, d, err := app.today(p)
	if err != nil || y != h.Year() || m != h.Month() {
		return 0
	}
	return d
}

func (app *App) markLabels(ctx context.Context, h *monthgrid.Helper) (map[int][]string, error) {
	marks, err := app.store().MarkedDays(ctx, h.Provider().Name(), h.Year(), h.Month())
	if err != nil {
		return nil, err
	}
	out := make(map[int][]string, len(marks))
	for day, ms := range marks {
		for _, m := range ms {
			out[day] = append(out[day], m.Label)
		}
	}
	return out, nil
}

type cellOutput struct {
	Calendar string `json:"calendar"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	monthgrid.Cell
	WithinCurrentMonth bool `json:"withinCurrentMonth"`
}

func newCellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cell <row> <col> [year month]",
		Short: "Show the day at a grid cell (row 0-5, column 0-6)",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := atoiArg("row", args[0])
			if err != nil {
				return err
			}
			col, err := atoiArg("col", args[1])
			if err != nil {
				return err
			}
			h, err := app.helper(cmd.Context(), args[2:])
			if err != nil {
				return err
			}
			cell, err := h.CellAt(row, col)
			if err != nil {
				return err
			}
			return writeData(cmd, app, cellOutput{
				Calendar:           h.Provider().Name(),
				Year:               h.Year(),
				Month:              h.Month(),
				Cell:               cell,
				WithinCurrentMonth: h.IsWithinCurrentMonth(row, col),
			})
		},
	}
}

func newLocateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "locate <day> [year month]",
		Short: "Show the row and column of a day of the month",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := atoiArg("day", args[0])
			if err != nil {
				return err
			}
			h, err := app.helper(cmd.Context(), args[1:])
			if err != nil {
				return err
			}
			if day < 1 || day > h.NumberOfDaysInMonth() {
				return usageErrorf("day %d out of range (1-%d)", day, h.NumberOfDaysInMonth())
			}
			row, col := h.RowOf(day), h.ColumnOf(day)
			return writeData(cmd, app, map[string]any{
				"calendar": h.Provider().Name(),
				"year":     h.Year(),
				"month":    h.Month(),
				"day":      day,
				"row":      row,
				"column":   col,
			})
		},
	}
}

package cli

import (
	"errors"
	"strings"

	"hilal/internal/store"

	"github.com/spf13/cobra"
)

func newMarksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marks",
		Short: "Label days of a month",
	}
	cmd.AddCommand(newMarksAddCmd(app))
	cmd.AddCommand(newMarksListCmd(app))
	cmd.AddCommand(newMarksRmCmd(app))
	return cmd
}

func newMarksAddCmd(app *App) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "add <day> [year month]",
		Short: "Mark a day of the month",
		Args:  cobra.RangeArgs(1, 3),
		Example: `  hilal marks add 27 1445 9 --label "Laylat al-Qadr"
  hilal marks add 10 --label Ashura`,
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
			if strings.TrimSpace(label) == "" {
				return usageErrorf("missing --label")
			}
			m, err := app.store().AddMark(cmd.Context(), store.Mark{
				Calendar: h.Provider().Name(),
				Year:     h.Year(),
				Month:    h.Month(),
				Day:      day,
				Label:    label,
			})
			if err != nil {
				return err
			}
			return writeData(cmd, app, m)
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "Label shown in the legend (required)")
	return cmd
}

func newMarksListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list [year month]",
		Short: "List marks of a month (or every mark with --all)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cal         string
				year, month int
			)
			if all {
				if len(args) > 0 {
					return usageErrorf("--all takes no arguments")
				}
				p, err := app.provider()
				if err != nil {
					return err
				}
				cal = p.Name()
			} else {
				h, err := app.helper(cmd.Context(), args)
				if err != nil {
					return err
				}
				cal, year, month = h.Provider().Name(), h.Year(), h.Month()
			}
			marks, err := app.store().ListMarks(cmd.Context(), cal, year, month)
			if err != nil {
				return err
			}
			return writeData(cmd, app, marks)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "List every mark of the selected calendar")
	return cmd
}

func newMarksRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <mark-id>",
		Short: "Delete a mark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if err := app.store().DeleteMark(cmd.Context(), id); err != nil {
				if errors.Is(err, store.ErrMarkNotFound) {
					return errNotFound("mark", id)
				}
				return err
			}
			return writeData(cmd, app, map[string]any{"id": id, "deleted": true})
		},
	}
}

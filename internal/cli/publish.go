package cli

import (
	"hilal/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var to string
	var overwrite bool
	var otherMonths bool

	cmd := &cobra.Command{
		Use:   "publish <year> [month]",
		Short: "Write month grids and their marks as markdown files",
		Args:  cobra.RangeArgs(1, 2),
		Example: `  hilal publish 1445 --to ./site
  hilal publish 1445 9 --to ./site --overwrite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.provider()
			if err != nil {
				return err
			}
			ws, err := app.weekStart()
			if err != nil {
				return err
			}
			year, err := atoiArg("year", args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("other-months") {
				otherMonths = app.cfg.ShowOtherMonths()
			}
			opt := publish.WriteOptions{
				RenderOptions: publish.RenderOptions{ShowOtherMonths: otherMonths},
				WeekStart:     ws,
				Overwrite:     overwrite,
				Logger:        app.log(),
			}

			var res publish.WriteResult
			if len(args) == 2 {
				month, err := atoiArg("month", args[1])
				if err != nil {
					return err
				}
				res, err = publish.WriteMonth(cmd.Context(), app.store(), p, year, month, to, opt)
				if err != nil {
					return err
				}
			} else {
				res, err = publish.WriteYear(cmd.Context(), app.store(), p, year, to, opt)
				if err != nil {
					return err
				}
			}
			return writeData(cmd, app, res)
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output directory (required)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	cmd.Flags().BoolVar(&otherMonths, "other-months", true, "Include the spill-over days of the adjacent months")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

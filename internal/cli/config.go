package cli

import (
	"hilal/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change ~/.hilal/config.json",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the config file and its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return err
			}
			return writeData(cmd, app, map[string]any{
				"path":   path,
				"config": app.cfg,
				"keys":   store.ConfigKeys(),
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set a config key (an empty or missing value clears it)",
		Args:  cobra.RangeArgs(1, 2),
		Example: `  hilal config set calendar hijra
  hilal config set weekStart saturday
  hilal config set tui.showOtherMonths false
  hilal config set format`,
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 2 {
				value = args[1]
			}
			if err := app.cfg.Set(args[0], value); err != nil {
				return usageErrorf("%v", err)
			}
			if err := store.SaveConfig(app.cfg); err != nil {
				return err
			}
			app.log().Debug("config saved")
			return writeData(cmd, app, app.cfg)
		},
	})
	return cmd
}

package cli

import (
	"fmt"

	"hilal/internal/docs"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var width int

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeData(cmd, app, map[string]any{"topics": docs.Topics()})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return usageErrorf("unknown docs topic: %q (run `hilal docs` to list topics)", topic)
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if app.formatSet && app.Format != "text" {
				return writeData(cmd, app, map[string]any{"topic": topic, "markdown": body})
			}

			out := termenv.NewOutput(cmd.OutOrStdout())
			color := out.EnvColorProfile() != termenv.Ascii
			style := docs.Style(color, color && out.HasDarkBackground())
			_, err := fmt.Fprint(cmd.OutOrStdout(), docs.Render(body, width, style))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for rendered markdown")
	return cmd
}

package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hilal/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var origins []string
	var withMarks bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve month grids as JSON over HTTP",
		Long: strings.TrimSpace(`
Serve a small JSON API:

  GET /health
  GET /api/calendars
  GET /api/grid?calendar=&year=&month=&weekStart=&cells=
  GET /api/cell?row=&col=&calendar=&year=&month=&weekStart=
  GET /api/locate?day=&calendar=&year=&month=&weekStart=
  GET /api/today?calendar=
  GET /api/marks?calendar=&year=&month=   (with --marks)

Invalid parameters answer 400 with {"error": "..."}.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.provider()
			if err != nil {
				return err
			}
			ws, err := app.weekStart()
			if err != nil {
				return err
			}

			cfg := web.ServerConfig{
				Addr:         strings.TrimSpace(addr),
				Calendar:     p.Name(),
				WeekStart:    ws,
				AllowOrigins: origins,
				Logger:       app.log(),
				Now:          app.now,
			}
			if withMarks {
				cfg.Store = app.store()
			}
			if !app.Verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			srv, err := web.NewServer(cfg)
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", srv.Addr())
			if err != nil {
				return err
			}
			actual := ln.Addr().String()
			url := "http://" + actual + "/"

			_ = writeData(cmd, app, map[string]any{
				"addr":      actual,
				"url":       url,
				"calendar":  p.Name(),
				"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
			}, "curl "+url+"api/grid")
			fmt.Fprintf(cmd.ErrOrStderr(), "hilal serving at %s (calendar=%s)\n", url, p.Name())
			app.log().Info("web server started", zap.String("addr", actual))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Serve(ctx, ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("HILAL_ADDR", "127.0.0.1:3336"), "Bind address (host:port or :port)")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "Allowed CORS origin (repeatable; default any)")
	cmd.Flags().BoolVar(&withMarks, "marks", true, "Expose marks from the state directory")
	return cmd
}

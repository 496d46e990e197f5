package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"hilal/internal/calendar"
	"hilal/internal/format"
	"hilal/internal/monthgrid"
	"hilal/internal/store"
	"hilal/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type App struct {
	Dir       string
	Calendar  string
	WeekStart string
	Format    string
	Pretty    bool
	Verbose   bool

	cfg       *store.GlobalConfig
	formatSet bool
	logger    *zap.Logger
	now       func() time.Time
}

func NewRootCmd() *cobra.Command {
	app := &App{now: time.Now}

	cmd := &cobra.Command{
		Use:          "hilal",
		Short:        "Hijri month grids: library, CLI and TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive month view
  hilal

  # Print a month as text
  hilal show 1445 9

  # Grid layout as YAML, weeks starting on Saturday
  hilal grid 1445 9 --week-start saturday --format yaml

  # Which day sits in row 4, column 3?
  hilal cell 4 3 1445 9
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive month view.
			if len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if v := strings.TrimSpace(os.Getenv("HILAL_LOG_LEVEL")); v != "" {
			lvl, err := zap.ParseAtomicLevel(v)
			if err != nil {
				return fmt.Errorf("HILAL_LOG_LEVEL: %w", err)
			}
			config.Level = lvl
		}
		if app.Verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		app.logger = logger

		return app.loadConfig()
	}

	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.logger != nil {
			_ = app.logger.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("HILAL_DIR", ""), "State directory for marks and the last viewed month (default ~/.hilal/state)")
	cmd.PersistentFlags().StringVar(&app.Calendar, "calendar", envOr("HILAL_CALENDAR", ""), "Calendar ("+strings.Join(calendar.Names(), "|")+")")
	cmd.PersistentFlags().StringVar(&app.WeekStart, "week-start", envOr("HILAL_WEEK_START", ""), "First grid column: 0-6 or a weekday name (default sunday)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("HILAL_FORMAT", ""), "Output format ("+strings.Join(format.Names, "|")+")")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging on stderr")

	cmd.AddCommand(newGridCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newCellCmd(app))
	cmd.AddCommand(newLocateCmd(app))
	cmd.AddCommand(newTodayCmd(app))
	cmd.AddCommand(newConvertCmd(app))
	cmd.AddCommand(newCalendarsCmd(app))
	cmd.AddCommand(newMarksCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newPublishCmd(app))

	return cmd
}

// loadConfig fills settings not given by flag or environment from ~/.hilal/config.json.
func (app *App) loadConfig() error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	app.cfg = cfg

	app.formatSet = strings.TrimSpace(app.Format) != ""
	if !app.formatSet && cfg.Format != "" {
		app.Format = cfg.Format
		app.formatSet = true
	}
	if strings.TrimSpace(app.Format) == "" {
		app.Format = "json"
	}
	if !format.Valid(app.Format) {
		return usageErrorf("unknown format %q (expected %s)", app.Format, strings.Join(format.Names, "|"))
	}

	if strings.TrimSpace(app.Calendar) == "" {
		app.Calendar = cfg.Calendar
	}
	if strings.TrimSpace(app.Dir) == "" {
		app.Dir = cfg.StateDir
	}
	if strings.TrimSpace(app.Dir) == "" {
		d, err := store.DefaultStateDir()
		if err != nil {
			return err
		}
		app.Dir = d
	}
	return nil
}

func (app *App) log() *zap.Logger {
	if app.logger == nil {
		return zap.NewNop()
	}
	return app.logger
}

func (app *App) store() *store.Store {
	return &store.Store{Dir: app.Dir, Logger: app.log()}
}

// provider resolves --calendar, suggesting close names for typos.
func (app *App) provider() (calendar.JDNProvider, error) {
	p, err := calendar.Lookup(app.Calendar)
	if err != nil {
		return nil, errUnknownCalendar(app.Calendar)
	}
	jp, ok := p.(calendar.JDNProvider)
	if !ok {
		return nil, usageErrorf("calendar %s cannot convert dates", p.Name())
	}
	return jp, nil
}

func (app *App) weekStart() (int, error) {
	v := strings.TrimSpace(app.WeekStart)
	if v == "" {
		if app.cfg != nil && app.cfg.WeekStart != nil {
			return *app.cfg.WeekStart, nil
		}
		return calendar.Sunday, nil
	}
	d, err := calendar.ParseWeekday(v)
	if err != nil {
		return 0, usageErrorf("--week-start: %v", err)
	}
	return d, nil
}

// today returns today's date in the selected calendar.
func (app *App) today(p calendar.JDNProvider) (int, int, int, error) {
	return calendar.FromTime(p, app.now())
}

// helper builds the grid for an optional [year month] (or "year-month") argument
// list. Without arguments it uses the last viewed month, then today's.
func (app *App) helper(ctx context.Context, args []string) (*monthgrid.Helper, error) {
	p, err := app.provider()
	if err != nil {
		return nil, err
	}
	ws, err := app.weekStart()
	if err != nil {
		return nil, err
	}
	year, month, ok, err := parseYearMonth(args)
	if err != nil {
		return nil, err
	}
	if !ok {
		year, month, err = app.defaultMonth(ctx, p)
		if err != nil {
			return nil, err
		}
	}
	return monthgrid.NewWithWeekStart(p, year, month, ws)
}

func (app *App) defaultMonth(ctx context.Context, p calendar.JDNProvider) (int, int, error) {
	st, ok, err := app.store().LoadViewState(ctx, p.Name())
	if err != nil {
		app.log().Warn("load view state", zap.Error(err))
	}
	if err == nil && ok && st.Year > 0 && st.Month > 0 {
		return st.Year, st.Month, nil
	}
	y, m, _, err := app.today(p)
	return y, m, err
}

func runTUI(ctx context.Context, app *App) error {
	p, err := app.provider()
	if err != nil {
		return err
	}
	ws, err := app.weekStart()
	if err != nil {
		return err
	}
	s := app.store()
	opts := tui.Options{
		Provider:        p,
		WeekStart:       ws,
		Store:           s,
		Logger:          app.log(),
		ShowOtherMonths: app.cfg.ShowOtherMonths(),
		Now:             app.now,
	}
	if app.cfg.TUI != nil {
		opts.Profile = app.cfg.TUI.Profile
	}
	if st, ok, err := s.LoadViewState(ctx, p.Name()); err == nil && ok {
		opts.Year, opts.Month, opts.Day = st.Year, st.Month, st.SelectedDay
	}
	return tui.Run(opts)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

type envelope struct {
	Data  any      `json:"data"`
	Hints []string `json:"_hints,omitempty"`
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}

// writeData wraps data in the {"data": ...} envelope, except for text output of
// payloads that render themselves.
func writeData(cmd *cobra.Command, app *App, data any, hints ...string) error {
	if strings.EqualFold(app.Format, "text") {
		if t, ok := data.(format.Texter); ok {
			return writeOut(cmd, app, t)
		}
	}
	return writeOut(cmd, app, envelope{Data: data, Hints: hints})
}

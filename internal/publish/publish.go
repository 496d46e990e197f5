// Package publish writes month grids as markdown files.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hilal/internal/calendar"
	"hilal/internal/monthgrid"
	"hilal/internal/store"

	"go.uber.org/zap"
)

// MarkSource lists the marks of one month. *store.Store satisfies it.
type MarkSource interface {
	ListMarks(ctx context.Context, cal string, year, month int) ([]store.Mark, error)
}

type WriteOptions struct {
	RenderOptions
	WeekStart int
	Overwrite bool
	Logger    *zap.Logger
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteMonth writes <toDir>/<calendar>/<year>/<MM>.md. marks may be nil.
func WriteMonth(ctx context.Context, marks MarkSource, p calendar.Provider, year, month int, toDir string, opt WriteOptions) (WriteResult, error) {
	outDir, err := yearDir(p, year, toDir)
	if err != nil {
		return WriteResult{}, err
	}
	h, err := monthgrid.NewWithWeekStart(p, year, month, opt.WeekStart)
	if err != nil {
		return WriteResult{}, err
	}
	path, _, err := writeMonthPage(ctx, marks, h, outDir, opt)
	if err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}}, nil
}

// WriteYear writes a page for every month of year plus an index.md linking them.
// Months that cannot be laid out (the first month of the calendar) are skipped.
func WriteYear(ctx context.Context, marks MarkSource, p calendar.Provider, year int, toDir string, opt WriteOptions) (WriteResult, error) {
	outDir, err := yearDir(p, year, toDir)
	if err != nil {
		return WriteResult{}, err
	}

	var (
		written []string
		months  []int
		counts  = map[int]int{}
	)
	for month := 1; ; month++ {
		if _, err := p.DaysInMonth(year, month); err != nil {
			break
		}
		h, err := monthgrid.NewWithWeekStart(p, year, month, opt.WeekStart)
		if errors.Is(err, calendar.ErrInvalidDate) {
			logger(opt).Debug("skipping month", zap.Int("year", year), zap.Int("month", month), zap.Error(err))
			continue
		}
		if err != nil {
			return WriteResult{}, err
		}
		path, n, err := writeMonthPage(ctx, marks, h, outDir, opt)
		if err != nil {
			return WriteResult{}, err
		}
		written = append(written, path)
		months = append(months, month)
		counts[month] = n
	}
	if len(months) == 0 {
		return WriteResult{}, fmt.Errorf("%w: no months in year %d", calendar.ErrInvalidDate, year)
	}

	indexPath := filepath.Join(outDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderYearIndexMarkdown(p, year, months, counts)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	written = append([]string{indexPath}, written...)
	return WriteResult{Written: written}, nil
}

func writeMonthPage(ctx context.Context, src MarkSource, h *monthgrid.Helper, outDir string, opt WriteOptions) (string, int, error) {
	var marks []store.Mark
	if src != nil {
		var err error
		marks, err = src.ListMarks(ctx, h.Provider().Name(), h.Year(), h.Month())
		if err != nil {
			return "", 0, err
		}
	}
	md := RenderMonthMarkdown(h, marks, opt.RenderOptions)
	path := filepath.Join(outDir, monthFileName(h.Month()))
	if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
		return "", 0, err
	}
	logger(opt).Debug("wrote month page", zap.String("path", path), zap.Int("marks", len(marks)))
	return path, len(marks), nil
}

func yearDir(p calendar.Provider, year int, toDir string) (string, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return "", errors.New("missing --to")
	}
	outDir := filepath.Join(filepath.Clean(toDir), p.Name(), strconv.Itoa(year))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	return outDir, nil
}

func logger(opt WriteOptions) *zap.Logger {
	if opt.Logger == nil {
		return zap.NewNop()
	}
	return opt.Logger
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}

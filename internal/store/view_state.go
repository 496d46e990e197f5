package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ViewState is the last month a calendar was viewed at, used to restore the TUI
// and as the default month for CLI commands.
type ViewState struct {
	Calendar    string `json:"calendar"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	SelectedDay int    `json:"selectedDay,omitempty"`
}

// LoadViewState returns the saved state for cal; ok is false when none was saved.
func (s Store) LoadViewState(ctx context.Context, cal string) (st ViewState, ok bool, err error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return ViewState{}, false, err
	}
	defer db.Close()

	st.Calendar = strings.ToLower(strings.TrimSpace(cal))
	err = db.QueryRowContext(ctx,
		`SELECT year, month, selected_day FROM view_state WHERE calendar = ?`, st.Calendar,
	).Scan(&st.Year, &st.Month, &st.SelectedDay)
	if errors.Is(err, sql.ErrNoRows) {
		return ViewState{Calendar: st.Calendar}, false, nil
	}
	if err != nil {
		return ViewState{}, false, err
	}
	return st, true, nil
}

func (s Store) SaveViewState(ctx context.Context, st ViewState) error {
	st.Calendar = strings.ToLower(strings.TrimSpace(st.Calendar))
	if st.Calendar == "" {
		return errors.New("view state: empty calendar")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO view_state(calendar, year, month, selected_day, updated_at_unixms)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(calendar) DO UPDATE SET
			year = excluded.year,
			month = excluded.month,
			selected_day = excluded.selected_day,
			updated_at_unixms = excluded.updated_at_unixms`,
		st.Calendar, st.Year, st.Month, st.SelectedDay, nowUnixMs())
	if err != nil {
		return err
	}
	s.log().Debug("saved view state",
		zap.String("calendar", st.Calendar),
		zap.Int("year", st.Year),
		zap.Int("month", st.Month))
	return nil
}

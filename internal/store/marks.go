package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMarkNotFound is returned by DeleteMark for an unknown id.
var ErrMarkNotFound = errors.New("mark not found")

// Mark is a labelled day of a calendar month.
type Mark struct {
	ID        string    `json:"id"`
	Calendar  string    `json:"calendar"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Day       int       `json:"day"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddMark stores m and returns it with ID and CreatedAt filled in. Date validity
// is the caller's job; the store only rejects obviously empty fields.
func (s Store) AddMark(ctx context.Context, m Mark) (Mark, error) {
	m.Calendar = strings.ToLower(strings.TrimSpace(m.Calendar))
	m.Label = strings.TrimSpace(m.Label)
	if m.Calendar == "" {
		return Mark{}, errors.New("mark: empty calendar")
	}
	if m.Year < 1 || m.Month < 1 || m.Day < 1 {
		return Mark{}, fmt.Errorf("mark: invalid date %d-%d-%d", m.Year, m.Month, m.Day)
	}
	if m.ID == "" {
		m.ID = "mark-" + uuid.NewString()
	}
	now := nowUnixMs()
	m.CreatedAt = time.UnixMilli(now).UTC()

	db, err := s.openSQLite(ctx)
	if err != nil {
		return Mark{}, err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO marks(id, calendar, year, month, day, label, created_at_unixms)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Calendar, m.Year, m.Month, m.Day, m.Label, now)
	if err != nil {
		return Mark{}, err
	}
	s.log().Debug("added mark", zap.String("id", m.ID), zap.String("calendar", m.Calendar))
	return m, nil
}

// ListMarks returns the marks of cal in year/month ordered by day. A zero month
// lists the whole year; a zero year lists everything for cal.
func (s Store) ListMarks(ctx context.Context, cal string, year, month int) ([]Mark, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, calendar, year, month, day, label, created_at_unixms FROM marks WHERE calendar = ?`
	args := []any{strings.ToLower(strings.TrimSpace(cal))}
	if year > 0 {
		q += ` AND year = ?`
		args = append(args, year)
	}
	if month > 0 {
		q += ` AND month = ?`
		args = append(args, month)
	}
	q += ` ORDER BY year, month, day, created_at_unixms`

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Mark{}
	for rows.Next() {
		var (
			m         Mark
			createdMs int64
		)
		if err := rows.Scan(&m.ID, &m.Calendar, &m.Year, &m.Month, &m.Day, &m.Label, &createdMs); err != nil {
			return nil, err
		}
		m.CreatedAt = time.UnixMilli(createdMs).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkedDays indexes ListMarks by day for grid rendering.
func (s Store) MarkedDays(ctx context.Context, cal string, year, month int) (map[int][]Mark, error) {
	marks, err := s.ListMarks(ctx, cal, year, month)
	if err != nil {
		return nil, err
	}
	out := make(map[int][]Mark, len(marks))
	for _, m := range marks {
		out[m.Day] = append(out[m.Day], m)
	}
	return out, nil
}

func (s Store) DeleteMark(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM marks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrMarkNotFound, id)
	}
	s.log().Debug("deleted mark", zap.String("id", id))
	return nil
}

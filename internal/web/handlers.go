package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"hilal/internal/calendar"
	"hilal/internal/monthgrid"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type badRequest struct {
	msg string
}

func (e badRequest) Error() string { return e.msg }

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var br badRequest
	switch {
	case errors.As(err, &br),
		errors.Is(err, monthgrid.ErrInvalidArgument),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, calendar.ErrUnknownCalendar):
		status = http.StatusBadRequest
	default:
		s.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest{msg: fmt.Sprintf("%s: expected an integer, got %q", name, v)}
	}
	return n, nil
}

func requiredInt(c *gin.Context, name string) (int, error) {
	if strings.TrimSpace(c.Query(name)) == "" {
		return 0, badRequest{msg: "missing " + name}
	}
	return queryInt(c, name, 0)
}

func (s *Server) provider(c *gin.Context) (calendar.JDNProvider, error) {
	name := c.DefaultQuery("calendar", s.cfg.Calendar)
	p, err := calendar.Lookup(name)
	if err != nil {
		return nil, err
	}
	jp, ok := p.(calendar.JDNProvider)
	if !ok {
		return nil, badRequest{msg: "calendar " + p.Name() + " cannot convert dates"}
	}
	return jp, nil
}

// helperFor builds the grid named by the calendar, year, month and weekStart query
// parameters. A missing year or month means the current one.
func (s *Server) helperFor(c *gin.Context) (*monthgrid.Helper, error) {
	p, err := s.provider(c)
	if err != nil {
		return nil, err
	}
	ty, tm, _, err := calendar.FromTime(p, s.cfg.Now())
	if err != nil {
		return nil, err
	}
	year, err := queryInt(c, "year", ty)
	if err != nil {
		return nil, err
	}
	month, err := queryInt(c, "month", tm)
	if err != nil {
		return nil, err
	}

	weekStart := s.cfg.WeekStart
	if v := strings.TrimSpace(c.Query("weekStart")); v != "" {
		if weekStart, err = calendar.ParseWeekday(v); err != nil {
			return nil, err
		}
	}
	return monthgrid.NewWithWeekStart(p, year, month, weekStart)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleCalendars(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default":   s.cfg.Calendar,
		"calendars": calendar.Names(),
	})
}

func (s *Server) handleGrid(c *gin.Context) {
	h, err := s.helperFor(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	withCells, _ := strconv.ParseBool(c.DefaultQuery("cells", "false"))
	c.JSON(http.StatusOK, h.Snapshot(withCells))
}

type cellResponse struct {
	monthgrid.Cell
	WithinCurrentMonth bool `json:"withinCurrentMonth"`
}

func (s *Server) handleCell(c *gin.Context) {
	h, err := s.helperFor(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	row, err := requiredInt(c, "row")
	if err != nil {
		s.fail(c, err)
		return
	}
	col, err := requiredInt(c, "col")
	if err != nil {
		s.fail(c, err)
		return
	}
	cell, err := h.CellAt(row, col)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cellResponse{Cell: cell, WithinCurrentMonth: h.IsWithinCurrentMonth(row, col)})
}

func (s *Server) handleLocate(c *gin.Context) {
	h, err := s.helperFor(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	day, err := requiredInt(c, "day")
	if err != nil {
		s.fail(c, err)
		return
	}
	if day < 1 || day > h.NumberOfDaysInMonth() {
		s.fail(c, badRequest{msg: fmt.Sprintf("day %d out of range (1-%d)", day, h.NumberOfDaysInMonth())})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"day":    day,
		"row":    h.RowOf(day),
		"column": h.ColumnOf(day),
	})
}

func (s *Server) handleToday(c *gin.Context) {
	p, err := s.provider(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	now := s.cfg.Now()
	y, m, d, err := calendar.FromTime(p, now)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"calendar":  p.Name(),
		"year":      y,
		"month":     m,
		"monthName": calendar.MonthName(p, m),
		"day":       d,
		"weekday":   int(now.Weekday()),
		"gregorian": now.Format("2006-01-02"),
	})
}

func (s *Server) handleMarks(c *gin.Context) {
	p, err := s.provider(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	year, err := queryInt(c, "year", 0)
	if err != nil {
		s.fail(c, err)
		return
	}
	month, err := queryInt(c, "month", 0)
	if err != nil {
		s.fail(c, err)
		return
	}
	marks, err := s.cfg.Store.ListMarks(c.Request.Context(), p.Name(), year, month)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marks": marks})
}

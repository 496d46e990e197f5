package web

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hilal/internal/monthgrid"
	"hilal/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

// 15 Ramadan 1445 (civil).
func fixedNow() time.Time {
	return time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T, cfg ServerConfig) *Server {
	t.Helper()
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:0"
	}
	cfg.Now = fixedNow
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestNewServer_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)

	_, err = NewServer(ServerConfig{Addr: ":0", Calendar: "julian"})
	assert.Error(t, err)

	_, err = NewServer(ServerConfig{Addr: ":0", WeekStart: 7})
	assert.Error(t, err)
}

func TestHealthAndCalendars(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{})

	w := get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = get(t, srv, "/api/calendars")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"default":"hijri","calendars":["gregorian","hijra","hijri"]}`, w.Body.String())
}

func TestGrid(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{})

	w := get(t, srv, "/api/grid?year=1445&month=9")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var l monthgrid.Layout
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &l))
	assert.Equal(t, "hijri", l.Calendar)
	assert.Equal(t, "Ramadan", l.MonthName)
	assert.Equal(t, 1, l.Offset)
	assert.Equal(t, 30, l.DaysInMonth)
	assert.Equal(t, 29, l.DaysInPrevMonth)
	assert.Equal(t, [monthgrid.Columns]int{29, 1, 2, 3, 4, 5, 6}, l.Rows[0])
	assert.Empty(t, l.Cells)
}

func TestGrid_DefaultsToCurrentMonth(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{})

	body := decode(t, get(t, srv, "/api/grid"))
	assert.EqualValues(t, 1445, body["year"])
	assert.EqualValues(t, 9, body["month"])
}

func TestGrid_WeekStartAndCells(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{WeekStart: 6})

	body := decode(t, get(t, srv, "/api/grid?year=1445&month=9&weekStart=monday&cells=true"))
	assert.EqualValues(t, 0, body["offset"])
	assert.EqualValues(t, 1, body["weekStartDay"])
	cells, ok := body["cells"].([]any)
	require.True(t, ok)
	require.Len(t, cells, monthgrid.CellCount)
	first := cells[0].(map[string]any)
	assert.EqualValues(t, 1, first["day"])
	assert.Equal(t, "current", first["position"])
}

func TestGrid_BadRequests(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{})

	tests := []struct {
		name   string
		target string
	}{
		{name: "month out of range", target: "/api/grid?year=1445&month=13"},
		{name: "year before epoch", target: "/api/grid?year=0&month=1"},
		{name: "no month before the first", target: "/api/grid?year=1&month=1"},
		{name: "not a number", target: "/api/grid?year=abc&month=1"},
		{name: "unknown calendar", target: "/api/grid?calendar=julian"},
		{name: "bad week start", target: "/api/grid?weekStart=9"},
		{name: "unknown weekday", target: "/api/grid?weekStart=someday"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := get(t, srv, tt.target)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}
}

func TestCell(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{})

	w := get(t, srv, "/api/cell?year=1445&month=9&row=4&col=3")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"row":4,"column":3,"day":1,"position":"next","withinCurrentMonth":false}`, w.Body.String())

	w = get(t, srv, "/api/cell?year=1445&month=9&row=0&col=0")
	assert.JSONEq(t, `{"row":0,"column":0,"day":29,"position":"previous","withinCurrentMonth":false}`, w.Body.String())

	w = get(t, srv, "/api/cell?year=1445&month=9&row=2&col=1")
	assert.JSONEq(t, `{"row":2,"column":1,"day":15,"position":"current","withinCurrentMonth":true}`, w.Body.String())
}

func TestCell_BadRequests(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{})

	w := get(t, srv, "/api/cell?year=1445&month=9&row=6&col=0")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "row 6 out of range (0-5)", decode(t, w)["error"])

	w = get(t, srv, "/api/cell?year=1445&month=9&row=0&col=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "column -1 out of range (0-6)", decode(t, w)["error"])

	w = get(t, srv, "/api/cell?year=1445&month=9&row=0")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing col", decode(t, w)["error"])
}

func TestLocate(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{})

	w := get(t, srv, "/api/locate?year=1445&month=9&day=15")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"day":15,"row":2,"column":1}`, w.Body.String())

	w = get(t, srv, "/api/locate?year=1445&month=9&day=31")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "day 31 out of range (1-30)", decode(t, w)["error"])
}

func TestToday(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{})

	body := decode(t, get(t, srv, "/api/today"))
	assert.Equal(t, "hijri", body["calendar"])
	assert.EqualValues(t, 1445, body["year"])
	assert.EqualValues(t, 9, body["month"])
	assert.EqualValues(t, 15, body["day"])
	assert.EqualValues(t, 1, body["weekday"])
	assert.Equal(t, "2024-03-25", body["gregorian"])

	body = decode(t, get(t, srv, "/api/today?calendar=gregorian"))
	assert.EqualValues(t, 2024, body["year"])
	assert.EqualValues(t, 25, body["day"])
}

func TestMarks(t *testing.T) {
	t.Parallel()

	st := &store.Store{Dir: t.TempDir()}
	_, err := st.AddMark(context.Background(), store.Mark{Calendar: "hijri", Year: 1445, Month: 9, Day: 27, Label: "Laylat al-Qadr"})
	require.NoError(t, err)

	srv := newTestServer(t, ServerConfig{Store: st})
	w := get(t, srv, "/api/marks?year=1445&month=9")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	marks := decode(t, w)["marks"].([]any)
	require.Len(t, marks, 1)
	assert.Equal(t, "Laylat al-Qadr", marks[0].(map[string]any)["label"])

	w = get(t, srv, "/api/marks?year=1445&month=10")
	assert.Empty(t, decode(t, w)["marks"])
}

func TestMarks_NotRoutedWithoutStore(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{})
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/marks").Code)
}

func TestCORS(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{AllowOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, ServerConfig{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	http.DefaultClient.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

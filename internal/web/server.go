// Package web serves month grids over HTTP as JSON.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"hilal/internal/calendar"
	"hilal/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Addr string

	// Calendar and WeekStart are used when a request does not name its own.
	Calendar  string
	WeekStart int

	// Store enables the marks endpoint when set.
	Store *store.Store

	// AllowOrigins feeds the CORS middleware; empty allows any origin.
	AllowOrigins []string

	Logger *zap.Logger
	Now    func() time.Time
}

type Server struct {
	cfg    ServerConfig
	log    *zap.Logger
	engine *gin.Engine
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	p, err := calendar.Lookup(cfg.Calendar)
	if err != nil {
		return nil, err
	}
	cfg.Calendar = p.Name()
	if cfg.WeekStart < calendar.Sunday || cfg.WeekStart > calendar.Saturday {
		return nil, errors.New("web: week start out of range (0-6)")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{cfg: cfg, log: log}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	cc.MaxAge = 12 * time.Hour
	if len(s.cfg.AllowOrigins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = s.cfg.AllowOrigins
	}
	r.Use(cors.New(cc))

	r.GET("/health", s.handleHealth)
	api := r.Group("/api")
	api.GET("/calendars", s.handleCalendars)
	api.GET("/grid", s.handleGrid)
	api.GET("/cell", s.handleCell)
	api.GET("/locate", s.handleLocate)
	api.GET("/today", s.handleToday)
	if s.cfg.Store != nil {
		api.GET("/marks", s.handleMarks)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// Serve handles requests on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		s.log.Info("web server stopped", zap.String("addr", ln.Addr().String()))
		return nil
	}
}

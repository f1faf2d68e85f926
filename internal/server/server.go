// Package server exposes the calendar, the activity timeline and the
// preferences over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/constants"
	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/prefs"
	"github.com/spiffcs/folio/internal/service"
)

// PreferenceStore reads and writes the language and theme.
type PreferenceStore interface {
	Load(ctx context.Context) (prefs.Preferences, error)
	Set(ctx context.Context, key prefs.Key, value string) (string, error)
}

// Server is the folio HTTP API.
type Server struct {
	portfolio *service.Portfolio
	store     PreferenceStore
	defaults  prefs.Preferences
	layout    calendar.Options
	location  *time.Location
	now       func() time.Time
	engine    *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithPreferences persists preferences in store. Without it the defaults
// are served and writes are rejected.
func WithPreferences(store PreferenceStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithDefaults sets the preferences used when none are stored.
func WithDefaults(p prefs.Preferences) Option {
	return func(s *Server) {
		s.defaults = p
	}
}

// WithLayout sets the calendar layout options.
func WithLayout(opts calendar.Options) Option {
	return func(s *Server) {
		s.layout = opts
	}
}

// WithLocation sets the zone used to group timeline dates.
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		s.location = loc
	}
}

// WithClock overrides the clock used for relative times.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates the server and registers its routes.
func New(portfolio *service.Portfolio, opts ...Option) *Server {
	s := &Server{
		portfolio: portfolio,
		defaults:  prefs.Defaults(),
		layout:    calendar.DefaultOptions(),
		location:  time.Local,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), instrument())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/github/contributions", s.contributions)
	api.POST("/github/activity", s.activity)
	api.GET("/github/timeline", s.timeline)
	api.GET("/preferences", s.getPreferences)
	api.PUT("/preferences/:key", s.putPreference)

	s.engine = r
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      constants.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.Slog().Handler(), slog.LevelError),
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("folio API listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", constants.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

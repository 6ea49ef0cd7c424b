// Package server exposes a loaded listening history over a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

// LoadFunc reads the listening history from its source.
type LoadFunc func(ctx context.Context) (*history.Result, error)

type Config struct {
	// Directory that exports are written to.
	ExportDir string
	WeekStart time.Weekday
	// Origins allowed by CORS. Empty allows all origins.
	AllowOrigins []string
	Logger       *slog.Logger
}

// Server answers aggregate queries over the most recently loaded history.
type Server struct {
	cfg    Config
	load   LoadFunc
	logger *slog.Logger
	engine *gin.Engine

	mu   sync.RWMutex
	data dataset

	reloads singleflight.Group
}

type dataset struct {
	events   *history.Collection
	files    int
	skipped  int
	loadedAt time.Time
}

func New(load LoadFunc, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		cfg:    cfg,
		load:   load,
		logger: logger,
		data:   dataset{events: history.NewCollection(nil)},
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.logger))

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        time.Hour,
	}
	if len(s.cfg.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.AllowOrigins
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", s.health)
	r.POST("/api/reload", s.reload)

	api := r.Group("/api")
	api.GET("/summary", s.summary)
	api.GET("/top/artists", s.topArtists)
	api.GET("/top/tracks", s.topTracks)
	api.GET("/monthly", s.monthly)
	api.GET("/heatmap/weekday-hour", s.weekdayHour)
	api.GET("/heatmap/year-month", s.yearMonth)
	api.GET("/search", s.search)
	api.POST("/search/export", s.export)
	return r
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Reload replaces the served history with a fresh load. Concurrent calls
// share one load.
func (s *Server) Reload(ctx context.Context) (*history.Result, error) {
	v, err, shared := s.reloads.Do("reload", func() (any, error) {
		started := time.Now()
		result, err := s.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.data = dataset{
			events:   result.Events,
			files:    len(result.Files),
			skipped:  result.Skipped,
			loadedAt: time.Now(),
		}
		s.mu.Unlock()

		s.logger.Info("history loaded",
			"events", result.Events.Len(),
			"files", len(result.Files),
			"skipped", result.Skipped,
			"elapsed", time.Since(started))
		return result, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reloading history: %w", err)
	}
	if shared {
		s.logger.Debug("reload shared with a concurrent caller")
	}
	return v.(*history.Result), nil
}

func (s *Server) snapshot() dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Run loads the history and serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	if _, err := s.Reload(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

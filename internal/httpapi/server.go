// Package httpapi serves the planner over HTTP: a small embedded page, the
// plan and feedback endpoints, a health probe and prometheus metrics.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Options carries the wiring the server cannot derive on its own.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// AllowedOrigins restricts CORS. Empty means allow all.
	AllowedOrigins []string
	// Defaults seeds plan requests; body fields overlay it. Nil falls back
	// to the built-in defaults.
	Defaults *contract.PlanRequest
	// Metrics is the gatherer behind GET /metrics. Nil falls back to the
	// prometheus default gatherer.
	Metrics prometheus.Gatherer
	Logger  zerolog.Logger
}

// Server is the HTTP front end. Build it with NewServer and drive it with
// Run; tests can hit Handler directly.
type Server struct {
	engine *gin.Engine
	addr   string
	log    zerolog.Logger
}

func NewServer(plans service.PlanService, feedback service.FeedbackService, opts Options) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(opts.Logger))
	engine.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	gatherer := opts.Metrics
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	defaults := contract.NewPlanRequest("")
	if opts.Defaults != nil {
		defaults = *opts.Defaults
	}

	h := &handler{plans: plans, feedback: feedback, defaults: defaults, log: opts.Logger}
	h.registerRoutes(engine, gatherer)

	return &Server{
		engine: engine,
		addr:   opts.Addr,
		log:    opts.Logger,
	}
}

// Handler exposes the routing tree for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests before
// returning. A listen failure is returned immediately.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info().Str("addr", s.addr).Msg("http server listening")

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.log.Info().Msg("http server stopped")
	return nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}

func metricsHandler(gatherer prometheus.Gatherer) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

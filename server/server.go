// Package server exposes a read-mostly HTTP API over the engine:
// quotes, pool and sale state, TWAP queries and Prometheus metrics.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine"
)

type apiMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimited     prometheus.Counter
}

var (
	apiMetricsOnce sync.Once
	apiMetricsInst *apiMetrics
)

func newAPIMetrics() *apiMetrics {
	apiMetricsOnce.Do(func() {
		apiMetricsInst = &apiMetrics{
			requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "astroshiba",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "API requests, by path and status",
			}, []string{"path", "status"}),
			requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "astroshiba",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request latency",
				Buckets:   prometheus.DefBuckets,
			}, []string{"path"}),
			rateLimited: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "astroshiba",
				Subsystem: "api",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter",
			}),
		}
	})
	return apiMetricsInst
}

// Server wires the engine behind a gin router.
type Server struct {
	engine  *engine.Engine
	logger  log.Logger
	router  *gin.Engine
	limiter *rate.Limiter
	metrics *apiMetrics
	srv     *http.Server
}

// Options tune the HTTP surface.
type Options struct {
	ListenAddr         string
	RateLimitPerSecond int
	RateLimitBurst     int
}

// New builds the server and registers all routes.
func New(eng *engine.Engine, logger log.Logger, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		engine:  eng,
		logger:  logger.With("module", "api"),
		router:  router,
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimitPerSecond), opts.RateLimitBurst),
		metrics: newAPIMetrics(),
	}
	s.router.Use(s.observe(), s.rateLimit())
	s.registerRoutes()

	s.srv = &http.Server{
		Addr:              opts.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		s.metrics.requestsTotal.WithLabelValues(path, http.StatusText(c.Writer.Status())).Inc()
		s.metrics.requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow() {
			s.metrics.rateLimited.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/pools", s.handleListPools)
		v1.GET("/pools/:id", s.handleGetPool)
		v1.GET("/pools/:id/quote", s.handleQuote)
		v1.GET("/pools/:id/twap", s.handleTWAP)
		v1.GET("/tokens", s.handleListSales)
		v1.GET("/tokens/:symbol", s.handleGetSale)
		v1.GET("/tokens/:symbol/quote", s.handleSaleQuote)
		v1.GET("/tokens/:symbol/progress", s.handleGraduationProgress)
	}
}

// Router exposes the handler, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("api shutting down")
	return s.srv.Shutdown(shutdownCtx)
}

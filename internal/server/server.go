// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"agenticbi/internal/agents"
	"agenticbi/internal/common/cache"
	"agenticbi/internal/common/config"
	"agenticbi/internal/common/errors"
	"agenticbi/internal/common/logger"
	"agenticbi/internal/common/observability"
	"agenticbi/internal/common/validation"
	"agenticbi/internal/render"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the agent registry and the rendering pipeline behind the
// HTTP API.
type Server struct {
	cfg       *config.Config
	logger    logger.Logger
	registry  *agents.Registry
	renderer  *render.Router
	cache     *cache.RedisClient // nil when the cache is disabled or unreachable
	validator *validation.ComponentValidator
	errs      *errors.ErrorHandler
	obs       *observability.Observability

	// seq stamps every analyze response so clients can discard
	// out-of-order results.
	seq atomic.Uint64

	httpServer *http.Server
}

// New assembles a server. cacheClient and obs may be nil.
func New(
	cfg *config.Config,
	log logger.Logger,
	registry *agents.Registry,
	renderer *render.Router,
	cacheClient *cache.RedisClient,
	obs *observability.Observability,
) (*Server, error) {
	validator, err := validation.NewComponentValidator()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "http_server"}),
		registry:  registry,
		renderer:  renderer,
		cache:     cacheClient,
		validator: validator,
		errs:      errors.NewErrorHandler(log),
		obs:       obs,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.Routes(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}
	return s, nil
}

// Routes builds the chi router with the service middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.corsMiddleware)
	r.Use(s.requestLogger)

	r.Get("/", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/render", s.handleRender)
		r.Get("/agents", s.handleAgents)
		r.Get("/history", s.handleHistory)
	})

	return r
}

// corsMiddleware admits the configured dashboard origins.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(s.cfg.Server.AllowedOrigins))
	for _, origin := range s.cfg.Server.AllowedOrigins {
		allowed[origin] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger records one line per request and feeds the OTel meters.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		s.logger.Info("request completed", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": elapsed.String(),
		})

		if s.obs != nil {
			s.obs.RecordRequest(r.Context(), r.URL.Path, http.StatusText(ww.Status()))
			s.obs.RecordRequestDuration(r.Context(), elapsed, r.URL.Path)
		}
	})
}

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

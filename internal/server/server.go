package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/pastry-blog/internal/config"
	"github.com/jonathan/pastry-blog/internal/content"
	"github.com/jonathan/pastry-blog/internal/fetch"
	"github.com/jonathan/pastry-blog/internal/logging"
	"github.com/jonathan/pastry-blog/internal/metrics"
	"github.com/jonathan/pastry-blog/internal/server/middleware"
	"github.com/jonathan/pastry-blog/internal/server/ratelimit"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	handler      http.Handler
	cfg          config.Config
	store        content.Store
	content      *content.Service
	rateLimiter  *ratelimit.Limiter
	authHandler  *AuthHandler
	fetchOptions *fetch.Options
}

// New creates a new server instance. The admin routes are only mounted when
// auth has a complete admin account.
func New(cfg config.Config, auth *config.AuthConfig, store content.Store) *Server {
	cfg = cfg.MergeWithDefaults(config.Defaults())

	s := &Server{
		cfg:          cfg,
		store:        store,
		content:      content.NewService(store).WithSearchLimit(cfg.SearchLimit),
		rateLimiter:  ratelimit.NewLimiter(ratelimit.LoadConfig()),
		fetchOptions: fetch.DefaultOptions(),
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/search", s.handleSearch)

	mux.HandleFunc("GET /api/recipes", listHandler(s, s.content.Recipes))
	mux.HandleFunc("GET /api/recipes/facets", s.handleRecipeFacets)
	mux.HandleFunc("GET /api/recipes/{slug}", getHandler(s, "Recipe", s.store.GetRecipe))
	mux.HandleFunc("GET /api/recipes/{slug}/scale", s.handleScaleRecipe)

	mux.HandleFunc("GET /api/techniques", listHandler(s, s.content.Techniques))
	mux.HandleFunc("GET /api/techniques/{slug}", getHandler(s, "Technique", s.store.GetTechnique))

	mux.HandleFunc("GET /api/science", listHandler(s, s.content.Science))
	mux.HandleFunc("GET /api/science/{slug}", getHandler(s, "Science article", s.store.GetScience))

	mux.HandleFunc("GET /api/products", s.handleListProducts)

	if auth != nil && auth.AdminEnabled() {
		jwtService := NewJWTService(auth)
		s.authHandler = NewAuthHandler(auth, jwtService)
		mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)
		s.registerAdminRoutes(mux, middleware.AuthMiddleware(jwtService.AsTokenValidator()))
	} else {
		logging.Info().Msg("admin routes disabled: no admin account configured")
	}

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // Product refresh fetches a remote page
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) registerAdminRoutes(mux *http.ServeMux, requireAdmin func(http.Handler) http.Handler) {
	admin := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, requireAdmin(h))
	}

	admin("POST /api/admin/recipes", s.handleCreateRecipe)
	admin("PUT /api/admin/recipes/{id}", s.handleUpdateRecipe)
	admin("DELETE /api/admin/recipes/{id}", deleteHandler(s, "Recipe", s.store.DeleteRecipe))

	admin("POST /api/admin/techniques", s.handleCreateTechnique)
	admin("PUT /api/admin/techniques/{id}", s.handleUpdateTechnique)
	admin("DELETE /api/admin/techniques/{id}", deleteHandler(s, "Technique", s.store.DeleteTechnique))

	admin("POST /api/admin/science", s.handleCreateScience)
	admin("PUT /api/admin/science/{id}", s.handleUpdateScience)
	admin("DELETE /api/admin/science/{id}", deleteHandler(s, "Science article", s.store.DeleteScience))

	admin("POST /api/admin/products", s.handleCreateProduct)
	admin("PUT /api/admin/products/{id}", s.handleUpdateProduct)
	admin("DELETE /api/admin/products/{id}", deleteHandler(s, "Product", s.store.DeleteProduct))
	admin("POST /api/admin/products/{id}/refresh", s.handleRefreshProduct)
}

// Handler returns the fully wrapped handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM,
// then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	// Stop rate limiter cleanup goroutine
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logging.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if s.cfg.CORSOrigin != "*" {
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			metrics.RateLimitedTotal.WithLabelValues(info.Endpoint).Inc()
			logging.Warn().
				Str("client", clientID).
				Str("path", r.URL.Path).
				Str("endpoint", info.Endpoint).
				Int("limit", info.Limit).
				Time("reset", info.ResetTime).
				Msg("rate limit exceeded")
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging tags the request with an id, logs it and records metrics.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.NewRequestID()
		}
		w.Header().Set("X-Request-ID", requestID)
		r = r.WithContext(logging.ContextWithRequestID(r.Context(), requestID))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// Set by the mux once a route matched
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		metrics.RecordHTTPRequest(r.Method, route, rec.status, elapsed)

		logging.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	writeError(w, status, message)
}

// internalError logs err and answers 500 without leaking details.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(message)
	s.errorResponse(w, http.StatusInternalServerError, message)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Err(err).Msg("error encoding JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is not trusted; the IP comes from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

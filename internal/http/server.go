// Package http exposes the finance tracker over a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"tally/internal/auth"
	"tally/internal/cache"
	"tally/internal/config"
	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/middleware/ratelimit"
)

// Store is the persistence surface the handlers need.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (core.User, error)
	UserByUsername(ctx context.Context, username string) (core.User, error)
	UserByID(ctx context.Context, id string) (core.User, error)
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id, ownerID string) error
	ListTransactions(ctx context.Context, ownerID string) ([]core.Transaction, error)
	SummaryByCategory(ctx context.Context, ownerID string) ([]core.CategoryTotal, error)
}

type Server struct {
	http.Server

	store          Store
	tokens         *auth.TokenIssuer
	logger         *applog.Logger
	allowedOrigins map[string]bool
	authLimiter    *ratelimit.Limiter

	// Per-owner category summaries; invalidated on every mutation.
	summaryCache *cache.Cache[[]core.CategoryTotal]

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, store Store, tokens *auth.TokenIssuer, cfg *config.Config, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	origins := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		origins[o] = true
	}

	s := &Server{
		Server:         http.Server{Addr: addr},
		store:          store,
		tokens:         tokens,
		logger:         logger.WithComponent(applog.ComponentHTTP),
		allowedOrigins: origins,
		authLimiter:    ratelimit.NewLimiter(cfg.AuthRatePerMinute),
		summaryCache:   cache.New[[]core.CategoryTotal](1000, 5*time.Minute, 10*time.Minute),
	}

	// Registration and login are unauthenticated and brute-forceable, so
	// they sit behind the per-IP limiter.
	limited := func(h http.HandlerFunc) http.Handler {
		return s.authLimiter.Middleware(clientIP, h)
	}
	mux.Handle("POST /users/register", limited(s.handleRegister))
	mux.Handle("POST /users/login", limited(s.handleLogin))

	mux.HandleFunc("GET /expenses", s.authenticated(s.handleListTransactions))
	mux.HandleFunc("POST /expenses", s.authenticated(s.handleCreateTransaction))
	mux.HandleFunc("PUT /expenses/{id}", s.authenticated(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /expenses/{id}", s.authenticated(s.handleDeleteTransaction))
	mux.HandleFunc("GET /expenses/summary", s.authenticated(s.handleSummary))
	mux.HandleFunc("GET /expenses/reports/daily", s.authenticated(s.handleDailyReport))
	mux.HandleFunc("GET /expenses/reports/monthly", s.authenticated(s.handleMonthlyReport))

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	// Logging outermost so every request is traced; CORS next so preflights
	// never reach the mux's method routing.
	s.Handler = s.withRequestLog(s.withCORS(s.withSecurityHeaders(mux)))
	return s
}

// Shutdown drains in-flight requests and stops the background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.authLimiter.Stop()
		s.summaryCache.Close()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// A cheap store round trip proves the database is reachable.
	if _, err := s.store.UserByID(ctx, "readiness-probe"); err != nil && !isNotFound(err) {
		s.logger.ErrorContext(ctx, "Readiness check failed", applog.FieldError, err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

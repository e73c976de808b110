package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"tally/internal/auth"
	"tally/internal/core"
	applog "tally/internal/log"
)

type contextKey string

const identityContextKey contextKey = "identity"

// identityFromContext returns the authenticated user attached by the auth
// middleware. Handlers behind authenticated() can rely on it being present.
func identityFromContext(ctx context.Context) core.User {
	u, _ := ctx.Value(identityContextKey).(core.User)
	return u
}

// authenticated verifies the bearer token and re-fetches the user on every
// request, so a deleted account is locked out immediately even while its
// token is still unexpired. The extra store lookup per request is the price
// of that guarantee, paid deliberately.
func (s *Server) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		userID, err := s.tokens.Verify(parts[1])
		if err != nil {
			// Expired tokens answer differently from tampered ones so
			// clients know whether to re-login or give up.
			if errors.Is(err, auth.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "token expired")
			} else {
				writeError(w, http.StatusUnauthorized, "invalid token")
			}
			return
		}

		user, err := s.store.UserByID(r.Context(), userID)
		if err != nil {
			if isNotFound(err) {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Identity lookup failed",
				applog.FieldError, err, applog.FieldUserID, userID)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// withRequestLog assigns a request ID, stores a request-scoped logger in the
// context and logs start/completion of every request.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()
		ip := clientIP(r)

		logger := s.logger.With(applog.FieldRequestID, requestID)
		ctx := applog.IntoContext(r.Context(), logger)
		r = r.WithContext(ctx)

		logger.InfoContext(ctx, "Request started",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, ip,
			applog.FieldUserAgent, r.Header.Get("User-Agent"))

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		logger.InfoContext(ctx, "Request completed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.status,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, ip)
	})
}

// withCORS answers cross-origin browsers according to the configured origin
// allow-list. Preflights never reach the mux.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if !s.allowedOrigins[origin] {
				if r.Method == http.MethodOptions {
					applog.FromContext(r.Context()).WarnContext(r.Context(),
						"CORS preflight from disallowed origin", "origin", origin)
					writeError(w, http.StatusForbidden, "origin not allowed")
					return
				}
				// Non-preflight: no CORS headers; the browser blocks the read.
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
				if r.Method == http.MethodOptions {
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

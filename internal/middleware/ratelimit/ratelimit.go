// Package ratelimit provides a per-client fixed-window rate limiter, applied
// to the register and login endpoints to blunt credential stuffing.
package ratelimit

import (
	"net/http"
	"sync"
	"time"
)

// Limiter tracks request counts per client IP over a one-minute window.
type Limiter struct {
	mu          sync.Mutex
	clients     map[string]*window
	perMinute   int
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

type window struct {
	startTime time.Time
	requests  int
}

// NewLimiter creates a limiter allowing perMinute requests per client. A
// background sweep drops clients idle for more than ten minutes.
func NewLimiter(perMinute int) *Limiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	l := &Limiter{
		clients:     make(map[string]*window),
		perMinute:   perMinute,
		stopCleanup: make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow reports whether a request from the client should proceed.
func (l *Limiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.clients[clientIP]
	if !ok || now.Sub(w.startTime) > time.Minute {
		l.clients[clientIP] = &window{startTime: now, requests: 1}
		return true
	}
	w.requests++
	return w.requests <= l.perMinute
}

// Middleware wraps a handler, answering 429 with a Retry-After once a client
// exhausts its window. extractIP maps a request to its client key.
func (l *Limiter) Middleware(extractIP func(*http.Request) string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(extractIP(r)) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded, try again later", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActiveClients returns how many clients are currently tracked.
func (l *Limiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Stop shuts down the background sweep. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCleanup) })
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.dropStale()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *Limiter) dropStale() {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, w := range l.clients {
		if w.startTime.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

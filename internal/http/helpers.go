package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"tally/internal/core"
	"tally/internal/storage"
)

// maxBodyBytes caps request bodies; nothing this API accepts is large.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON parses a request body into dst, rejecting unknown fields and
// trailing garbage.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

// validationMessage maps decode and validation failures to the short client
// messages the API returns; anything unrecognized collapses to a generic one.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "invalid amount"
	case errors.Is(err, core.ErrInvalidDate):
		return "invalid date, expected YYYY-MM-DD"
	case errors.Is(err, core.ErrInvalidCategory):
		return "invalid category, expected Income, Needs, Wants or Save"
	case errors.Is(err, core.ErrEmptyTitle):
		return "title is required"
	case errors.Is(err, core.ErrTitleTooLong):
		return "title too long, max 200 characters"
	case errors.Is(err, core.ErrEmptyUsername):
		return "username is required"
	default:
		return "invalid request body"
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}

// clientIP extracts the caller address, honoring proxy headers the way the
// deployment expects.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

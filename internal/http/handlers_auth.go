package http

import (
	"errors"
	"net/http"
	"strings"

	"tally/internal/auth"
	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/storage"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username := core.NormalizeUsername(req.Username)
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}
	// bcrypt silently ignores bytes past 72; reject instead of truncating.
	if len(req.Password) > 72 {
		writeError(w, http.StatusBadRequest, "password too long")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Password hashing failed",
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := s.store.CreateUser(r.Context(), username, hash)
	if err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			writeError(w, http.StatusBadRequest, "user already exists")
			return
		}
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "User creation failed",
			applog.FieldError, err, applog.FieldUsername, username)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "User registered",
		applog.FieldUserID, user.ID, applog.FieldUsername, user.Username)
	writeJSON(w, http.StatusCreated, registerResponse{UserID: user.ID, Username: user.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username := core.NormalizeUsername(req.Username)
	if username == "" || strings.TrimSpace(req.Password) == "" {
		// Same answer as a wrong password so probes learn nothing.
		writeError(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	user, err := s.store.UserByUsername(r.Context(), username)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "User lookup failed",
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Token issue failed",
			applog.FieldError, err, applog.FieldUserID, user.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "User logged in",
		applog.FieldUserID, user.ID)
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

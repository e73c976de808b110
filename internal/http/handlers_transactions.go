package http

import (
	"net/http"

	"tally/internal/core"
	applog "tally/internal/log"
)

type transactionRequest struct {
	Title    string     `json:"title"`
	Amount   core.Money `json:"amount"`
	Category string     `json:"category"`
	Date     string     `json:"date"`
}

// toTransaction validates the payload and builds a transaction owned by the
// given user. ID assignment is left to the store.
func (req transactionRequest) toTransaction(ownerID string) (core.Transaction, error) {
	category, err := core.ParseCategory(req.Category)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	tx := core.Transaction{
		OwnerID:  ownerID,
		Title:    req.Title,
		Amount:   req.Amount,
		Category: category,
		Date:     date,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	user := identityFromContext(r.Context())

	transactions, err := s.store.ListTransactions(r.Context(), user.ID)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Transaction list failed",
			applog.FieldError, err, applog.FieldUserID, user.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	user := identityFromContext(r.Context())

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := req.toTransaction(user.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	created, err := s.store.CreateTransaction(r.Context(), tx)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Transaction create failed",
			applog.FieldError, err, applog.FieldUserID, user.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.summaryCache.Invalidate(user.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	user := identityFromContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "transaction id is required")
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := req.toTransaction(user.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	tx.ID = id

	updated, err := s.store.UpdateTransaction(r.Context(), tx)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Transaction update failed",
			applog.FieldError, err, applog.FieldUserID, user.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.summaryCache.Invalidate(user.ID)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user := identityFromContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "transaction id is required")
		return
	}

	if err := s.store.DeleteTransaction(r.Context(), id, user.ID); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Transaction delete failed",
			applog.FieldError, err, applog.FieldUserID, user.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.summaryCache.Invalidate(user.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

package http

import (
	"net/http"
	"strconv"

	"tally/internal/core"
	applog "tally/internal/log"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user := identityFromContext(r.Context())

	if cached, ok := s.summaryCache.Get(user.ID); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	summary, err := s.store.SummaryByCategory(r.Context(), user.ID)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Summary query failed",
			applog.FieldError, err, applog.FieldUserID, user.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.summaryCache.Put(user.ID, summary)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	user := identityFromContext(r.Context())

	date, err := core.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	transactions, err := s.store.ListTransactions(r.Context(), user.ID)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Daily report query failed",
			applog.FieldError, err, applog.FieldUserID, user.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, core.NewDailyReport(transactions, date))
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	user := identityFromContext(r.Context())

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "year must be a positive number")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	transactions, err := s.store.ListTransactions(r.Context(), user.ID)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Monthly report query failed",
			applog.FieldError, err, applog.FieldUserID, user.ID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, core.NewMonthlyReport(transactions, year, month))
}

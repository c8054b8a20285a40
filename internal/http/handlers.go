package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"kharcha/internal/ai"
	applog "kharcha/internal/log"
)

type createExpenseRequest struct {
	Input string `json:"input"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Input) == "" {
		respondError(w, http.StatusBadRequest, `Please provide expense details in the "input" field.`)
		return
	}

	expense, err := s.service.AddFromText(r.Context(), req.Input)
	if err != nil {
		if ai.IsExtractionError(err) {
			s.logger.WarnContext(r.Context(), "Extraction failed", applog.FieldError, err)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.ErrorContext(r.Context(), "Failed to save expense", applog.FieldError, err)
		respondError(w, http.StatusInternalServerError, "Failed to add expense. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"expense": expense,
	})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.service.List(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to list expenses", applog.FieldError, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch expenses. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"expenses": expenses,
	})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid expense ID.")
		return
	}

	deleted, err := s.service.Remove(r.Context(), id)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete expense",
			applog.FieldError, err, applog.FieldExpenseID, id)
		respondError(w, http.StatusInternalServerError, "Failed to delete expense. Please try again.")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Expense not found.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Expense deleted successfully",
		"id":      id,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).Seconds(),
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "Route not found")
}

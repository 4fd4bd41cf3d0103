package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"productiv/internal/core"
	"productiv/internal/services"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	transactions, summary, err := s.svc.Transactions.List(r.Context(), userID(r), month, year)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": transactions,
		"summary":      summary,
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	date, _ := parseDate(req.Date)
	t := core.Transaction{
		UserID:      userID(r),
		Amount:      req.Amount,
		Type:        core.TransactionType(req.Type),
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}
	if err := s.svc.Transactions.Create(r.Context(), &t); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transaction": t})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	date, _ := parseDate(req.Date)
	t := core.Transaction{
		ID:          chi.URLParam(r, "id"),
		UserID:      userID(r),
		Amount:      req.Amount,
		Type:        core.TransactionType(req.Type),
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}
	if err := s.svc.Transactions.Update(r.Context(), &t); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Transaction")
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transaction": t})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Transactions.Delete(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Transaction")
			return
		}
		internalError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Transaction deleted")
}

func (s *Server) handleDiscoverImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	rows := make([]services.ImportedTransaction, len(req.Transactions))
	for i, t := range req.Transactions {
		date, _ := parseDate(t.Date)
		rows[i] = services.ImportedTransaction{
			Amount:      t.Amount,
			Description: t.Description,
			Date:        date,
			Category:    t.Category,
		}
	}

	created, err := s.svc.Discover.Import(r.Context(), userID(r), rows)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      strconv.Itoa(len(created)) + " transactions imported successfully",
		"transactions": created,
	})
}

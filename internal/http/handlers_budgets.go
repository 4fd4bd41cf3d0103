package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"productiv/internal/core"
)

func (s *Server) handleListBudgetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.Budgets.List(r.Context(), userID(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleCreateBudgetCategory(w http.ResponseWriter, r *http.Request) {
	var req budgetCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	b := core.BudgetCategory{
		UserID: userID(r),
		Name:   req.Name,
		Budget: req.Budget,
	}
	if err := s.repo.CreateBudgetCategory(r.Context(), &b); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"category": b})
}

func (s *Server) handleUpdateBudgetCategory(w http.ResponseWriter, r *http.Request) {
	var req budgetCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	existing, err := s.repo.GetBudgetCategory(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Budget category")
			return
		}
		internalError(w, r, err)
		return
	}

	existing.Name = req.Name
	existing.Budget = req.Budget
	if err := s.repo.UpdateBudgetCategory(r.Context(), &existing); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": existing})
}

func (s *Server) handleDeleteBudgetCategory(w http.ResponseWriter, r *http.Request) {
	err := s.repo.DeleteBudgetCategory(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Budget category")
			return
		}
		internalError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Budget category deleted")
}

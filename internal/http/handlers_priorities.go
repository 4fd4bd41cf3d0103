package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"productiv/internal/core"
)

func (s *Server) handleListPriorities(w http.ResponseWriter, r *http.Request) {
	priorities, err := s.repo.ListPriorities(r.Context(), userID(r), 0)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"priorities": priorities})
}

func (s *Server) handleCreatePriority(w http.ResponseWriter, r *http.Request) {
	var req priorityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	p := core.Priority{
		UserID:      userID(r),
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     parseOptionalDate(req.DueDate),
	}
	if err := s.repo.CreatePriority(r.Context(), &p); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"priority": p})
}

func (s *Server) handleUpdatePriority(w http.ResponseWriter, r *http.Request) {
	var req priorityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	p := core.Priority{
		ID:          chi.URLParam(r, "id"),
		UserID:      userID(r),
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     parseOptionalDate(req.DueDate),
	}
	if err := s.repo.UpdatePriority(r.Context(), &p); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Priority")
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"priority": p})
}

func (s *Server) handleDeletePriority(w http.ResponseWriter, r *http.Request) {
	err := s.repo.DeletePriority(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Priority")
			return
		}
		internalError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Priority deleted")
}

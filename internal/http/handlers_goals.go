package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"productiv/internal/core"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.repo.ListGoals(r.Context(), userID(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	g := goalFromRequest(&req)
	g.UserID = userID(r)
	if err := s.repo.CreateGoal(r.Context(), &g); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"goal": g})
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.repo.GetGoal(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Goal")
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goal": goal})
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	g := goalFromRequest(&req)
	g.ID = chi.URLParam(r, "id")
	g.UserID = userID(r)
	if err := s.repo.UpdateGoal(r.Context(), &g); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Goal")
			return
		}
		internalError(w, r, err)
		return
	}

	updated, err := s.repo.GetGoal(r.Context(), g.UserID, g.ID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goal": updated})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	err := s.repo.DeleteGoal(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Goal")
			return
		}
		internalError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Goal deleted")
}

func goalFromRequest(req *goalRequest) core.Goal {
	status := core.GoalStatus(req.Status)
	if req.Status == "" {
		status = core.GoalActive
	}
	return core.Goal{
		Title:        req.Title,
		Description:  req.Description,
		TargetDate:   parseOptionalDate(req.TargetDate),
		Status:       status,
		Progress:     req.Progress,
		Priority:     req.Priority,
		Timeframe:    req.Timeframe,
		CurrentValue: req.CurrentValue,
		TargetValue:  req.TargetValue,
	}
}

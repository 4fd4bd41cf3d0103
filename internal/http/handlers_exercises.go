package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"productiv/internal/core"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.svc.Exercises.List(r.Context(), userID(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercises": exercises})
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	date, _ := parseDate(req.Date)
	e := core.Exercise{
		UserID:   userID(r),
		Name:     req.Name,
		Type:     req.Type,
		Duration: req.Duration,
		Calories: req.Calories,
		Date:     date,
	}
	if err := s.svc.Exercises.Create(r.Context(), &e); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"exercise": e})
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Exercises.Delete(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Exercise")
			return
		}
		internalError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Exercise deleted")
}

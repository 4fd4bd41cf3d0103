package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"productiv/internal/core"
)

// Habit listings attach the last completions so the client can render
// recent activity without another round trip.
const habitCompletionLimit = 30

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.repo.ListHabits(r.Context(), userID(r), habitCompletionLimit)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"habits": habits})
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	h := core.Habit{
		UserID:      userID(r),
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
	}
	if err := s.svc.Habits.Create(r.Context(), &h); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"habit": h})
}

func (s *Server) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	h := core.Habit{
		ID:          chi.URLParam(r, "id"),
		UserID:      userID(r),
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
	}
	updated, err := s.svc.Habits.Update(r.Context(), &h)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Habit")
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"habit": updated})
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Habits.Delete(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Habit")
			return
		}
		internalError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Habit deleted")
}

func (s *Server) handleCompleteHabit(w http.ResponseWriter, r *http.Request) {
	completion, streak, err := s.svc.Habits.Complete(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			notFound(w, "Habit")
		case errors.Is(err, core.ErrAlreadyCompleted):
			writeError(w, http.StatusBadRequest, "Already completed today")
		default:
			internalError(w, r, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"completion": completion,
		"streak":     streak,
	})
}

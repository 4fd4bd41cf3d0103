package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"productiv/internal/core"
)

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.repo.ListContacts(r.Context(), userID(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	c := contactFromRequest(&req)
	c.UserID = userID(r)
	if err := s.repo.CreateContact(r.Context(), &c); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"contact": c})
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	c := contactFromRequest(&req)
	c.ID = chi.URLParam(r, "id")
	c.UserID = userID(r)
	if err := s.repo.UpdateContact(r.Context(), &c); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Contact")
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contact": c})
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	err := s.repo.DeleteContact(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			notFound(w, "Contact")
			return
		}
		internalError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Contact deleted")
}

func contactFromRequest(req *contactRequest) core.Contact {
	return core.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
	}
}

func (s *Server) handleListWeeklyReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.repo.ListWeeklyReviews(r.Context(), userID(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (s *Server) handleCreateWeeklyReview(w http.ResponseWriter, r *http.Request) {
	var req weeklyReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	weekStart, _ := parseDate(req.WeekStart)
	weekEnd, _ := parseDate(req.WeekEnd)
	review := core.WeeklyReview{
		UserID:       userID(r),
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		Achievements: req.Achievements,
		Challenges:   req.Challenges,
		Goals:        req.Goals,
		Notes:        req.Notes,
	}
	if err := s.repo.CreateWeeklyReview(r.Context(), &review); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"review": review})
}

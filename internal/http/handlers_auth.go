package http

import (
	"errors"
	"net/http"

	"productiv/internal/auth"
	"productiv/internal/core"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		internalError(w, r, err)
		return
	}

	user := core.User{Name: req.Name, Email: req.Email, PasswordHash: hash}
	if err := s.repo.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, core.ErrEmailTaken) {
			writeFieldErrors(w, []FieldError{{"email", "Email is already registered"}})
			return
		}
		internalError(w, r, err)
		return
	}

	http.SetCookie(w, s.tokens.SessionCookie(user.ID))
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	user, err := s.repo.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		internalError(w, r, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	http.SetCookie(w, s.tokens.SessionCookie(user.ID))
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearedCookie())
	writeMessage(w, http.StatusOK, "Logged out")
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.repo.GetUser(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			unauthorized(w)
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

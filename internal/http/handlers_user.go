package http

import (
	"errors"
	"net/http"

	"productiv/internal/core"
)

func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.svc.Accounts.Balances(r.Context(), userID(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

func (s *Server) handleUpdateBalances(w http.ResponseWriter, r *http.Request) {
	var req balancesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	balances, err := s.svc.Accounts.SetBalances(r.Context(), userID(r), req.CashBalance, req.BankBalance)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

func (s *Server) handleGetMonthlyBudget(w http.ResponseWriter, r *http.Request) {
	user, err := s.repo.GetUser(r.Context(), userID(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"monthlyBudget": user.MonthlyBudget})
}

func (s *Server) handleUpdateMonthlyBudget(w http.ResponseWriter, r *http.Request) {
	var req monthlyBudgetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	if err := s.repo.UpdateMonthlyBudget(r.Context(), userID(r), req.MonthlyBudget); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"monthlyBudget": req.MonthlyBudget})
}

func (s *Server) handleGetStartingBalance(w http.ResponseWriter, r *http.Request) {
	user, err := s.repo.GetUser(r.Context(), userID(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"startingBalance": user.StartingBalance})
}

func (s *Server) handleUpdateStartingBalance(w http.ResponseWriter, r *http.Request) {
	var req startingBalanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.repo.UpdateStartingBalance(r.Context(), userID(r), req.StartingBalance); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"startingBalance": req.StartingBalance})
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	balances, err := s.svc.Accounts.Transfer(r.Context(), userID(r),
		core.Account(req.From), core.Account(req.To), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrSameAccount):
			writeError(w, http.StatusBadRequest, "Cannot transfer to the same account")
		case errors.Is(err, core.ErrInsufficientFunds):
			writeError(w, http.StatusBadRequest, "Insufficient funds")
		default:
			internalError(w, r, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

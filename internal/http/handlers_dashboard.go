package http

import (
	"errors"
	"net/http"

	"productiv/internal/core"
	"productiv/internal/services"
)

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Dashboard.Stats(r.Context(), userID(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleDashboardCharts(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = services.PeriodWeek
	}

	data, err := s.svc.Dashboard.Charts(r.Context(), userID(r), period)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPeriod) {
			writeError(w, http.StatusBadRequest, "Period must be week, month or year")
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleDiscoverStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.svc.Discover.Status(r.Context(), userID(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleDiscoverConnect(w http.ResponseWriter, r *http.Request) {
	status, err := s.svc.Discover.Connect(r.Context(), userID(r))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Connected to Discover",
		"connected": status.Connected,
		"lastSync":  status.LastSync,
	})
}

func (s *Server) handleDiscoverDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Discover.Disconnect(r.Context(), userID(r)); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Disconnected from Discover",
		"connected": false,
	})
}

func (s *Server) handleDiscoverSync(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.Discover.Sync(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, core.ErrNotConnected) {
			writeError(w, http.StatusBadRequest, "Discover account not connected")
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":              "Sync completed",
		"lastSync":             result.LastSync,
		"transactionsImported": result.TransactionsImported,
	})
}

package httpserver

import (
	"errors"
	"net/http"

	insightserrors "pricesaver/contexts/price-intelligence/insights-service/domain/errors"
)

const defaultWindowDays = 7

func writeInsightsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, insightserrors.ErrInvalidItemQuery):
		writeError(w, http.StatusBadRequest, "invalid_item", err.Error())
	case errors.Is(err, insightserrors.ErrInvalidWindow):
		writeError(w, http.StatusBadRequest, "invalid_window", err.Error())
	case errors.Is(err, insightserrors.ErrSnapshotNotFound):
		writeError(w, http.StatusNotFound, "snapshot_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	windowDays, ok := parseQueryInt(r, "window_days", defaultWindowDays)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_window", "window_days must be an integer")
		return
	}
	resp, err := s.insights.Handler.SearchHandler(r.Context(), r.URL.Query().Get("item"), windowDays)
	if err != nil {
		writeInsightsDomainError(w, err)
		return
	}
	s.countRequest("price_search", http.StatusOK)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	windowDays, ok := parseQueryInt(r, "window_days", defaultWindowDays)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_window", "window_days must be an integer")
		return
	}
	resp, err := s.insights.Handler.HeatmapHandler(r.Context(), r.URL.Query().Get("item"), windowDays)
	if err != nil {
		writeInsightsDomainError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.SnapshotsWritten.Inc()
	}
	s.countRequest("heatmap", http.StatusOK)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHeatmapSnapshot(w http.ResponseWriter, r *http.Request) {
	resp, err := s.insights.Handler.SnapshotHandler(r.Context(), r.PathValue("item"))
	if err != nil {
		writeInsightsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	rewardservice "pricesaver/contexts/community-experience/reward-service"
	catalogservice "pricesaver/contexts/price-intelligence/catalog-service"
	insightsservice "pricesaver/contexts/price-intelligence/insights-service"
	submissionservice "pricesaver/contexts/price-intelligence/submission-service"
	"pricesaver/internal/platform/metrics"

	_ "pricesaver/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	adminAPIKey string
	metrics     *metrics.Metrics

	submission submissionservice.Module
	insights   insightsservice.Module
	catalog    catalogservice.Module
	reward     rewardservice.Module
}

type Options struct {
	Addr        string
	AdminAPIKey string
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

func New(
	submission submissionservice.Module,
	insights insightsservice.Module,
	catalog catalogservice.Module,
	reward rewardservice.Module,
	opts Options,
) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      opts.Logger,
		addr:        opts.Addr,
		adminAPIKey: opts.AdminAPIKey,
		metrics:     opts.Metrics,
		submission:  submission,
		insights:    insights,
		catalog:     catalog,
		reward:      reward,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /api/prices/draft", s.handleSubmitDraft)
	s.mux.HandleFunc("GET /api/prices/drafts", s.handleListDrafts)
	s.mux.HandleFunc("GET /api/prices/drafts/{draft_id}", s.handleGetDraft)
	s.mux.HandleFunc("GET /api/prices", s.handleListObservations)

	s.mux.HandleFunc("POST /api/admin/drafts/{draft_id}/approve", s.handleApproveDraft)
	s.mux.HandleFunc("POST /api/admin/drafts/{draft_id}/reject", s.handleRejectDraft)

	s.mux.HandleFunc("GET /api/ml/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/ml/heatmap", s.handleHeatmap)
	s.mux.HandleFunc("GET /api/ml/heatmap/{item}/snapshot", s.handleHeatmapSnapshot)

	s.mux.HandleFunc("POST /api/stores", s.handleCreateStore)
	s.mux.HandleFunc("GET /api/stores", s.handleListStores)
	s.mux.HandleFunc("POST /api/items", s.handleCreateItem)
	s.mux.HandleFunc("GET /api/items", s.handleListItems)

	s.mux.HandleFunc("GET /api/users/{user_id}/balance", s.handleWalletBalance)
	s.mux.HandleFunc("GET /api/users/{user_id}/ledger", s.handleWalletLedger)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireAdmin gates moderation and catalog writes. An empty configured key
// disables the check for local runs.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if s.adminAPIKey == "" {
		return true
	}
	if strings.TrimSpace(r.Header.Get("X-Admin-Key")) != s.adminAPIKey {
		writeError(w, http.StatusUnauthorized, "unauthorized", "X-Admin-Key header is missing or invalid")
		return false
	}
	return true
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func (s *Server) countRequest(route string, status int) {
	if s.metrics != nil {
		s.metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Status    string    `json:"status"`
	Error     errorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorEnvelope{
		Status: "error",
		Error: errorBody{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func parseQueryInt(r *http.Request, name string, fallback int) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

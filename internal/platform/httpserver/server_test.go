package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	rewardservice "pricesaver/contexts/community-experience/reward-service"
	catalogservice "pricesaver/contexts/price-intelligence/catalog-service"
	insightsservice "pricesaver/contexts/price-intelligence/insights-service"
	submissionservice "pricesaver/contexts/price-intelligence/submission-service"
)

func newTestServer(t *testing.T, adminKey string) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(
		submissionservice.NewInMemoryModule(nil, 50, logger),
		insightsservice.NewInMemoryModule(true, logger),
		catalogservice.NewInMemoryModule(logger),
		rewardservice.NewInMemoryModule(logger),
		Options{AdminAPIKey: adminKey, Logger: logger},
	)
}

func doRequest(t *testing.T, server *Server, method string, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSubmitDraftRoute(t *testing.T) {
	server := newTestServer(t, "")

	rec := doRequest(t, server, http.MethodPost, "/api/prices/draft",
		`{"item":"Rice","parsed_price":500,"location_text":"New Hall"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Draft struct {
			DraftID string `json:"draft_id"`
			Status  string `json:"status"`
		} `json:"draft"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Draft.Status != "pending" {
		t.Fatalf("expected pending, got %s", resp.Draft.Status)
	}
}

func TestSubmitDraftRouteRejectsMissingItem(t *testing.T) {
	server := newTestServer(t, "")

	rec := doRequest(t, server, http.MethodPost, "/api/prices/draft", `{"parsed_price":500}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestApproveRouteRequiresAdminKey(t *testing.T) {
	server := newTestServer(t, "sekret")

	rec := doRequest(t, server, http.MethodPost, "/api/admin/drafts/some-id/approve", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	rec = doRequest(t, server, http.MethodPost, "/api/admin/drafts/some-id/approve", "",
		map[string]string{"X-Admin-Key": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", rec.Code)
	}

	// Correct key reaches the module, which reports the unknown draft.
	rec = doRequest(t, server, http.MethodPost, "/api/admin/drafts/some-id/approve", "",
		map[string]string{"X-Admin-Key": "sekret"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with valid key, got %d", rec.Code)
	}
}

func TestApproveRouteFullFlow(t *testing.T) {
	server := newTestServer(t, "sekret")

	rec := doRequest(t, server, http.MethodPost, "/api/prices/draft",
		`{"item":"Garri","parsed_price":350,"submitter_id":"student-1"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit failed: %d: %s", rec.Code, rec.Body.String())
	}
	var submitResp struct {
		Draft struct {
			DraftID string `json:"draft_id"`
		} `json:"draft"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &submitResp); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}

	rec = doRequest(t, server, http.MethodPost,
		"/api/admin/drafts/"+submitResp.Draft.DraftID+"/approve", "",
		map[string]string{"X-Admin-Key": "sekret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve failed: %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodGet, "/api/users/student-1/balance", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("balance failed: %d", rec.Code)
	}
	// Reward module reads a separate store in this wiring; route shape only.
	var balanceResp struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &balanceResp); err != nil {
		t.Fatalf("decode balance response: %v", err)
	}
	if balanceResp.UserID != "student-1" {
		t.Fatalf("expected user_id student-1, got %s", balanceResp.UserID)
	}
}

func TestSearchRouteValidatesWindow(t *testing.T) {
	server := newTestServer(t, "")

	rec := doRequest(t, server, http.MethodGet, "/api/ml/search?item=Rice&window_days=0", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero window, got %d", rec.Code)
	}

	rec = doRequest(t, server, http.MethodGet, "/api/ml/search?item=Rice", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with default window, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode search response: %v", err)
	}
	if resp.Message != "No recent prices found" {
		t.Fatalf("expected no-data message, got %q", resp.Message)
	}
}

func TestCatalogRoutesGateWrites(t *testing.T) {
	server := newTestServer(t, "sekret")

	rec := doRequest(t, server, http.MethodPost, "/api/stores", `{"name":"Mama Tee"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for ungated store create, got %d", rec.Code)
	}

	rec = doRequest(t, server, http.MethodPost, "/api/stores", `{"name":"Mama Tee"}`,
		map[string]string{"X-Admin-Key": "sekret"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodGet, "/api/stores", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing stores, got %d", rec.Code)
	}
}

func TestSnapshotRouteMissing(t *testing.T) {
	server := newTestServer(t, "")

	rec := doRequest(t, server, http.MethodGet, "/api/ml/heatmap/rice/snapshot", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing snapshot, got %d", rec.Code)
	}
}

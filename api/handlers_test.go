package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-typeahead/config"
	"github.com/gcbaptista/go-typeahead/internal/engine"
	"github.com/gcbaptista/go-typeahead/services"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *engine.Engine) {
	t.Helper()
	dir := t.TempDir()
	eng := engine.NewEngine(dir, time.Hour)
	t.Cleanup(eng.Close)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, eng, filepath.Join(dir, "analytics.json"))
	return router, eng
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createTestList(t *testing.T, router *gin.Engine, name string, candidates []string) {
	t.Helper()
	if w := doJSON(t, router, "POST", "/lists", config.ListSettings{Name: name}); w.Code != http.StatusCreated {
		t.Fatalf("Failed to create list %s: status %d, body %s", name, w.Code, w.Body.String())
	}
	if len(candidates) > 0 {
		if w := doJSON(t, router, "PUT", "/lists/"+name+"/candidates", candidates); w.Code != http.StatusOK {
			t.Fatalf("Failed to load candidates into %s: status %d, body %s", name, w.Code, w.Body.String())
		}
	}
}

func TestCreateListHandler(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "valid list creation",
			requestBody:    config.ListSettings{Name: "fruits", MaxResults: 5},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not an object",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing list name",
			requestBody:    config.ListSettings{MaxResults: 5},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate list name",
			requestBody:    config.ListSettings{Name: "fruits"},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, "POST", "/lists", tt.requestBody)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d (body: %s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListAndGetListHandlers(t *testing.T) {
	router, _ := setupTestRouter(t)
	createTestList(t, router, "cities", nil)

	w := doJSON(t, router, "GET", "/lists", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /lists status = %d", w.Code)
	}
	var listResp struct {
		Lists []string `json:"lists"`
		Count int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if listResp.Count != 1 || len(listResp.Lists) != 1 || listResp.Lists[0] != "cities" {
		t.Errorf("unexpected list response: %+v", listResp)
	}

	w = doJSON(t, router, "GET", "/lists/cities", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /lists/cities status = %d", w.Code)
	}
	var settings config.ListSettings
	if err := json.Unmarshal(w.Body.Bytes(), &settings); err != nil {
		t.Fatalf("Failed to decode settings: %v", err)
	}
	if settings.Name != "cities" {
		t.Errorf("settings.Name = %q, want cities", settings.Name)
	}

	if w := doJSON(t, router, "GET", "/lists/missing", nil); w.Code != http.StatusNotFound {
		t.Errorf("GET missing list status = %d, want 404", w.Code)
	}
}

func TestCandidateHandlers(t *testing.T) {
	router, _ := setupTestRouter(t)
	createTestList(t, router, "fruits", []string{"Apple", "Banana", "Grape", "Pineapple"})

	w := doJSON(t, router, "GET", "/lists/fruits/candidates?page=1&page_size=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET candidates status = %d", w.Code)
	}
	var page struct {
		Candidates []string `json:"candidates"`
		Total      int      `json:"total"`
		Pages      int      `json:"pages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("Failed to decode page: %v", err)
	}
	if page.Total != 4 || page.Pages != 2 {
		t.Errorf("total = %d, pages = %d, want 4 and 2", page.Total, page.Pages)
	}
	if len(page.Candidates) != 2 || page.Candidates[0] != "Apple" || page.Candidates[1] != "Banana" {
		t.Errorf("first page = %v, want [Apple Banana]", page.Candidates)
	}

	if w := doJSON(t, router, "POST", "/lists/fruits/candidates", []string{"Mango"}); w.Code != http.StatusOK {
		t.Errorf("append status = %d, want 200", w.Code)
	}
	if w := doJSON(t, router, "POST", "/lists/fruits/candidates", []string{"  "}); w.Code != http.StatusBadRequest {
		t.Errorf("append whitespace candidate status = %d, want 400", w.Code)
	}
	if w := doJSON(t, router, "PUT", "/lists/fruits/candidates", []string{}); w.Code != http.StatusBadRequest {
		t.Errorf("replace with empty array status = %d, want 400", w.Code)
	}

	if w := doJSON(t, router, "DELETE", "/lists/fruits/candidates", nil); w.Code != http.StatusOK {
		t.Errorf("delete all status = %d, want 200", w.Code)
	}
	w = doJSON(t, router, "GET", "/lists/fruits/candidates", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("Failed to decode page after delete: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("total after delete = %d, want 0", page.Total)
	}

	if w := doJSON(t, router, "PUT", "/lists/missing/candidates", []string{"x"}); w.Code != http.StatusNotFound {
		t.Errorf("replace on missing list status = %d, want 404", w.Code)
	}
}

func TestSuggestHandler(t *testing.T) {
	router, _ := setupTestRouter(t)
	createTestList(t, router, "fruits", []string{"Apple", "Banana", "Grape", "Pineapple"})

	w := doJSON(t, router, "POST", "/lists/fruits/_suggest", SuggestRequest{Query: "ap"})
	if w.Code != http.StatusOK {
		t.Fatalf("suggest status = %d (body: %s)", w.Code, w.Body.String())
	}
	var result services.SuggestResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode suggest result: %v", err)
	}
	if result.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Total)
	}
	if len(result.Suggestions) == 0 || result.Suggestions[0].Value != "Apple" {
		t.Errorf("suggestions = %+v, want Apple on top", result.Suggestions)
	}
	if result.QueryId == "" {
		t.Error("expected a query_id in the response")
	}

	if w := doJSON(t, router, "POST", "/lists/missing/_suggest", SuggestRequest{Query: "ap"}); w.Code != http.StatusNotFound {
		t.Errorf("suggest on missing list status = %d, want 404", w.Code)
	}
	if w := doJSON(t, router, "POST", "/lists/fruits/_suggest", SuggestRequest{Query: "ap", Limit: -1}); w.Code != http.StatusBadRequest {
		t.Errorf("suggest with negative limit status = %d, want 400", w.Code)
	}
	if w := doJSON(t, router, "POST", "/lists/fruits/_suggest", SuggestRequest{Query: "ap", SessionID: "nope"}); w.Code != http.StatusNotFound {
		t.Errorf("suggest with unknown session status = %d, want 404", w.Code)
	}
}

func TestSessionHandlers(t *testing.T) {
	router, _ := setupTestRouter(t)
	createTestList(t, router, "fruits", []string{"Apple", "Banana", "Grape"})

	w := doJSON(t, router, "POST", "/lists/fruits/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session status = %d", w.Code)
	}
	var created struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode session response: %v", err)
	}
	if created.SessionID == "" {
		t.Fatal("expected a session_id")
	}

	// Query twice through the session; the second identical query is a cache hit.
	for i := 0; i < 2; i++ {
		w = doJSON(t, router, "POST", "/lists/fruits/_suggest", SuggestRequest{Query: "ap", SessionID: created.SessionID})
		if w.Code != http.StatusOK {
			t.Fatalf("session suggest %d status = %d", i, w.Code)
		}
	}
	var result services.SuggestResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode suggest result: %v", err)
	}
	if !result.CacheHit {
		t.Error("expected cache_hit on repeated session query")
	}

	w = doJSON(t, router, "GET", "/lists/fruits/sessions/"+created.SessionID+"/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("session stats status = %d", w.Code)
	}
	var stats services.SessionStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode session stats: %v", err)
	}
	if stats.Cache.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Cache.Hits)
	}

	if w := doJSON(t, router, "DELETE", "/lists/fruits/sessions/"+created.SessionID, nil); w.Code != http.StatusOK {
		t.Errorf("drop session status = %d, want 200", w.Code)
	}
	if w := doJSON(t, router, "GET", "/lists/fruits/sessions/"+created.SessionID+"/stats", nil); w.Code != http.StatusNotFound {
		t.Errorf("stats for dropped session status = %d, want 404", w.Code)
	}
}

func TestRenameAndSettingsHandlers(t *testing.T) {
	router, _ := setupTestRouter(t)
	createTestList(t, router, "old", nil)

	if w := doJSON(t, router, "POST", "/lists/old/rename", RenameListRequest{NewName: "old"}); w.Code != http.StatusBadRequest {
		t.Errorf("rename to same name status = %d, want 400", w.Code)
	}
	if w := doJSON(t, router, "POST", "/lists/old/rename", RenameListRequest{NewName: "new"}); w.Code != http.StatusOK {
		t.Errorf("rename status = %d, want 200", w.Code)
	}
	if w := doJSON(t, router, "GET", "/lists/new", nil); w.Code != http.StatusOK {
		t.Errorf("GET renamed list status = %d, want 200", w.Code)
	}

	w := doJSON(t, router, "PATCH", "/lists/new/settings", map[string]interface{}{"max_results": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("settings update status = %d (body: %s)", w.Code, w.Body.String())
	}
	w = doJSON(t, router, "GET", "/lists/new", nil)
	var settings config.ListSettings
	if err := json.Unmarshal(w.Body.Bytes(), &settings); err != nil {
		t.Fatalf("Failed to decode settings: %v", err)
	}
	if settings.MaxResults != 3 {
		t.Errorf("MaxResults = %d, want 3", settings.MaxResults)
	}

	if w := doJSON(t, router, "PATCH", "/lists/new/settings", map[string]interface{}{"name": "other"}); w.Code != http.StatusBadRequest {
		t.Errorf("settings update with name change status = %d, want 400", w.Code)
	}
	if w := doJSON(t, router, "PATCH", "/lists/new/settings", map[string]interface{}{}); w.Code != http.StatusBadRequest {
		t.Errorf("settings update with no fields status = %d, want 400", w.Code)
	}
}

func TestDeleteListHandler(t *testing.T) {
	router, _ := setupTestRouter(t)
	createTestList(t, router, "tmp", nil)

	if w := doJSON(t, router, "DELETE", "/lists/tmp", nil); w.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", w.Code)
	}
	if w := doJSON(t, router, "DELETE", "/lists/tmp", nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestHealthAndAnalyticsHandlers(t *testing.T) {
	router, _ := setupTestRouter(t)

	if w := doJSON(t, router, "GET", "/health", nil); w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
	if w := doJSON(t, router, "GET", "/analytics", nil); w.Code != http.StatusOK {
		t.Errorf("analytics status = %d, want 200", w.Code)
	}
}

func TestListStatsHandler(t *testing.T) {
	router, _ := setupTestRouter(t)
	createTestList(t, router, "fruits", []string{"Apple", "Banana"})

	w := doJSON(t, router, "GET", "/lists/fruits/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats struct {
		ListName       string `json:"list_name"`
		CandidateCount int    `json:"candidate_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if stats.ListName != "fruits" || stats.CandidateCount != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

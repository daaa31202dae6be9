package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealfinder/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(t *testing.T) (*gin.Engine, *testutil.MockMealSource) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	src := &testutil.MockMealSource{
		SearchMealsFunc: testutil.StaticMeals(testutil.TestMeal("1", "Beef Stew", 5)),
	}
	return SetupRouter(ctx, testutil.TestConfig(), src), src
}

func TestPing(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["message"] != "pong" {
		t.Errorf("message = %v, want pong", body["message"])
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}
}

func TestSearchRoute(t *testing.T) {
	r, src := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/v1/meals/search?s=stew", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if src.SearchCalls() != 1 {
		t.Errorf("search calls = %d, want 1", src.SearchCalls())
	}
}

func TestMetricsRoute(t *testing.T) {
	r, _ := setupTestRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/v1/meals/search?s=stew", nil))

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "mealfinder_http_requests_total") {
		t.Error("metrics output should include mealfinder_http_requests_total")
	}
}

func TestCORS_Preflight(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/v1/meals/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("preflight should set Access-Control-Allow-Origin")
	}
}

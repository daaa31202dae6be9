package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealfinder/internal/mealdb"
	"github.com/windoze95/mealfinder/internal/models"
	"github.com/windoze95/mealfinder/internal/service"
	"github.com/windoze95/mealfinder/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMealRouter(src *testutil.MockMealSource) *gin.Engine {
	svc := service.NewMealService(testutil.TestConfig(), src)
	handler := NewMealHandler(svc)

	r := gin.New()
	r.GET("/meals/search", handler.SearchMeals)
	r.GET("/meals/:meal_id", handler.GetMeal)
	return r
}

func doGet(r *gin.Engine, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

// --- SearchMeals ---

func TestSearchMeals_Success(t *testing.T) {
	src := &testutil.MockMealSource{
		SearchMealsFunc: testutil.StaticMeals(
			testutil.TestMeal("1", "Beef Wellington", 6),
			testutil.TestMeal("2", "Beef Tartare", 2),
		),
	}
	r := setupMealRouter(src)

	w, body := doGet(r, "/meals/search?s=beef")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	meals, ok := body["meals"].([]interface{})
	if !ok || len(meals) != 2 {
		t.Fatalf("meals = %v, want 2 entries", body["meals"])
	}
	first := meals[0].(map[string]interface{})
	if first["ingredient_count"] != float64(6) || first["fewest_ingredients"] != false {
		t.Errorf("meals[0] = %v", first)
	}

	fewest, ok := body["fewest"].(map[string]interface{})
	if !ok {
		t.Fatal("response should contain 'fewest' object")
	}
	if fewest["id"] != "2" || fewest["name"] != "Beef Tartare" {
		t.Errorf("fewest = %v, want Beef Tartare", fewest)
	}
	if ingredients, _ := fewest["ingredients"].([]interface{}); len(ingredients) != 2 {
		t.Errorf("fewest.ingredients = %v, want 2 lines", fewest["ingredients"])
	}
}

func TestSearchMeals_NoResults(t *testing.T) {
	src := &testutil.MockMealSource{SearchMealsFunc: testutil.StaticMeals()}
	r := setupMealRouter(src)

	w, body := doGet(r, "/meals/search?s=zzzz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if body["fewest"] != nil {
		t.Errorf("fewest = %v, want null", body["fewest"])
	}
	if meals, ok := body["meals"].([]interface{}); !ok || len(meals) != 0 {
		t.Errorf("meals = %v, want []", body["meals"])
	}
	if body["message"] != `No meals found for "zzzz"` {
		t.Errorf("message = %v", body["message"])
	}
}

func TestSearchMeals_MissingQuery(t *testing.T) {
	src := &testutil.MockMealSource{}
	r := setupMealRouter(src)

	w, body := doGet(r, "/meals/search")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if body["error"] != "Query parameter 's' is required" {
		t.Errorf("error = %v", body["error"])
	}
	if src.SearchCalls() != 0 {
		t.Error("source should not be called for an empty query")
	}
}

func TestSearchMeals_BlankQuery(t *testing.T) {
	src := &testutil.MockMealSource{}
	r := setupMealRouter(src)

	w, body := doGet(r, "/meals/search?s=%20%20")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if body["error"] != "Query parameter 's' is required" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestSearchMeals_UpstreamFailure(t *testing.T) {
	src := &testutil.MockMealSource{
		SearchMealsFunc: func(ctx context.Context, query string) ([]models.Meal, error) {
			return nil, &mealdb.MalformedResponseError{Op: "search"}
		},
	}
	r := setupMealRouter(src)

	w, body := doGet(r, "/meals/search?s=beef")
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if body["error"] != "Network response Not Ok" {
		t.Errorf("error = %v, want generic message", body["error"])
	}
}

// --- GetMeal ---

func TestGetMeal_Valid(t *testing.T) {
	src := &testutil.MockMealSource{
		LookupMealFunc: testutil.LookupFrom(mealdb.NotFoundError{}, testutil.TestFlourAndSalt()),
	}
	r := setupMealRouter(src)

	w, body := doGet(r, "/meals/52900")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	meal, ok := body["meal"].(map[string]interface{})
	if !ok {
		t.Fatal("response should contain 'meal' field")
	}
	if meal["ingredient_count"] != float64(2) {
		t.Errorf("ingredient_count = %v, want 2", meal["ingredient_count"])
	}
	lines := meal["ingredients"].([]interface{})
	if lines[0] != "2 cups Flour" || lines[1] != "Salt" {
		t.Errorf("ingredients = %v", lines)
	}
}

func TestGetMeal_InvalidID(t *testing.T) {
	r := setupMealRouter(&testutil.MockMealSource{})

	w, _ := doGet(r, "/meals/abc")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetMeal_NotFound(t *testing.T) {
	src := &testutil.MockMealSource{
		LookupMealFunc: testutil.LookupFrom(mealdb.NotFoundError{}),
	}
	r := setupMealRouter(src)

	w, body := doGet(r, "/meals/999")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if body["error"] != "No meal found." {
		t.Errorf("error = %v", body["error"])
	}
}

func TestGetMeal_UpstreamFailure(t *testing.T) {
	src := &testutil.MockMealSource{
		LookupMealFunc: func(ctx context.Context, id string) (*models.Meal, error) {
			return nil, &mealdb.StatusError{Op: "lookup", StatusCode: http.StatusInternalServerError}
		},
	}
	r := setupMealRouter(src)

	w, _ := doGet(r, "/meals/52772")
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
}

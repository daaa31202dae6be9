package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/windoze95/mealfinder/internal/models"
)

// --- MockMealSource ---

// MockMealSource is a mock implementation of service.MealSource. It records
// every query and ID it receives.
type MockMealSource struct {
	SearchMealsFunc func(ctx context.Context, query string) ([]models.Meal, error)
	LookupMealFunc  func(ctx context.Context, id string) (*models.Meal, error)

	mu      sync.Mutex
	Queries []string
	IDs     []string
}

func (m *MockMealSource) SearchMeals(ctx context.Context, query string) ([]models.Meal, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	if m.SearchMealsFunc != nil {
		return m.SearchMealsFunc(ctx, query)
	}
	return nil, fmt.Errorf("SearchMeals not configured")
}

func (m *MockMealSource) LookupMeal(ctx context.Context, id string) (*models.Meal, error) {
	m.mu.Lock()
	m.IDs = append(m.IDs, id)
	m.mu.Unlock()
	if m.LookupMealFunc != nil {
		return m.LookupMealFunc(ctx, id)
	}
	return nil, fmt.Errorf("LookupMeal not configured")
}

// SearchCalls returns how many searches were made.
func (m *MockMealSource) SearchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}

// StaticMeals returns a SearchMealsFunc that always answers meals.
func StaticMeals(meals ...models.Meal) func(context.Context, string) ([]models.Meal, error) {
	return func(context.Context, string) ([]models.Meal, error) {
		out := make([]models.Meal, len(meals))
		copy(out, meals)
		return out, nil
	}
}

// LookupFrom returns a LookupMealFunc that serves meals by ID and answers
// notFound for anything else.
func LookupFrom(notFound error, meals ...models.Meal) func(context.Context, string) (*models.Meal, error) {
	byID := make(map[string]models.Meal, len(meals))
	for _, m := range meals {
		byID[m.ID] = m
	}
	return func(_ context.Context, id string) (*models.Meal, error) {
		m, ok := byID[id]
		if !ok {
			return nil, notFound
		}
		return &m, nil
	}
}

package service

import (
	"context"

	"github.com/windoze95/mealfinder/internal/models"
)

// MealSource is the upstream recipe catalogue. mealdb.Client implements it.
type MealSource interface {
	SearchMeals(ctx context.Context, query string) ([]models.Meal, error)
	LookupMeal(ctx context.Context, id string) (*models.Meal, error)
}

// ValidationError is returned when caller input is rejected before any
// upstream call is made.
type ValidationError struct {
	message string
}

// Error returns the error message.
func (e ValidationError) Error() string {
	return e.message
}

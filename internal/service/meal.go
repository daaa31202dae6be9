package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	goaway "github.com/TwiN/go-away"
	"github.com/asaskevich/govalidator"
	"github.com/windoze95/mealfinder/internal/config"
	"github.com/windoze95/mealfinder/internal/logger"
	"github.com/windoze95/mealfinder/internal/models"
	"go.uber.org/zap"
)

const maxQueryLength = 100

// MealSummary is one row of a search result.
type MealSummary struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	Area              string `json:"area"`
	ThumbnailURL      string `json:"thumbnail_url"`
	IngredientCount   int    `json:"ingredient_count"`
	FewestIngredients bool   `json:"fewest_ingredients"`
}

// MealDetail is a meal together with its rendered ingredient list.
type MealDetail struct {
	models.Meal
	IngredientCount int      `json:"ingredient_count"`
	Ingredients     []string `json:"ingredients"`
}

// SearchResult is the outcome of a meal search. Fewest is nil when nothing
// matched.
type SearchResult struct {
	Query  string        `json:"query"`
	Meals  []MealSummary `json:"meals"`
	Fewest *MealDetail   `json:"fewest"`
}

// MealService searches TheMealDB and picks the meal with the fewest
// ingredients.
type MealService struct {
	Cfg       *config.Config
	Source    MealSource
	profanity *goaway.ProfanityDetector
}

// NewMealService creates a new MealService.
func NewMealService(cfg *config.Config, source MealSource) *MealService {
	s := &MealService{
		Cfg:    cfg,
		Source: source,
	}
	if cfg != nil && cfg.EnvVars.ProfanityFilter {
		s.profanity = goaway.NewProfanityDetector().WithSanitizeLeetSpeak(true).WithSanitizeSpecialCharacters(true).WithSanitizeAccents(false)
	}
	return s
}

// Search queries the source by meal name and annotates the results with
// ingredient counts.
func (s *MealService) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if err := s.ValidateQuery(query); err != nil {
		return nil, err
	}

	meals, err := s.Source.SearchMeals(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search meals: %w", err)
	}

	result := &SearchResult{
		Query: query,
		Meals: make([]MealSummary, 0, len(meals)),
	}

	fewest := models.FewestIngredients(meals)
	if fewest != nil {
		result.Fewest = NewMealDetail(fewest)
	}

	for i := range meals {
		m := &meals[i]
		result.Meals = append(result.Meals, MealSummary{
			ID:                m.ID,
			Name:              m.Name,
			Category:          m.Category,
			Area:              m.Area,
			ThumbnailURL:      m.ThumbnailURL,
			IngredientCount:   m.IngredientCount(),
			FewestIngredients: fewest != nil && m.ID == fewest.ID,
		})
	}

	logger.Get().Debug("meal search done",
		zap.String("query", query),
		zap.Int("results", len(result.Meals)),
	)
	return result, nil
}

// GetMeal looks up a single meal by its TheMealDB ID.
func (s *MealService) GetMeal(ctx context.Context, id string) (*MealDetail, error) {
	if err := ValidateMealID(id); err != nil {
		return nil, err
	}

	meal, err := s.Source.LookupMeal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up meal %s: %w", id, err)
	}
	return NewMealDetail(meal), nil
}

// ValidateQuery validates a trimmed search query.
func (s *MealService) ValidateQuery(query string) error {
	if query == "" {
		return ValidationError{message: "query cannot be empty"}
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		return ValidationError{message: fmt.Sprintf("query must be at most %d characters", maxQueryLength)}
	}
	if s.profanity != nil && s.profanity.IsProfane(query) {
		return ValidationError{message: "query contains inappropriate language"}
	}
	return nil
}

// ValidateMealID checks that id looks like a TheMealDB identifier.
func ValidateMealID(id string) error {
	if id == "" || !govalidator.IsInt(id) || strings.HasPrefix(id, "-") || strings.HasPrefix(id, "+") {
		return ValidationError{message: "invalid meal ID"}
	}
	return nil
}

// NewMealDetail renders the ingredient list of m.
func NewMealDetail(m *models.Meal) *MealDetail {
	return &MealDetail{
		Meal:            *m,
		IngredientCount: m.IngredientCount(),
		Ingredients:     m.IngredientLines(),
	}
}

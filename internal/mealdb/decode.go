package mealdb

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/windoze95/mealfinder/internal/models"
)

// mealsEnvelope is the body TheMealDB returns for search and lookup. Meals
// is kept raw because the API answers null, or occasionally a string, when
// nothing matched.
type mealsEnvelope struct {
	Meals json.RawMessage `json:"meals"`
}

// decodeMeals parses a response body into meals. A missing, null or
// non-array "meals" field yields no meals.
func decodeMeals(body []byte) ([]models.Meal, error) {
	var env mealsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	var records []map[string]json.RawMessage
	if err := json.Unmarshal(env.Meals, &records); err != nil {
		return []models.Meal{}, nil
	}

	meals := make([]models.Meal, 0, len(records))
	for _, rec := range records {
		meals = append(meals, decodeMeal(rec))
	}
	return meals, nil
}

// decodeMeal maps one upstream record onto a Meal. Only slots 1..20 are
// read; null or non-string values become "".
func decodeMeal(rec map[string]json.RawMessage) models.Meal {
	m := models.Meal{
		ID:           stringField(rec, "idMeal"),
		Name:         stringField(rec, "strMeal"),
		Category:     stringField(rec, "strCategory"),
		Area:         stringField(rec, "strArea"),
		Instructions: stringField(rec, "strInstructions"),
		ThumbnailURL: stringField(rec, "strMealThumb"),
		YoutubeURL:   stringField(rec, "strYoutube"),
		SourceURL:    stringField(rec, "strSource"),
		Tags:         splitTags(stringField(rec, "strTags")),
	}
	for i := 0; i < models.MaxIngredientSlots; i++ {
		n := strconv.Itoa(i + 1)
		m.Slots[i] = models.IngredientSlot{
			Ingredient: stringField(rec, "strIngredient"+n),
			Measure:    stringField(rec, "strMeasure"+n),
		}
	}
	return m
}

func stringField(rec map[string]json.RawMessage, key string) string {
	raw, ok := rec[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

package testutil

import (
	"github.com/windoze95/mealfinder/internal/config"
	"github.com/windoze95/mealfinder/internal/models"
)

// TestConfig returns a config matching the environment defaults, with a
// relaxed rate limit and the default messages.
func TestConfig() *config.Config {
	return &config.Config{
		EnvVars: config.EnvVars{
			Port:            "8080",
			MealDBBaseURL:   "http://mealdb.test",
			RateLimitRPS:    100,
			ProfanityFilter: false,
		},
		Messages: config.DefaultMessages(),
	}
}

// TestMeal creates a meal with the given number of ingredients.
func TestMeal(id, name string, ingredients int) models.Meal {
	m := models.Meal{
		ID:           id,
		Name:         name,
		Category:     "Beef",
		Area:         "British",
		Instructions: "Season the meat.\nSear on high heat.",
		ThumbnailURL: "https://www.themealdb.com/images/media/meals/" + id + ".jpg",
	}
	for i := 0; i < ingredients && i < models.MaxIngredientSlots; i++ {
		m.Slots[i] = models.IngredientSlot{Ingredient: "Ingredient", Measure: "1 tsp"}
	}
	return m
}

// TestFlourAndSalt creates a meal whose ingredient list renders as
// ["2 cups Flour", "Salt"].
func TestFlourAndSalt() models.Meal {
	m := models.Meal{
		ID:           "52900",
		Name:         "Plain Flatbread",
		Category:     "Side",
		Area:         "",
		Instructions: "Mix and bake.",
		YoutubeURL:   "https://www.youtube.com/watch?v=flatbread",
	}
	m.Slots[0] = models.IngredientSlot{Ingredient: "Flour", Measure: " 2 cups "}
	m.Slots[1] = models.IngredientSlot{Ingredient: "", Measure: "1 tsp"}
	m.Slots[2] = models.IngredientSlot{Ingredient: "Salt"}
	return m
}

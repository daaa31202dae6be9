package models

import "strings"

// MaxIngredientSlots is the number of numbered ingredient/measure pairs a
// TheMealDB record carries (strIngredient1..20, strMeasure1..20).
const MaxIngredientSlots = 20

// IngredientSlot is one numbered ingredient/measure pair of a meal.
// Absent or null upstream values are stored as the empty string.
type IngredientSlot struct {
	Ingredient string `json:"ingredient"`
	Measure    string `json:"measure"`
}

// qualifies reports whether the slot names an ingredient.
func (s IngredientSlot) qualifies() bool {
	return strings.TrimSpace(s.Ingredient) != ""
}

// Line renders the slot as "<measure> <ingredient>", dropping the measure
// when it is blank.
func (s IngredientSlot) Line() string {
	name := strings.TrimSpace(s.Ingredient)
	measure := strings.TrimSpace(s.Measure)
	if measure == "" {
		return name
	}
	return measure + " " + name
}

// Meal is a single recipe as returned by TheMealDB. The ingredient slots are
// populated once when the upstream record is parsed; slot 0 is upstream
// index 1.
type Meal struct {
	ID           string                             `json:"id"`
	Name         string                             `json:"name"`
	Category     string                             `json:"category"`
	Area         string                             `json:"area"`
	Instructions string                             `json:"instructions,omitempty"`
	ThumbnailURL string                             `json:"thumbnail_url"`
	YoutubeURL   string                             `json:"youtube_url,omitempty"`
	SourceURL    string                             `json:"source_url,omitempty"`
	Tags         []string                           `json:"tags,omitempty"`
	Slots        [MaxIngredientSlots]IngredientSlot `json:"-"`
}

// IngredientCount returns the number of slots with a non-blank ingredient.
func (m *Meal) IngredientCount() int {
	count := 0
	for _, slot := range m.Slots {
		if slot.qualifies() {
			count++
		}
	}
	return count
}

// IngredientLines returns one line per qualifying slot, in slot order.
// A meal without ingredients yields an empty, non-nil slice.
func (m *Meal) IngredientLines() []string {
	lines := make([]string, 0, MaxIngredientSlots)
	for _, slot := range m.Slots {
		if slot.qualifies() {
			lines = append(lines, slot.Line())
		}
	}
	return lines
}

// FewestIngredients returns the meal with the lowest IngredientCount, or nil
// when meals is empty. Ties go to the earliest meal.
func FewestIngredients(meals []Meal) *Meal {
	if len(meals) == 0 {
		return nil
	}
	minIdx := 0
	minCount := meals[0].IngredientCount()
	for i := 1; i < len(meals); i++ {
		if count := meals[i].IngredientCount(); count < minCount {
			minIdx = i
			minCount = count
		}
	}
	return &meals[minIdx]
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/windoze95/mealfinder/internal/config"
	"github.com/windoze95/mealfinder/internal/service"
	"github.com/windoze95/mealfinder/internal/view"
)

func (m Model) help(keys string) string { return helpStyle.Render(keys) }

func (m Model) View() string {
	var body string
	if m.screen == screenDetail {
		body = m.viewDetail()
	} else {
		body = m.viewSearch()
	}
	return lipgloss.NewStyle().Padding(0, framePadding).Render(body)
}

func (m Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("MealDB App") + "\n")
	b.WriteString(mutedStyle.Render("Search meals by name using TheMealDB API") + "\n\n")

	button := "Search"
	if view.IsBusy(m.search) {
		button = "Searching..."
	}
	b.WriteString(m.input.View() + "  " + buttonStyle.Render(button) + "\n\n")

	switch st := m.search.(type) {
	case view.Idle:
		b.WriteString(mutedStyle.Render(m.msgs.EmptyState) + "\n")

	case view.Loading:
		b.WriteString(m.msgs.Loading + "\n")

	case view.Failed:
		b.WriteString(errorStyle.Render(st.Reason) + "\n")

	case view.Loaded:
		if st.Search.Fewest != nil {
			b.WriteString(fewestPanel(st.Search.Fewest) + "\n\n")
		}
		if len(st.Search.Meals) == 0 {
			msg, err := config.RenderMessage(m.msgs.NoResults, map[string]interface{}{"Query": st.Search.Query})
			if err != nil {
				msg = m.msgs.EmptyState
			}
			b.WriteString(mutedStyle.Render(msg) + "\n")
		}
		for i, meal := range st.Search.Meals {
			b.WriteString(m.mealRow(i, meal) + "\n")
		}
	}

	helpText := "ENTER search · TAB to results · ESC/CTRL+C quit"
	if m.listFocused {
		helpText = "↑/↓ select · ENTER details · TAB back to search · ESC/CTRL+C quit"
	}
	b.WriteString("\n" + m.help(helpText))
	return b.String()
}

func (m Model) mealRow(i int, meal service.MealSummary) string {
	st := optionStyle
	switch {
	case m.listFocused && i == m.cursor:
		st = selectedStyle
	case meal.FewestIngredients:
		st = fewestStyle
	}
	marker := "  "
	if meal.FewestIngredients {
		marker = "★ "
	}
	line := marker + st.Render(meal.Name)
	meta := fmt.Sprintf("%s - %s · Ingredients: %d", meal.Area, meal.Category, meal.IngredientCount)
	return line + "  " + mutedStyle.Render(meta)
}

func fewestPanel(meal *service.MealDetail) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Meal with least Ingredients") + "\n")
	b.WriteString(meal.Name + "\n")
	if meal.ThumbnailURL != "" {
		b.WriteString(mutedStyle.Render(meal.ThumbnailURL) + "\n")
	}
	b.WriteString(fmt.Sprintf("Ingredients: %d\n", meal.IngredientCount))
	b.WriteString(labelStyle.Render("Ingredients List:") + "\n")
	for _, line := range meal.Ingredients {
		b.WriteString("• " + line + "\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewDetail() string {
	var b strings.Builder

	switch st := m.detail.(type) {
	case view.Idle, view.Loading:
		b.WriteString(m.msgs.Loading + "\n")

	case view.Failed:
		b.WriteString(errorStyle.Render("Error: "+st.Reason) + "\n")

	case view.Loaded:
		if st.Meal == nil {
			b.WriteString(m.msgs.NotFound + "\n")
			break
		}
		meal := st.Meal
		area := meal.Area
		if area == "" {
			area = "-"
		}

		b.WriteString(titleStyle.Render(meal.Name) + "\n")
		if meal.ThumbnailURL != "" {
			b.WriteString(mutedStyle.Render(meal.ThumbnailURL) + "\n")
		}
		b.WriteString("\n" + labelStyle.Render("Category: ") + meal.Category + "\n")
		b.WriteString(labelStyle.Render("Area: ") + area + "\n\n")

		b.WriteString(titleStyle.Render(fmt.Sprintf("Ingredients %d", meal.IngredientCount)) + "\n")
		for _, line := range meal.Ingredients {
			b.WriteString("• " + line + "\n")
		}

		b.WriteString("\n" + titleStyle.Render("Instructions") + "\n")
		b.WriteString(lipgloss.NewStyle().Width(max(40, m.width-2*framePadding)).Render(meal.Instructions) + "\n")

		if meal.YoutubeURL != "" {
			b.WriteString("\n" + labelStyle.Render("Video: ") + meal.YoutubeURL + "\n")
		}
	}

	b.WriteString("\n" + m.help("ESC back to search · CTRL+C quit"))
	return b.String()
}

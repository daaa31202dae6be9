package tui

import "github.com/windoze95/mealfinder/internal/service"

/* ------------------------------ Messages --------------------------------- */

type searchDoneMsg struct {
	query  string
	result *service.SearchResult
	err    error
}

type lookupDoneMsg struct {
	id   string
	meal *service.MealDetail
	err  error
}

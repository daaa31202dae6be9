// Package tui is a terminal client for meal search: a search screen that
// highlights the meal with the fewest ingredients and a detail screen for a
// single meal.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/windoze95/mealfinder/internal/config"
	"github.com/windoze95/mealfinder/internal/service"
	"github.com/windoze95/mealfinder/internal/view"
)

const requestTimeout = 30 * time.Second

type screen int

const (
	screenSearch screen = iota
	screenDetail
)

// Model is the bubbletea model of the terminal client.
type Model struct {
	svc  *service.MealService
	msgs *config.Messages

	input       textinput.Model
	listFocused bool
	cursor      int

	screen   screen
	search   view.State
	detail   view.State
	detailID string

	width int
}

// New returns a Model in the idle state.
func New(svc *service.MealService) Model {
	in := textinput.New()
	in.Placeholder = "Search meals by name (e.g. Beef Steak)..."
	in.Prompt = "🔎 "
	in.CharLimit = 100
	in.Width = 50
	in.Focus()

	return Model{
		svc:    svc,
		msgs:   svc.Cfg.Msgs(),
		input:  in,
		screen: screenSearch,
		search: view.Idle{},
		detail: view.Idle{},
	}
}

// Run starts the terminal client and blocks until the user quits.
func Run(svc *service.MealService) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch mm := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = mm.Width
		m.input.Width = max(30, m.width-2*framePadding-4)
		return m, nil

	case searchDoneMsg:
		if loading, ok := m.search.(view.Loading); !ok || loading.Query != mm.query {
			return m, nil
		}
		m.search = view.SearchOutcome(mm.result, mm.err, m.msgs)
		m.cursor = 0
		if len(m.results()) == 0 {
			m.focusInput()
		}
		return m, nil

	case lookupDoneMsg:
		if m.screen == screenDetail && mm.id == m.detailID {
			m.detail = view.LookupOutcome(mm.meal, mm.err, m.msgs)
		}
		return m, nil

	case tea.KeyMsg:
		if mm.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenDetail {
			return m.updateDetail(mm)
		}
		return m.updateSearch(mm)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.screen = screenSearch
		m.detail = view.Idle{}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "shift+tab":
		if m.listFocused {
			m.focusInput()
		} else if len(m.results()) > 0 {
			m.listFocused = true
			m.input.Blur()
		}
		return m, nil

	case "enter":
		if m.listFocused {
			return m.openSelected()
		}
		return m.submit()
	}

	if m.listFocused {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.results())-1 {
				m.cursor++
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts a search unless the query is blank or one is running.
func (m Model) submit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" || view.IsBusy(m.search) {
		return m, nil
	}
	m.search = view.Loading{Query: query}
	return m, searchCmd(m.svc, query)
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	results := m.results()
	if m.cursor >= len(results) {
		return m, nil
	}
	id := results[m.cursor].ID
	m.screen = screenDetail
	m.detail = view.Loading{}
	m.detailID = id
	return m, lookupCmd(m.svc, id)
}

func (m *Model) focusInput() {
	m.listFocused = false
	m.input.Focus()
}

// results returns the meals of the last successful search.
func (m Model) results() []service.MealSummary {
	if loaded, ok := m.search.(view.Loaded); ok && loaded.Search != nil {
		return loaded.Search.Meals
	}
	return nil
}

func searchCmd(svc *service.MealService, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := svc.Search(ctx, query)
		return searchDoneMsg{query: query, result: result, err: err}
	}
}

func lookupCmd(svc *service.MealService, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		meal, err := svc.GetMeal(ctx, id)
		return lookupDoneMsg{id: id, meal: meal, err: err}
	}
}

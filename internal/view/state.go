// Package view holds the presentation state shared by the WebSocket session
// and the terminal client. A screen is always in exactly one State.
package view

import (
	"errors"

	"github.com/windoze95/mealfinder/internal/config"
	"github.com/windoze95/mealfinder/internal/logger"
	"github.com/windoze95/mealfinder/internal/mealdb"
	"github.com/windoze95/mealfinder/internal/service"
	"go.uber.org/zap"
)

// Kind names a State variant on the wire.
type Kind string

const (
	KindIdle    Kind = "idle"
	KindLoading Kind = "loading"
	KindLoaded  Kind = "loaded"
	KindFailed  Kind = "failed"
)

// State is one of Idle, Loading, Loaded or Failed.
type State interface {
	Kind() Kind
	isState()
}

// Idle is the state before the first request.
type Idle struct{}

// Loading is the state while a request is in flight.
type Loading struct {
	Query string
}

// Loaded carries a finished search or lookup. A lookup that matched nothing
// is Loaded with a nil Meal.
type Loaded struct {
	Search *service.SearchResult
	Meal   *service.MealDetail
}

// Failed carries the message to show the user.
type Failed struct {
	Reason string
}

func (Idle) Kind() Kind    { return KindIdle }
func (Loading) Kind() Kind { return KindLoading }
func (Loaded) Kind() Kind  { return KindLoaded }
func (Failed) Kind() Kind  { return KindFailed }

func (Idle) isState()    {}
func (Loading) isState() {}
func (Loaded) isState()  {}
func (Failed) isState()  {}

// IsBusy reports whether s has a request in flight.
func IsBusy(s State) bool {
	_, ok := s.(Loading)
	return ok
}

// SearchOutcome maps the result of MealService.Search to a terminal state.
// Validation errors keep their own message, every other failure collapses
// into the generic search message.
func SearchOutcome(result *service.SearchResult, err error, msgs *config.Messages) State {
	if err == nil {
		return Loaded{Search: result}
	}
	var verr service.ValidationError
	if errors.As(err, &verr) {
		return Failed{Reason: verr.Error()}
	}
	logger.Get().Warn("meal search failed", zap.Error(err))
	return Failed{Reason: msgs.SearchFailed}
}

// LookupOutcome maps the result of MealService.GetMeal to a terminal state.
func LookupOutcome(meal *service.MealDetail, err error, msgs *config.Messages) State {
	if err == nil {
		return Loaded{Meal: meal}
	}
	var notFound mealdb.NotFoundError
	if errors.As(err, &notFound) {
		return Loaded{}
	}
	var verr service.ValidationError
	if errors.As(err, &verr) {
		return Failed{Reason: msgs.InvalidID}
	}
	logger.Get().Warn("meal lookup failed", zap.Error(err))
	return Failed{Reason: msgs.LookupFailed}
}

// Payload is the JSON form of a State.
type Payload struct {
	State  Kind                  `json:"state"`
	Query  string                `json:"query,omitempty"`
	Search *service.SearchResult `json:"search,omitempty"`
	Meal   *service.MealDetail   `json:"meal,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// Encode converts s into its JSON payload.
func Encode(s State) Payload {
	p := Payload{State: s.Kind()}
	switch st := s.(type) {
	case Loading:
		p.Query = st.Query
	case Loaded:
		p.Search = st.Search
		p.Meal = st.Meal
	case Failed:
		p.Error = st.Reason
	}
	return p
}

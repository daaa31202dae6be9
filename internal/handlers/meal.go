package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealfinder/internal/config"
	"github.com/windoze95/mealfinder/internal/logger"
	"github.com/windoze95/mealfinder/internal/mealdb"
	"github.com/windoze95/mealfinder/internal/service"
	"go.uber.org/zap"
)

// MealHandler is the handler for meal search and detail requests.
type MealHandler struct {
	Service *service.MealService
}

// NewMealHandler is the constructor function for initializing a new MealHandler.
func NewMealHandler(mealService *service.MealService) *MealHandler {
	return &MealHandler{Service: mealService}
}

// SearchMeals handles GET /v1/meals/search?s=...
func (h *MealHandler) SearchMeals(c *gin.Context) {
	msgs := h.Service.Cfg.Msgs()
	query := c.Query("s")

	result, err := h.Service.Search(c.Request.Context(), query)
	if err != nil {
		var verr service.ValidationError
		if errors.As(err, &verr) {
			message := verr.Error()
			if strings.TrimSpace(query) == "" {
				message = msgs.EmptyQuery
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": message})
			return
		}
		logger.FromContext(c).Error("failed to search meals", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": msgs.SearchFailed})
		return
	}

	body := gin.H{
		"query":  result.Query,
		"meals":  result.Meals,
		"fewest": result.Fewest,
	}
	if len(result.Meals) == 0 {
		if message, err := config.RenderMessage(msgs.NoResults, map[string]interface{}{"Query": result.Query}); err == nil {
			body["message"] = message
		}
	}
	c.JSON(http.StatusOK, body)
}

// GetMeal handles GET /v1/meals/:meal_id
func (h *MealHandler) GetMeal(c *gin.Context) {
	msgs := h.Service.Cfg.Msgs()
	mealID := c.Param("meal_id")

	meal, err := h.Service.GetMeal(c.Request.Context(), mealID)
	if err != nil {
		var verr service.ValidationError
		var notFound mealdb.NotFoundError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgs.InvalidID})
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{"error": msgs.NotFound})
		default:
			logger.FromContext(c).Error("failed to get meal", zap.String("meal_id", mealID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": msgs.LookupFailed})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

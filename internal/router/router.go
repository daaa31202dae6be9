package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/windoze95/mealfinder/internal/config"
	"github.com/windoze95/mealfinder/internal/handlers"
	"github.com/windoze95/mealfinder/internal/logger"
	"github.com/windoze95/mealfinder/internal/middleware"
	"github.com/windoze95/mealfinder/internal/service"
	"github.com/windoze95/mealfinder/internal/ws"
)

// SetupRouter sets up the Gin router. ctx bounds the lifetime of background
// middleware goroutines.
func SetupRouter(ctx context.Context, cfg *config.Config, source service.MealSource) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.EnvVars.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.EnvVars.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.AccessLogMiddleware())
	r.Use(middleware.Metrics())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	mealService := service.NewMealService(cfg, source)
	mealHandler := handlers.NewMealHandler(mealService)
	searchHandler := ws.NewSearchHandler(mealService, cfg.EnvVars.AllowedOrigins)

	api := r.Group("/v1")
	{
		api.Use(middleware.RateLimitByIP(ctx, cfg.EnvVars.RateLimitRPS, time.Minute, 10*time.Minute))

		// Search meals by name
		api.GET("/meals/search", mealHandler.SearchMeals)
		// Get a single meal by its ID
		api.GET("/meals/:meal_id", mealHandler.GetMeal)

		// Streaming search session
		api.GET("/ws/search", searchHandler.HandleSearchSession)
	}

	return r
}

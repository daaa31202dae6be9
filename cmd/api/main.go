package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealfinder/internal/config"
	"github.com/windoze95/mealfinder/internal/logger"
	"github.com/windoze95/mealfinder/internal/mealdb"
	"github.com/windoze95/mealfinder/internal/router"
	"go.uber.org/zap"
)

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the API.
func main() {
	defer logger.Sync()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	// Load user-visible messages from YAML
	msgs, err := config.LoadMessages(cfg.EnvVars.MessagesPath)
	if err != nil {
		logger.Get().Fatal("failed to load messages", zap.Error(err))
	}
	cfg.Messages = msgs

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := mealdb.NewClient(cfg.EnvVars.MealDBBaseURL, cfg.EnvVars.MealDBTimeout)

	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(ctx, cfg, client)

	srv := &http.Server{
		Addr:              ":" + cfg.EnvVars.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Get().Info("starting server",
			zap.String("port", cfg.EnvVars.Port),
			zap.String("mealdb", cfg.EnvVars.MealDBBaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Get().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Get().Error("graceful shutdown failed", zap.Error(err))
	}
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}

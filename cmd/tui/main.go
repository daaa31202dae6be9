package main

import (
	"fmt"
	"os"

	"github.com/windoze95/mealfinder/internal/config"
	"github.com/windoze95/mealfinder/internal/logger"
	"github.com/windoze95/mealfinder/internal/mealdb"
	"github.com/windoze95/mealfinder/internal/service"
	"github.com/windoze95/mealfinder/internal/tui"
	"go.uber.org/zap"
)

// Entry point for the terminal client. Logging stays off unless
// MEALFINDER_LOG_FILE names a file, since zap output would draw over the UI.
func main() {
	if path := os.Getenv("MEALFINDER_LOG_FILE"); path != "" {
		logger.InitWithOutput(true, path)
	}
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Error("terminal client exited", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	msgs, err := config.LoadMessages(cfg.EnvVars.MessagesPath)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}
	cfg.Messages = msgs

	client := mealdb.NewClient(cfg.EnvVars.MealDBBaseURL, cfg.EnvVars.MealDBTimeout)
	return tui.Run(service.NewMealService(cfg, client))
}

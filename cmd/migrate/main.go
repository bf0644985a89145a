package main

import (
	"context"
	"fmt"
	"time"

	"github.com/architecture-survey/survey-api/internal/config"
	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/repository"
	"go.uber.org/zap"
)

// migrate prepares the configured store (Mongo indexes or Postgres tables) and
// reports how much data it holds, then exits.
func main() {
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logging.Logger.Sync()

	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger := logging.Logger.Named("migrate").With(zap.String("driver", config.AppConfig.StoreDriver))
	logger.Info("preparing store")

	store, closeStore, err := repository.Open(ctx, config.AppConfig)
	if err != nil {
		logger.Fatal("failed to prepare store", zap.Error(err))
	}
	defer closeStore()

	emails, err := store.CountEmails(ctx)
	if err != nil {
		logger.Fatal("failed to count used emails", zap.Error(err))
	}

	responses, err := store.ListSurveyResponses(ctx)
	if err != nil {
		logger.Fatal("failed to list survey responses", zap.Error(err))
	}

	logger.Info("store ready",
		zap.Int64("used_emails", emails),
		zap.Int("survey_responses", len(responses)),
	)
}

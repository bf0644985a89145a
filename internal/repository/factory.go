package repository

import (
	"context"
	"fmt"

	"github.com/architecture-survey/survey-api/internal/config"
	"github.com/architecture-survey/survey-api/internal/logging"
	"go.uber.org/zap"
)

// Open connects the store selected by STORE_DRIVER and prepares its schema
// (Mongo indexes or Postgres migrations). The returned close func releases the
// connection pool.
func Open(ctx context.Context, cfg *config.Config) (Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMongoDB:
		if err := config.InitMongoDB(); err != nil {
			return nil, nil, err
		}
		store := NewMongoStore(config.MongoDB, cfg.UsedEmailsCollection, cfg.SurveyResponsesCollection)
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to ensure MongoDB indexes: %w", err)
		}
		closeFn := func() {
			if err := config.MongoDB.Client().Disconnect(context.Background()); err != nil {
				logging.Logger.Warn("failed to disconnect MongoDB", zap.Error(err))
			}
		}
		return store, closeFn, nil

	case config.StoreDriverPostgres:
		if err := config.InitPostgres(); err != nil {
			return nil, nil, err
		}
		store := NewPostgresStore(config.Postgres)
		if err := store.Migrate(ctx); err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			sqlDB, err := config.Postgres.DB()
			if err != nil {
				return
			}
			if err := sqlDB.Close(); err != nil {
				logging.Logger.Warn("failed to close Postgres pool", zap.Error(err))
			}
		}
		return store, closeFn, nil

	case config.StoreDriverMemory:
		logging.Logger.Warn("using in-memory store, data is lost on restart")
		return NewMemoryStore(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

package services

import (
	"context"
	"fmt"

	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/architecture-survey/survey-api/internal/observability"
	"github.com/architecture-survey/survey-api/internal/repository"
	"go.uber.org/zap"
)

// AdminService performs researcher maintenance operations
type AdminService struct {
	logger *logging.SafeLogger
	store  repository.Store
	cache  VerdictCache
}

// NewAdminService creates a new admin service
func NewAdminService(logger *logging.SafeLogger, store repository.Store, cache VerdictCache) *AdminService {
	return &AdminService{logger: logger.Named("admin"), store: store, cache: withTracing(cache)}
}

// Reset bulk-deletes stored data. "emails" clears the registry; "all" clears the
// registry and then the responses. The two deletes are not atomic: a failure on
// responses leaves the emails already deleted.
func (s *AdminService) Reset(ctx context.Context, scope string) error {
	switch scope {
	case models.ResetScopeEmails, models.ResetScopeAll:
	default:
		observability.Resets.WithLabelValues("invalid", "rejected").Inc()
		return models.ErrInvalidResetType
	}

	if err := s.store.DeleteAllEmails(ctx); err != nil {
		observability.Resets.WithLabelValues(scope, "error").Inc()
		s.logger.Error("failed to reset used emails", zap.String("scope", scope), zap.Error(err))
		return fmt.Errorf("%w: %v", models.ErrResetEmailsFailed, err)
	}
	s.cache.Flush(ctx)

	if scope == models.ResetScopeAll {
		if err := s.store.DeleteAllSurveyResponses(ctx); err != nil {
			observability.Resets.WithLabelValues(scope, "error").Inc()
			s.logger.Error("failed to reset survey responses after emails were deleted",
				zap.String("scope", scope), zap.Error(err))
			return fmt.Errorf("%w: %v", models.ErrResetResponsesFailed, err)
		}
	}

	observability.Resets.WithLabelValues(scope, "success").Inc()
	s.logger.Warn("bulk reset completed", zap.String("scope", scope))
	return nil
}

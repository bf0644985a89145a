package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/architecture-survey/survey-api/internal/observability"
	"github.com/architecture-survey/survey-api/internal/repository"
	"github.com/architecture-survey/survey-api/internal/utils"
	"go.uber.org/zap"
)

// DefaultVerdictTTL is how long a uniqueness verdict stays cached
const DefaultVerdictTTL = 300 * time.Second

// EmailServiceConfig holds the email registry toggles
type EmailServiceConfig struct {
	// DomainSuffix, when set, restricts the registry to addresses ending with it
	DomainSuffix string
	CacheTTL     time.Duration
	// RegisterRecheck runs the matcher before inserting so sequential duplicates
	// are rejected even though salted hashes carry no usable unique constraint
	RegisterRecheck bool
}

// EmailService implements the one-time-use email registry
type EmailService struct {
	logger  *logging.SafeLogger
	store   repository.Store
	hasher  Hasher
	matcher EmailMatcher
	cache   VerdictCache
	cfg     EmailServiceConfig
}

// NewEmailService creates a new email registry service
func NewEmailService(logger *logging.SafeLogger, store repository.Store, hasher Hasher, matcher EmailMatcher, cache VerdictCache, cfg EmailServiceConfig) *EmailService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultVerdictTTL
	}
	return &EmailService{
		logger:  logger.Named("email"),
		store:   store,
		hasher:  hasher,
		matcher: matcher,
		cache:   withTracing(cache),
		cfg:     cfg,
	}
}

// verdictKey is the cache key for a normalized email
func verdictKey(normalized string) string {
	return utils.GenerateCacheKey(CheckEmailCachePrefix, map[string]string{"email": normalized})
}

// CheckEmail reports whether the email has already been used. Store failures are
// returned as errors and never reported as "not used".
func (s *EmailService) CheckEmail(ctx context.Context, email string) (*models.CheckEmailResponse, error) {
	normalized := utils.NormalizeEmail(email)
	if normalized == "" {
		return nil, models.ErrEmailRequired
	}

	if !utils.HasDomainSuffix(normalized, s.cfg.DomainSuffix) {
		observability.EmailChecks.WithLabelValues("outside_domain").Inc()
		return checkResponse(false), nil
	}

	key := verdictKey(normalized)
	if used, found := s.cache.Get(ctx, key); found {
		observability.CacheHits.WithLabelValues(CheckEmailCachePrefix, "hit").Inc()
		observability.EmailChecks.WithLabelValues(verdictLabel(used)).Inc()
		return checkResponse(used), nil
	}
	observability.CacheHits.WithLabelValues(CheckEmailCachePrefix, "miss").Inc()

	used, err := s.matcher.Match(ctx, normalized)
	if err != nil {
		s.logger.Error("email check failed",
			zap.String("email", observability.MaskEmail(normalized)),
			zap.Error(err))
		return nil, err
	}

	s.cache.Set(ctx, key, used, s.cfg.CacheTTL)
	observability.EmailChecks.WithLabelValues(verdictLabel(used)).Inc()

	s.logger.Debug("email checked",
		zap.String("email", observability.MaskEmail(normalized)),
		zap.Bool("is_used", used))
	return checkResponse(used), nil
}

// RegisterEmail stores a fresh salted hash of the email, marking it as used.
// Returns models.ErrEmailAlreadyUsed when the address was registered before.
func (s *EmailService) RegisterEmail(ctx context.Context, email string) error {
	normalized := utils.NormalizeEmail(email)
	if normalized == "" {
		return models.ErrEmailRequired
	}
	if !utils.HasDomainSuffix(normalized, s.cfg.DomainSuffix) {
		observability.EmailRegistrations.WithLabelValues("rejected_domain").Inc()
		return models.ErrEmailDomainNotAllowed
	}

	key := verdictKey(normalized)
	masked := observability.MaskEmail(normalized)

	if s.cfg.RegisterRecheck {
		used, err := s.matcher.Match(ctx, normalized)
		if err != nil {
			observability.EmailRegistrations.WithLabelValues("error").Inc()
			return err
		}
		if used {
			s.cache.Delete(ctx, key)
			observability.EmailRegistrations.WithLabelValues("conflict").Inc()
			s.logger.Info("email registration rejected: already used", zap.String("email", masked))
			return models.ErrEmailAlreadyUsed
		}
	}

	hash, err := s.hasher.Hash(normalized)
	if err != nil {
		observability.EmailRegistrations.WithLabelValues("error").Inc()
		return err
	}

	if err := s.store.InsertEmailHash(ctx, hash); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			s.cache.Delete(ctx, key)
			observability.EmailRegistrations.WithLabelValues("conflict").Inc()
			s.logger.Info("email registration rejected by store constraint", zap.String("email", masked))
			return models.ErrEmailAlreadyUsed
		}
		observability.EmailRegistrations.WithLabelValues("error").Inc()
		s.logger.Error("failed to register email", zap.String("email", masked), zap.Error(err))
		return fmt.Errorf("failed to register email: %w", err)
	}

	s.cache.Delete(ctx, key)
	observability.EmailRegistrations.WithLabelValues("success").Inc()
	s.logger.Info("email registered", zap.String("email", masked))
	return nil
}

func checkResponse(used bool) *models.CheckEmailResponse {
	if used {
		return &models.CheckEmailResponse{IsUsed: true, Message: models.MessageEmailUsed}
	}
	return &models.CheckEmailResponse{IsUsed: false, Message: models.MessageEmailAvailable}
}

func verdictLabel(used bool) string {
	if used {
		return "used"
	}
	return "available"
}

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

// SurveyService stores and lists questionnaire responses
type SurveyService struct {
	logger *logging.SafeLogger
	store  repository.Store
}

// NewSurveyService creates a new survey service
func NewSurveyService(logger *logging.SafeLogger, store repository.Store) *SurveyService {
	return &SurveyService{logger: logger.Named("survey"), store: store}
}

// Submit stores one completed questionnaire. Answers are not checked for
// completeness or range. Store errors are returned unwrapped so their message
// can be shown to the client.
func (s *SurveyService) Submit(ctx context.Context, period string, responses models.Responses) (*models.SurveyResponse, error) {
	if period == "" || responses == nil {
		return nil, models.ErrSurveyFieldsRequired
	}

	saved, err := s.store.InsertSurveyResponse(ctx, period, responses)
	if err != nil {
		observability.SurveySubmissions.WithLabelValues("error").Inc()
		s.logger.Error("failed to save survey response",
			zap.String("period", period),
			zap.Error(err))
		return nil, err
	}

	observability.SurveySubmissions.WithLabelValues("success").Inc()
	s.logger.Info("survey response saved",
		zap.String("id", saved.ID),
		zap.String("period", period),
		zap.Int("answers", len(responses)))
	return saved, nil
}

// List returns every response, newest first, with the number of used emails
func (s *SurveyService) List(ctx context.Context) (*models.SurveyResponsesList, error) {
	responses, err := s.store.ListSurveyResponses(ctx)
	if err != nil {
		s.logger.Error("failed to list survey responses", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrListResponsesFailed, err)
	}

	count, err := s.store.CountEmails(ctx)
	if err != nil {
		s.logger.Error("failed to count used emails", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrCountEmailsFailed, err)
	}

	if responses == nil {
		responses = []models.SurveyResponse{}
	}
	for i := range responses {
		responses[i].Period = responses[i].DisplayPeriod()
	}

	return &models.SurveyResponsesList{
		Responses:  responses,
		EmailCount: count,
	}, nil
}

package repository

import (
	"context"

	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/architecture-survey/survey-api/internal/observability"
)

// Store operation names, used for metrics and fault injection
const (
	OpListEmailHashes          = "list_email_hashes"
	OpInsertEmailHash          = "insert_email_hash"
	OpCountEmails              = "count_emails"
	OpDeleteAllEmails          = "delete_all_emails"
	OpInsertSurveyResponse     = "insert_survey_response"
	OpListSurveyResponses      = "list_survey_responses"
	OpDeleteAllSurveyResponses = "delete_all_survey_responses"
	OpPing                     = "ping"
)

// Store persists used email hashes and survey responses.
//
// InsertEmailHash returns models.ErrDuplicateEmail when the backing store rejects
// the hash on a uniqueness constraint. ListSurveyResponses returns newest first.
type Store interface {
	ListEmailHashes(ctx context.Context) ([]string, error)
	InsertEmailHash(ctx context.Context, hash string) error
	CountEmails(ctx context.Context) (int64, error)
	DeleteAllEmails(ctx context.Context) error

	InsertSurveyResponse(ctx context.Context, period string, responses models.Responses) (*models.SurveyResponse, error)
	ListSurveyResponses(ctx context.Context) ([]models.SurveyResponse, error)
	DeleteAllSurveyResponses(ctx context.Context) error

	Ping(ctx context.Context) error
	Name() string
}

// recordOperation counts a store operation by outcome
func recordOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	observability.DatabaseOperations.WithLabelValues(operation, status).Inc()
}

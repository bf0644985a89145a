package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/architecture-survey/survey-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurveyService_SubmitAndList(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	service := NewSurveyService(logging.Logger, store)

	saved, err := service.Submit(ctx, "3", models.Responses{"q1": "2", "q2": "4"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	list, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Responses, 1)
	assert.Equal(t, "3", list.Responses[0].Period)
	assert.Equal(t, models.Responses{"q1": "2", "q2": "4"}, list.Responses[0].Responses)
	assert.Zero(t, list.EmailCount)
}

func TestSurveyService_SubmitValidation(t *testing.T) {
	tests := []struct {
		name      string
		period    string
		responses models.Responses
		wantErr   error
	}{
		{name: "missing period", period: "", responses: models.Responses{"q1": "1"}, wantErr: models.ErrSurveyFieldsRequired},
		{name: "missing responses", period: "3", responses: nil, wantErr: models.ErrSurveyFieldsRequired},
		{name: "empty responses accepted", period: "3", responses: models.Responses{}, wantErr: nil},
		{name: "out of range values accepted", period: "3", responses: models.Responses{"q1": "9"}, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSurveyService(logging.Logger, repository.NewMemoryStore())
			_, err := service.Submit(context.Background(), tt.period, tt.responses)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestSurveyService_SubmitStoreErrorIsVerbatim(t *testing.T) {
	store := repository.NewMemoryStore()
	storeErr := errors.New(`null value in column "period" violates not-null constraint`)
	store.FailOn(repository.OpInsertSurveyResponse, storeErr)
	service := NewSurveyService(logging.Logger, store)

	_, err := service.Submit(context.Background(), "3", models.Responses{"q1": "1"})
	assert.Equal(t, storeErr, err)
	assert.Equal(t, 1, store.Calls(repository.OpInsertSurveyResponse), "no retry")
}

func TestSurveyService_ListOrderAndCount(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	store.SetClock(clock.Now)
	service := NewSurveyService(logging.Logger, store)

	_, err := service.Submit(ctx, "1", models.Responses{"q1": "1"})
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = service.Submit(ctx, "2", models.Responses{"q1": "2"})
	require.NoError(t, err)
	require.NoError(t, store.InsertEmailHash(ctx, "h1"))
	require.NoError(t, store.InsertEmailHash(ctx, "h2"))

	list, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Responses, 2)
	assert.Equal(t, "2", list.Responses[0].Period)
	assert.Equal(t, int64(2), list.EmailCount)
}

func TestSurveyService_ListEmptyIsNotNil(t *testing.T) {
	service := NewSurveyService(logging.Logger, repository.NewMemoryStore())

	list, err := service.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list.Responses)
	assert.Empty(t, list.Responses)
}

func TestSurveyService_ListErrors(t *testing.T) {
	tests := []struct {
		name    string
		failOp  string
		wantErr error
	}{
		{name: "responses query fails", failOp: repository.OpListSurveyResponses, wantErr: models.ErrListResponsesFailed},
		{name: "email count fails", failOp: repository.OpCountEmails, wantErr: models.ErrCountEmailsFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repository.NewMemoryStore()
			store.FailOn(tt.failOp, errors.New("timeout"))
			service := NewSurveyService(logging.Logger, store)

			_, err := service.List(context.Background())
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

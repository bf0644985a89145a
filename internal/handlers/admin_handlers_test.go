package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/architecture-survey/survey-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedData(t *testing.T, s *testServer) {
	t.Helper()
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/register-email", models.EmailRequest{Email: "aluno@uni.edu.br"}, "").Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/submit-survey", models.SubmitSurveyRequest{
		Period:    "4º período",
		Responses: models.Responses{"q1": "2"},
	}, "").Code)
}

func TestReset_RequiresResearcher(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	seedData(t, s)

	w := s.do(t, http.MethodPost, "/admin/reset", models.ResetRequest{ResetType: models.ResetScopeEmails}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	count, err := s.store.CountEmails(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReset_Emails(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	seedData(t, s)
	token := s.researcherToken(t)

	w := s.do(t, http.MethodPost, "/admin/reset", models.ResetRequest{ResetType: models.ResetScopeEmails}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ResultResponse
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, models.MessageEmailsReset, resp.Message)

	count, err := s.store.CountEmails(t.Context())
	require.NoError(t, err)
	assert.Zero(t, count)

	responses, err := s.store.ListSurveyResponses(t.Context())
	require.NoError(t, err)
	assert.Len(t, responses, 1)
}

func TestReset_EmailCanBeReusedAfterReset(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	seedData(t, s)
	token := s.researcherToken(t)

	var used models.CheckEmailResponse
	decode(t, s.do(t, http.MethodPost, "/check-email", models.EmailRequest{Email: "aluno@uni.edu.br"}, ""), &used)
	require.True(t, used.IsUsed)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/reset-data", models.ResetRequest{ResetType: models.ResetScopeEmails}, token).Code)

	var after models.CheckEmailResponse
	decode(t, s.do(t, http.MethodPost, "/check-email", models.EmailRequest{Email: "aluno@uni.edu.br"}, ""), &after)
	assert.False(t, after.IsUsed)
}

func TestReset_All(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	seedData(t, s)
	token := s.researcherToken(t)

	w := s.do(t, http.MethodPost, "/api/admin/reset", models.ResetRequest{ResetType: models.ResetScopeAll}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ResultResponse
	decode(t, w, &resp)
	assert.Equal(t, models.MessageAllReset, resp.Message)

	responses, err := s.store.ListSurveyResponses(t.Context())
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestReset_InvalidType(t *testing.T) {
	for _, resetType := range []string{"", "responses", "EMAILS"} {
		t.Run(resetType, func(t *testing.T) {
			s := newTestServer(t, serverOptions{withoutAuth: true})
			seedData(t, s)

			w := s.do(t, http.MethodPost, "/admin/reset", models.ResetRequest{ResetType: resetType}, "")
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp models.ResultResponse
			decode(t, w, &resp)
			assert.False(t, resp.Success)
			assert.Equal(t, models.MessageInvalidResetType, resp.Message)
			assert.Zero(t, s.store.Calls(repository.OpDeleteAllEmails))
		})
	}
}

func TestReset_StoreFailures(t *testing.T) {
	tests := []struct {
		name        string
		scope       string
		failOp      string
		wantMessage string
	}{
		{"emails delete fails", models.ResetScopeEmails, repository.OpDeleteAllEmails, models.MessageEmailsResetError},
		{"responses delete fails", models.ResetScopeAll, repository.OpDeleteAllSurveyResponses, models.MessageResponsesResetErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, serverOptions{withoutAuth: true})
			s.store.FailOn(tt.failOp, errors.New("permission denied"))

			w := s.do(t, http.MethodPost, "/admin/reset", models.ResetRequest{ResetType: tt.scope}, "")
			require.Equal(t, http.StatusInternalServerError, w.Code)

			var resp models.ResultResponse
			decode(t, w, &resp)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	w := s.do(t, http.MethodPost, "/auth/researcher", models.ResearcherLoginRequest{Password: testResearcherPassword}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ResearcherTokenResponse
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	assert.False(t, resp.ExpiresAt.IsZero())

	list := s.do(t, http.MethodGet, "/survey/responses", nil, resp.Token)
	assert.Equal(t, http.StatusOK, list.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	w := s.do(t, http.MethodPost, "/api/auth/researcher", models.ResearcherLoginRequest{Password: "chute"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, models.MessageInvalidCredentials, resp.Error)
}

func TestLogin_MissingPassword(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	w := s.do(t, http.MethodPost, "/auth/researcher", `{}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

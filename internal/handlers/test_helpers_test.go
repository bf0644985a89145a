package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/middleware"
	"github.com/architecture-survey/survey-api/internal/repository"
	"github.com/architecture-survey/survey-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testResearcherPassword = "senha-do-pesquisador"
	testJWTSecret          = "test-secret-with-enough-entropy"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer wires the real services over an in-memory store
type testServer struct {
	router *gin.Engine
	store  *repository.MemoryStore
	cache  *services.MemoryVerdictCache
	auth   *services.AuthService
}

type serverOptions struct {
	domainSuffix string
	withoutAuth  bool
	limiter      middleware.ClientLimiter
}

// steppingClock returns a clock that advances one second per call
func steppingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	logger := logging.Logger
	store := repository.NewMemoryStore()
	store.SetClock(steppingClock())

	cache := services.NewMemoryVerdictCache(logger, 0)
	t.Cleanup(cache.Stop)

	hasher := services.NewBcryptHasher(bcrypt.MinCost)
	matcher := services.NewHashScanMatcher(store, hasher)
	emailService := services.NewEmailService(logger, store, hasher, matcher, cache, services.EmailServiceConfig{
		DomainSuffix:    opts.domainSuffix,
		CacheTTL:        time.Minute,
		RegisterRecheck: true,
	})
	authService := services.NewAuthService(testResearcherPassword, testJWTSecret, time.Hour)

	set := Set{
		Email:  NewEmailHandlers(logger, emailService),
		Survey: NewSurveyHandlers(logger, services.NewSurveyService(logger, store)),
		Admin:  NewAdminHandlers(logger, services.NewAdminService(logger, store, cache)),
		Auth:   NewAuthHandlers(logger, authService),
		Health: NewHealthHandlers(logger, map[string]Pinger{"store": store}),
	}

	var guards RouteGuards
	if !opts.withoutAuth {
		guards.Researcher = append(guards.Researcher, middleware.RequireResearcher(authService))
	}
	if opts.limiter != nil {
		guards.Limiter = opts.limiter
	}

	router := gin.New()
	RegisterRoutes(router, set, guards)
	RegisterRoutes(router.Group("/api"), set, guards)

	return &testServer{router: router, store: store, cache: cache, auth: authService}
}

// do sends a JSON request; body may be a string (sent verbatim) or any value to marshal
func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// researcherToken logs in through the auth service
func (s *testServer) researcherToken(t *testing.T) string {
	t.Helper()
	resp, err := s.auth.Login(testResearcherPassword)
	require.NoError(t, err)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/google/uuid"
)

// MemoryStore is a process-local Store. It backs STORE_DRIVER=memory and the
// service and handler tests, which read its call counters and inject failures.
type MemoryStore struct {
	mu        sync.RWMutex
	emails    []models.UsedEmail
	responses []models.SurveyResponse
	calls     map[string]int
	failures  map[string]error
	now       func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		calls:    make(map[string]int),
		failures: make(map[string]error),
		now:      time.Now,
	}
}

// Name identifies the store in logs and health checks
func (s *MemoryStore) Name() string {
	return "memory"
}

// SetClock overrides the clock used for created_at
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailOn makes every subsequent call of operation return err. A nil err clears it.
func (s *MemoryStore) FailOn(operation string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, operation)
		return
	}
	s.failures[operation] = err
}

// Calls returns how many times operation was invoked
func (s *MemoryStore) Calls(operation string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[operation]
}

// enter records a call and returns the injected failure, if any. Caller holds mu.
func (s *MemoryStore) enter(operation string) error {
	s.calls[operation]++
	err := s.failures[operation]
	recordOperation(operation, err)
	return err
}

func (s *MemoryStore) ListEmailHashes(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpListEmailHashes); err != nil {
		return nil, err
	}

	hashes := make([]string, 0, len(s.emails))
	for _, e := range s.emails {
		hashes = append(hashes, e.Email)
	}
	return hashes, nil
}

func (s *MemoryStore) InsertEmailHash(ctx context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpInsertEmailHash); err != nil {
		return err
	}

	for _, e := range s.emails {
		if e.Email == hash {
			return models.ErrDuplicateEmail
		}
	}
	s.emails = append(s.emails, models.UsedEmail{
		ID:        uuid.New().String(),
		Email:     hash,
		CreatedAt: s.now().UTC(),
	})
	return nil
}

func (s *MemoryStore) CountEmails(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpCountEmails); err != nil {
		return 0, err
	}
	return int64(len(s.emails)), nil
}

func (s *MemoryStore) DeleteAllEmails(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpDeleteAllEmails); err != nil {
		return err
	}
	s.emails = nil
	return nil
}

func (s *MemoryStore) InsertSurveyResponse(ctx context.Context, period string, responses models.Responses) (*models.SurveyResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpInsertSurveyResponse); err != nil {
		return nil, err
	}

	copied := make(models.Responses, len(responses))
	for k, v := range responses {
		copied[k] = v
	}
	resp := models.SurveyResponse{
		ID:        uuid.New().String(),
		Period:    period,
		Responses: copied,
		CreatedAt: s.now().UTC(),
	}
	s.responses = append(s.responses, resp)
	return &resp, nil
}

func (s *MemoryStore) ListSurveyResponses(ctx context.Context) ([]models.SurveyResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpListSurveyResponses); err != nil {
		return nil, err
	}

	out := make([]models.SurveyResponse, len(s.responses))
	copy(out, s.responses)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) DeleteAllSurveyResponses(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpDeleteAllSurveyResponses); err != nil {
		return err
	}
	s.responses = nil
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enter(OpPing)
}

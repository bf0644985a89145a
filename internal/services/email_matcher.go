package services

import (
	"context"
	"fmt"
	"time"

	"github.com/architecture-survey/survey-api/internal/observability"
	"github.com/architecture-survey/survey-api/internal/repository"
	"github.com/architecture-survey/survey-api/internal/utils"
)

// EmailMatcher decides whether a normalized email is already registered
type EmailMatcher interface {
	Match(ctx context.Context, normalizedEmail string) (bool, error)
}

// HashScanMatcher reads every stored hash in one bulk query and compares each
// with the candidate until the first match. Cost grows linearly with the number
// of registered emails since salted hashes cannot be looked up by value.
type HashScanMatcher struct {
	store  repository.Store
	hasher Hasher
}

// NewHashScanMatcher creates a matcher over the store's email hashes
func NewHashScanMatcher(store repository.Store, hasher Hasher) *HashScanMatcher {
	return &HashScanMatcher{store: store, hasher: hasher}
}

func (m *HashScanMatcher) Match(ctx context.Context, normalizedEmail string) (bool, error) {
	ctx, span, cleanup := utils.TraceOperation(ctx, "email.hash_scan", nil)
	defer cleanup()

	hashes, err := m.store.ListEmailHashes(ctx)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"step": "list_hashes"})
		return false, fmt.Errorf("failed to read used emails: %w", err)
	}
	utils.AddSpanAttribute(span, "hash.count", len(hashes))

	start := time.Now()
	defer func() { observability.HashScanDuration.Observe(time.Since(start).Seconds()) }()

	for i, hash := range hashes {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if m.hasher.Compare(hash, normalizedEmail) {
			utils.AddSpanAttribute(span, "hash.compared", i+1)
			return true, nil
		}
	}
	utils.AddSpanAttribute(span, "hash.compared", len(hashes))
	return false, nil
}

package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

// ProgressBackend is the slice of the KeyCards API used for progress reads.
type ProgressBackend interface {
	LanguageProgress(ctx context.Context, token, language string) (*entities.LanguageProgress, error)
	ProgressSummary(ctx context.Context, token string) (*entities.ProgressSummary, error)
}

// ProgressService caches aggregate progress per user. Reads fetch on
// miss; Refresh refetches after a submission so the next progress screen
// reflects it.
type ProgressService struct {
	api    ProgressBackend
	tokens TokenSource
	logger *zap.Logger

	mu        sync.RWMutex
	summaries map[int64]*entities.ProgressSummary
	languages map[int64]map[string]*entities.LanguageProgress
}

// NewProgressService creates a new ProgressService with empty caches.
func NewProgressService(api ProgressBackend, tokens TokenSource, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		api:       api,
		tokens:    tokens,
		logger:    logger,
		summaries: make(map[int64]*entities.ProgressSummary),
		languages: make(map[int64]map[string]*entities.LanguageProgress),
	}
}

// Summary returns the user's aggregate progress, cached after first fetch.
func (s *ProgressService) Summary(ctx context.Context, userID int64) (*entities.ProgressSummary, error) {
	s.mu.RLock()
	cached, ok := s.summaries[userID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	return s.fetchSummary(ctx, userID)
}

// Language returns the user's progress for one language, cached after
// first fetch.
func (s *ProgressService) Language(ctx context.Context, userID int64, language string) (*entities.LanguageProgress, error) {
	s.mu.RLock()
	cached, ok := s.languages[userID][language]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	return s.fetchLanguage(ctx, userID, language)
}

// Refresh refetches the summary and the given language after a
// submission. Implements the session controller's refresher contract.
func (s *ProgressService) Refresh(ctx context.Context, userID int64, language string) error {
	if _, err := s.fetchSummary(ctx, userID); err != nil {
		return fmt.Errorf("refresh summary: %w", err)
	}
	if _, err := s.fetchLanguage(ctx, userID, language); err != nil {
		return fmt.Errorf("refresh language progress: %w", err)
	}

	s.logger.Debug("progress refreshed",
		zap.Int64("user_id", userID),
		zap.String("language", language),
	)
	return nil
}

// Invalidate drops a user's cached progress, e.g. on logout.
func (s *ProgressService) Invalidate(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.summaries, userID)
	delete(s.languages, userID)
}

func (s *ProgressService) fetchSummary(ctx context.Context, userID int64) (*entities.ProgressSummary, error) {
	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, err := s.api.ProgressSummary(ctx, token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.summaries[userID] = summary
	s.mu.Unlock()

	return summary, nil
}

func (s *ProgressService) fetchLanguage(ctx context.Context, userID int64, language string) (*entities.LanguageProgress, error) {
	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress, err := s.api.LanguageProgress(ctx, token, language)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.languages[userID] == nil {
		s.languages[userID] = make(map[string]*entities.LanguageProgress)
	}
	s.languages[userID][language] = progress
	s.mu.Unlock()

	return progress, nil
}

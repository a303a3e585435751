// Package session owns the per-user study session lifecycle: at most one
// active practice or quiz session per user, with a countdown timer for
// quizzes. Controllers talk to the KeyCards API through small consumer
// interfaces so tests can swap in fakes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/keycardsapp/keycards-bot/internal/apiclient"
	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
	"github.com/keycardsapp/keycards-bot/internal/stats"
)

// ErrNoActiveSession is returned when an operation needs a session of the
// given kind and none is active.
var ErrNoActiveSession = errors.New("no active session")

// Backend is the slice of the KeyCards API the controller needs.
type Backend interface {
	PracticeFlashcards(ctx context.Context, token, language string, limit int) ([]entities.Flashcard, error)
	SubmitPracticeResults(ctx context.Context, token, language string, results []entities.PracticeResult) error
	QuizQuestions(ctx context.Context, token, language string, limit int) (*entities.QuizStart, error)
	SubmitQuizResults(ctx context.Context, token, language, sessionID string, results []entities.PracticeResult) error
}

// TokenSource resolves the stored backend credential for a Telegram user.
type TokenSource interface {
	Token(ctx context.Context, userID int64) (string, error)
}

// ProgressRefresher refetches cached progress after a successful submission.
type ProgressRefresher interface {
	Refresh(ctx context.Context, userID int64, language string) error
}

// Controller owns the active study session of one user. Starting a new
// session of either kind replaces whatever was active. Operations are
// individually mutex-guarded; serializing overlapping submissions of the
// same session is the delivery layer's job.
type Controller struct {
	mu       sync.Mutex
	userID   int64
	backend  Backend
	tokens   TokenSource
	progress ProgressRefresher
	logger   *zap.Logger

	practice      *entities.PracticeSession
	practiceStats *stats.PracticeStats

	quiz       *entities.QuizSession
	quizStats  *stats.QuizStats
	timer      *countdown
	submitting bool
}

// NewController creates a controller for one Telegram user.
func NewController(
	userID int64,
	backend Backend,
	tokens TokenSource,
	progress ProgressRefresher,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		userID:   userID,
		backend:  backend,
		tokens:   tokens,
		progress: progress,
		logger:   logger,
	}
}

// StartPractice fetches a card set and replaces any active session with a
// fresh practice session: first card, no answers, started now.
func (c *Controller) StartPractice(ctx context.Context, language string, limit int) (*entities.PracticeSession, error) {
	token, err := c.tokens.Token(ctx, c.userID)
	if err != nil {
		return nil, fmt.Errorf("start practice: %w", err)
	}

	cards, err := c.backend.PracticeFlashcards(ctx, token, language, limit)
	if err != nil {
		return nil, fmt.Errorf("start practice: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearQuizLocked()
	c.clearPracticeLocked()
	c.practice = entities.NewPracticeSession(language, cards)

	c.logger.Info("practice session started",
		zap.Int64("user_id", c.userID),
		zap.String("language", language),
		zap.Int("cards", len(cards)),
		zap.String("session_id", c.practice.ID),
	)

	return c.practice, nil
}

// ShufflePractice reorders the card set. Only allowed before the first
// answer or navigation; afterwards it is a no-op.
func (c *Controller) ShufflePractice() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.practice == nil || c.practice.Started() {
		return
	}
	c.practice.Shuffle()
}

// AnswerFlashcard records the outcome for a flashcard without changing
// the current position. No-op without an active practice session.
func (c *Controller) AnswerFlashcard(flashcardID string, correct bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.practice == nil {
		return
	}
	c.practice.Answer(flashcardID, correct)
}

// NextFlashcard advances the practice position, clamped at the last card.
func (c *Controller) NextFlashcard() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.practice == nil {
		return
	}
	c.practice.Next()
}

// PreviousFlashcard steps the practice position back, clamped at the first card.
func (c *Controller) PreviousFlashcard() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.practice == nil {
		return
	}
	c.practice.Previous()
}

// SubmitPractice computes the session stats as of now and submits the
// recorded answers. The stats are computed and retained before the
// network call, so they are valid even when submission fails; on failure
// the session is kept so the user can retry. On success the session gets
// its end time and cached progress is refreshed in the background.
func (c *Controller) SubmitPractice(ctx context.Context) (stats.PracticeStats, error) {
	c.mu.Lock()
	if c.practice == nil {
		c.mu.Unlock()
		return stats.PracticeStats{}, ErrNoActiveSession
	}

	s := c.practice
	now := time.Now()
	computed := stats.CalculatePracticeStats(s.Results, s.StartTime, &now)
	c.practiceStats = &computed
	results := s.ResultList()
	language := s.Language
	c.mu.Unlock()

	token, err := c.tokens.Token(ctx, c.userID)
	if err != nil {
		return computed, fmt.Errorf("submit practice: %w", err)
	}

	if err := c.backend.SubmitPracticeResults(ctx, token, language, results); err != nil {
		return computed, fmt.Errorf("submit practice: %w", err)
	}

	c.mu.Lock()
	if c.practice == s {
		s.EndTime = &now
	}
	c.mu.Unlock()

	c.logger.Info("practice session submitted",
		zap.Int64("user_id", c.userID),
		zap.String("session_id", s.ID),
		zap.Int("answered", computed.Total),
	)

	c.refreshProgress(language)

	return computed, nil
}

// EndPractice discards the practice session unconditionally.
func (c *Controller) EndPractice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearPracticeLocked()
}

// StartQuiz opens a timed quiz session and replaces any active session.
// The countdown is seeded from the server-issued remaining seconds, never
// from local clocks. onExpire is invoked at most once if the timer runs
// out while the session is still live and unsubmitted.
func (c *Controller) StartQuiz(ctx context.Context, language string, limit int, onExpire func()) (*entities.QuizSession, error) {
	token, err := c.tokens.Token(ctx, c.userID)
	if err != nil {
		return nil, fmt.Errorf("start quiz: %w", err)
	}

	start, err := c.backend.QuizQuestions(ctx, token, language, limit)
	if err != nil {
		return nil, fmt.Errorf("start quiz: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearPracticeLocked()
	c.clearQuizLocked()

	c.quiz = entities.NewQuizSession(language, start)
	c.timer = newCountdown(start.TimeRemainingSeconds, func() {
		c.handleExpiry(onExpire)
	})
	c.timer.start()

	c.logger.Info("quiz session started",
		zap.Int64("user_id", c.userID),
		zap.String("language", language),
		zap.String("session_id", start.SessionID),
		zap.Int("questions", len(start.Questions)),
		zap.Int("time_remaining_seconds", start.TimeRemainingSeconds),
	)

	return c.quiz, nil
}

// handleExpiry runs on the countdown goroutine when the timer reaches
// zero. Reaching zero never submits by itself; the guard here decides
// whether the expiry callback may trigger a submission.
func (c *Controller) handleExpiry(onExpire func()) {
	c.mu.Lock()
	due := c.quiz != nil && !c.submitting && c.quizStats == nil
	c.mu.Unlock()

	if due && onExpire != nil {
		onExpire()
	}
}

// AnswerQuestion records the selected option for a question without
// changing the current position or revealing correctness. No-op without
// an active quiz session.
func (c *Controller) AnswerQuestion(flashcardID, optionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.quiz == nil {
		return
	}
	c.quiz.Answer(flashcardID, optionID)
}

// NextQuestion advances the quiz position, clamped at the last question.
func (c *Controller) NextQuestion() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.quiz == nil {
		return
	}
	c.quiz.Next()
}

// PreviousQuestion steps the quiz position back, clamped at the first question.
func (c *Controller) PreviousQuestion() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.quiz == nil {
		return
	}
	c.quiz.Previous()
}

// SubmitQuiz computes the quiz stats as of now and submits every question
// scored: unanswered questions go out as incorrect. When the backend
// refuses the session as expired, the retained stats are marked expired
// before the error is surfaced. Any failure keeps the session so the
// user can retry; success refreshes cached progress in the background.
func (c *Controller) SubmitQuiz(ctx context.Context) (stats.QuizStats, error) {
	c.mu.Lock()
	if c.quiz == nil {
		c.mu.Unlock()
		return stats.QuizStats{}, ErrNoActiveSession
	}

	s := c.quiz
	c.submitting = true
	computed := stats.CalculateQuizStats(s, time.Now())
	c.quizStats = &computed
	results := s.Results()
	language := s.Language
	sessionID := s.SessionID
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	token, err := c.tokens.Token(ctx, c.userID)
	if err != nil {
		return computed, fmt.Errorf("submit quiz: %w", err)
	}

	if err := c.backend.SubmitQuizResults(ctx, token, language, sessionID, results); err != nil {
		if apiclient.IsSessionExpired(err) {
			c.mu.Lock()
			computed.Expired = true
			c.quizStats = &computed
			c.mu.Unlock()
		}
		return computed, fmt.Errorf("submit quiz: %w", err)
	}

	c.logger.Info("quiz session submitted",
		zap.Int64("user_id", c.userID),
		zap.String("session_id", sessionID),
		zap.Int("correct", computed.Correct),
		zap.Int("total", computed.Total),
	)

	c.refreshProgress(language)

	return computed, nil
}

// EndQuiz discards the quiz session unconditionally and stops the countdown.
func (c *Controller) EndQuiz() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearQuizLocked()
}

// TimeRemaining returns the seconds left on the quiz countdown, or zero
// without an active quiz.
func (c *Controller) TimeRemaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer == nil {
		return 0
	}
	return c.timer.timeRemaining()
}

// Practice returns the active practice session, or nil.
func (c *Controller) Practice() *entities.PracticeSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.practice
}

// Quiz returns the active quiz session, or nil.
func (c *Controller) Quiz() *entities.QuizSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quiz
}

// PracticeStats returns the stats of the last practice submission attempt, or nil.
func (c *Controller) PracticeStats() *stats.PracticeStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.practiceStats
}

// QuizStats returns the stats of the last quiz submission attempt, or nil.
func (c *Controller) QuizStats() *stats.QuizStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quizStats
}

func (c *Controller) clearPracticeLocked() {
	c.practice = nil
	c.practiceStats = nil
}

func (c *Controller) clearQuizLocked() {
	if c.timer != nil {
		c.timer.halt()
		c.timer = nil
	}
	c.quiz = nil
	c.quizStats = nil
	c.submitting = false
}

func (c *Controller) refreshProgress(language string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := c.progress.Refresh(ctx, c.userID, language); err != nil {
			c.logger.Warn("progress refresh failed",
				zap.Int64("user_id", c.userID),
				zap.String("language", language),
				zap.Error(err),
			)
		}
	}()
}

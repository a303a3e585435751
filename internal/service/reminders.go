package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

// ReminderNotifier delivers a study reminder to a chat.
type ReminderNotifier interface {
	SendReminder(target entities.ReminderTarget, summary *entities.ProgressSummary) error
}

// ProgressSource supplies the numbers shown in a reminder message.
type ProgressSource interface {
	Summary(ctx context.Context, userID int64) (*entities.ProgressSummary, error)
}

// ReminderService sends a daily study reminder to every user whose
// configured UTC hour matches, driven by an hourly cron dispatcher.
type ReminderService struct {
	settingsRepo SettingsRepository
	progress     ProgressSource
	notifier     ReminderNotifier
	logger       *zap.Logger
}

// NewReminderService creates a new reminder service.
func NewReminderService(
	settingsRepo SettingsRepository,
	progress ProgressSource,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		settingsRepo: settingsRepo,
		progress:     progress,
		logger:       logger,
	}
}

// SetNotifier sets the notifier (called after the handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start begins the reminder scheduling loop and blocks until ctx is done.
func (s *ReminderService) Start(ctx context.Context) {
	s.logger.Info("reminder service started")

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc("0 * * * *", func() {
		s.logger.Info("cron triggered: processing hourly reminders")
		if err := s.sendDueReminders(ctx); err != nil {
			s.logger.Error("failed to send reminders", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()
	s.logger.Info("cron scheduler started")

	<-ctx.Done()

	c.Stop()
	s.logger.Info("reminder service stopped")
}

// sendDueReminders notifies every user whose reminder hour matches the
// current UTC hour.
func (s *ReminderService) sendDueReminders(ctx context.Context) error {
	if s.notifier == nil {
		return fmt.Errorf("notifier not initialized")
	}

	hour := time.Now().UTC().Hour()

	targets, err := s.settingsRepo.ListDueReminderUsers(ctx, hour)
	if err != nil {
		return fmt.Errorf("list due reminder users: %w", err)
	}

	if len(targets) == 0 {
		return nil
	}

	sent := s.processTargets(ctx, targets)

	s.logger.Info("reminders processed",
		zap.Int("hour_utc", hour),
		zap.Int("due", len(targets)),
		zap.Int("sent", sent),
	)

	return nil
}

// processTargets sends reminders concurrently with rate limiting.
func (s *ReminderService) processTargets(ctx context.Context, targets []entities.ReminderTarget) int {
	const maxConcurrent = 10
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, target := range targets {
		target := target
		wg.Add(1)
		sem <- struct{}{} // Acquire

		go func() {
			defer wg.Done()
			defer func() { <-sem }() // Release

			if err := s.sendReminder(ctx, target); err != nil {
				s.logger.Error("failed to send reminder",
					zap.Int64("user_id", target.UserID),
					zap.Error(err))
				return
			}

			mu.Lock()
			sent++
			mu.Unlock()
		}()
	}

	wg.Wait()
	return sent
}

func (s *ReminderService) sendReminder(ctx context.Context, target entities.ReminderTarget) error {
	// A missing or failing summary is fine; the reminder just goes out
	// without progress numbers.
	summary, err := s.progress.Summary(ctx, target.UserID)
	if err != nil {
		s.logger.Debug("reminder without progress summary",
			zap.Int64("user_id", target.UserID),
			zap.Error(err))
		summary = nil
	}

	if err := s.notifier.SendReminder(target, summary); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

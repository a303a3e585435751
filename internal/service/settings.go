package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
	"github.com/keycardsapp/keycards-bot/internal/infra/postgres/repository"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInvalidLength       = errors.New("invalid session length")
	ErrInvalidHour         = errors.New("invalid hour")
)

// SettingsService manages per-user study preferences.
type SettingsService struct {
	settingsRepo SettingsRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetOrCreate retrieves settings for a user, creating defaults on first use.
func (s *SettingsService) GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrSettingsNotFound) {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	if err := s.settingsRepo.EnsureDefaults(ctx, userID); err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}

	settings, err = s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// SetDefaultLanguage updates the language used when a command names none.
func (s *SettingsService) SetDefaultLanguage(ctx context.Context, userID int64, slug string) error {
	if !entities.IsValidLanguage(slug) {
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, slug)
	}

	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	if err := s.settingsRepo.UpdateDefaultLanguage(ctx, userID, slug); err != nil {
		return fmt.Errorf("set default language: %w", err)
	}
	return nil
}

// SetPracticeLength updates the number of cards per practice session.
func (s *SettingsService) SetPracticeLength(ctx context.Context, userID int64, length int) error {
	if !entities.IsValidSessionLength(length) {
		return fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	if err := s.settingsRepo.UpdatePracticeLength(ctx, userID, length); err != nil {
		return fmt.Errorf("set practice length: %w", err)
	}
	return nil
}

// SetQuizLength updates the number of questions per quiz session.
func (s *SettingsService) SetQuizLength(ctx context.Context, userID int64, length int) error {
	if !entities.IsValidSessionLength(length) {
		return fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	if err := s.settingsRepo.UpdateQuizLength(ctx, userID, length); err != nil {
		return fmt.Errorf("set quiz length: %w", err)
	}
	return nil
}

// ToggleReminder flips the daily study reminder and returns the new state.
func (s *SettingsService) ToggleReminder(ctx context.Context, userID int64) (bool, error) {
	settings, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return false, err
	}

	enabled := !settings.ReminderEnabled
	if err := s.settingsRepo.UpdateReminderEnabled(ctx, userID, enabled); err != nil {
		return false, fmt.Errorf("toggle reminder: %w", err)
	}
	return enabled, nil
}

// SetReminderHour updates the UTC hour at which the daily reminder is sent.
func (s *SettingsService) SetReminderHour(ctx context.Context, userID int64, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}

	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	if err := s.settingsRepo.UpdateReminderHour(ctx, userID, hour); err != nil {
		return fmt.Errorf("set reminder hour: %w", err)
	}
	return nil
}

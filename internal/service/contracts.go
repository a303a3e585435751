package service

import (
	"context"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

// AccountRepository persists the KeyCards credential per Telegram user.
type AccountRepository interface {
	Upsert(ctx context.Context, account *entities.Account) error
	GetByUserID(ctx context.Context, userID int64) (*entities.Account, error)
	Delete(ctx context.Context, userID int64) error
}

// SettingsRepository persists per-user study preferences.
type SettingsRepository interface {
	EnsureDefaults(ctx context.Context, userID int64) error
	GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error)
	UpdateDefaultLanguage(ctx context.Context, userID int64, language string) error
	UpdatePracticeLength(ctx context.Context, userID int64, length int) error
	UpdateQuizLength(ctx context.Context, userID int64, length int) error
	UpdateReminderEnabled(ctx context.Context, userID int64, enabled bool) error
	UpdateReminderHour(ctx context.Context, userID int64, hour int) error
	ListDueReminderUsers(ctx context.Context, hour int) ([]entities.ReminderTarget, error)
}

// TokenSource resolves the stored backend credential for a Telegram user.
type TokenSource interface {
	Token(ctx context.Context, userID int64) (string, error)
}

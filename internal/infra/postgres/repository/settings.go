package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
	"github.com/keycardsapp/keycards-bot/internal/infra/postgres"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository provides access to user study preferences in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

// NewSettingsRepository creates a new SettingsRepository with the provided database handle.
func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// EnsureDefaults creates default settings for a user if none exist yet.
func (r *SettingsRepository) EnsureDefaults(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO user_settings (
			user_id, default_language, practice_length, quiz_length,
			reminder_enabled, reminder_hour_utc, created_at, updated_at
		) VALUES ($1, $2, $3, $4, FALSE, $5, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		userID,
		entities.DefaultLanguageSlug,
		entities.DefaultSessionLength,
		entities.DefaultSessionLength,
		entities.DefaultReminderHourUTC,
	)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID retrieves settings for a user.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	query := `
		SELECT user_id, default_language, practice_length, quiz_length,
		       reminder_enabled, reminder_hour_utc, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings entities.UserSettings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.DefaultLanguage,
		&settings.PracticeLength,
		&settings.QuizLength,
		&settings.ReminderEnabled,
		&settings.ReminderHourUTC,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// UpdateDefaultLanguage updates the language used when a command names none.
func (r *SettingsRepository) UpdateDefaultLanguage(ctx context.Context, userID int64, language string) error {
	query := `
		UPDATE user_settings
		SET default_language = $1, updated_at = $2
		WHERE user_id = $3
	`

	result, err := r.db.Exec(ctx, query, language, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("update default language: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

// UpdatePracticeLength updates the number of cards per practice session.
func (r *SettingsRepository) UpdatePracticeLength(ctx context.Context, userID int64, length int) error {
	query := `
		UPDATE user_settings
		SET practice_length = $1, updated_at = $2
		WHERE user_id = $3
	`

	result, err := r.db.Exec(ctx, query, length, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("update practice length: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

// UpdateQuizLength updates the number of questions per quiz session.
func (r *SettingsRepository) UpdateQuizLength(ctx context.Context, userID int64, length int) error {
	query := `
		UPDATE user_settings
		SET quiz_length = $1, updated_at = $2
		WHERE user_id = $3
	`

	result, err := r.db.Exec(ctx, query, length, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("update quiz length: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

// UpdateReminderEnabled toggles the daily study reminder.
func (r *SettingsRepository) UpdateReminderEnabled(ctx context.Context, userID int64, enabled bool) error {
	query := `
		UPDATE user_settings
		SET reminder_enabled = $1, updated_at = $2
		WHERE user_id = $3
	`

	result, err := r.db.Exec(ctx, query, enabled, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("update reminder enabled: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

// UpdateReminderHour updates the UTC hour at which reminders are sent.
func (r *SettingsRepository) UpdateReminderHour(ctx context.Context, userID int64, hour int) error {
	query := `
		UPDATE user_settings
		SET reminder_hour_utc = $1, updated_at = $2
		WHERE user_id = $3
	`

	result, err := r.db.Exec(ctx, query, hour, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("update reminder hour: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

// ListDueReminderUsers returns the users with reminders enabled for the
// given UTC hour, joined with the chat their reminder should go to.
func (r *SettingsRepository) ListDueReminderUsers(ctx context.Context, hour int) ([]entities.ReminderTarget, error) {
	query := `
		SELECT s.user_id, a.chat_id, s.default_language
		FROM user_settings s
		JOIN accounts a ON a.user_id = s.user_id
		WHERE s.reminder_enabled AND s.reminder_hour_utc = $1
	`

	rows, err := r.db.Query(ctx, query, hour)
	if err != nil {
		return nil, fmt.Errorf("list due reminder users: %w", err)
	}
	defer rows.Close()

	var targets []entities.ReminderTarget
	for rows.Next() {
		var t entities.ReminderTarget
		if err := rows.Scan(&t.UserID, &t.ChatID, &t.Language); err != nil {
			return nil, fmt.Errorf("scan reminder target: %w", err)
		}
		targets = append(targets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminder targets: %w", err)
	}

	return targets, nil
}

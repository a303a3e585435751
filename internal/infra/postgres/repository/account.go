package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
	"github.com/keycardsapp/keycards-bot/internal/infra/postgres"
)

var ErrAccountNotFound = errors.New("account not found")

// AccountRepository stores the KeyCards credential bound to each Telegram user.
type AccountRepository struct {
	db postgres.DBTX
}

// NewAccountRepository creates a new AccountRepository with the provided database handle.
func NewAccountRepository(db postgres.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// Upsert stores or replaces the credential for a Telegram user.
func (r *AccountRepository) Upsert(ctx context.Context, account *entities.Account) error {
	query := `
		INSERT INTO accounts (user_id, chat_id, email, name, token, logged_in_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			token = EXCLUDED.token,
			logged_in_at = EXCLUDED.logged_in_at
	`

	_, err := r.db.Exec(ctx, query,
		account.UserID,
		account.ChatID,
		account.Email,
		account.Name,
		account.Token,
		account.LoggedInAt,
	)
	if err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}

	return nil
}

// GetByUserID retrieves the stored credential for a Telegram user.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Account, error) {
	query := `
		SELECT user_id, chat_id, email, name, token, logged_in_at
		FROM accounts
		WHERE user_id = $1
	`

	var account entities.Account
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&account.UserID,
		&account.ChatID,
		&account.Email,
		&account.Name,
		&account.Token,
		&account.LoggedInAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &account, nil
}

// Delete removes the stored credential for a Telegram user.
func (r *AccountRepository) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM accounts WHERE user_id = $1`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/keycardsapp/keycards-bot/internal/apiclient"
	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
	"github.com/keycardsapp/keycards-bot/internal/infra/postgres"
	"github.com/keycardsapp/keycards-bot/internal/infra/postgres/repository"
)

// AuthBackend is the slice of the KeyCards API used for authentication.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*entities.Profile, string, error)
	Register(ctx context.Context, name, email, password string) (*entities.Profile, string, error)
}

// AuthService logs Telegram users into the KeyCards backend and stores
// the issued bearer tokens. The token is opaque to the bot; expiry shows
// up as an unauthenticated error on the next call.
type AuthService struct {
	api        AuthBackend
	accounts   AccountRepository
	transactor *postgres.Transactor
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	api AuthBackend,
	accounts AccountRepository,
	transactor *postgres.Transactor,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		api:        api,
		accounts:   accounts,
		transactor: transactor,
		logger:     logger,
	}
}

// Login exchanges credentials for a bearer token and binds it to the
// Telegram user. Default study settings are created alongside the account.
func (s *AuthService) Login(ctx context.Context, userID, chatID int64, email, password string) (*entities.Account, error) {
	profile, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	account := &entities.Account{
		UserID:     userID,
		ChatID:     chatID,
		Email:      profile.Email,
		Name:       profile.Name,
		Token:      token,
		LoggedInAt: time.Now(),
	}

	if err := s.storeAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.Int64("user_id", userID),
		zap.String("email", account.Email),
	)

	return account, nil
}

// Register creates a KeyCards account and binds its token to the Telegram user.
func (s *AuthService) Register(ctx context.Context, userID, chatID int64, name, email, password string) (*entities.Account, error) {
	profile, token, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	account := &entities.Account{
		UserID:     userID,
		ChatID:     chatID,
		Email:      profile.Email,
		Name:       profile.Name,
		Token:      token,
		LoggedInAt: time.Now(),
	}

	if err := s.storeAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", userID),
		zap.String("email", account.Email),
	)

	return account, nil
}

// storeAccount writes the credential and the default settings atomically,
// so a logged-in user always has a settings row.
func (s *AuthService) storeAccount(ctx context.Context, account *entities.Account) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := repository.NewAccountRepository(tx).Upsert(ctx, account); err != nil {
			return err
		}
		return repository.NewSettingsRepository(tx).EnsureDefaults(ctx, account.UserID)
	})
	if err != nil {
		return fmt.Errorf("store account: %w", err)
	}
	return nil
}

// Logout deletes the stored credential. Logging out while not logged in
// is not an error.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	err := s.accounts.Delete(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.Info("user logged out", zap.Int64("user_id", userID))
	return nil
}

// Account returns the stored credential for a Telegram user.
func (s *AuthService) Account(ctx context.Context, userID int64) (*entities.Account, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, apiclient.ErrUnauthenticated
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// Token resolves the stored bearer token for a Telegram user. A missing
// account maps to the unauthenticated error class.
func (s *AuthService) Token(ctx context.Context, userID int64) (string, error) {
	account, err := s.Account(ctx, userID)
	if err != nil {
		return "", err
	}
	return account.Token, nil
}

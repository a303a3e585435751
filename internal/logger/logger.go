package logger

import (
	"go.uber.org/zap"

	"github.com/keycardsapp/keycards-bot/internal/config"
)

// New builds the application logger: JSON in production, console
// encoding everywhere else.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}

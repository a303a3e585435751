package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/keycardsapp/keycards-bot/internal/apiclient"
	"github.com/keycardsapp/keycards-bot/internal/config"
	"github.com/keycardsapp/keycards-bot/internal/delivery/telegram"
	"github.com/keycardsapp/keycards-bot/internal/infra/postgres"
	"github.com/keycardsapp/keycards-bot/internal/infra/postgres/repository"
	"github.com/keycardsapp/keycards-bot/internal/logger"
	"github.com/keycardsapp/keycards-bot/internal/service"
	"github.com/keycardsapp/keycards-bot/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zapLogger.Fatal("failed to create bot api", zap.Error(err))
	}

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "login", Description: "Log in (usage: /login email password)"},
		{Command: "register", Description: "Create an account (usage: /register name email password)"},
		{Command: "logout", Description: "Log out"},
		{Command: "languages", Description: "Languages available for study"},
		{Command: "cards", Description: "Browse flashcards (usage: /cards go)"},
		{Command: "generate", Description: "Generate flashcards (usage: /generate go)"},
		{Command: "practice", Description: "Start a practice session"},
		{Command: "quiz", Description: "Start a timed quiz"},
		{Command: "progress", Description: "Show your progress"},
		{Command: "settings", Description: "Settings"},
		{Command: "help", Description: "Help"},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zapLogger.Warn("failed to set bot commands", zap.Error(err))
	}

	zapLogger.Info("authorized on telegram", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zapLogger.Fatal("database url missing", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zapLogger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	accountRepo := repository.NewAccountRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	api := apiclient.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	authService := service.NewAuthService(api, accountRepo, postgres.NewTransactor(pool), zapLogger)
	settingsService := service.NewSettingsService(settingsRepo)
	progressService := service.NewProgressService(api, authService, zapLogger)
	flashcardService := service.NewFlashcardService(api, authService)

	sessions := session.NewManager(api, authService, progressService, zapLogger)

	handler := telegram.NewHandler(
		bot,
		zapLogger,
		sessions,
		authService,
		settingsService,
		progressService,
		flashcardService,
	)

	reminderService := service.NewReminderService(settingsRepo, progressService, zapLogger)
	reminderService.SetNotifier(handler)
	go reminderService.Start(ctx)

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zapLogger.Fatal("handler stopped", zap.Error(err))
	}

	zapLogger.Info("shutdown signal received")
}

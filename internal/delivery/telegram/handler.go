package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/keycardsapp/keycards-bot/internal/apiclient"
	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
	"github.com/keycardsapp/keycards-bot/internal/session"
)

type AuthService interface {
	Login(ctx context.Context, userID, chatID int64, email, password string) (*entities.Account, error)
	Register(ctx context.Context, userID, chatID int64, name, email, password string) (*entities.Account, error)
	Logout(ctx context.Context, userID int64) error
}

type SettingsService interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error)
	SetDefaultLanguage(ctx context.Context, userID int64, slug string) error
	SetPracticeLength(ctx context.Context, userID int64, length int) error
	SetQuizLength(ctx context.Context, userID int64, length int) error
	ToggleReminder(ctx context.Context, userID int64) (bool, error)
	SetReminderHour(ctx context.Context, userID int64, hour int) error
}

type ProgressService interface {
	Summary(ctx context.Context, userID int64) (*entities.ProgressSummary, error)
	Language(ctx context.Context, userID int64, language string) (*entities.LanguageProgress, error)
	Invalidate(userID int64)
}

type FlashcardService interface {
	Languages(ctx context.Context, userID int64) ([]entities.Language, error)
	Browse(ctx context.Context, userID int64, language string) ([]entities.Flashcard, error)
	Generate(ctx context.Context, language string) (*apiclient.GenerateResult, error)
}

type Handler struct {
	bot              *tgbotapi.BotAPI
	logger           *zap.Logger
	sessions         *session.Manager
	authService      AuthService
	settingsService  SettingsService
	progressService  ProgressService
	flashcardService FlashcardService

	mu       sync.Mutex
	revealed map[int64]bool // user ID -> current practice card revealed
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	sessions *session.Manager,
	authService AuthService,
	settingsService SettingsService,
	progressService ProgressService,
	flashcardService FlashcardService,
) *Handler {
	return &Handler{
		bot:              bot,
		logger:           logger,
		sessions:         sessions,
		authService:      authService,
		settingsService:  settingsService,
		progressService:  progressService,
		flashcardService: flashcardService,
		revealed:         make(map[int64]bool),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	args := update.Message.CommandArguments()

	if !update.Message.IsCommand() {
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		h.send(newHTMLMessage(chatID, msgWelcome))

	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))

	case "login":
		_ = h.withErrorHandling(h.loginHandler(userID, update.Message.MessageID, args, false))(ctx, chatID)

	case "register":
		_ = h.withErrorHandling(h.loginHandler(userID, update.Message.MessageID, args, true))(ctx, chatID)

	case "logout":
		_ = h.withErrorHandling(h.logoutHandler(userID))(ctx, chatID)

	case "languages":
		_ = h.withErrorHandling(h.languagesHandler(userID))(ctx, chatID)

	case "cards":
		_ = h.withErrorHandling(h.cardsHandler(userID, args))(ctx, chatID)

	case "generate":
		_ = h.withErrorHandling(h.generateHandler(args))(ctx, chatID)

	case "practice":
		_ = h.withErrorHandling(h.practiceHandler(userID, args))(ctx, chatID)

	case "quiz":
		_ = h.withErrorHandling(h.quizHandler(userID, args))(ctx, chatID)

	case "progress":
		_ = h.withErrorHandling(h.progressHandler(userID))(ctx, chatID)

	case "settings":
		_ = h.withErrorHandling(h.settingsHandler(userID))(ctx, chatID)

	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// deleteMessage removes a message, used to scrub credentials from the chat.
func (h *Handler) deleteMessage(chatID int64, messageID int) {
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		h.logger.Warn("failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}

// answerCallback acknowledges a callback query so the button stops spinning.
func (h *Handler) answerCallback(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Warn("failed to answer callback", zap.Error(err))
	}
}

func (h *Handler) setRevealed(userID int64, revealed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.revealed[userID] = revealed
}

func (h *Handler) isRevealed(userID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.revealed[userID]
}

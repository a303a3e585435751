package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
	"github.com/keycardsapp/keycards-bot/internal/service"
)

// loginHandler handles /login and /register. The credential message is
// deleted before anything else so the password does not linger in the chat.
func (h *Handler) loginHandler(userID int64, messageID int, args string, register bool) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.deleteMessage(chatID, messageID)

		fields := strings.Fields(args)

		var account *entities.Account
		var err error
		switch {
		case register && len(fields) >= 3:
			name := strings.Join(fields[:len(fields)-2], " ")
			email, password := fields[len(fields)-2], fields[len(fields)-1]
			account, err = h.authService.Register(ctx, userID, chatID, name, email, password)
		case !register && len(fields) == 2:
			account, err = h.authService.Login(ctx, userID, chatID, fields[0], fields[1])
		case register:
			h.send(newHTMLMessage(chatID, msgRegisterUsage))
			return nil
		default:
			h.send(newHTMLMessage(chatID, msgLoginUsage))
			return nil
		}
		if err != nil {
			h.sendError(chatID, backendErrorText(err, msgInternalError))
			return nil
		}

		h.send(newHTMLMessage(chatID, renderAccount(account, register)))
		return nil
	}
}

// logoutHandler discards the credential, cached progress, and any active
// session, so a running quiz timer cannot outlive the login.
func (h *Handler) logoutHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.sessions.Drop(userID)
		h.progressService.Invalidate(userID)

		if err := h.authService.Logout(ctx, userID); err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, msgLoggedOut))
		return nil
	}
}

func (h *Handler) languagesHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		langs, err := h.flashcardService.Languages(ctx, userID)
		if err != nil {
			h.sendError(chatID, backendErrorText(err, msgInternalError))
			return nil
		}

		h.send(newHTMLMessage(chatID, renderLanguages(langs)))
		return nil
	}
}

// cardsHandler handles /cards language [search terms].
func (h *Handler) cardsHandler(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		fields := strings.Fields(args)
		if len(fields) == 0 {
			h.send(newHTMLMessage(chatID, msgCardsUsage))
			return nil
		}

		language := strings.ToLower(fields[0])
		cards, err := h.flashcardService.Browse(ctx, userID, language)
		if err != nil {
			h.sendError(chatID, backendErrorText(err, msgCardsUsage))
			return nil
		}

		cards = service.SearchCards(cards, strings.Join(fields[1:], " "))
		cards = service.SortCards(cards, service.SortByKeyword)

		h.send(newHTMLMessage(chatID, renderCards(language, cards)))
		return nil
	}
}

func (h *Handler) generateHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		language := strings.ToLower(strings.TrimSpace(args))
		if language == "" {
			h.send(newHTMLMessage(chatID, msgGenerateUsage))
			return nil
		}

		result, err := h.flashcardService.Generate(ctx, language)
		if err != nil {
			h.sendError(chatID, backendErrorText(err, msgGenerateUsage))
			return nil
		}

		text := fmt.Sprintf("✨ Generated <b>%d</b> flashcards for <b>%s</b>. Try /practice %s!",
			result.TotalGenerated, esc(result.Language), esc(result.Language))
		h.send(newHTMLMessage(chatID, text))
		return nil
	}
}

// practiceHandler handles /practice [language] [count], falling back to
// the user's saved defaults.
func (h *Handler) practiceHandler(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		language, count, err := h.sessionArgs(ctx, userID, args, false)
		if err != nil {
			h.sendError(chatID, backendErrorText(err, msgInternalError))
			return nil
		}

		return h.startPractice(ctx, userID, chatID, language, count)
	}
}

func (h *Handler) startPractice(ctx context.Context, userID, chatID int64, language string, count int) error {
	ctrl := h.sessions.Controller(userID)

	s, err := ctrl.StartPractice(ctx, language, count)
	if err != nil {
		h.sendError(chatID, backendErrorText(err, msgInternalError))
		return nil
	}
	if len(s.Flashcards) == 0 {
		ctrl.EndPractice()
		h.send(newHTMLMessage(chatID, msgNoFlashcards))
		return nil
	}

	h.setRevealed(userID, false)

	msg := newHTMLMessage(chatID, renderPracticeCard(s, false))
	msg.ReplyMarkup = buildPracticeKeyboard(s, false)
	h.send(msg)
	return nil
}

// quizHandler handles /quiz [language] [count], falling back to the
// user's saved defaults.
func (h *Handler) quizHandler(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		language, count, err := h.sessionArgs(ctx, userID, args, true)
		if err != nil {
			h.sendError(chatID, backendErrorText(err, msgInternalError))
			return nil
		}

		return h.startQuiz(ctx, userID, chatID, language, count)
	}
}

func (h *Handler) startQuiz(ctx context.Context, userID, chatID int64, language string, count int) error {
	ctrl := h.sessions.Controller(userID)

	s, err := ctrl.StartQuiz(ctx, language, count, func() {
		h.autoSubmitQuiz(userID, chatID)
	})
	if err != nil {
		h.sendError(chatID, backendErrorText(err, msgInternalError))
		return nil
	}
	if len(s.Questions) == 0 {
		ctrl.EndQuiz()
		h.send(newHTMLMessage(chatID, msgNoFlashcards))
		return nil
	}

	msg := newHTMLMessage(chatID, renderQuizQuestion(s, ctrl.TimeRemaining()))
	msg.ReplyMarkup = buildQuizKeyboard(s)
	h.send(msg)
	return nil
}

// sessionArgs parses "[language] [count]" with the user's saved settings
// as defaults.
func (h *Handler) sessionArgs(ctx context.Context, userID int64, args string, quiz bool) (string, int, error) {
	settings, err := h.settingsService.GetOrCreate(ctx, userID)
	if err != nil {
		return "", 0, err
	}

	language := settings.DefaultLanguage
	count := settings.PracticeLength
	if quiz {
		count = settings.QuizLength
	}

	for _, field := range strings.Fields(args) {
		if n, err := strconv.Atoi(field); err == nil {
			if !entities.IsValidSessionLength(n) {
				return "", 0, fmt.Errorf("%w: %d", service.ErrInvalidLength, n)
			}
			count = n
			continue
		}

		slug := strings.ToLower(field)
		if !entities.IsValidLanguage(slug) {
			return "", 0, fmt.Errorf("%w: %s", service.ErrUnsupportedLanguage, slug)
		}
		language = slug
	}

	return language, count, nil
}

func (h *Handler) progressHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		summary, err := h.progressService.Summary(ctx, userID)
		if err != nil {
			h.sendError(chatID, backendErrorText(err, msgInternalError))
			return nil
		}

		msg := newHTMLMessage(chatID, renderProgressSummary(summary))
		msg.ReplyMarkup = buildProgressKeyboard(summary)
		h.send(msg)
		return nil
	}
}

func (h *Handler) settingsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.settingsService.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, renderSettings(settings))
		msg.ReplyMarkup = buildSettingsKeyboard(settings)
		h.send(msg)
		return nil
	}
}

// SendReminder implements the reminder notifier contract: a study nudge
// with a quiz shortcut, sent straight to the stored chat.
func (h *Handler) SendReminder(target entities.ReminderTarget, summary *entities.ProgressSummary) error {
	msg := newHTMLMessage(target.ChatID, renderReminder(summary))
	msg.ReplyMarkup = buildReminderKeyboard()

	if _, err := h.bot.Send(msg); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	return nil
}

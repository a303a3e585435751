package telegram

import (
	"context"
	"errors"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/keycardsapp/keycards-bot/internal/apiclient"
	"github.com/keycardsapp/keycards-bot/internal/session"
)

func (h *Handler) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Acknowledge immediately so the client stops the button spinner and
	// repeated taps of a stale keyboard do not pile up.
	h.answerCallback(query.ID, "")

	if query.Message == nil {
		return
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	cd := decodeCallback(query.Data)

	switch cd.Action {
	case actionPractice:
		h.handlePracticeCallback(ctx, userID, chatID, messageID, cd)
	case actionQuiz:
		h.handleQuizCallback(ctx, userID, chatID, messageID, cd)
	case actionProgress:
		h.handleProgressCallback(ctx, userID, chatID, messageID, cd)
	case actionSettings:
		h.handleSettingsCallback(ctx, userID, chatID, messageID, cd)
	default:
		h.logger.Warn("unknown callback action", zap.String("data", cd.Raw))
	}
}

func (cd callbackData) param(i int) string {
	if i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

func (h *Handler) handlePracticeCallback(ctx context.Context, userID, chatID int64, messageID int, cd callbackData) {
	ctrl := h.sessions.Controller(userID)
	s := ctrl.Practice()
	if s == nil {
		h.sendError(chatID, msgNoPracticeSession)
		return
	}

	switch cd.param(0) {
	case practiceShow:
		h.setRevealed(userID, true)
		h.editPracticeCard(userID, chatID, messageID, ctrl)

	case practiceAnswer:
		index, err := strconv.Atoi(cd.param(1))
		if err != nil || index < 0 || index >= len(s.Flashcards) {
			h.logger.Warn("bad practice answer callback", zap.String("data", cd.Raw))
			return
		}
		ctrl.AnswerFlashcard(s.Flashcards[index].ID, cd.param(2) == "1")
		h.editPracticeCard(userID, chatID, messageID, ctrl)

	case practiceShuffle:
		ctrl.ShufflePractice()
		h.editPracticeCard(userID, chatID, messageID, ctrl)

	case practiceNav:
		if cd.param(1) == navNext {
			ctrl.NextFlashcard()
		} else {
			ctrl.PreviousFlashcard()
		}
		h.setRevealed(userID, false)
		h.editPracticeCard(userID, chatID, messageID, ctrl)

	case practiceFinish:
		st, err := ctrl.SubmitPractice(ctx)
		if err != nil {
			if errors.Is(err, session.ErrNoActiveSession) {
				h.sendError(chatID, msgNoPracticeSession)
				return
			}
			// Session is retained; the user can tap Finish again.
			h.sendError(chatID, backendErrorText(err, msgSubmitFailed))
			return
		}

		h.send(newHTMLEdit(chatID, messageID, renderPracticeResults(st, s.Language), nil))
		ctrl.EndPractice()

	case practiceQuit:
		ctrl.EndPractice()
		h.send(newHTMLEdit(chatID, messageID, msgPracticeQuit, nil))

	default:
		h.logger.Warn("unknown practice callback", zap.String("data", cd.Raw))
	}
}

func (h *Handler) editPracticeCard(userID, chatID int64, messageID int, ctrl *session.Controller) {
	s := ctrl.Practice()
	if s == nil {
		return
	}

	revealed := h.isRevealed(userID)
	kb := buildPracticeKeyboard(s, revealed)
	h.send(newHTMLEdit(chatID, messageID, renderPracticeCard(s, revealed), &kb))
}

func (h *Handler) handleQuizCallback(ctx context.Context, userID, chatID int64, messageID int, cd callbackData) {
	ctrl := h.sessions.Controller(userID)

	if cd.param(0) == quizStart {
		// From a reminder or a results screen: open a fresh quiz with the
		// user's saved defaults in a new message.
		language, count, err := h.sessionArgs(ctx, userID, "", true)
		if err != nil {
			h.sendError(chatID, backendErrorText(err, msgInternalError))
			return
		}
		_ = h.startQuiz(ctx, userID, chatID, language, count)
		return
	}

	s := ctrl.Quiz()
	if s == nil {
		h.sendError(chatID, msgNoQuizSession)
		return
	}

	switch cd.param(0) {
	case quizAnswer:
		qIndex, err1 := strconv.Atoi(cd.param(1))
		optIndex, err2 := strconv.Atoi(cd.param(2))
		if err1 != nil || err2 != nil ||
			qIndex < 0 || qIndex >= len(s.Questions) ||
			optIndex < 0 || optIndex >= len(s.Questions[qIndex].Options) {
			h.logger.Warn("bad quiz answer callback", zap.String("data", cd.Raw))
			return
		}

		q := s.Questions[qIndex]
		ctrl.AnswerQuestion(q.FlashcardID, q.Options[optIndex].ID)
		h.editQuizQuestion(chatID, messageID, ctrl)

	case quizNav:
		if cd.param(1) == navNext {
			ctrl.NextQuestion()
		} else {
			ctrl.PreviousQuestion()
		}
		h.editQuizQuestion(chatID, messageID, ctrl)

	case quizSubmit:
		st, err := ctrl.SubmitQuiz(ctx)
		if err != nil && !apiclient.IsSessionExpired(err) {
			if errors.Is(err, session.ErrNoActiveSession) {
				h.sendError(chatID, msgNoQuizSession)
				return
			}
			// Session is retained; the user can tap Submit again.
			h.sendError(chatID, backendErrorText(err, msgSubmitFailed))
			return
		}

		kb := buildQuizResultKeyboard()
		h.send(newHTMLEdit(chatID, messageID, renderQuizResults(st), &kb))
		ctrl.EndQuiz()

	case quizQuit:
		ctrl.EndQuiz()
		h.send(newHTMLEdit(chatID, messageID, msgQuizQuit, nil))

	default:
		h.logger.Warn("unknown quiz callback", zap.String("data", cd.Raw))
	}
}

func (h *Handler) editQuizQuestion(chatID int64, messageID int, ctrl *session.Controller) {
	s := ctrl.Quiz()
	if s == nil {
		return
	}

	kb := buildQuizKeyboard(s)
	h.send(newHTMLEdit(chatID, messageID, renderQuizQuestion(s, ctrl.TimeRemaining()), &kb))
}

// autoSubmitQuiz runs when the countdown hits zero with the session still
// live. It submits whatever was answered and posts the results as a new
// message, since the question message may be far up the chat by then.
func (h *Handler) autoSubmitQuiz(userID, chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ctrl := h.sessions.Controller(userID)

	st, err := ctrl.SubmitQuiz(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			return
		}
		if !apiclient.IsSessionExpired(err) {
			h.logger.Warn("quiz auto-submit failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.sendError(chatID, msgTimeUp+msgSubmitFailed)
			return
		}
	}

	msg := newHTMLMessage(chatID, msgTimeUp+renderQuizResults(st))
	msg.ReplyMarkup = buildQuizResultKeyboard()
	h.send(msg)
	ctrl.EndQuiz()
}

func (h *Handler) handleProgressCallback(ctx context.Context, userID, chatID int64, messageID int, cd callbackData) {
	if cd.param(0) == progressLanguage {
		progress, err := h.progressService.Language(ctx, userID, cd.param(1))
		if err != nil {
			h.sendError(chatID, backendErrorText(err, msgInternalError))
			return
		}

		kb := buildProgressBackKeyboard()
		h.send(newHTMLEdit(chatID, messageID, renderLanguageProgress(progress), &kb))
		return
	}

	summary, err := h.progressService.Summary(ctx, userID)
	if err != nil {
		h.sendError(chatID, backendErrorText(err, msgInternalError))
		return
	}

	kb := buildProgressKeyboard(summary)
	h.send(newHTMLEdit(chatID, messageID, renderProgressSummary(summary), &kb))
}

func (h *Handler) handleSettingsCallback(ctx context.Context, userID, chatID int64, messageID int, cd callbackData) {
	sub, value := cd.param(0), cd.param(1)

	var err error
	switch {
	case sub == settingsLanguage && value == "":
		kb := buildLanguageChoiceKeyboard()
		h.send(newHTMLEdit(chatID, messageID, "🌐 Choose your default language:", &kb))
		return
	case sub == settingsLanguage:
		err = h.settingsService.SetDefaultLanguage(ctx, userID, value)

	case sub == settingsPracticeLen && value == "":
		kb := buildLengthKeyboard(settingsPracticeLen)
		h.send(newHTMLEdit(chatID, messageID, "📇 Cards per practice session:", &kb))
		return
	case sub == settingsPracticeLen:
		err = h.applyLength(ctx, userID, value, h.settingsService.SetPracticeLength)

	case sub == settingsQuizLen && value == "":
		kb := buildLengthKeyboard(settingsQuizLen)
		h.send(newHTMLEdit(chatID, messageID, "⏱ Questions per quiz:", &kb))
		return
	case sub == settingsQuizLen:
		err = h.applyLength(ctx, userID, value, h.settingsService.SetQuizLength)

	case sub == settingsReminder:
		_, err = h.settingsService.ToggleReminder(ctx, userID)

	case sub == settingsReminderHour && value == "":
		kb := buildReminderHourKeyboard()
		h.send(newHTMLEdit(chatID, messageID, "🕕 Reminder hour (UTC):", &kb))
		return
	case sub == settingsReminderHour:
		var hour int
		hour, err = strconv.Atoi(value)
		if err == nil {
			err = h.settingsService.SetReminderHour(ctx, userID, hour)
		}
	}

	if err != nil {
		h.sendError(chatID, backendErrorText(err, msgInternalError))
		return
	}

	// Back to the menu with the updated values.
	settings, err := h.settingsService.GetOrCreate(ctx, userID)
	if err != nil {
		h.sendError(chatID, backendErrorText(err, msgInternalError))
		return
	}

	kb := buildSettingsKeyboard(settings)
	h.send(newHTMLEdit(chatID, messageID, renderSettings(settings), &kb))
}

func (h *Handler) applyLength(ctx context.Context, userID int64, value string, set func(context.Context, int64, int) error) error {
	length, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	return set(ctx, userID, length)
}

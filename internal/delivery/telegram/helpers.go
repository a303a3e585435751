package telegram

import (
	"errors"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/keycardsapp/keycards-bot/internal/apiclient"
)

func esc(s string) string {
	return html.EscapeString(s)
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = keyboard
	return edit
}

// backendErrorText maps an API failure to user-facing text, surfacing the
// backend's own message when there is one.
func backendErrorText(err error, fallback string) string {
	if errors.Is(err, apiclient.ErrUnauthenticated) {
		return msgNotLoggedIn
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return esc(apiErr.Message)
	}
	return fallback
}

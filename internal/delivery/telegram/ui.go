package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

// buildPracticeKeyboard builds the card keyboard. Before the answer is
// revealed there is a single reveal button; after it there are the
// got-it / missed buttons bound to the current card position.
func buildPracticeKeyboard(s *entities.PracticeSession, revealed bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if revealed {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Got it", buildPracticeAnswerCallback(s.CurrentIndex, true)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Missed", buildPracticeAnswerCallback(s.CurrentIndex, false)),
		))
	} else {
		row := tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💡 Show answer", buildPracticeShowCallback()),
		)
		if !s.Started() {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("🔀 Shuffle", buildPracticeShuffleCallback()))
		}
		rows = append(rows, row)
	}

	if nav := navRow(s.CurrentIndex, len(s.Flashcards), buildPracticeNavCallback); nav != nil {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏁 Finish", buildPracticeFinishCallback()),
		tgbotapi.NewInlineKeyboardButtonData("🚪 Quit", buildPracticeQuitCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizKeyboard builds the question keyboard: one button per option,
// the selected one marked, plus navigation and submit controls.
func buildQuizKeyboard(s *entities.QuizSession) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	q := s.Current()
	if q != nil {
		selected := s.Answers[q.FlashcardID]
		for i, opt := range q.Options {
			label := opt.Text
			if opt.ID == selected {
				label = "🔘 " + label
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, buildQuizAnswerCallback(s.CurrentIndex, i)),
			))
		}
	}

	if nav := navRow(s.CurrentIndex, len(s.Questions), buildQuizNavCallback); nav != nil {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📨 Submit", buildQuizSubmitCallback()),
		tgbotapi.NewInlineKeyboardButtonData("🚪 Quit", buildQuizQuitCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// navRow returns a previous/next row for the given position, or nil when
// there is nowhere to go.
func navRow(index, total int, build func(direction string) string) []tgbotapi.InlineKeyboardButton {
	var row []tgbotapi.InlineKeyboardButton
	if index > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Previous", build(navPrev)))
	}
	if index < total-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ➡️", build(navNext)))
	}
	return row
}

// buildQuizResultKeyboard is shown under quiz results.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 New quiz", buildQuizStartCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📊 Progress", buildProgressCallback()),
		),
	)
}

// buildProgressKeyboard lists the user's studied languages for drill-down.
func buildProgressKeyboard(summary *entities.ProgressSummary) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for _, lang := range summary.Languages {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			lang.LanguageName,
			buildProgressLanguageCallback(lang.Language),
		))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🎯 Start quiz", buildQuizStartCallback()),
		tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", buildSettingsCallback(settingsMenu)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildProgressBackKeyboard returns from a language drill-down to the summary.
func buildProgressBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", buildProgressCallback()),
		),
	)
}

// buildSettingsKeyboard is the settings menu.
func buildSettingsKeyboard(settings *entities.UserSettings) tgbotapi.InlineKeyboardMarkup {
	reminderLabel := "🔔 Enable reminders"
	if settings.ReminderEnabled {
		reminderLabel = "🔕 Disable reminders"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌐 Language", buildSettingsCallback(settingsLanguage)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📇 Practice length", buildSettingsCallback(settingsPracticeLen)),
			tgbotapi.NewInlineKeyboardButtonData("⏱ Quiz length", buildSettingsCallback(settingsQuizLen)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(reminderLabel, buildSettingsCallback(settingsReminder)),
			tgbotapi.NewInlineKeyboardButtonData("🕕 Reminder hour", buildSettingsCallback(settingsReminderHour)),
		),
	)
}

// buildLanguageChoiceKeyboard lists supported languages, three per row.
func buildLanguageChoiceKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for _, slug := range entities.LanguageSlugs {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(slug, buildSettingsCallback(settingsLanguage, slug)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildLengthKeyboard lists session lengths for the given setting, five per row.
func buildLengthKeyboard(subAction string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for _, length := range entities.SessionLengths {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(length),
			buildSettingsCallback(subAction, strconv.Itoa(length)),
		))
		if len(row) == 5 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildReminderHourKeyboard lists UTC hours, six per row.
func buildReminderHourKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for hour := 0; hour < 24; hour++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%02d", hour),
			buildSettingsCallback(settingsReminderHour, strconv.Itoa(hour)),
		))
		if len(row) == 6 {
			rows = append(rows, row)
			row = nil
		}
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildReminderKeyboard is attached to the daily study reminder.
func buildReminderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start quiz", buildQuizStartCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔕 Disable reminders", buildSettingsCallback(settingsReminder)),
		),
	)
}

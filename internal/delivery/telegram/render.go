package telegram

import (
	"fmt"
	"strings"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
	"github.com/keycardsapp/keycards-bot/internal/stats"
)

// renderPracticeCard renders the current flashcard, with the answer and
// code example included once revealed.
func renderPracticeCard(s *entities.PracticeSession, revealed bool) string {
	card := s.Current()
	if card == nil {
		return msgNoFlashcards
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📇 <b>%s</b> — card %d of %d\n\n", esc(s.Language), s.CurrentIndex+1, len(s.Flashcards))
	fmt.Fprintf(&b, "<b>%s</b>\n\n%s\n", esc(card.Keyword), esc(card.Question))

	if revealed {
		fmt.Fprintf(&b, "\n<b>Answer</b>\n%s\n", esc(card.Answer))
		if card.CodeExample != "" {
			fmt.Fprintf(&b, "\n<pre>%s</pre>\n", esc(card.CodeExample))
		}
	}

	if answered, ok := s.Results[card.ID]; ok {
		if answered {
			b.WriteString("\n✅ Marked as known")
		} else {
			b.WriteString("\n❌ Marked as missed")
		}
	}

	fmt.Fprintf(&b, "\n\nAnswered: %d of %d", len(s.Results), len(s.Flashcards))
	return b.String()
}

// renderPracticeResults renders the stats screen after a practice submission.
func renderPracticeResults(st stats.PracticeStats, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏁 <b>Practice finished</b> — %s\n\n", esc(language))
	fmt.Fprintf(&b, "Answered: %d\n", st.Total)
	fmt.Fprintf(&b, "✅ Correct: %d\n", st.Correct)
	fmt.Fprintf(&b, "❌ Missed: %d\n", st.Incorrect)
	fmt.Fprintf(&b, "🎯 Accuracy: %.1f%%\n", st.Accuracy)
	if st.DurationSeconds != nil {
		fmt.Fprintf(&b, "⏱ Time: %s\n", stats.FormatDuration(*st.DurationSeconds))
	}
	return b.String()
}

// renderQuizQuestion renders the current quiz question with the countdown.
func renderQuizQuestion(s *entities.QuizSession, remaining int) string {
	q := s.Current()
	if q == nil {
		return msgNoQuizSession
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⏱ <b>%s</b> — question %d of %d — %s left\n\n",
		esc(s.Language), s.CurrentIndex+1, len(s.Questions), stats.FormatTimer(remaining))
	fmt.Fprintf(&b, "Which keyword is this?\n\n<b>%s</b>\n", esc(q.Keyword))
	fmt.Fprintf(&b, "\nAnswered: %d of %d", s.Answered(), len(s.Questions))
	return b.String()
}

// renderQuizResults renders the stats screen after a quiz submission.
func renderQuizResults(st stats.QuizStats) string {
	var b strings.Builder
	if st.Expired {
		b.WriteString("⏰ <b>Quiz over — time expired</b>\n\n")
	} else {
		b.WriteString("🏁 <b>Quiz finished</b>\n\n")
	}
	fmt.Fprintf(&b, "Questions: %d\n", st.Total)
	fmt.Fprintf(&b, "✅ Correct: %d\n", st.Correct)
	fmt.Fprintf(&b, "❌ Wrong: %d\n", st.Incorrect)
	if unanswered := st.Total - st.Correct - st.Incorrect; unanswered > 0 {
		fmt.Fprintf(&b, "⬜ Unanswered: %d\n", unanswered)
	}
	fmt.Fprintf(&b, "🎯 Accuracy: %.1f%%\n", st.Accuracy)
	fmt.Fprintf(&b, "⏱ Time used: %s\n", stats.FormatDuration(st.TimeUsedSeconds))
	return b.String()
}

// renderLanguages renders the language catalog.
func renderLanguages(langs []entities.Language) string {
	var b strings.Builder
	b.WriteString("🌐 <b>Languages</b>\n\n")
	for _, lang := range langs {
		fmt.Fprintf(&b, "• <b>%s</b> (%s) — %d cards\n", esc(lang.Name), esc(lang.Slug), lang.TotalFlashcards)
	}
	if len(langs) == 0 {
		b.WriteString("Nothing here yet. Generate cards with /generate.")
	}
	return b.String()
}

// renderCards renders a browsing page of flashcards, keywords only.
func renderCards(language string, cards []entities.Flashcard) string {
	if len(cards) == 0 {
		return msgNoFlashcards
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📇 <b>%s</b> — %d cards\n\n", esc(language), len(cards))
	for _, card := range cards {
		fmt.Fprintf(&b, "• <b>%s</b> — %s\n", esc(card.Keyword), esc(card.Question))
	}
	return b.String()
}

// renderProgressSummary renders the aggregate progress screen.
func renderProgressSummary(summary *entities.ProgressSummary) string {
	var b strings.Builder
	b.WriteString("📊 <b>Your progress</b>\n\n")
	fmt.Fprintf(&b, "Languages studied: %d\n", summary.TotalLanguages)
	fmt.Fprintf(&b, "Practice sessions: %d\n", summary.TotalPracticeSessions)
	fmt.Fprintf(&b, "Quiz sessions: %d\n", summary.TotalQuizSessions)
	fmt.Fprintf(&b, "Overall accuracy: %.1f%%\n", summary.OverallAccuracy)

	if len(summary.Languages) > 0 {
		b.WriteString("\nPick a language for details:")
	} else {
		b.WriteString("\nNo sessions yet. Start with /practice or /quiz.")
	}
	return b.String()
}

// renderLanguageProgress renders the per-language drill-down.
func renderLanguageProgress(p *entities.LanguageProgress) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>%s</b>\n\n", esc(p.LanguageName))
	fmt.Fprintf(&b, "Sessions: %d\n", p.TotalSessions)
	fmt.Fprintf(&b, "Attempts: %d\n", p.TotalAttempts)
	fmt.Fprintf(&b, "Accuracy: %.1f%%\n", p.AverageAccuracy)

	level := p.MasteryLevel
	if level == "" {
		level = stats.MasteryLevel(p.AverageAccuracy, p.TotalAttempts)
	}
	fmt.Fprintf(&b, "Mastery: %s\n", esc(level))

	if p.LastActivityAt != nil {
		fmt.Fprintf(&b, "Last activity: %s\n", p.LastActivityAt.Format("2 Jan 2006"))
	}
	return b.String()
}

// renderSettings renders the settings menu header.
func renderSettings(settings *entities.UserSettings) string {
	reminder := "off"
	if settings.ReminderEnabled {
		reminder = fmt.Sprintf("daily at %02d:00 UTC", settings.ReminderHourUTC)
	}

	var b strings.Builder
	b.WriteString("⚙️ <b>Settings</b>\n\n")
	fmt.Fprintf(&b, "Language: <b>%s</b>\n", esc(settings.DefaultLanguage))
	fmt.Fprintf(&b, "Practice length: <b>%d</b> cards\n", settings.PracticeLength)
	fmt.Fprintf(&b, "Quiz length: <b>%d</b> questions\n", settings.QuizLength)
	fmt.Fprintf(&b, "Reminders: <b>%s</b>\n", reminder)
	return b.String()
}

// renderAccount renders the logged-in confirmation.
func renderAccount(account *entities.Account, registered bool) string {
	verb := "Logged in"
	if registered {
		verb = "Account created"
	}
	return fmt.Sprintf("✅ <b>%s</b> as %s (%s).\n\nYour message with credentials was deleted. Try /practice or /quiz!",
		verb, esc(account.Name), esc(account.Email))
}

// renderReminder renders the daily study reminder, with a short progress
// line when a summary is available.
func renderReminder(summary *entities.ProgressSummary) string {
	if summary == nil {
		return msgReminder
	}
	return msgReminder + fmt.Sprintf("\n\nOverall accuracy so far: %.1f%% across %d quiz sessions.",
		summary.OverallAccuracy, summary.TotalQuizSessions)
}

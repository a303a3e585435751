package entities

import "time"

// Default study preferences for new users.
const (
	DefaultSessionLength   = 10
	DefaultLanguageSlug    = "python"
	DefaultReminderHourUTC = 18
)

// SessionLengths lists the selectable question counts for practice and
// quiz sessions.
var SessionLengths = []int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50}

// UserSettings holds per-user study preferences.
type UserSettings struct {
	UserID          int64
	DefaultLanguage string
	PracticeLength  int
	QuizLength      int
	ReminderEnabled bool
	ReminderHourUTC int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReminderTarget is one user due a study reminder: the Telegram chat to
// notify and the language their reminder stats should cover.
type ReminderTarget struct {
	UserID   int64
	ChatID   int64
	Language string
}

// IsValidSessionLength reports whether n is a selectable session length.
func IsValidSessionLength(n int) bool {
	for _, l := range SessionLengths {
		if l == n {
			return true
		}
	}
	return false
}

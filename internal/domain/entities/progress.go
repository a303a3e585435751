package entities

import "time"

// PracticeResult is one scored answer in a submission payload. The same
// shape is used for practice and quiz submissions.
type PracticeResult struct {
	FlashcardID string `json:"flashcardId"`
	IsCorrect   bool   `json:"isCorrect"`
}

// LanguageProgress aggregates a user's study history for one language.
type LanguageProgress struct {
	Language        string     `json:"language"`
	LanguageName    string     `json:"languageName"`
	TotalSessions   int        `json:"totalSessions"`
	TotalAttempts   int        `json:"totalAttempts"`
	AverageAccuracy float64    `json:"averageAccuracy"`
	MasteryLevel    string     `json:"masteryLevel"`
	LastActivityAt  *time.Time `json:"lastActivityAt"`
}

// ProgressSummary aggregates study history across all languages.
type ProgressSummary struct {
	TotalLanguages        int                `json:"totalLanguages"`
	TotalPracticeSessions int                `json:"totalPracticeSessions"`
	TotalQuizSessions     int                `json:"totalQuizSessions"`
	OverallAccuracy       float64            `json:"overallAccuracy"`
	Languages             []LanguageProgress `json:"languages"`
}

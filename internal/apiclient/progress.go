package apiclient

import (
	"context"
	"fmt"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

type practicePayload struct {
	Flashcards []entities.Flashcard `json:"flashcards"`
}

// PracticeFlashcards fetches a practice card set of at most limit cards.
func (c *Client) PracticeFlashcards(ctx context.Context, token, language string, limit int) ([]entities.Flashcard, error) {
	path := fmt.Sprintf("/api/progress/practice/%s?limit=%d", language, limit)

	var payload practicePayload
	if err := c.get(ctx, path, token, &payload); err != nil {
		return nil, fmt.Errorf("fetch practice flashcards: %w", err)
	}
	return payload.Flashcards, nil
}

type practiceSubmission struct {
	Results []entities.PracticeResult `json:"results"`
}

// SubmitPracticeResults records a finished practice session.
func (c *Client) SubmitPracticeResults(ctx context.Context, token, language string, results []entities.PracticeResult) error {
	err := c.post(ctx, "/api/progress/practice/"+language, token, practiceSubmission{Results: results}, nil)
	if err != nil {
		return fmt.Errorf("submit practice results: %w", err)
	}
	return nil
}

// QuizQuestions opens a timed quiz session of at most limit questions.
// The backend issues the session ID, both timestamps and the remaining
// seconds; the client never derives them locally.
func (c *Client) QuizQuestions(ctx context.Context, token, language string, limit int) (*entities.QuizStart, error) {
	path := fmt.Sprintf("/api/progress/quiz/%s?limit=%d", language, limit)

	var start entities.QuizStart
	if err := c.get(ctx, path, token, &start); err != nil {
		return nil, fmt.Errorf("fetch quiz questions: %w", err)
	}
	return &start, nil
}

type quizSubmission struct {
	SessionID string                    `json:"sessionId"`
	Results   []entities.PracticeResult `json:"results"`
}

// SubmitQuizResults records a finished quiz session.
func (c *Client) SubmitQuizResults(ctx context.Context, token, language, sessionID string, results []entities.PracticeResult) error {
	err := c.post(ctx, "/api/progress/quiz/"+language, token, quizSubmission{SessionID: sessionID, Results: results}, nil)
	if err != nil {
		return fmt.Errorf("submit quiz results: %w", err)
	}
	return nil
}

// LanguageProgress fetches aggregate history for one language.
func (c *Client) LanguageProgress(ctx context.Context, token, language string) (*entities.LanguageProgress, error) {
	var progress entities.LanguageProgress
	if err := c.get(ctx, "/api/progress/language/"+language, token, &progress); err != nil {
		return nil, fmt.Errorf("fetch language progress: %w", err)
	}
	return &progress, nil
}

// ProgressSummary fetches aggregate history across all languages.
func (c *Client) ProgressSummary(ctx context.Context, token string) (*entities.ProgressSummary, error) {
	var summary entities.ProgressSummary
	if err := c.get(ctx, "/api/progress/summary", token, &summary); err != nil {
		return nil, fmt.Errorf("fetch progress summary: %w", err)
	}
	return &summary, nil
}

package apiclient

import (
	"context"
	"fmt"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

// Languages lists the languages available for study.
func (c *Client) Languages(ctx context.Context, token string) ([]entities.Language, error) {
	var langs []entities.Language
	if err := c.get(ctx, "/api/languages", token, &langs); err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return langs, nil
}

// GenerateResult reports a flashcard generation run.
type GenerateResult struct {
	Language       string `json:"language"`
	TotalGenerated int    `json:"totalGenerated"`
}

// GenerateFlashcards asks the backend to generate cards for a language.
// The endpoint is public and needs no token.
func (c *Client) GenerateFlashcards(ctx context.Context, language string) (*GenerateResult, error) {
	var result GenerateResult
	if err := c.post(ctx, "/api/flashcards/generate/"+language, "", nil, &result); err != nil {
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}
	return &result, nil
}

type flashcardsPayload struct {
	Language   entities.Language    `json:"language"`
	Flashcards []entities.Flashcard `json:"flashcards"`
}

// Flashcards fetches the full card set for a language.
func (c *Client) Flashcards(ctx context.Context, token, language string) ([]entities.Flashcard, error) {
	var payload flashcardsPayload
	if err := c.get(ctx, "/api/flashcards/"+language, token, &payload); err != nil {
		return nil, fmt.Errorf("fetch flashcards: %w", err)
	}
	return payload.Flashcards, nil
}

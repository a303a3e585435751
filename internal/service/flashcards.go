package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/keycardsapp/keycards-bot/internal/apiclient"
	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

// FlashcardBackend is the slice of the KeyCards API used for browsing
// and generating flashcards.
type FlashcardBackend interface {
	Languages(ctx context.Context, token string) ([]entities.Language, error)
	Flashcards(ctx context.Context, token, language string) ([]entities.Flashcard, error)
	GenerateFlashcards(ctx context.Context, language string) (*apiclient.GenerateResult, error)
}

// FlashcardService fetches card sets for browsing and triggers generation.
type FlashcardService struct {
	api    FlashcardBackend
	tokens TokenSource
}

// NewFlashcardService creates a new FlashcardService.
func NewFlashcardService(api FlashcardBackend, tokens TokenSource) *FlashcardService {
	return &FlashcardService{api: api, tokens: tokens}
}

// Languages lists the languages available for study.
func (s *FlashcardService) Languages(ctx context.Context, userID int64) ([]entities.Language, error) {
	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return nil, err
	}

	langs, err := s.api.Languages(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return langs, nil
}

// Browse fetches the full card set for a language.
func (s *FlashcardService) Browse(ctx context.Context, userID int64, language string) ([]entities.Flashcard, error) {
	if !entities.IsValidLanguage(language) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return nil, err
	}

	cards, err := s.api.Flashcards(ctx, token, language)
	if err != nil {
		return nil, fmt.Errorf("browse flashcards: %w", err)
	}
	return cards, nil
}

// Generate asks the backend to generate cards for a language. The
// endpoint is public, so no credential is needed.
func (s *FlashcardService) Generate(ctx context.Context, language string) (*apiclient.GenerateResult, error) {
	if !entities.IsValidLanguage(language) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	result, err := s.api.GenerateFlashcards(ctx, language)
	if err != nil {
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}
	return result, nil
}

// SearchCards filters cards whose keyword or question contains the query,
// case-insensitively.
func SearchCards(cards []entities.Flashcard, query string) []entities.Flashcard {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return cards
	}

	var matched []entities.Flashcard
	for _, card := range cards {
		if strings.Contains(strings.ToLower(card.Keyword), query) ||
			strings.Contains(strings.ToLower(card.Question), query) {
			matched = append(matched, card)
		}
	}
	return matched
}

// Card sort orders.
const (
	SortByKeyword = "keyword"
	SortByNewest  = "newest"
	SortByOldest  = "oldest"
)

// SortCards returns a copy of cards in the given order. Unknown orders
// sort by keyword.
func SortCards(cards []entities.Flashcard, order string) []entities.Flashcard {
	sorted := make([]entities.Flashcard, len(cards))
	copy(sorted, cards)

	switch order {
	case SortByNewest:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	case SortByOldest:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	default:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Keyword < sorted[j].Keyword
		})
	}
	return sorted
}

// ShuffleCards returns a shuffled copy of cards.
func ShuffleCards(cards []entities.Flashcard) []entities.Flashcard {
	shuffled := make([]entities.Flashcard, len(cards))
	copy(shuffled, cards)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

package entities

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// PracticeSession tracks a single untimed free-response run through a set
// of flashcards. The ID is generated locally and used for log correlation
// only; the backend identifies practice submissions by user and language.
type PracticeSession struct {
	ID           string
	Language     string
	Flashcards   []Flashcard
	CurrentIndex int
	Results      map[string]bool // flashcard ID -> answered correctly
	StartTime    time.Time
	EndTime      *time.Time
}

// NewPracticeSession creates a fresh practice session positioned at the
// first flashcard with no recorded answers.
func NewPracticeSession(language string, cards []Flashcard) *PracticeSession {
	return &PracticeSession{
		ID:         uuid.NewString(),
		Language:   language,
		Flashcards: cards,
		Results:    make(map[string]bool),
		StartTime:  time.Now(),
	}
}

// Answer records the outcome for a flashcard. Re-answering overwrites the
// previous outcome and does not change the current position. Unknown
// flashcard IDs are ignored.
func (s *PracticeSession) Answer(flashcardID string, correct bool) {
	for _, card := range s.Flashcards {
		if card.ID == flashcardID {
			s.Results[flashcardID] = correct
			return
		}
	}
}

// Next advances to the next flashcard, staying in place at the last one.
func (s *PracticeSession) Next() {
	if s.CurrentIndex < len(s.Flashcards)-1 {
		s.CurrentIndex++
	}
}

// Previous steps back to the previous flashcard, staying in place at the first one.
func (s *PracticeSession) Previous() {
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
}

// Current returns the flashcard at the current position, or nil for an
// empty card set.
func (s *PracticeSession) Current() *Flashcard {
	if len(s.Flashcards) == 0 {
		return nil
	}
	return &s.Flashcards[s.CurrentIndex]
}

// Started reports whether the user has answered or navigated already.
func (s *PracticeSession) Started() bool {
	return s.CurrentIndex > 0 || len(s.Results) > 0
}

// Shuffle reorders the flashcards in place.
func (s *PracticeSession) Shuffle() {
	rand.Shuffle(len(s.Flashcards), func(i, j int) {
		s.Flashcards[i], s.Flashcards[j] = s.Flashcards[j], s.Flashcards[i]
	})
}

// Complete stamps the session end time.
func (s *PracticeSession) Complete() {
	now := time.Now()
	s.EndTime = &now
}

// ResultList flattens the recorded answers into card order for submission.
// Only answered flashcards are included.
func (s *PracticeSession) ResultList() []PracticeResult {
	results := make([]PracticeResult, 0, len(s.Results))
	for _, card := range s.Flashcards {
		correct, ok := s.Results[card.ID]
		if !ok {
			continue
		}
		results = append(results, PracticeResult{
			FlashcardID: card.ID,
			IsCorrect:   correct,
		})
	}
	return results
}

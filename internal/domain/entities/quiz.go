package entities

import "time"

// QuizOption is one selectable answer for a quiz question.
type QuizOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuizQuestion is a multiple-choice question built by the backend from a
// flashcard. The correct option is known to the client but must never be
// revealed before submission.
type QuizQuestion struct {
	FlashcardID     string       `json:"flashcardId"`
	Keyword         string       `json:"keyword"`
	Options         []QuizOption `json:"options"`
	CorrectOptionID string       `json:"correctOptionId"`
}

// QuizStart is the server handshake that opens a timed quiz session.
type QuizStart struct {
	SessionID            string         `json:"sessionId"`
	Questions            []QuizQuestion `json:"questions"`
	StartedAt            time.Time      `json:"startedAt"`
	ExpiresAt            time.Time      `json:"expiresAt"`
	TimeLimitMinutes     int            `json:"timeLimitMinutes"`
	TimeRemainingSeconds int            `json:"timeRemainingSeconds"`
}

// QuizSession tracks a single timed multiple-choice run. The session ID and
// both timestamps are issued by the server and never recomputed locally.
type QuizSession struct {
	Language     string
	SessionID    string
	Questions    []QuizQuestion
	CurrentIndex int
	Answers      map[string]string // flashcard ID -> selected option ID
	StartedAt    time.Time
	ExpiresAt    time.Time
	TimeLimit    time.Duration
}

// NewQuizSession creates a quiz session from the server handshake,
// positioned at the first question with no recorded answers.
func NewQuizSession(language string, start *QuizStart) *QuizSession {
	return &QuizSession{
		Language:  language,
		SessionID: start.SessionID,
		Questions: start.Questions,
		Answers:   make(map[string]string),
		StartedAt: start.StartedAt,
		ExpiresAt: start.ExpiresAt,
		TimeLimit: time.Duration(start.TimeLimitMinutes) * time.Minute,
	}
}

// Answer records the selected option for a question. Re-answering
// overwrites the previous selection and does not change the current
// position. Unknown flashcard IDs are ignored.
func (s *QuizSession) Answer(flashcardID, optionID string) {
	for _, q := range s.Questions {
		if q.FlashcardID == flashcardID {
			s.Answers[flashcardID] = optionID
			return
		}
	}
}

// Next advances to the next question, staying in place at the last one.
func (s *QuizSession) Next() {
	if s.CurrentIndex < len(s.Questions)-1 {
		s.CurrentIndex++
	}
}

// Previous steps back to the previous question, staying in place at the first one.
func (s *QuizSession) Previous() {
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
}

// Current returns the question at the current position, or nil for an
// empty question set.
func (s *QuizSession) Current() *QuizQuestion {
	if len(s.Questions) == 0 {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// Answered returns the number of questions with a recorded selection.
func (s *QuizSession) Answered() int {
	return len(s.Answers)
}

// Results scores every question for submission: a question is correct only
// when the selected option matches the correct one, so unanswered
// questions submit as incorrect.
func (s *QuizSession) Results() []PracticeResult {
	results := make([]PracticeResult, 0, len(s.Questions))
	for _, q := range s.Questions {
		results = append(results, PracticeResult{
			FlashcardID: q.FlashcardID,
			IsCorrect:   s.Answers[q.FlashcardID] == q.CorrectOptionID,
		})
	}
	return results
}

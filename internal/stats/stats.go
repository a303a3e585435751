// Package stats computes session statistics as pure functions over
// finished or in-flight sessions. Nothing here performs I/O or reads
// clocks; callers supply every timestamp.
package stats

import (
	"time"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

// PracticeStats summarizes the recorded answers of a practice session.
type PracticeStats struct {
	Total           int
	Correct         int
	Incorrect       int
	Accuracy        float64
	DurationSeconds *int // set only when an end time is known
}

// CalculatePracticeStats scores recorded practice answers. Accuracy is
// taken over all recorded answers and is 0 when nothing was answered.
// Duration is included only when an end time is supplied.
func CalculatePracticeStats(results map[string]bool, startedAt time.Time, endedAt *time.Time) PracticeStats {
	stats := PracticeStats{Total: len(results)}
	for _, correct := range results {
		if correct {
			stats.Correct++
		} else {
			stats.Incorrect++
		}
	}

	if stats.Total > 0 {
		stats.Accuracy = float64(stats.Correct) / float64(stats.Total) * 100
	}

	if endedAt != nil {
		d := int(endedAt.Sub(startedAt).Seconds())
		stats.DurationSeconds = &d
	}

	return stats
}

// QuizStats summarizes a quiz session at a given end time.
type QuizStats struct {
	Total           int
	Correct         int
	Incorrect       int
	Accuracy        float64
	TimeUsedSeconds int
	Expired         bool
}

// CalculateQuizStats scores a quiz at the given end time. Unanswered
// questions count toward the total but toward neither correct nor
// incorrect, so accuracy is taken over answered questions only. This
// intentionally differs from submission scoring, where unanswered
// questions are sent as incorrect.
func CalculateQuizStats(s *entities.QuizSession, endedAt time.Time) QuizStats {
	stats := QuizStats{Total: len(s.Questions)}
	for _, q := range s.Questions {
		selected, ok := s.Answers[q.FlashcardID]
		if !ok {
			continue
		}
		if selected == q.CorrectOptionID {
			stats.Correct++
		} else {
			stats.Incorrect++
		}
	}

	if answered := stats.Correct + stats.Incorrect; answered > 0 {
		stats.Accuracy = float64(stats.Correct) / float64(answered) * 100
	}

	stats.TimeUsedSeconds = int(endedAt.Sub(s.StartedAt).Seconds())
	// Expired only when strictly past the deadline; ending exactly at
	// the deadline still counts as in time.
	stats.Expired = endedAt.After(s.ExpiresAt)

	return stats
}

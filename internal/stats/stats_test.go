package stats

import (
	"math"
	"testing"
	"time"

	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestCalculatePracticeStats(t *testing.T) {
	results := map[string]bool{
		"a": true,
		"b": false,
		"c": true,
	}
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	got := CalculatePracticeStats(results, start, nil)

	if got.Total != 3 {
		t.Errorf("Total = %d, want 3", got.Total)
	}
	if got.Correct != 2 {
		t.Errorf("Correct = %d, want 2", got.Correct)
	}
	if got.Incorrect != 1 {
		t.Errorf("Incorrect = %d, want 1", got.Incorrect)
	}
	if !almostEqual(got.Accuracy, 66.67) {
		t.Errorf("Accuracy = %.4f, want ~66.67", got.Accuracy)
	}
	if got.DurationSeconds != nil {
		t.Errorf("DurationSeconds = %v, want nil without an end time", *got.DurationSeconds)
	}
}

func TestCalculatePracticeStatsDuration(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(95*time.Second + 700*time.Millisecond)

	got := CalculatePracticeStats(map[string]bool{"a": true}, start, &end)

	if got.DurationSeconds == nil {
		t.Fatal("DurationSeconds is nil, want set")
	}
	if *got.DurationSeconds != 95 {
		t.Errorf("DurationSeconds = %d, want 95 (whole seconds)", *got.DurationSeconds)
	}
}

func TestCalculatePracticeStatsEmpty(t *testing.T) {
	got := CalculatePracticeStats(map[string]bool{}, time.Now(), nil)

	if got.Total != 0 || got.Correct != 0 || got.Incorrect != 0 {
		t.Errorf("counts = %d/%d/%d, want all zero", got.Total, got.Correct, got.Incorrect)
	}
	if got.Accuracy != 0 {
		t.Errorf("Accuracy = %.2f, want 0 for empty results", got.Accuracy)
	}
}

func quizSessionForTest(start, expires time.Time) *entities.QuizSession {
	questions := make([]entities.QuizQuestion, 0, 5)
	for _, id := range []string{"q1", "q2", "q3", "q4", "q5"} {
		questions = append(questions, entities.QuizQuestion{
			FlashcardID: id,
			Keyword:     "kw-" + id,
			Options: []entities.QuizOption{
				{ID: "a", Text: "right"},
				{ID: "b", Text: "wrong"},
			},
			CorrectOptionID: "a",
		})
	}
	return &entities.QuizSession{
		Language:  "go",
		SessionID: "sess-1",
		Questions: questions,
		Answers:   make(map[string]string),
		StartedAt: start,
		ExpiresAt: expires,
		TimeLimit: 10 * time.Minute,
	}
}

func TestCalculateQuizStatsPartiallyAnswered(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := quizSessionForTest(start, start.Add(10*time.Minute))
	s.Answers["q1"] = "a"
	s.Answers["q2"] = "a"
	s.Answers["q3"] = "b"
	end := start.Add(130 * time.Second)

	got := CalculateQuizStats(s, end)

	if got.Total != 5 {
		t.Errorf("Total = %d, want 5", got.Total)
	}
	if got.Correct != 2 {
		t.Errorf("Correct = %d, want 2", got.Correct)
	}
	// Unanswered questions count toward neither correct nor incorrect.
	if got.Incorrect != 1 {
		t.Errorf("Incorrect = %d, want 1", got.Incorrect)
	}
	// Accuracy is over answered questions only: 2 of 3.
	if !almostEqual(got.Accuracy, 66.67) {
		t.Errorf("Accuracy = %.4f, want ~66.67", got.Accuracy)
	}
	if got.TimeUsedSeconds != 130 {
		t.Errorf("TimeUsedSeconds = %d, want 130", got.TimeUsedSeconds)
	}
	if got.Expired {
		t.Error("Expired = true, want false before the deadline")
	}
}

func TestCalculateQuizStatsNoAnswers(t *testing.T) {
	start := time.Now()
	s := quizSessionForTest(start, start.Add(10*time.Minute))

	got := CalculateQuizStats(s, start.Add(time.Minute))

	if got.Accuracy != 0 {
		t.Errorf("Accuracy = %.2f, want 0 when nothing answered", got.Accuracy)
	}
	if got.Correct != 0 || got.Incorrect != 0 {
		t.Errorf("Correct/Incorrect = %d/%d, want 0/0", got.Correct, got.Incorrect)
	}
}

func TestCalculateQuizStatsExpiredBoundary(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expires := start.Add(10 * time.Minute)
	s := quizSessionForTest(start, expires)

	// Ending exactly at the deadline is still in time.
	if got := CalculateQuizStats(s, expires); got.Expired {
		t.Error("Expired = true at end == expiresAt, want false")
	}
	if got := CalculateQuizStats(s, expires.Add(time.Second)); !got.Expired {
		t.Error("Expired = false past the deadline, want true")
	}
}

// Submission scoring differs from the stats above: every question gets an
// entry and unanswered questions are sent as incorrect.
func TestQuizResultsScoreUnansweredAsIncorrect(t *testing.T) {
	start := time.Now()
	s := quizSessionForTest(start, start.Add(10*time.Minute))
	s.Answers["q1"] = "a"
	s.Answers["q2"] = "a"
	s.Answers["q3"] = "b"

	results := s.Results()

	if len(results) != 5 {
		t.Fatalf("len(results) = %d, want one entry per question", len(results))
	}

	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}
	if correct != 2 {
		t.Errorf("correct entries = %d, want 2", correct)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m 0s"},
		{200, "3m 20s"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.seconds); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestFormatTimer(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{600, "10:00"},
		{65, "1:05"},
		{9, "0:09"},
		{0, "0:00"},
		{-3, "0:00"},
	}

	for _, c := range cases {
		if got := FormatTimer(c.seconds); got != c.want {
			t.Errorf("FormatTimer(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestMasteryLevel(t *testing.T) {
	cases := []struct {
		accuracy float64
		attempts int
		want     string
	}{
		{0, 0, "Beginner"},
		{100, 1, "Beginner"},
		{55, 3, "Intermediate"},
		{80, 5, "Advanced"},
		{95, 9, "Advanced"},
		{95, 10, "Mastered"},
		{89, 10, "Advanced"},
	}

	for _, c := range cases {
		if got := MasteryLevel(c.accuracy, c.attempts); got != c.want {
			t.Errorf("MasteryLevel(%.0f, %d) = %q, want %q", c.accuracy, c.attempts, got, c.want)
		}
	}
}

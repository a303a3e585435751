package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/keycardsapp/keycards-bot/internal/apiclient"
	"github.com/keycardsapp/keycards-bot/internal/domain/entities"
)

type recordedQuizSubmission struct {
	sessionID string
	results   []entities.PracticeResult
}

type fakeBackend struct {
	cards     []entities.Flashcard
	quizStart *entities.QuizStart

	fetchErr      error
	quizFetchErr  error
	submitErr     error
	quizSubmitErr error

	practiceSubmissions [][]entities.PracticeResult
	quizSubmissions     []recordedQuizSubmission
}

func (f *fakeBackend) PracticeFlashcards(_ context.Context, _, _ string, _ int) ([]entities.Flashcard, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.cards, nil
}

func (f *fakeBackend) SubmitPracticeResults(_ context.Context, _, _ string, results []entities.PracticeResult) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.practiceSubmissions = append(f.practiceSubmissions, results)
	return nil
}

func (f *fakeBackend) QuizQuestions(_ context.Context, _, _ string, _ int) (*entities.QuizStart, error) {
	if f.quizFetchErr != nil {
		return nil, f.quizFetchErr
	}
	return f.quizStart, nil
}

func (f *fakeBackend) SubmitQuizResults(_ context.Context, _, _, sessionID string, results []entities.PracticeResult) error {
	if f.quizSubmitErr != nil {
		return f.quizSubmitErr
	}
	f.quizSubmissions = append(f.quizSubmissions, recordedQuizSubmission{sessionID: sessionID, results: results})
	return nil
}

type fakeTokens struct {
	token string
	err   error
}

func (f *fakeTokens) Token(_ context.Context, _ int64) (string, error) {
	return f.token, f.err
}

type fakeRefresher struct {
	refreshed chan string
}

func newFakeRefresher() *fakeRefresher {
	return &fakeRefresher{refreshed: make(chan string, 4)}
}

func (f *fakeRefresher) Refresh(_ context.Context, _ int64, language string) error {
	f.refreshed <- language
	return nil
}

func testCards() []entities.Flashcard {
	return []entities.Flashcard{
		{ID: "c1", Keyword: "defer"},
		{ID: "c2", Keyword: "chan"},
		{ID: "c3", Keyword: "select"},
	}
}

func testQuizStart() *entities.QuizStart {
	start := time.Now()
	questions := make([]entities.QuizQuestion, 0, 3)
	for _, id := range []string{"q1", "q2", "q3"} {
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
	return &entities.QuizStart{
		SessionID:            "sess-1",
		Questions:            questions,
		StartedAt:            start,
		ExpiresAt:            start.Add(10 * time.Minute),
		TimeLimitMinutes:     10,
		TimeRemainingSeconds: 600,
	}
}

func newTestController(backend *fakeBackend, tokens *fakeTokens, refresher *fakeRefresher) *Controller {
	return NewController(7, backend, tokens, refresher, zap.NewNop())
}

func TestStartPracticeRequiresToken(t *testing.T) {
	backend := &fakeBackend{cards: testCards()}
	tokens := &fakeTokens{err: apiclient.ErrUnauthenticated}
	c := newTestController(backend, tokens, newFakeRefresher())

	_, err := c.StartPractice(context.Background(), "go", 10)
	if !errors.Is(err, apiclient.ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
	if c.Practice() != nil {
		t.Error("no session should exist after a failed start")
	}
}

func TestPracticeNavigationClamps(t *testing.T) {
	c := newTestController(&fakeBackend{cards: testCards()}, &fakeTokens{token: "tok"}, newFakeRefresher())

	s, err := c.StartPractice(context.Background(), "go", 10)
	if err != nil {
		t.Fatalf("StartPractice: %v", err)
	}

	c.PreviousFlashcard()
	if s.CurrentIndex != 0 {
		t.Errorf("index after Previous at start = %d, want 0", s.CurrentIndex)
	}

	for i := 0; i < 5; i++ {
		c.NextFlashcard()
	}
	if s.CurrentIndex != 2 {
		t.Errorf("index after Next past end = %d, want 2", s.CurrentIndex)
	}
}

func TestAnswerFlashcardOverwrites(t *testing.T) {
	c := newTestController(&fakeBackend{cards: testCards()}, &fakeTokens{token: "tok"}, newFakeRefresher())

	s, err := c.StartPractice(context.Background(), "go", 10)
	if err != nil {
		t.Fatalf("StartPractice: %v", err)
	}

	c.AnswerFlashcard("c1", false)
	c.AnswerFlashcard("c1", true)
	c.AnswerFlashcard("unknown", true)

	if got := s.Results["c1"]; !got {
		t.Error("re-answering should overwrite the previous outcome")
	}
	if len(s.Results) != 1 {
		t.Errorf("len(Results) = %d, want 1 (unknown card ignored)", len(s.Results))
	}
	if s.CurrentIndex != 0 {
		t.Errorf("answering moved the index to %d, want 0", s.CurrentIndex)
	}
}

func TestStartPracticeReplacesSession(t *testing.T) {
	c := newTestController(&fakeBackend{cards: testCards()}, &fakeTokens{token: "tok"}, newFakeRefresher())

	first, err := c.StartPractice(context.Background(), "go", 10)
	if err != nil {
		t.Fatalf("StartPractice: %v", err)
	}
	c.AnswerFlashcard("c1", true)
	c.NextFlashcard()

	second, err := c.StartPractice(context.Background(), "go", 10)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}

	if second == first || second.ID == first.ID {
		t.Error("restart should build a fresh session, not reuse the old one")
	}
	if second.CurrentIndex != 0 || len(second.Results) != 0 {
		t.Errorf("fresh session has index %d and %d results, want 0 and 0",
			second.CurrentIndex, len(second.Results))
	}
}

func TestSubmitPracticeWithoutSession(t *testing.T) {
	c := newTestController(&fakeBackend{}, &fakeTokens{token: "tok"}, newFakeRefresher())

	_, err := c.SubmitPractice(context.Background())
	if !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("err = %v, want ErrNoActiveSession", err)
	}
}

func TestSubmitPracticeFailureKeepsSessionForRetry(t *testing.T) {
	backend := &fakeBackend{cards: testCards(), submitErr: errors.New("backend down")}
	refresher := newFakeRefresher()
	c := newTestController(backend, &fakeTokens{token: "tok"}, refresher)

	if _, err := c.StartPractice(context.Background(), "go", 10); err != nil {
		t.Fatalf("StartPractice: %v", err)
	}
	c.AnswerFlashcard("c1", true)
	c.AnswerFlashcard("c2", false)

	got, err := c.SubmitPractice(context.Background())
	if err == nil {
		t.Fatal("SubmitPractice should fail when the backend does")
	}
	if got.Total != 2 || got.Correct != 1 {
		t.Errorf("stats = %d/%d, want computed even on failure", got.Total, got.Correct)
	}
	if c.Practice() == nil {
		t.Fatal("session must be retained after a failed submission")
	}
	if c.Practice().EndTime != nil {
		t.Error("EndTime must not be stamped on failure")
	}

	// Retry succeeds and stamps the end time.
	backend.submitErr = nil
	if _, err := c.SubmitPractice(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if c.Practice().EndTime == nil {
		t.Error("EndTime should be stamped after a successful submission")
	}

	select {
	case lang := <-refresher.refreshed:
		if lang != "go" {
			t.Errorf("refreshed language = %q, want go", lang)
		}
	case <-time.After(time.Second):
		t.Error("progress refresh was not triggered after success")
	}
}

func TestStartQuizSeedsTimerFromServer(t *testing.T) {
	start := testQuizStart()
	start.TimeRemainingSeconds = 42 // deliberately unrelated to the expiry window
	backend := &fakeBackend{quizStart: start}
	c := newTestController(backend, &fakeTokens{token: "tok"}, newFakeRefresher())

	s, err := c.StartQuiz(context.Background(), "go", 10, nil)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	if got := c.TimeRemaining(); got != 42 {
		t.Errorf("TimeRemaining = %d, want the server-issued 42", got)
	}
	if s.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want server-issued sess-1", s.SessionID)
	}
	if got := s.ExpiresAt.Sub(s.StartedAt); got != s.TimeLimit {
		t.Errorf("expiry window = %v, want TimeLimit %v", got, s.TimeLimit)
	}
}

func TestStartQuizReplacesPractice(t *testing.T) {
	backend := &fakeBackend{cards: testCards(), quizStart: testQuizStart()}
	c := newTestController(backend, &fakeTokens{token: "tok"}, newFakeRefresher())

	if _, err := c.StartPractice(context.Background(), "go", 10); err != nil {
		t.Fatalf("StartPractice: %v", err)
	}
	if _, err := c.StartQuiz(context.Background(), "go", 10, nil); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	if c.Practice() != nil {
		t.Error("starting a quiz must replace the practice session")
	}
	if c.Quiz() == nil {
		t.Error("quiz session missing after StartQuiz")
	}
}

func TestSubmitQuizScoresEveryQuestion(t *testing.T) {
	backend := &fakeBackend{quizStart: testQuizStart()}
	c := newTestController(backend, &fakeTokens{token: "tok"}, newFakeRefresher())

	if _, err := c.StartQuiz(context.Background(), "go", 10, nil); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	c.AnswerQuestion("q1", "a")
	c.AnswerQuestion("q2", "b")
	// q3 left unanswered.

	got, err := c.SubmitQuiz(context.Background())
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}

	if got.Total != 3 || got.Correct != 1 || got.Incorrect != 1 {
		t.Errorf("stats = total %d correct %d incorrect %d, want 3/1/1",
			got.Total, got.Correct, got.Incorrect)
	}

	if len(backend.quizSubmissions) != 1 {
		t.Fatalf("submissions = %d, want 1", len(backend.quizSubmissions))
	}
	sub := backend.quizSubmissions[0]
	if sub.sessionID != "sess-1" {
		t.Errorf("submitted sessionID = %q, want sess-1", sub.sessionID)
	}
	if len(sub.results) != 3 {
		t.Fatalf("submitted %d results, want one per question", len(sub.results))
	}
	correct := 0
	for _, r := range sub.results {
		if r.IsCorrect {
			correct++
		}
	}
	// The unanswered question goes out as incorrect.
	if correct != 1 {
		t.Errorf("submitted correct entries = %d, want 1", correct)
	}
}

func TestSubmitQuizExpiredMarksStats(t *testing.T) {
	backend := &fakeBackend{
		quizStart:     testQuizStart(),
		quizSubmitErr: &apiclient.APIError{StatusCode: http.StatusRequestTimeout, Message: "quiz session expired"},
	}
	c := newTestController(backend, &fakeTokens{token: "tok"}, newFakeRefresher())

	if _, err := c.StartQuiz(context.Background(), "go", 10, nil); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	got, err := c.SubmitQuiz(context.Background())
	if err == nil {
		t.Fatal("SubmitQuiz should surface the expired error")
	}
	if !got.Expired {
		t.Error("returned stats should be marked expired")
	}
	if st := c.QuizStats(); st == nil || !st.Expired {
		t.Error("retained stats should be marked expired")
	}
	if c.Quiz() == nil {
		t.Error("session must be retained after a failed submission")
	}
}

func TestEndQuizStopsCountdown(t *testing.T) {
	backend := &fakeBackend{quizStart: testQuizStart()}
	c := newTestController(backend, &fakeTokens{token: "tok"}, newFakeRefresher())

	if _, err := c.StartQuiz(context.Background(), "go", 10, nil); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	c.mu.Lock()
	timer := c.timer
	c.mu.Unlock()

	c.EndQuiz()

	if c.Quiz() != nil {
		t.Error("quiz session should be cleared")
	}
	if c.TimeRemaining() != 0 {
		t.Errorf("TimeRemaining = %d, want 0 after EndQuiz", c.TimeRemaining())
	}

	before := timer.timeRemaining()
	timer.tick()
	if timer.timeRemaining() != before {
		t.Error("ticking a stopped countdown must not mutate it")
	}
}

func TestExpiryGuard(t *testing.T) {
	backend := &fakeBackend{quizStart: testQuizStart()}
	c := newTestController(backend, &fakeTokens{token: "tok"}, newFakeRefresher())

	fired := 0
	onExpire := func() { fired++ }

	if _, err := c.StartQuiz(context.Background(), "go", 10, onExpire); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	// Live unsubmitted session: expiry may trigger.
	c.handleExpiry(onExpire)
	if fired != 1 {
		t.Fatalf("onExpire fired %d times for a live session, want 1", fired)
	}

	// After a submission the guard must block re-triggering.
	if _, err := c.SubmitQuiz(context.Background()); err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	c.handleExpiry(onExpire)
	if fired != 1 {
		t.Errorf("onExpire fired %d times after submission, want still 1", fired)
	}

	// And after the session is gone.
	c.EndQuiz()
	c.handleExpiry(onExpire)
	if fired != 1 {
		t.Errorf("onExpire fired %d times after EndQuiz, want still 1", fired)
	}
}

func TestManagerReturnsSameControllerPerUser(t *testing.T) {
	m := NewManager(&fakeBackend{}, &fakeTokens{token: "tok"}, newFakeRefresher(), zap.NewNop())

	if m.Controller(1) != m.Controller(1) {
		t.Error("same user should get the same controller")
	}
	if m.Controller(1) == m.Controller(2) {
		t.Error("different users should get different controllers")
	}

	first := m.Controller(1)
	m.Drop(1)
	if m.Controller(1) == first {
		t.Error("Drop should discard the user's controller")
	}
}

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 5*time.Second), srv
}

func TestBearerTokenHeader(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})
	defer srv.Close()

	if _, err := client.Languages(context.Background(), "tok-123"); err != nil {
		t.Fatalf("Languages: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestEnvelopeDataDecoding(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"sessionId": "sess-42",
				"questions": [],
				"startedAt": "2026-03-01T12:00:00Z",
				"expiresAt": "2026-03-01T12:10:00Z",
				"timeLimitMinutes": 10,
				"timeRemainingSeconds": 600
			}
		}`))
	})
	defer srv.Close()

	start, err := client.QuizQuestions(context.Background(), "tok", "go", 10)
	if err != nil {
		t.Fatalf("QuizQuestions: %v", err)
	}
	if start.SessionID != "sess-42" {
		t.Errorf("SessionID = %q, want %q", start.SessionID, "sess-42")
	}
	if start.TimeRemainingSeconds != 600 {
		t.Errorf("TimeRemainingSeconds = %d, want 600", start.TimeRemainingSeconds)
	}
	if got := start.ExpiresAt.Sub(start.StartedAt); got != 10*time.Minute {
		t.Errorf("expiry window = %v, want 10m", got)
	}
}

func TestUnauthorizedMapsToErrUnauthenticated(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"invalid token"}`))
	})
	defer srv.Close()

	_, err := client.ProgressSummary(context.Background(), "bad-token")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestBackendFailureSurfacesMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"language not found"}`))
	})
	defer srv.Close()

	_, err := client.Flashcards(context.Background(), "tok", "cobol")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "language not found" {
		t.Errorf("Message = %q, want backend message", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
}

func TestEnvelopeFailureWithoutHTTPError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"errors":["no flashcards generated yet"]}`))
	})
	defer srv.Close()

	_, err := client.Flashcards(context.Background(), "tok", "go")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError for success=false", err)
	}
	if apiErr.Message != "no flashcards generated yet" {
		t.Errorf("Message = %q, want first entry of errors list", apiErr.Message)
	}
}

func TestIsSessionExpired(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"408 status", &APIError{StatusCode: http.StatusRequestTimeout, Message: "too late"}, true},
		{"expired message", &APIError{StatusCode: http.StatusBadRequest, Message: "Quiz session expired"}, true},
		{"timeout message", &APIError{StatusCode: http.StatusBadRequest, Message: "session timeout"}, true},
		{"other api error", &APIError{StatusCode: http.StatusBadRequest, Message: "bad request"}, false},
	}

	for _, c := range cases {
		if got := IsSessionExpired(c.err); got != c.want {
			t.Errorf("%s: IsSessionExpired = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestQuizSubmissionBody(t *testing.T) {
	var body map[string]any
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	defer srv.Close()

	err := client.SubmitQuizResults(context.Background(), "tok", "go", "sess-7", nil)
	if err != nil {
		t.Fatalf("SubmitQuizResults: %v", err)
	}
	if body["sessionId"] != "sess-7" {
		t.Errorf("sessionId = %v, want sess-7", body["sessionId"])
	}
}

package telegram

import "testing"

func TestCallbackDataRoundTrip(t *testing.T) {
	cases := []struct {
		encoded string
		action  string
		params  []string
	}{
		{buildPracticeAnswerCallback(3, true), actionPractice, []string{practiceAnswer, "3", "1"}},
		{buildPracticeNavCallback(navPrev), actionPractice, []string{practiceNav, navPrev}},
		{buildQuizAnswerCallback(2, 1), actionQuiz, []string{quizAnswer, "2", "1"}},
		{buildQuizStartCallback(), actionQuiz, []string{quizStart}},
		{buildProgressCallback(), actionProgress, nil},
		{buildSettingsCallback(settingsLanguage, "go"), actionSettings, []string{settingsLanguage, "go"}},
	}

	for _, c := range cases {
		got := decodeCallback(c.encoded)
		if got.Action != c.action {
			t.Errorf("%q: action = %q, want %q", c.encoded, got.Action, c.action)
		}
		if len(got.Params) != len(c.params) {
			t.Errorf("%q: params = %v, want %v", c.encoded, got.Params, c.params)
			continue
		}
		for i := range c.params {
			if got.Params[i] != c.params[i] {
				t.Errorf("%q: params[%d] = %q, want %q", c.encoded, i, got.Params[i], c.params[i])
			}
		}
	}
}

// Telegram rejects callback payloads over 64 bytes, so the longest
// builders must stay well under the limit.
func TestCallbackDataLength(t *testing.T) {
	longest := []string{
		buildPracticeAnswerCallback(49, false),
		buildQuizAnswerCallback(49, 3),
		buildSettingsCallback(settingsReminderHour, "23"),
		buildProgressLanguageCallback("javascript"),
	}

	for _, data := range longest {
		if len(data) > 64 {
			t.Errorf("callback %q is %d bytes, over the 64-byte limit", data, len(data))
		}
	}
}

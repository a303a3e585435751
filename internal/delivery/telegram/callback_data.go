package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionPractice = "pr"
	actionQuiz     = "qz"
	actionProgress = "progress"
	actionSettings = "settings"
)

// Practice sub-actions.
const (
	practiceShow    = "show"
	practiceAnswer  = "ans"
	practiceNav     = "nav"
	practiceShuffle = "shuffle"
	practiceFinish  = "finish"
	practiceQuit    = "quit"
)

// Quiz sub-actions.
const (
	quizStart  = "start"
	quizAnswer = "ans"
	quizNav    = "nav"
	quizSubmit = "submit"
	quizQuit   = "quit"
)

// Navigation directions.
const (
	navNext = "next"
	navPrev = "prev"
)

// Settings sub-actions.
const (
	settingsMenu         = "menu"
	settingsLanguage     = "lang"
	settingsPracticeLen  = "plen"
	settingsQuizLen      = "qlen"
	settingsReminder     = "reminder"
	settingsReminderHour = "rhour"
)

// Progress sub-actions.
const (
	progressLanguage = "lang"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildPracticeShowCallback builds callback data for revealing the answer.
func buildPracticeShowCallback() string {
	return callbackData{
		Action: actionPractice,
		Params: []string{practiceShow},
	}.encode()
}

// buildPracticeAnswerCallback builds callback data for marking the card at
// the given position as known or missed.
func buildPracticeAnswerCallback(index int, correct bool) string {
	outcome := "0"
	if correct {
		outcome = "1"
	}
	return callbackData{
		Action: actionPractice,
		Params: []string{practiceAnswer, strconv.Itoa(index), outcome},
	}.encode()
}

// buildPracticeNavCallback builds callback data for practice navigation.
func buildPracticeNavCallback(direction string) string {
	return callbackData{
		Action: actionPractice,
		Params: []string{practiceNav, direction},
	}.encode()
}

// buildPracticeShuffleCallback builds callback data for reordering the
// card set before the session starts.
func buildPracticeShuffleCallback() string {
	return callbackData{
		Action: actionPractice,
		Params: []string{practiceShuffle},
	}.encode()
}

// buildPracticeFinishCallback builds callback data for submitting a practice session.
func buildPracticeFinishCallback() string {
	return callbackData{
		Action: actionPractice,
		Params: []string{practiceFinish},
	}.encode()
}

// buildPracticeQuitCallback builds callback data for discarding a practice session.
func buildPracticeQuitCallback() string {
	return callbackData{
		Action: actionPractice,
		Params: []string{practiceQuit},
	}.encode()
}

// buildQuizStartCallback builds callback data for starting a quiz with
// the user's default settings.
func buildQuizStartCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart},
	}.encode()
}

// buildQuizAnswerCallback builds callback data for selecting an option of
// the question at the given position.
func buildQuizAnswerCallback(questionIndex, optionIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, strconv.Itoa(questionIndex), strconv.Itoa(optionIndex)},
	}.encode()
}

// buildQuizNavCallback builds callback data for quiz navigation.
func buildQuizNavCallback(direction string) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizNav, direction},
	}.encode()
}

// buildQuizSubmitCallback builds callback data for submitting a quiz session.
func buildQuizSubmitCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizSubmit},
	}.encode()
}

// buildQuizQuitCallback builds callback data for discarding a quiz session.
func buildQuizQuitCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizQuit},
	}.encode()
}

// buildProgressCallback builds callback data for opening the progress view.
func buildProgressCallback() string {
	return actionProgress
}

// buildProgressLanguageCallback builds callback data for one language's progress.
func buildProgressLanguageCallback(slug string) string {
	return callbackData{
		Action: actionProgress,
		Params: []string{progressLanguage, slug},
	}.encode()
}

// buildSettingsCallback builds callback data for settings-related actions.
func buildSettingsCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionSettings,
		Params: params,
	}.encode()
}

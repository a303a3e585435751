package stats

import "fmt"

// FormatDuration renders whole seconds as "3m 20s", or "45s" under a minute.
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// FormatTimer renders remaining seconds as "M:SS" for the countdown display.
func FormatTimer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// MasteryThreshold maps attempt and accuracy floors to a mastery label.
type MasteryThreshold struct {
	Level       string
	MinAttempts int
	MinAccuracy float64
}

// MasteryThresholds in ascending order of difficulty. These mirror the
// platform-wide levels shown on the progress screens.
var MasteryThresholds = []MasteryThreshold{
	{Level: "Beginner", MinAttempts: 0, MinAccuracy: 0},
	{Level: "Intermediate", MinAttempts: 3, MinAccuracy: 50},
	{Level: "Advanced", MinAttempts: 5, MinAccuracy: 75},
	{Level: "Mastered", MinAttempts: 10, MinAccuracy: 90},
}

// MasteryLevel classifies accuracy and attempt count by scanning from the
// highest threshold down.
func MasteryLevel(accuracy float64, attempts int) string {
	for i := len(MasteryThresholds) - 1; i >= 0; i-- {
		t := MasteryThresholds[i]
		if attempts >= t.MinAttempts && accuracy >= t.MinAccuracy {
			return t.Level
		}
	}
	return MasteryThresholds[0].Level
}

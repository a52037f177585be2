package models

import "time"

// DateLayout is the calendar-day key used for daily answers.
const DateLayout = "2006-01-02"

// Moods accepted by a daily check-in.
const (
	MoodGreat   = "great"
	MoodGood    = "good"
	MoodOkay    = "okay"
	MoodLow     = "low"
	MoodAwful   = "awful"
	MoodUnknown = ""
)

var validMoods = map[string]bool{
	MoodGreat: true,
	MoodGood:  true,
	MoodOkay:  true,
	MoodLow:   true,
	MoodAwful: true,
}

// IsValidMood reports whether mood is empty or one of the known moods.
func IsValidMood(mood string) bool {
	return mood == MoodUnknown || validMoods[mood]
}

// DailyAnswer is the check-in recorded for one calendar day.
type DailyAnswer struct {
	Date       string    `json:"date"`
	Prompt     string    `json:"prompt,omitempty"`
	Answer     string    `json:"answer"`
	Mood       string    `json:"mood,omitempty"`
	AnsweredAt time.Time `json:"answered_at"`
}

type DailyAnswerCounts struct {
	Total int `json:"total"`
}

package models

import "time"

// VoiceDiaryEntry points at a recording in the voice blob namespace.
type VoiceDiaryEntry struct {
	ID              string    `json:"id"`
	AudioRef        string    `json:"audio_ref"`
	Title           string    `json:"title,omitempty"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (v VoiceDiaryEntry) EntityID() string { return v.ID }

type VoiceDiaryCounts struct {
	Total int `json:"total"`
}

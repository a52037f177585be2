package models

import "time"

// Feature keys used in snapshots, recaps and change events.
const (
	FeatureCapsules   = "capsules"
	FeatureGoals      = "goals"
	FeatureVoiceDiary = "voice_diary"
	FeatureJourney    = "journey"
	FeatureLegacy     = "legacy"
	FeaturePhotos     = "photos"
	FeatureDaily      = "daily"
	FeatureStorage    = "storage"
)

// FeatureSummary is one dashboard tile.
type FeatureSummary struct {
	Feature  string `json:"feature"`
	Count    int    `json:"count"`
	Subtitle string `json:"subtitle"`
}

// StorageUsage mirrors storage.StorageInfo so models stay free of adapter imports.
type StorageUsage struct {
	BytesUsed   int64   `json:"bytes_used"`
	BytesQuota  int64   `json:"bytes_quota"`
	PercentUsed float64 `json:"percent_used"`
}

// StatsSnapshot is recomputed on every request and never persisted.
type StatsSnapshot struct {
	GeneratedAt  time.Time        `json:"generated_at"`
	Capsules     CapsuleCounts    `json:"capsules"`
	Goals        GoalCounts       `json:"goals"`
	VoiceDiary   VoiceDiaryCounts `json:"voice_diary"`
	Journey      JourneyCounts    `json:"journey"`
	Legacy       LegacyCounts     `json:"legacy"`
	Photos       int              `json:"photos"`
	DailyAnswers int              `json:"daily_answers"`
	Streak       int              `json:"streak"`
	Storage      StorageUsage     `json:"storage"`
	Features     []FeatureSummary `json:"features"`
	HasAnyData   bool             `json:"has_any_data"`
	// Warnings names the features that could not be read.
	Warnings []string `json:"warnings,omitempty"`
}

// YearRecap summarises one calendar year.
type YearRecap struct {
	Year             int            `json:"year"`
	CapsulesCreated  int            `json:"capsules_created"`
	CapsulesUnlocked int            `json:"capsules_unlocked"`
	GoalsCreated     int            `json:"goals_created"`
	GoalsAchieved    int            `json:"goals_achieved"`
	VoiceEntries     int            `json:"voice_entries"`
	Milestones       []string       `json:"milestones"`
	LegacySealed     int            `json:"legacy_sealed"`
	Photos           int            `json:"photos"`
	DaysAnswered     int            `json:"days_answered"`
	LongestStreak    int            `json:"longest_streak"`
	MoodCounts       map[string]int `json:"mood_counts"`
	TopMood          string         `json:"top_mood,omitempty"`
	Warnings         []string       `json:"warnings,omitempty"`
}

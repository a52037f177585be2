package models

import "time"

// TimeCapsule is a note sealed until UnlockAt. It is never edited after
// creation, only deleted.
type TimeCapsule struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UnlockAt  time.Time `json:"unlock_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (c TimeCapsule) EntityID() string { return c.ID }

// Locked is derived at read time and never stored.
func (c TimeCapsule) Locked(now time.Time) bool {
	return now.Before(c.UnlockAt)
}

// CapsuleView is what callers get to display. Content is empty while the
// capsule is locked.
type CapsuleView struct {
	TimeCapsule
	Locked bool `json:"locked"`
}

type CapsuleCounts struct {
	Total    int `json:"total"`
	Locked   int `json:"locked"`
	Unlocked int `json:"unlocked"`
}

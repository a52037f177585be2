package models

import "time"

// LegacyMessage is a message for the future. Text holds ciphertext when
// Encrypted is set. Withholding the text until UnlockDate is a display rule
// only; the stored record is readable by anyone with access to the store.
type LegacyMessage struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Encrypted  bool      `json:"encrypted,omitempty"`
	UnlockDate time.Time `json:"unlock_date"`
	CreatedAt  time.Time `json:"created_at"`
}

func (m LegacyMessage) EntityID() string { return m.ID }

// LegacyMessageView is what callers get to display.
type LegacyMessageView struct {
	ID         string    `json:"id"`
	Text       string    `json:"text,omitempty"`
	Unlocked   bool      `json:"unlocked"`
	UnlockDate time.Time `json:"unlock_date"`
	CreatedAt  time.Time `json:"created_at"`
}

type LegacyCounts struct {
	Total    int `json:"total"`
	Locked   int `json:"locked"`
	Unlocked int `json:"unlocked"`
}

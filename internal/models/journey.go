package models

import "time"

// JourneyMilestone is one dated moment on the relationship timeline.
type JourneyMilestone struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func (j JourneyMilestone) EntityID() string { return j.ID }

type JourneyPatch struct {
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

type JourneyCounts struct {
	Total    int `json:"total"`
	Upcoming int `json:"upcoming"`
}

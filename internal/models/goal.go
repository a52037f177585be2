package models

import "time"

// Goal is a shared goal that can be toggled between open and achieved.
type Goal struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Achieved   bool       `json:"achieved"`
	CreatedAt  time.Time  `json:"created_at"`
	AchievedAt *time.Time `json:"achieved_at,omitempty"`
}

func (g Goal) EntityID() string { return g.ID }

// GoalPatch holds the fields Update may change; nil means unchanged.
type GoalPatch struct {
	Title    *string `json:"title,omitempty"`
	Achieved *bool   `json:"achieved,omitempty"`
}

type GoalCounts struct {
	Total    int `json:"total"`
	Achieved int `json:"achieved"`
}

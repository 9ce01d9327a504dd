package models

import "time"

type ActivityType string

const (
	ActivityWin     ActivityType = "win"
	ActivityAlert   ActivityType = "alert"
	ActivityInsight ActivityType = "insight"
	ActivityAction  ActivityType = "action"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityWin, ActivityAlert, ActivityInsight, ActivityAction:
		return true
	}
	return false
}

// ActivityItem is one entry of the activity feed.
type ActivityItem struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Entity      *EntityRef   `json:"entity,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	Read        bool         `json:"read"`
}

package models

import "time"

type GoalCategory string

const (
	GoalAcademic   GoalCategory = "academic"
	GoalAttendance GoalCategory = "attendance"
	GoalEngagement GoalCategory = "engagement"
	GoalOperations GoalCategory = "operations"
)

func (c GoalCategory) Valid() bool {
	switch c {
	case GoalAcademic, GoalAttendance, GoalEngagement, GoalOperations:
		return true
	}
	return false
}

type GoalStatus string

const (
	GoalOnTrack  GoalStatus = "on-track"
	GoalAtRisk   GoalStatus = "at-risk"
	GoalAchieved GoalStatus = "achieved"
)

const goalOnTrackRatio = 0.75

// DeriveGoalStatus computes status from progress towards target.
func DeriveGoalStatus(current, target float64) GoalStatus {
	if target <= 0 {
		return GoalAchieved
	}
	ratio := current / target
	switch {
	case ratio >= 1:
		return GoalAchieved
	case ratio >= goalOnTrackRatio:
		return GoalOnTrack
	default:
		return GoalAtRisk
	}
}

type Goal struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Target   float64      `json:"target"`
	Current  float64      `json:"current"`
	Unit     string       `json:"unit"`
	Deadline time.Time    `json:"deadline"`
	Category GoalCategory `json:"category"`
	Status   GoalStatus   `json:"status"`
}

// Refresh recomputes the derived status.
func (g *Goal) Refresh() {
	g.Status = DeriveGoalStatus(g.Current, g.Target)
}

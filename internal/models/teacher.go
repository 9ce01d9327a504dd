package models

// TeacherStatus flags staff needing attention.
type TeacherStatus string

const (
	TeacherStatusActive   TeacherStatus = "active"
	TeacherStatusFlagged  TeacherStatus = "flagged"
	TeacherStatusInactive TeacherStatus = "inactive"
)

type StudentFeedback struct {
	Author  string  `json:"author"`
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
	Date    string  `json:"date"`
}

type CareerEvent struct {
	Year        int    `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Teacher struct {
	ID                string            `db:"id" json:"id"`
	Name              string            `db:"name" json:"name"`
	Email             string            `db:"email" json:"email,omitempty"`
	SchoolID          string            `db:"school_id" json:"schoolId"`
	Role              string            `db:"role" json:"role"`
	Rating            float64           `db:"rating" json:"rating"`
	Status            TeacherStatus     `db:"status" json:"status"`
	PerformanceIssues []string          `db:"-" json:"performanceIssues,omitempty"`
	StudentFeedback   []StudentFeedback `db:"-" json:"studentFeedback,omitempty"`
	CareerTimeline    []CareerEvent     `db:"-" json:"careerTimeline,omitempty"`
}

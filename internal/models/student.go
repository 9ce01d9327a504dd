package models

// StudentStatus is seeded, not computed from live metrics.
type StudentStatus string

const (
	StudentStatusAtRisk    StudentStatus = "at-risk"
	StudentStatusOnTrack   StudentStatus = "on-track"
	StudentStatusExcelling StudentStatus = "excelling"
)

// PerformancePoint is one month of a student's history.
type PerformancePoint struct {
	Month      string  `json:"month"`
	GPA        float64 `json:"gpa"`
	Attendance float64 `json:"attendance"`
}

type Student struct {
	ID                 string             `db:"id" json:"id"`
	Name               string             `db:"name" json:"name"`
	GuardianEmail      string             `db:"guardian_email" json:"guardianEmail,omitempty"`
	SchoolID           string             `db:"school_id" json:"schoolId"`
	Grade              int                `db:"grade" json:"grade"`
	GPA                float64            `db:"gpa" json:"gpa"`
	Attendance         float64            `db:"attendance" json:"attendance"`
	Status             StudentStatus      `db:"status" json:"status"`
	RiskFactors        []string           `db:"-" json:"riskFactors,omitempty"`
	AreasOfFocus       []string           `db:"-" json:"areasOfFocus,omitempty"`
	PerformanceHistory []PerformancePoint `db:"-" json:"performanceHistory,omitempty"`
}

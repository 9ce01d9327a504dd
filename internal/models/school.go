package models

// SchoolStatus reuses the district health scale.
type SchoolStatus = DistrictStatus

// GoalProgress tracks one school goal dimension.
type GoalProgress struct {
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
}

// SchoolGoals are the tracked improvement targets of a school.
type SchoolGoals struct {
	Reading            GoalProgress `json:"reading"`
	Math               GoalProgress `json:"math"`
	Attendance         GoalProgress `json:"attendance"`
	TutoringEngagement GoalProgress `json:"tutoringEngagement"`
}

// AISummary is a canned narrative shown on the school page.
type AISummary struct {
	Headline string   `json:"headline"`
	Details  []string `json:"details"`
}

type School struct {
	ID             string       `db:"id" json:"id"`
	Name           string       `db:"name" json:"name"`
	DistrictID     string       `db:"district_id" json:"districtId"`
	Principal      string       `db:"principal" json:"principal"`
	PrincipalEmail string       `db:"principal_email" json:"principalEmail,omitempty"`
	StudentCount   int          `db:"student_count" json:"studentCount"`
	TeacherCount   int          `db:"teacher_count" json:"teacherCount"`
	Performance    float64      `db:"performance" json:"performance"`
	Attendance     float64      `db:"attendance" json:"attendance"`
	Status         SchoolStatus `db:"status" json:"status"`
	Goals          *SchoolGoals `db:"-" json:"goals,omitempty"`
	AISummary      *AISummary   `db:"-" json:"aiSummary,omitempty"`
}

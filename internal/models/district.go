package models

// DistrictStatus summarises district health.
type DistrictStatus string

const (
	DistrictStatusGood    DistrictStatus = "good"
	DistrictStatusWarning DistrictStatus = "warning"
	DistrictStatusAlert   DistrictStatus = "alert"
)

// District groups schools under one administration.
type District struct {
	ID            string         `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	SchoolIDs     []string       `db:"-" json:"schoolIds"`
	TotalStudents int            `db:"total_students" json:"totalStudents"`
	TotalTeachers int            `db:"total_teachers" json:"totalTeachers"`
	Status        DistrictStatus `db:"status" json:"status"`
}

// DistrictMetrics aggregates the entity collections for the overview.
type DistrictMetrics struct {
	TotalDistricts      int     `json:"totalDistricts"`
	TotalSchools        int     `json:"totalSchools"`
	TotalTeachers       int     `json:"totalTeachers"`
	TotalStudents       int     `json:"totalStudents"`
	AveragePerformance  float64 `json:"averagePerformance"`
	AverageAttendance   float64 `json:"averageAttendance"`
	AverageGPA          float64 `json:"averageGpa"`
	AtRiskStudents      int     `json:"atRiskStudents"`
	ActiveInterventions int     `json:"activeInterventions"`
}

package models

// SeedData is the full set of read-mostly collections loaded at startup.
type SeedData struct {
	Districts []District
	Schools   []School
	Teachers  []Teacher
	Students  []Student
	Skills    []SubjectMastery
	Insights  []Insight
	Dates     []string
	Snapshots []HistoricalSnapshot
	Goals     []Goal
	Activity  []ActivityItem
}

package models

// SubjectMastery is the district-wide mastery percentage of one subject.
type SubjectMastery struct {
	Subject string  `db:"subject" json:"subject"`
	Mastery float64 `db:"mastery" json:"mastery"`
}

type InsightSeverity string

const (
	InsightInfo     InsightSeverity = "info"
	InsightWarning  InsightSeverity = "warning"
	InsightCritical InsightSeverity = "critical"
)

// Insight is a canned observation attached to an entity.
type Insight struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Severity    InsightSeverity `json:"severity"`
	Entity      EntityRef       `json:"entity"`
}

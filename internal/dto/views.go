package dto

import "github.com/noah-isme/district-dashboard-api/internal/models"

// Page payloads. Found is false when the entity is unknown; the entity fields
// then carry placeholder values instead of failing the request.

type DistrictView struct {
	Found         bool                  `json:"found"`
	District      models.District       `json:"district"`
	Schools       []models.School       `json:"schools"`
	Insights      []models.Insight      `json:"insights"`
	Notes         []models.Note         `json:"notes"`
	Interventions []models.Intervention `json:"interventions"`
}

type SchoolView struct {
	Found         bool                       `json:"found"`
	School        models.School              `json:"school"`
	DistrictName  string                     `json:"districtName"`
	Teachers      []models.Teacher           `json:"teachers"`
	Students      []models.Student           `json:"students"`
	AtRisk        []models.Student           `json:"atRisk"`
	Insights      []models.Insight           `json:"insights"`
	Notes         []models.Note              `json:"notes"`
	Interventions []models.Intervention      `json:"interventions"`
	Snapshot      *models.HistoricalSnapshot `json:"snapshot"`
}

type TeacherView struct {
	Found         bool                       `json:"found"`
	Teacher       models.Teacher             `json:"teacher"`
	SchoolName    string                     `json:"schoolName"`
	Insights      []models.Insight           `json:"insights"`
	Notes         []models.Note              `json:"notes"`
	Interventions []models.Intervention      `json:"interventions"`
	Snapshot      *models.HistoricalSnapshot `json:"snapshot"`
}

type StudentView struct {
	Found         bool                       `json:"found"`
	Student       models.Student             `json:"student"`
	SchoolName    string                     `json:"schoolName"`
	Insights      []models.Insight           `json:"insights"`
	Notes         []models.Note              `json:"notes"`
	Interventions []models.Intervention      `json:"interventions"`
	Snapshot      *models.HistoricalSnapshot `json:"snapshot"`
}

package dto

import (
	"time"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

// DashboardOverview is the landing page payload.
type DashboardOverview struct {
	Metrics        models.DistrictMetrics  `json:"metrics"`
	AtRisk         []models.Student        `json:"atRisk"`
	TopSkills      []models.SubjectMastery `json:"topSkills"`
	WeakestSkills  []models.SubjectMastery `json:"weakestSkills"`
	UnreadActivity int                     `json:"unreadActivity"`
	Version        string                  `json:"version"`
	GeneratedAt    time.Time               `json:"generatedAt"`
}

package dto

import "github.com/noah-isme/district-dashboard-api/internal/models"

type SetDateRequest struct {
	Date string `json:"date" validate:"required"`
}

// EntityHistoryResponse answers a snapshot lookup; Snapshot is nil when none exists.
type EntityHistoryResponse struct {
	EntityID string                     `json:"entityId"`
	Date     string                     `json:"date"`
	Snapshot *models.HistoricalSnapshot `json:"snapshot"`
}

package dto

import "github.com/noah-isme/district-dashboard-api/internal/models"

type SetQueryRequest struct {
	Query string `json:"query" validate:"max=200"`
}

// CommandBarResponse is the command bar state plus matches for its query.
type CommandBarResponse struct {
	models.CommandBarState
	Results []models.SearchResult `json:"results"`
}

type StartTransitionRequest struct {
	Label string `json:"label" validate:"max=200"`
}

package models

import "time"

type CommandBarState struct {
	Open  bool   `json:"open"`
	Query string `json:"query"`
}

type TransitionState struct {
	Active    bool       `json:"active"`
	Label     string     `json:"label,omitempty"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
}

// SearchResult is one command bar hit.
type SearchResult struct {
	EntityRef
	Subtitle string `json:"subtitle,omitempty"`
}

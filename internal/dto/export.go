package dto

import "time"

// ExportRequest selects a dataset and output format.
type ExportRequest struct {
	Dataset  string `json:"dataset" validate:"required,oneof=students at-risk teachers schools interventions"`
	Format   string `json:"format" validate:"omitempty,oneof=csv pdf xlsx"`
	SchoolID string `json:"schoolId" validate:"max=64"`
}

// ExportResult describes a rendered export and how to download it.
type ExportResult struct {
	ID          string    `json:"id"`
	Dataset     string    `json:"dataset"`
	Format      string    `json:"format"`
	Rows        int       `json:"rows"`
	Storage     string    `json:"storage"`
	Token       string    `json:"token"`
	DownloadURL string    `json:"downloadUrl"`
	DirectURL   string    `json:"directUrl,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ExportFile is a downloaded export body.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

package models

import "time"

// InterventionType enumerates the administrative actions that can be triggered.
type InterventionType string

const (
	InterventionSendEmail               InterventionType = "send_email"
	InterventionScheduleMeeting         InterventionType = "schedule_meeting"
	InterventionEnrollTutoring          InterventionType = "enroll_tutoring"
	InterventionAssignMentor            InterventionType = "assign_mentor"
	InterventionRequestObservation      InterventionType = "request_observation"
	InterventionParentConference        InterventionType = "parent_conference"
	InterventionFlagForReview           InterventionType = "flag_for_review"
	InterventionProfessionalDevelopment InterventionType = "professional_development"
)

// InterventionTypes lists every supported type in display order.
var InterventionTypes = []InterventionType{
	InterventionSendEmail,
	InterventionScheduleMeeting,
	InterventionEnrollTutoring,
	InterventionAssignMentor,
	InterventionRequestObservation,
	InterventionParentConference,
	InterventionFlagForReview,
	InterventionProfessionalDevelopment,
}

func (t InterventionType) Valid() bool {
	for _, known := range InterventionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label is the human readable action name used in toasts and activity.
func (t InterventionType) Label() string {
	switch t {
	case InterventionSendEmail:
		return "Email sent"
	case InterventionScheduleMeeting:
		return "Meeting scheduled"
	case InterventionEnrollTutoring:
		return "Tutoring enrollment"
	case InterventionAssignMentor:
		return "Mentor assigned"
	case InterventionRequestObservation:
		return "Observation requested"
	case InterventionParentConference:
		return "Parent conference"
	case InterventionFlagForReview:
		return "Flagged for review"
	case InterventionProfessionalDevelopment:
		return "Professional development"
	}
	return string(t)
}

type InterventionStatus string

const (
	InterventionPending    InterventionStatus = "pending"
	InterventionInProgress InterventionStatus = "in_progress"
	InterventionCompleted  InterventionStatus = "completed"
	InterventionCancelled  InterventionStatus = "cancelled"
)

func (s InterventionStatus) Valid() bool {
	switch s {
	case InterventionPending, InterventionInProgress, InterventionCompleted, InterventionCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s InterventionStatus) Terminal() bool {
	return s == InterventionCompleted || s == InterventionCancelled
}

// Active counts towards the overview's active intervention total.
func (s InterventionStatus) Active() bool {
	return s == InterventionPending || s == InterventionInProgress
}

// Intervention records an action taken against an entity.
type Intervention struct {
	ID          string             `json:"id"`
	Type        InterventionType   `json:"type"`
	Target      EntityRef          `json:"target"`
	Status      InterventionStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
}

// InterventionFilter narrows intervention listings.
type InterventionFilter struct {
	Status InterventionStatus
	Type   InterventionType
	Entity *EntityRef
}

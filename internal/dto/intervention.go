package dto

// TriggerInterventionRequest records an action against an entity.
type TriggerInterventionRequest struct {
	Type       string `json:"type" validate:"required"`
	EntityType string `json:"entityType" validate:"required,oneof=district school teacher student"`
	EntityID   string `json:"entityId" validate:"required,max=64"`
	EntityName string `json:"entityName" validate:"max=200"`
}

type UpdateInterventionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

type ShowToastRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=success info warning error"`
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"max=1000"`
}

package dto

type CreateNoteRequest struct {
	EntityType string `json:"entityType" validate:"required,oneof=district school teacher student"`
	EntityID   string `json:"entityId" validate:"required,max=64"`
	EntityName string `json:"entityName" validate:"max=200"`
	Author     string `json:"author" validate:"required,max=120"`
	Content    string `json:"content" validate:"required,max=4000"`
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type noteService interface {
	Create(req dto.CreateNoteRequest) (*models.Note, error)
	Delete(id string) bool
	TogglePin(id string) (*models.Note, error)
	ForEntity(t, id string) ([]models.Note, error)
	List() []models.Note
}

// NoteHandler exposes entity notes.
type NoteHandler struct {
	notes noteService
}

func NewNoteHandler(notes noteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// List godoc
// @Summary List notes
// @Description With entityType and entityId, pinned notes come first, then newest first.
// @Tags Notes
// @Produce json
// @Param entityType query string false "Entity type"
// @Param entityId query string false "Entity ID"
// @Success 200 {object} response.Envelope
// @Router /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	entityType, entityID := c.Query("entityType"), c.Query("entityId")
	if entityType == "" && entityID == "" {
		response.OK(c, h.notes.List())
		return
	}
	notes, err := h.notes.ForEntity(entityType, entityID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, notes)
}

// Create godoc
// @Summary Add a note
// @Tags Notes
// @Accept json
// @Produce json
// @Param payload body dto.CreateNoteRequest true "Note"
// @Success 201 {object} response.Envelope
// @Router /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.notes.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// TogglePin godoc
// @Summary Toggle note pin
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notes/{id}/pin [post]
func (h *NoteHandler) TogglePin(c *gin.Context) {
	note, err := h.notes.TogglePin(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, note)
}

// Delete godoc
// @Summary Delete a note
// @Tags Notes
// @Param id path string true "Note ID"
// @Success 204
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	h.notes.Delete(c.Param("id"))
	response.NoContent(c)
}

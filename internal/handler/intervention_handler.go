package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/service"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type interventionService interface {
	Trigger(req dto.TriggerInterventionRequest) (*models.Intervention, error)
	UpdateStatus(id string, req dto.UpdateInterventionStatusRequest) (*models.Intervention, error)
	Cancel(id string) (*models.Intervention, error)
	Get(id string) (*models.Intervention, error)
	List(q service.InterventionQuery) ([]models.Intervention, error)
	Types() []map[string]string
}

// InterventionHandler exposes intervention actions.
type InterventionHandler struct {
	interventions interventionService
}

func NewInterventionHandler(interventions interventionService) *InterventionHandler {
	return &InterventionHandler{interventions: interventions}
}

// Trigger godoc
// @Summary Trigger an intervention
// @Description Records a pending intervention, shows a toast and schedules completion.
// @Tags Interventions
// @Accept json
// @Produce json
// @Param payload body dto.TriggerInterventionRequest true "Intervention"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /interventions [post]
func (h *InterventionHandler) Trigger(c *gin.Context) {
	var req dto.TriggerInterventionRequest
	if !bindJSON(c, &req) {
		return
	}
	iv, err := h.interventions.Trigger(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, iv)
}

// List godoc
// @Summary List interventions
// @Description Newest first. entityType and entityId must be given together.
// @Tags Interventions
// @Produce json
// @Param status query string false "pending, in_progress, completed or cancelled"
// @Param type query string false "Intervention type"
// @Param entityType query string false "Entity type"
// @Param entityId query string false "Entity ID"
// @Success 200 {object} response.Envelope
// @Router /interventions [get]
func (h *InterventionHandler) List(c *gin.Context) {
	items, err := h.interventions.List(service.InterventionQuery{
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		EntityType: c.Query("entityType"),
		EntityID:   c.Query("entityId"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Types godoc
// @Summary Intervention types
// @Tags Interventions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /interventions/types [get]
func (h *InterventionHandler) Types(c *gin.Context) {
	response.OK(c, h.interventions.Types())
}

// Get godoc
// @Summary Get intervention
// @Tags Interventions
// @Produce json
// @Param id path string true "Intervention ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /interventions/{id} [get]
func (h *InterventionHandler) Get(c *gin.Context) {
	iv, err := h.interventions.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, iv)
}

// UpdateStatus godoc
// @Summary Update intervention status
// @Description Completed and cancelled interventions are terminal.
// @Tags Interventions
// @Accept json
// @Produce json
// @Param id path string true "Intervention ID"
// @Param payload body dto.UpdateInterventionStatusRequest true "Status"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /interventions/{id}/status [patch]
func (h *InterventionHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateInterventionStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	iv, err := h.interventions.UpdateStatus(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, iv)
}

// Cancel godoc
// @Summary Cancel intervention
// @Tags Interventions
// @Produce json
// @Param id path string true "Intervention ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /interventions/{id}/cancel [post]
func (h *InterventionHandler) Cancel(c *gin.Context) {
	iv, err := h.interventions.Cancel(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, iv)
}

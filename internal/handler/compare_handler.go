package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/service"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type compareService interface {
	Add(req dto.AddCompareRequest) (*service.CompareResult, error)
	Remove(id string) models.CompareState
	Clear() models.CompareState
	SetDrawer(open bool) models.CompareState
	State() models.CompareState
}

// CompareHandler exposes the side-by-side selection.
type CompareHandler struct {
	compare compareService
}

func NewCompareHandler(compare compareService) *CompareHandler {
	return &CompareHandler{compare: compare}
}

// State godoc
// @Summary Compare selection
// @Tags Compare
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /compare [get]
func (h *CompareHandler) State(c *gin.Context) {
	response.OK(c, h.compare.State())
}

// Add godoc
// @Summary Add to compare
// @Description A full set or an entity already present leaves the selection unchanged; added reports which.
// @Tags Compare
// @Accept json
// @Produce json
// @Param payload body dto.AddCompareRequest true "Entity"
// @Success 200 {object} response.Envelope
// @Router /compare [post]
func (h *CompareHandler) Add(c *gin.Context) {
	var req dto.AddCompareRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.compare.Add(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Remove godoc
// @Summary Remove from compare
// @Tags Compare
// @Produce json
// @Param id path string true "Entity ID"
// @Success 200 {object} response.Envelope
// @Router /compare/{id} [delete]
func (h *CompareHandler) Remove(c *gin.Context) {
	response.OK(c, h.compare.Remove(c.Param("id")))
}

// Clear godoc
// @Summary Clear compare
// @Tags Compare
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /compare [delete]
func (h *CompareHandler) Clear(c *gin.Context) {
	response.OK(c, h.compare.Clear())
}

// SetDrawer godoc
// @Summary Open or close the compare drawer
// @Tags Compare
// @Accept json
// @Produce json
// @Param payload body dto.SetDrawerRequest true "Drawer"
// @Success 200 {object} response.Envelope
// @Router /compare/drawer [put]
func (h *CompareHandler) SetDrawer(c *gin.Context) {
	var req dto.SetDrawerRequest
	if !bindJSON(c, &req) {
		return
	}
	response.OK(c, h.compare.SetDrawer(req.Open))
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type toastService interface {
	Create(req dto.ShowToastRequest) (*models.Toast, error)
	Dismiss(id string) bool
	List() []models.Toast
}

// ToastHandler exposes the toast queue.
type ToastHandler struct {
	toasts toastService
}

func NewToastHandler(toasts toastService) *ToastHandler {
	return &ToastHandler{toasts: toasts}
}

// List godoc
// @Summary Visible toasts
// @Tags Toasts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /toasts [get]
func (h *ToastHandler) List(c *gin.Context) {
	response.OK(c, h.toasts.List())
}

// Create godoc
// @Summary Show a toast
// @Tags Toasts
// @Accept json
// @Produce json
// @Param payload body dto.ShowToastRequest true "Toast"
// @Success 201 {object} response.Envelope
// @Router /toasts [post]
func (h *ToastHandler) Create(c *gin.Context) {
	var req dto.ShowToastRequest
	if !bindJSON(c, &req) {
		return
	}
	toast, err := h.toasts.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toast)
}

// Dismiss godoc
// @Summary Dismiss a toast
// @Description Unknown ids are a no-op.
// @Tags Toasts
// @Param id path string true "Toast ID"
// @Success 204
// @Router /toasts/{id} [delete]
func (h *ToastHandler) Dismiss(c *gin.Context) {
	h.toasts.Dismiss(c.Param("id"))
	response.NoContent(c)
}

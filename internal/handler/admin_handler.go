package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type seedReloader interface {
	Reload(ctx context.Context) (*dto.SeedReloadResult, error)
}

// AdminHandler exposes maintenance actions.
type AdminHandler struct {
	seed seedReloader
}

func NewAdminHandler(seed seedReloader) *AdminHandler {
	return &AdminHandler{seed: seed}
}

// ReloadSeed godoc
// @Summary Reload entity collections
// @Description Reloads the seed from the configured source and resets time travel.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/seed/reload [post]
func (h *AdminHandler) ReloadSeed(c *gin.Context) {
	result, err := h.seed.Reload(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

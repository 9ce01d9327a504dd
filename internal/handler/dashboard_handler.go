package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/middleware"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type dashboardService interface {
	Overview(ctx context.Context) (*dto.DashboardOverview, bool, error)
}

// DashboardHandler wires the overview service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Overview godoc
// @Summary District overview
// @Description District metrics, at-risk preview, strongest and weakest skills and unread activity.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	overview, cacheHit, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetVersion(c, overview.Version)
	response.JSON(c, http.StatusOK, overview, nil, middleware.ExtractMeta(c, start))
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/realtime"
)

type wsServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

// RealtimeHandler upgrades dashboard clients to the event stream.
type RealtimeHandler struct {
	hub    wsServer
	logger *zap.Logger
}

func NewRealtimeHandler(hub wsServer, logger *zap.Logger) *RealtimeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RealtimeHandler{hub: hub, logger: logger}
}

// Serve godoc
// @Summary Store event stream
// @Description Upgrades to a WebSocket that receives toast, intervention, activity, note, compare and time-travel events.
// @Tags Realtime
// @Success 101
// @Router /ws [get]
func (h *RealtimeHandler) Serve(c *gin.Context) {
	if err := h.hub.ServeWS(c.Writer, c.Request); err != nil {
		// Failures are already answered on the connection.
		if errors.Is(err, realtime.ErrHubStopped) {
			h.logger.Debug("websocket rejected, hub stopped")
			return
		}
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
	}
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type timeTravelService interface {
	State() models.TimeTravelState
	Play() models.TimeTravelState
	Pause() models.TimeTravelState
	Next() models.TimeTravelState
	Prev() models.TimeTravelState
	SetDate(req dto.SetDateRequest) (models.TimeTravelState, error)
	Reset() models.TimeTravelState
	History(entityID, date string) (*dto.EntityHistoryResponse, error)
}

// TimeTravelHandler exposes the historical cursor and playback.
type TimeTravelHandler struct {
	timeline timeTravelService
}

func NewTimeTravelHandler(timeline timeTravelService) *TimeTravelHandler {
	return &TimeTravelHandler{timeline: timeline}
}

// State godoc
// @Summary Time-travel state
// @Tags TimeTravel
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /time-travel [get]
func (h *TimeTravelHandler) State(c *gin.Context) {
	response.OK(c, h.timeline.State())
}

// Play godoc
// @Summary Start playback
// @Description At the latest date playback stays paused.
// @Tags TimeTravel
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /time-travel/play [post]
func (h *TimeTravelHandler) Play(c *gin.Context) {
	response.OK(c, h.timeline.Play())
}

// Pause godoc
// @Summary Pause playback
// @Tags TimeTravel
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /time-travel/pause [post]
func (h *TimeTravelHandler) Pause(c *gin.Context) {
	response.OK(c, h.timeline.Pause())
}

// Next godoc
// @Summary Step forward
// @Tags TimeTravel
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /time-travel/next [post]
func (h *TimeTravelHandler) Next(c *gin.Context) {
	response.OK(c, h.timeline.Next())
}

// Prev godoc
// @Summary Step back
// @Tags TimeTravel
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /time-travel/prev [post]
func (h *TimeTravelHandler) Prev(c *gin.Context) {
	response.OK(c, h.timeline.Prev())
}

// SetDate godoc
// @Summary Jump to a date
// @Tags TimeTravel
// @Accept json
// @Produce json
// @Param payload body dto.SetDateRequest true "Date label"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /time-travel/date [put]
func (h *TimeTravelHandler) SetDate(c *gin.Context) {
	var req dto.SetDateRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.timeline.SetDate(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// Reset godoc
// @Summary Return to the latest date
// @Tags TimeTravel
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /time-travel/reset [post]
func (h *TimeTravelHandler) Reset(c *gin.Context) {
	response.OK(c, h.timeline.Reset())
}

// History godoc
// @Summary Entity snapshot at a date
// @Description Defaults to the current date. A null snapshot means nothing was recorded.
// @Tags TimeTravel
// @Produce json
// @Param entityId path string true "Entity ID"
// @Param date query string false "Month label, e.g. 2024-01"
// @Success 200 {object} response.Envelope
// @Router /time-travel/history/{entityId} [get]
func (h *TimeTravelHandler) History(c *gin.Context) {
	history, err := h.timeline.History(c.Param("entityId"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, history)
}

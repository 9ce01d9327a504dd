package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type viewStateService interface {
	CommandBar() dto.CommandBarResponse
	OpenCommandBar() dto.CommandBarResponse
	CloseCommandBar() dto.CommandBarResponse
	ToggleCommandBar() dto.CommandBarResponse
	SetQuery(req dto.SetQueryRequest) (dto.CommandBarResponse, error)
	Transition() models.TransitionState
	StartTransition(req dto.StartTransitionRequest) (models.TransitionState, error)
	EndTransition() models.TransitionState
}

// ViewStateHandler exposes the command bar and the transition overlay.
type ViewStateHandler struct {
	state viewStateService
}

func NewViewStateHandler(state viewStateService) *ViewStateHandler {
	return &ViewStateHandler{state: state}
}

// CommandBar godoc
// @Summary Command bar state
// @Tags ViewState
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /command-bar [get]
func (h *ViewStateHandler) CommandBar(c *gin.Context) {
	response.OK(c, h.state.CommandBar())
}

// OpenCommandBar godoc
// @Summary Open the command bar
// @Tags ViewState
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /command-bar/open [post]
func (h *ViewStateHandler) OpenCommandBar(c *gin.Context) {
	response.OK(c, h.state.OpenCommandBar())
}

// CloseCommandBar godoc
// @Summary Close the command bar
// @Tags ViewState
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /command-bar/close [post]
func (h *ViewStateHandler) CloseCommandBar(c *gin.Context) {
	response.OK(c, h.state.CloseCommandBar())
}

// ToggleCommandBar godoc
// @Summary Toggle the command bar
// @Tags ViewState
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /command-bar/toggle [post]
func (h *ViewStateHandler) ToggleCommandBar(c *gin.Context) {
	response.OK(c, h.state.ToggleCommandBar())
}

// SetQuery godoc
// @Summary Set the command bar query
// @Tags ViewState
// @Accept json
// @Produce json
// @Param payload body dto.SetQueryRequest true "Query"
// @Success 200 {object} response.Envelope
// @Router /command-bar/query [put]
func (h *ViewStateHandler) SetQuery(c *gin.Context) {
	var req dto.SetQueryRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.state.SetQuery(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// Transition godoc
// @Summary Transition overlay state
// @Tags ViewState
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /transition [get]
func (h *ViewStateHandler) Transition(c *gin.Context) {
	response.OK(c, h.state.Transition())
}

// StartTransition godoc
// @Summary Show the transition overlay
// @Tags ViewState
// @Accept json
// @Produce json
// @Param payload body dto.StartTransitionRequest true "Label"
// @Success 200 {object} response.Envelope
// @Router /transition/start [post]
func (h *ViewStateHandler) StartTransition(c *gin.Context) {
	var req dto.StartTransitionRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.state.StartTransition(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// EndTransition godoc
// @Summary Hide the transition overlay
// @Tags ViewState
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /transition/end [post]
func (h *ViewStateHandler) EndTransition(c *gin.Context) {
	response.OK(c, h.state.EndTransition())
}

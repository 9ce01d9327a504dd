package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type goalService interface {
	List(category string) ([]models.Goal, error)
	Get(id string) (*models.Goal, error)
	Create(req dto.CreateGoalRequest) (*models.Goal, error)
	UpdateProgress(id string, req dto.UpdateGoalProgressRequest) (*models.Goal, error)
	Delete(id string) error
}

// GoalHandler exposes district goals.
type GoalHandler struct {
	goals goalService
}

func NewGoalHandler(goals goalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// List godoc
// @Summary List goals
// @Tags Goals
// @Produce json
// @Param category query string false "academic, attendance, engagement or operations"
// @Success 200 {object} response.Envelope
// @Router /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.goals.List(c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, goals)
}

// Get godoc
// @Summary Get goal
// @Tags Goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	goal, err := h.goals.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, goal)
}

// Create godoc
// @Summary Create goal
// @Description Status is derived from current and target.
// @Tags Goals
// @Accept json
// @Produce json
// @Param payload body dto.CreateGoalRequest true "Goal"
// @Success 201 {object} response.Envelope
// @Router /goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	var req dto.CreateGoalRequest
	if !bindJSON(c, &req) {
		return
	}
	goal, err := h.goals.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, goal)
}

// UpdateProgress godoc
// @Summary Update goal progress
// @Tags Goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param payload body dto.UpdateGoalProgressRequest true "Progress"
// @Success 200 {object} response.Envelope
// @Router /goals/{id}/progress [patch]
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	var req dto.UpdateGoalProgressRequest
	if !bindJSON(c, &req) {
		return
	}
	goal, err := h.goals.UpdateProgress(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, goal)
}

// Delete godoc
// @Summary Delete goal
// @Tags Goals
// @Param id path string true "Goal ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	if err := h.goals.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

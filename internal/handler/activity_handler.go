package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/service"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type activityService interface {
	Create(req service.CreateActivityRequest) (*models.ActivityItem, error)
	List(t string) ([]models.ActivityItem, error)
	UnreadCount() int
	MarkAsRead(id string) (*models.ActivityItem, error)
	MarkAllAsRead() int
	Remove(id string) bool
}

// ActivityHandler exposes the activity feed.
type ActivityHandler struct {
	activity activityService
}

func NewActivityHandler(activity activityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List godoc
// @Summary Activity feed
// @Tags Activity
// @Produce json
// @Param type query string false "win, alert, insight or action"
// @Success 200 {object} response.Envelope
// @Router /activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	items, err := h.activity.List(c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil, map[string]interface{}{"unread": h.activity.UnreadCount()})
}

// Create godoc
// @Summary Add an activity item
// @Tags Activity
// @Accept json
// @Produce json
// @Param payload body service.CreateActivityRequest true "Activity item"
// @Success 201 {object} response.Envelope
// @Router /activity [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	var req service.CreateActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.activity.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UnreadCount godoc
// @Summary Unread activity count
// @Tags Activity
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /activity/unread-count [get]
func (h *ActivityHandler) UnreadCount(c *gin.Context) {
	response.OK(c, gin.H{"unread": h.activity.UnreadCount()})
}

// MarkAsRead godoc
// @Summary Mark an item read
// @Tags Activity
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /activity/{id}/read [post]
func (h *ActivityHandler) MarkAsRead(c *gin.Context) {
	item, err := h.activity.MarkAsRead(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// MarkAllAsRead godoc
// @Summary Mark every item read
// @Tags Activity
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /activity/read-all [post]
func (h *ActivityHandler) MarkAllAsRead(c *gin.Context) {
	response.OK(c, gin.H{"marked": h.activity.MarkAllAsRead()})
}

// Remove godoc
// @Summary Remove an activity item
// @Tags Activity
// @Param id path string true "Activity ID"
// @Success 204
// @Router /activity/{id} [delete]
func (h *ActivityHandler) Remove(c *gin.Context) {
	h.activity.Remove(c.Param("id"))
	response.NoContent(c)
}

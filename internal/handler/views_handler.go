package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type viewsService interface {
	District(id string) dto.DistrictView
	School(id string) dto.SchoolView
	Teacher(id string) dto.TeacherView
	Student(id string) dto.StudentView
}

// ViewsHandler serves composed page payloads. Unknown ids answer 200 with
// found=false.
type ViewsHandler struct {
	views viewsService
}

func NewViewsHandler(views viewsService) *ViewsHandler {
	return &ViewsHandler{views: views}
}

// District godoc
// @Summary District page
// @Tags Views
// @Produce json
// @Param id path string true "District ID"
// @Success 200 {object} response.Envelope
// @Router /views/districts/{id} [get]
func (h *ViewsHandler) District(c *gin.Context) {
	response.OK(c, h.views.District(c.Param("id")))
}

// School godoc
// @Summary School page
// @Tags Views
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /views/schools/{id} [get]
func (h *ViewsHandler) School(c *gin.Context) {
	response.OK(c, h.views.School(c.Param("id")))
}

// Teacher godoc
// @Summary Teacher page
// @Tags Views
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /views/teachers/{id} [get]
func (h *ViewsHandler) Teacher(c *gin.Context) {
	response.OK(c, h.views.Teacher(c.Param("id")))
}

// Student godoc
// @Summary Student page
// @Tags Views
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /views/students/{id} [get]
func (h *ViewsHandler) Student(c *gin.Context) {
	response.OK(c, h.views.Student(c.Param("id")))
}

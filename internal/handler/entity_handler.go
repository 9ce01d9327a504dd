package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type entityService interface {
	District(id string) (*models.District, error)
	School(id string) (*models.School, error)
	Teacher(id string) (*models.Teacher, error)
	Student(id string) (*models.Student, error)
	ListDistricts(f models.EntityFilter) ([]models.District, *models.Pagination)
	ListSchools(f models.EntityFilter) ([]models.School, *models.Pagination)
	ListTeachers(f models.EntityFilter) ([]models.Teacher, *models.Pagination)
	ListStudents(f models.EntityFilter) ([]models.Student, *models.Pagination)
	AtRiskStudents(limit int) []models.Student
	TopSkills(n int) []models.SubjectMastery
	WeakestSkills(n int) []models.SubjectMastery
	Insights(t models.EntityType, id string) ([]models.Insight, error)
	Search(query string, limit int) []models.SearchResult
}

// EntityHandler exposes the read side of the seeded collections.
type EntityHandler struct {
	entities entityService
}

func NewEntityHandler(entities entityService) *EntityHandler {
	return &EntityHandler{entities: entities}
}

// ListDistricts godoc
// @Summary List districts
// @Tags Entities
// @Produce json
// @Param search query string false "Name filter"
// @Param status query string false "good, warning or alert"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /districts [get]
func (h *EntityHandler) ListDistricts(c *gin.Context) {
	items, page := h.entities.ListDistricts(entityFilter(c))
	response.JSON(c, http.StatusOK, items, page)
}

// GetDistrict godoc
// @Summary Get district
// @Tags Entities
// @Produce json
// @Param id path string true "District ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /districts/{id} [get]
func (h *EntityHandler) GetDistrict(c *gin.Context) {
	district, err := h.entities.District(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, district)
}

// ListSchools godoc
// @Summary List schools
// @Tags Entities
// @Produce json
// @Param districtId query string false "District filter"
// @Param search query string false "Name filter"
// @Param status query string false "good, warning or alert"
// @Param sort query string false "name, status, performance or attendance"
// @Param order query string false "asc or desc"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schools [get]
func (h *EntityHandler) ListSchools(c *gin.Context) {
	items, page := h.entities.ListSchools(entityFilter(c))
	response.JSON(c, http.StatusOK, items, page)
}

// GetSchool godoc
// @Summary Get school
// @Tags Entities
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schools/{id} [get]
func (h *EntityHandler) GetSchool(c *gin.Context) {
	school, err := h.entities.School(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, school)
}

// ListTeachers godoc
// @Summary List teachers
// @Tags Entities
// @Produce json
// @Param schoolId query string false "School filter"
// @Param search query string false "Name filter"
// @Param status query string false "active, flagged or inactive"
// @Param sort query string false "name, status or rating"
// @Param order query string false "asc or desc"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *EntityHandler) ListTeachers(c *gin.Context) {
	items, page := h.entities.ListTeachers(entityFilter(c))
	response.JSON(c, http.StatusOK, items, page)
}

// GetTeacher godoc
// @Summary Get teacher
// @Tags Entities
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/{id} [get]
func (h *EntityHandler) GetTeacher(c *gin.Context) {
	teacher, err := h.entities.Teacher(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teacher)
}

// ListStudents godoc
// @Summary List students
// @Tags Entities
// @Produce json
// @Param schoolId query string false "School filter"
// @Param search query string false "Name filter"
// @Param status query string false "at-risk, on-track or excelling"
// @Param grade query int false "Grade"
// @Param sort query string false "name, status, gpa or attendance"
// @Param order query string false "asc or desc"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *EntityHandler) ListStudents(c *gin.Context) {
	items, page := h.entities.ListStudents(entityFilter(c))
	response.JSON(c, http.StatusOK, items, page)
}

// GetStudent godoc
// @Summary Get student
// @Tags Entities
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *EntityHandler) GetStudent(c *gin.Context) {
	student, err := h.entities.Student(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// AtRisk godoc
// @Summary At-risk students
// @Tags Entities
// @Produce json
// @Param limit query int false "Maximum students; 0 returns all"
// @Success 200 {object} response.Envelope
// @Router /students/at-risk [get]
func (h *EntityHandler) AtRisk(c *gin.Context) {
	response.OK(c, h.entities.AtRiskStudents(queryInt(c, "limit", 0)))
}

// Skills godoc
// @Summary Strongest or weakest skills
// @Tags Entities
// @Produce json
// @Param order query string false "top (default) or weakest"
// @Param n query int false "Number of skills" default(5)
// @Success 200 {object} response.Envelope
// @Router /skills [get]
func (h *EntityHandler) Skills(c *gin.Context) {
	n := queryInt(c, "n", 5)
	switch c.DefaultQuery("order", "top") {
	case "top":
		response.OK(c, h.entities.TopSkills(n))
	case "weakest":
		response.OK(c, h.entities.WeakestSkills(n))
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "order must be top or weakest"))
	}
}

// Insights godoc
// @Summary AI insights
// @Tags Entities
// @Produce json
// @Param entityType query string false "Entity type"
// @Param entityId query string false "Entity ID"
// @Success 200 {object} response.Envelope
// @Router /insights [get]
func (h *EntityHandler) Insights(c *gin.Context) {
	insights, err := h.entities.Insights(models.EntityType(c.Query("entityType")), c.Query("entityId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, insights)
}

// Search godoc
// @Summary Search entities by name
// @Tags Entities
// @Produce json
// @Param q query string true "Query"
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Envelope
// @Router /search [get]
func (h *EntityHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "q is required"))
		return
	}
	response.OK(c, h.entities.Search(q, queryInt(c, "limit", 0)))
}

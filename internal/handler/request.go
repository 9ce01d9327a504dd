package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

// bindJSON decodes the request body into dest, writing a 400 on failure.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func entityFilter(c *gin.Context) models.EntityFilter {
	return models.EntityFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		DistrictID: c.Query("districtId"),
		SchoolID:   c.Query("schoolId"),
		Status:     c.Query("status"),
		Grade:      queryInt(c, "grade", 0),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "limit", 20),
		SortBy:     c.Query("sort"),
		SortOrder:  c.Query("order"),
	}
}

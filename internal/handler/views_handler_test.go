package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/repository"
	"github.com/noah-isme/district-dashboard-api/internal/seed"
	"github.com/noah-isme/district-dashboard-api/internal/service"
)

func TestViewsHandlerUnknownEntityDegrades(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fixtures := seed.Fixtures()
	entities, err := repository.NewEntityRepository(fixtures)
	require.NoError(t, err)
	views := service.NewViewsService(entities, repository.NewNoteRepository(), repository.NewInterventionRepository(),
		repository.NewTimeTravelRepository(fixtures.Dates, fixtures.Snapshots))
	h := NewViewsHandler(views)
	r := gin.New()
	r.GET("/views/schools/:id", h.School)
	r.GET("/views/students/:id", h.Student)

	rec := send(r, http.MethodGet, "/views/schools/missing", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope.Data["found"])
	school := envelope.Data["school"].(map[string]interface{})
	assert.Equal(t, service.UnknownSchool, school["name"])

	rec = send(r, http.MethodGet, "/views/students/st1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Data["found"])
	assert.Equal(t, "Lincoln Elementary", envelope.Data["schoolName"])
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/repository"
	"github.com/noah-isme/district-dashboard-api/internal/seed"
	"github.com/noah-isme/district-dashboard-api/internal/service"
)

func newEntityRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo, err := repository.NewEntityRepository(seed.Fixtures())
	require.NoError(t, err)
	h := NewEntityHandler(service.NewEntityService(repo, nil))

	r := gin.New()
	r.GET("/schools", h.ListSchools)
	r.GET("/schools/:id", h.GetSchool)
	r.GET("/students/at-risk", h.AtRisk)
	r.GET("/skills", h.Skills)
	r.GET("/insights", h.Insights)
	r.GET("/search", h.Search)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestEntityHandlerListSchoolsByDistrict(t *testing.T) {
	r := newEntityRouter(t)

	rec := get(r, "/schools?districtId=district-2&limit=1")

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "s4", envelope.Data[0]["id"])
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 2, envelope.Pagination.TotalCount)
	assert.Equal(t, 1, envelope.Pagination.PageSize)
}

func TestEntityHandlerGetSchool(t *testing.T) {
	r := newEntityRouter(t)

	rec := get(r, "/schools/s1")
	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Lincoln Elementary", envelope.Data["name"])

	rec = get(r, "/schools/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var failure errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
	assert.Equal(t, "NOT_FOUND", failure.Error.Code)
}

func TestEntityHandlerAtRiskLimit(t *testing.T) {
	r := newEntityRouter(t)

	rec := get(r, "/students/at-risk?limit=2")

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "st1", envelope.Data[0]["id"])
	assert.Equal(t, "st3", envelope.Data[1]["id"])
}

func TestEntityHandlerSkills(t *testing.T) {
	r := newEntityRouter(t)

	rec := get(r, "/skills?order=weakest&n=1")
	require.Equal(t, http.StatusOK, rec.Code)
	var envelope listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Fractions", envelope.Data[0]["subject"])

	assert.Equal(t, http.StatusBadRequest, get(r, "/skills?order=sideways").Code)
}

func TestEntityHandlerInsights(t *testing.T) {
	r := newEntityRouter(t)

	rec := get(r, "/insights?entityType=student&entityId=st1")
	require.Equal(t, http.StatusOK, rec.Code)
	var envelope listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "ins-4", envelope.Data[0]["id"])

	assert.Equal(t, http.StatusBadRequest, get(r, "/insights?entityType=planet&entityId=x").Code)
}

func TestEntityHandlerSearchRequiresQuery(t *testing.T) {
	r := newEntityRouter(t)

	assert.Equal(t, http.StatusBadRequest, get(r, "/search").Code)

	rec := get(r, "/search?q=lincoln")
	require.Equal(t, http.StatusOK, rec.Code)
	var envelope listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data)
	assert.Equal(t, "s1", envelope.Data[0]["id"])
}

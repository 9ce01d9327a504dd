package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

func TestEntityServiceLookups(t *testing.T) {
	svc := NewEntityService(newFixtureEntities(t), nil)

	school, err := svc.School("s1")
	require.NoError(t, err)
	assert.Equal(t, "Lincoln Elementary", school.Name)

	_, err = svc.Teacher("missing")
	assertAppError(t, err, "NOT_FOUND")
	_, err = svc.Student("missing")
	assertAppError(t, err, "NOT_FOUND")
	_, err = svc.District("missing")
	assertAppError(t, err, "NOT_FOUND")
}

func TestEntityServiceResolveAndContact(t *testing.T) {
	svc := NewEntityService(newFixtureEntities(t), nil)

	ref, ok := svc.Resolve(models.EntityRef{Type: models.EntityTeacher, ID: "t1", Name: "stale"})
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe", ref.Name)

	ref, ok = svc.Resolve(models.EntityRef{Type: models.EntityStudent, ID: "ghost", Name: "Supplied"})
	assert.False(t, ok)
	assert.Equal(t, "Supplied", ref.Name)

	addr, ok := svc.Contact(models.EntityRef{Type: models.EntityTeacher, ID: "t1"})
	require.True(t, ok)
	assert.Equal(t, "j.doe@northvalley.k12.us", addr.Address)

	addr, ok = svc.Contact(models.EntityRef{Type: models.EntityStudent, ID: "st1"})
	require.True(t, ok)
	assert.Equal(t, "brooks.family@mail.example", addr.Address)
	assert.Equal(t, "Guardian of Ethan Brooks", addr.Name)

	addr, ok = svc.Contact(models.EntityRef{Type: models.EntitySchool, ID: "s1"})
	require.True(t, ok)
	assert.Equal(t, "Dr. Maria Rivera", addr.Name)

	_, ok = svc.Contact(models.EntityRef{Type: models.EntityDistrict, ID: "district-1"})
	assert.False(t, ok)
}

func TestEntityServiceListPagination(t *testing.T) {
	svc := NewEntityService(newFixtureEntities(t), nil)

	items, page := svc.ListStudents(models.EntityFilter{Page: 2, PageSize: 3})
	require.Len(t, items, 3)
	assert.Equal(t, "st4", items[0].ID)
	assert.Equal(t, &models.Pagination{Page: 2, PageSize: 3, TotalCount: 10}, page)

	items, page = svc.ListStudents(models.EntityFilter{Status: string(models.StudentStatusAtRisk)})
	assert.Len(t, items, 4)
	assert.Equal(t, 20, page.PageSize)

	schools, page := svc.ListSchools(models.EntityFilter{DistrictID: "district-2", SortBy: "performance", SortOrder: "desc"})
	require.Len(t, schools, 2)
	assert.Equal(t, "s5", schools[0].ID)
	assert.Equal(t, 2, page.TotalCount)
}

func TestEntityServiceAtRiskLimit(t *testing.T) {
	svc := NewEntityService(newFixtureEntities(t), nil)
	assert.Len(t, svc.AtRiskStudents(0), 4)
	limited := svc.AtRiskStudents(2)
	require.Len(t, limited, 2)
	assert.Equal(t, "st1", limited[0].ID)
}

func TestEntityServiceInsightsAndSearch(t *testing.T) {
	svc := NewEntityService(newFixtureEntities(t), nil)

	all, err := svc.Insights("", "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	scoped, err := svc.Insights(models.EntitySchool, "s4")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "ins-2", scoped[0].ID)

	_, err = svc.Insights("planet", "x")
	assertAppError(t, err, "VALIDATION_ERROR")

	results := svc.Search("  lincoln ", 0)
	require.Len(t, results, 1)
	assert.Equal(t, models.EntitySchool, results[0].Type)
	assert.Empty(t, svc.Search("", 5))
}

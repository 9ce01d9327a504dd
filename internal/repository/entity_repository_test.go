package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

func testSeed() models.SeedData {
	return models.SeedData{
		Districts: []models.District{{ID: "district-1", Name: "North Valley", Status: models.DistrictStatusGood}},
		Schools: []models.School{
			{ID: "s1", Name: "Lincoln Elementary", DistrictID: "district-1", StudentCount: 300, TeacherCount: 20, Performance: 80, Attendance: 95},
			{ID: "s2", Name: "Roosevelt Middle", DistrictID: "district-1", StudentCount: 200, TeacherCount: 15, Performance: 70, Attendance: 90},
		},
		Teachers: []models.Teacher{
			{ID: "t1", Name: "Jane Doe", SchoolID: "s1", Status: models.TeacherStatusActive, Rating: 4.5},
			{ID: "t2", Name: "John Roe", SchoolID: "s2", Status: models.TeacherStatusFlagged, Rating: 3.1},
		},
		Students: []models.Student{
			{ID: "st1", Name: "Ava Stone", SchoolID: "s1", GPA: 2.0, Grade: 5, Status: models.StudentStatusAtRisk},
			{ID: "st2", Name: "Ben Lake", SchoolID: "s2", GPA: 3.5, Grade: 7, Status: models.StudentStatusOnTrack},
			{ID: "st3", Name: "Cara Hill", SchoolID: "s1", GPA: 1.8, Grade: 4, Status: models.StudentStatusAtRisk},
			{ID: "st4", Name: "Dan Moss", SchoolID: "s2", GPA: 3.9, Grade: 8, Status: models.StudentStatusExcelling},
		},
		Skills: []models.SubjectMastery{
			{Subject: "Reading", Mastery: 72},
			{Subject: "Math", Mastery: 65},
			{Subject: "Science", Mastery: 72},
			{Subject: "Writing", Mastery: 58},
			{Subject: "History", Mastery: 80},
			{Subject: "Art", Mastery: 65},
		},
		Insights: []models.Insight{
			{ID: "i1", Title: "Attendance dip", Entity: models.EntityRef{Type: models.EntitySchool, ID: "s1"}},
			{ID: "i2", Title: "Rating drop", Entity: models.EntityRef{Type: models.EntityTeacher, ID: "t2"}},
		},
	}
}

func newTestEntityRepo(t *testing.T) *EntityRepository {
	t.Helper()
	repo, err := NewEntityRepository(testSeed())
	require.NoError(t, err)
	return repo
}

func TestEntityRepositoryLookups(t *testing.T) {
	repo := newTestEntityRepo(t)

	school, ok := repo.School("s1")
	require.True(t, ok)
	assert.Equal(t, "district-1", school.DistrictID)

	_, ok = repo.School("nonexistent")
	assert.False(t, ok)

	district, ok := repo.District("district-1")
	require.True(t, ok)
	assert.Equal(t, []string{"s1", "s2"}, district.SchoolIDs)
	assert.Equal(t, 500, district.TotalStudents)
	assert.Equal(t, 35, district.TotalTeachers)

	name, ok := repo.Name(models.EntityTeacher, "t1")
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe", name)
}

func TestStudentsForSchoolContainsEveryStudent(t *testing.T) {
	repo := newTestEntityRepo(t)
	for _, st := range testSeed().Students {
		assert.Contains(t, repo.StudentsForSchool(st.SchoolID), st)
	}
	assert.Empty(t, repo.StudentsForSchool("missing"))
	assert.NotNil(t, repo.TeachersForSchool("missing"))
}

func TestAtRiskStudentsPreservesOrder(t *testing.T) {
	repo := newTestEntityRepo(t)
	atRisk := repo.AtRiskStudents()
	require.Len(t, atRisk, 2)
	assert.Equal(t, "st1", atRisk[0].ID)
	assert.Equal(t, "st3", atRisk[1].ID)
}

func TestSkillRankingStableAndBounded(t *testing.T) {
	repo := newTestEntityRepo(t)

	top := repo.TopSkills(5)
	require.Len(t, top, 5)
	assert.Equal(t, []string{"History", "Reading", "Science", "Math", "Art"}, subjects(top))

	weak := repo.WeakestSkills(3)
	assert.Equal(t, []string{"Writing", "Math", "Art"}, subjects(weak))

	assert.Len(t, repo.TopSkills(50), 6)
	assert.Empty(t, repo.TopSkills(0))
}

func subjects(items []models.SubjectMastery) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, s.Subject)
	}
	return out
}

func TestDistrictMetricsRecomputedAfterReload(t *testing.T) {
	repo := newTestEntityRepo(t)
	m := repo.DistrictMetrics()
	assert.Equal(t, 4, m.TotalStudents)
	assert.Equal(t, 2, m.AtRiskStudents)
	assert.Equal(t, 75.0, m.AveragePerformance)
	assert.Equal(t, 92.5, m.AverageAttendance)
	assert.Equal(t, 2.8, m.AverageGPA)

	v := repo.Version()
	seed := testSeed()
	seed.Students = seed.Students[:1]
	require.NoError(t, repo.Reload(seed))
	assert.Greater(t, repo.Version(), v)

	m = repo.DistrictMetrics()
	assert.Equal(t, 1, m.TotalStudents)
	assert.Equal(t, 1, m.AtRiskStudents)
}

func TestValidateSeedRejectsDanglingReferences(t *testing.T) {
	seed := testSeed()
	seed.Schools = append(seed.Schools, models.School{ID: "s9", DistrictID: "district-x"})
	assert.ErrorContains(t, ValidateSeed(seed), "unknown district")

	seed = testSeed()
	seed.Students = append(seed.Students, models.Student{ID: "st9", SchoolID: "nowhere"})
	assert.ErrorContains(t, ValidateSeed(seed), "unknown school")

	seed = testSeed()
	seed.Teachers = append(seed.Teachers, seed.Teachers[0])
	assert.Error(t, ValidateSeed(seed))

	repo := newTestEntityRepo(t)
	assert.Error(t, repo.Reload(seed))
	_, ok := repo.Teacher("t1")
	assert.True(t, ok, "failed reload keeps previous data")
}

func TestInsightsForEntity(t *testing.T) {
	repo := newTestEntityRepo(t)
	got := repo.InsightsForEntity(models.EntitySchool, "s1")
	require.Len(t, got, 1)
	assert.Equal(t, "i1", got[0].ID)
	assert.Empty(t, repo.InsightsForEntity(models.EntityStudent, "s1"))
}

func TestListStudentsFilterSortPaginate(t *testing.T) {
	repo := newTestEntityRepo(t)

	items, total := repo.ListStudents(models.EntityFilter{SchoolID: "s1"})
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)

	items, total = repo.ListStudents(models.EntityFilter{SortBy: "gpa", SortOrder: "desc", Page: 1, PageSize: 2})
	assert.Equal(t, 4, total)
	require.Len(t, items, 2)
	assert.Equal(t, "st4", items[0].ID)
	assert.Equal(t, "st2", items[1].ID)

	items, _ = repo.ListStudents(models.EntityFilter{Page: 3, PageSize: 2})
	assert.Empty(t, items)

	items, total = repo.ListStudents(models.EntityFilter{Search: "ava"})
	assert.Equal(t, 1, total)
	assert.Equal(t, "st1", items[0].ID)

	schools, _ := repo.ListSchools(models.EntityFilter{SortBy: "performance"})
	assert.Equal(t, "s2", schools[0].ID)
}

func TestSearchAcrossCollections(t *testing.T) {
	repo := newTestEntityRepo(t)
	results := repo.Search("o", 3)
	require.Len(t, results, 3)
	assert.Equal(t, models.EntityDistrict, results[0].Type)
	assert.Equal(t, "s1", results[1].ID)

	assert.Empty(t, repo.Search("   ", 10))
	hits := repo.Search("JANE", 10)
	require.Len(t, hits, 1)
	assert.Equal(t, "t1", hits[0].ID)
}

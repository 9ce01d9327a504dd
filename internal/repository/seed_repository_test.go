package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

func newSeedRepoMock(t *testing.T) (*SeedRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewSeedRepository(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func TestSeedRepositoryLoad(t *testing.T) {
	repo, mock, cleanup := newSeedRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectDistricts)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).AddRow("district-1", "North Valley", "good"))
	mock.ExpectQuery(regexp.QuoteMeta(selectSchools)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "district_id", "principal", "principal_email", "student_count", "teacher_count", "performance", "attendance", "status"}).
			AddRow("s1", "Lincoln Elementary", "district-1", "Dr. Rivera", "rivera@district.local", 300, 20, 80.5, 95.0, "good"))
	mock.ExpectQuery(regexp.QuoteMeta(selectTeachers)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "school_id", "role", "rating", "status"}).
			AddRow("t1", "Jane Doe", "jane@district.local", "s1", "Math", 4.5, "active"))
	mock.ExpectQuery(regexp.QuoteMeta(selectStudents)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "guardian_email", "school_id", "grade", "gpa", "attendance", "status"}).
			AddRow("st1", "Ava Stone", "stone@family.local", "s1", 5, 2.1, 88.0, "at-risk"))
	mock.ExpectQuery(regexp.QuoteMeta(selectSkills)).
		WillReturnRows(sqlmock.NewRows([]string{"subject", "mastery"}).AddRow("Reading", 72.0))

	seed, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, seed.Districts, 1)
	require.Len(t, seed.Schools, 1)
	assert.Equal(t, "Lincoln Elementary", seed.Schools[0].Name)
	assert.Equal(t, "Jane Doe", seed.Teachers[0].Name)
	assert.Equal(t, models.StudentStatusAtRisk, seed.Students[0].Status)
	assert.Equal(t, 72.0, seed.Skills[0].Mastery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRepositoryLoadError(t *testing.T) {
	repo, mock, cleanup := newSeedRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectDistricts)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}))
	mock.ExpectQuery(regexp.QuoteMeta(selectSchools)).WillReturnError(errors.New("relation does not exist"))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load schools")
	assert.NoError(t, mock.ExpectationsWereMet())
}

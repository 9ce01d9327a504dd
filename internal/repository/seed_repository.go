package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

const (
	selectDistricts = `SELECT id, name, status FROM districts ORDER BY position, id`
	selectSchools   = `SELECT id, name, district_id, principal, principal_email, student_count, teacher_count, performance, attendance, status FROM schools ORDER BY position, id`
	selectTeachers  = `SELECT id, name, email, school_id, role, rating, status FROM teachers ORDER BY position, id`
	selectStudents  = `SELECT id, name, guardian_email, school_id, grade, gpa, attendance, status FROM students ORDER BY position, id`
	selectSkills    = `SELECT subject, mastery FROM subject_mastery ORDER BY position, subject`
)

// SeedRepository loads the entity collections from PostgreSQL. Optional
// nested records (goals, summaries, histories) are not stored relationally
// and stay empty when seeding from the database.
type SeedRepository struct {
	db *sqlx.DB
}

func NewSeedRepository(db *sqlx.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// Load reads every collection. The caller merges the result with fixtures
// for the collections the database does not hold.
func (r *SeedRepository) Load(ctx context.Context) (models.SeedData, error) {
	var seed models.SeedData
	if err := r.db.SelectContext(ctx, &seed.Districts, selectDistricts); err != nil {
		return seed, fmt.Errorf("load districts: %w", err)
	}
	if err := r.db.SelectContext(ctx, &seed.Schools, selectSchools); err != nil {
		return seed, fmt.Errorf("load schools: %w", err)
	}
	if err := r.db.SelectContext(ctx, &seed.Teachers, selectTeachers); err != nil {
		return seed, fmt.Errorf("load teachers: %w", err)
	}
	if err := r.db.SelectContext(ctx, &seed.Students, selectStudents); err != nil {
		return seed, fmt.Errorf("load students: %w", err)
	}
	if err := r.db.SelectContext(ctx, &seed.Skills, selectSkills); err != nil {
		return seed, fmt.Errorf("load skills: %w", err)
	}
	return seed, nil
}

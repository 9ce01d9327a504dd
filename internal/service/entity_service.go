package service

import (
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/repository"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
)

const (
	defaultSearchLimit = 8
	maxSearchLimit     = 50
)

type entityStore interface {
	Version() uint64
	District(id string) (models.District, bool)
	School(id string) (models.School, bool)
	Teacher(id string) (models.Teacher, bool)
	Student(id string) (models.Student, bool)
	Name(t models.EntityType, id string) (string, bool)
	SchoolsForDistrict(districtID string) []models.School
	TeachersForSchool(schoolID string) []models.Teacher
	StudentsForSchool(schoolID string) []models.Student
	AtRiskStudents() []models.Student
	DistrictMetrics() models.DistrictMetrics
	TopSkills(n int) []models.SubjectMastery
	WeakestSkills(n int) []models.SubjectMastery
	InsightsForEntity(t models.EntityType, id string) []models.Insight
	Insights() []models.Insight
	ListDistricts(f models.EntityFilter) ([]models.District, int)
	ListSchools(f models.EntityFilter) ([]models.School, int)
	ListTeachers(f models.EntityFilter) ([]models.Teacher, int)
	ListStudents(f models.EntityFilter) ([]models.Student, int)
	Search(query string, limit int) []models.SearchResult
}

// EntityService exposes the read side of the seeded collections. Lookups
// that back a resource endpoint translate absence into NOT_FOUND.
type EntityService struct {
	store  entityStore
	logger *zap.Logger
}

func NewEntityService(store entityStore, logger *zap.Logger) *EntityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityService{store: store, logger: logger}
}

func (s *EntityService) District(id string) (*models.District, error) {
	d, ok := s.store.District(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "district not found")
	}
	return &d, nil
}

func (s *EntityService) School(id string) (*models.School, error) {
	sc, ok := s.store.School(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "school not found")
	}
	return &sc, nil
}

func (s *EntityService) Teacher(id string) (*models.Teacher, error) {
	t, ok := s.store.Teacher(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return &t, nil
}

func (s *EntityService) Student(id string) (*models.Student, error) {
	st, ok := s.store.Student(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return &st, nil
}

// Resolve fills the display name of ref from the store. It reports whether
// the entity exists; unknown entities keep the caller supplied name.
func (s *EntityService) Resolve(ref models.EntityRef) (models.EntityRef, bool) {
	name, ok := s.store.Name(ref.Type, ref.ID)
	if ok {
		ref.Name = name
	}
	return ref, ok
}

// Contact returns the address to notify about an entity: a teacher's own
// address, a student's guardian or a school's principal. Districts have none.
func (s *EntityService) Contact(ref models.EntityRef) (mail.Address, bool) {
	var addr mail.Address
	switch ref.Type {
	case models.EntityTeacher:
		if t, ok := s.store.Teacher(ref.ID); ok {
			addr = mail.Address{Name: t.Name, Address: t.Email}
		}
	case models.EntityStudent:
		if st, ok := s.store.Student(ref.ID); ok {
			addr = mail.Address{Name: "Guardian of " + st.Name, Address: st.GuardianEmail}
		}
	case models.EntitySchool:
		if sc, ok := s.store.School(ref.ID); ok {
			addr = mail.Address{Name: sc.Principal, Address: sc.PrincipalEmail}
		}
	}
	return addr, addr.Address != ""
}

func (s *EntityService) ListDistricts(f models.EntityFilter) ([]models.District, *models.Pagination) {
	items, total := s.store.ListDistricts(f)
	return items, pagination(f, total)
}

func (s *EntityService) ListSchools(f models.EntityFilter) ([]models.School, *models.Pagination) {
	items, total := s.store.ListSchools(f)
	return items, pagination(f, total)
}

func (s *EntityService) ListTeachers(f models.EntityFilter) ([]models.Teacher, *models.Pagination) {
	items, total := s.store.ListTeachers(f)
	return items, pagination(f, total)
}

func (s *EntityService) ListStudents(f models.EntityFilter) ([]models.Student, *models.Pagination) {
	items, total := s.store.ListStudents(f)
	return items, pagination(f, total)
}

func (s *EntityService) SchoolsForDistrict(id string) []models.School {
	return s.store.SchoolsForDistrict(id)
}

func (s *EntityService) TeachersForSchool(id string) []models.Teacher {
	return s.store.TeachersForSchool(id)
}

func (s *EntityService) StudentsForSchool(id string) []models.Student {
	return s.store.StudentsForSchool(id)
}

// AtRiskStudents returns at most limit students; limit <= 0 returns all.
func (s *EntityService) AtRiskStudents(limit int) []models.Student {
	all := s.store.AtRiskStudents()
	if limit > 0 && len(all) > limit {
		return all[:limit]
	}
	return all
}

func (s *EntityService) TopSkills(n int) []models.SubjectMastery {
	return s.store.TopSkills(n)
}

func (s *EntityService) WeakestSkills(n int) []models.SubjectMastery {
	return s.store.WeakestSkills(n)
}

// Insights lists all insights, or those of one entity when t is set.
func (s *EntityService) Insights(t models.EntityType, id string) ([]models.Insight, error) {
	if t == "" {
		return s.store.Insights(), nil
	}
	if !t.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown entity type")
	}
	return s.store.InsightsForEntity(t, id), nil
}

func (s *EntityService) Search(query string, limit int) []models.SearchResult {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.store.Search(strings.TrimSpace(query), limit)
}

func (s *EntityService) Version() uint64 {
	return s.store.Version()
}

func pagination(f models.EntityFilter, total int) *models.Pagination {
	page, size := repository.NormalisePage(f.Page, f.PageSize)
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}

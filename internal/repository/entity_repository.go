package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// EntityRepository holds the seeded district, school, teacher and student
// collections. Collections are replaced wholesale by Reload and never mutated
// in place, so returned values may be shared but must be treated as read-only.
type EntityRepository struct {
	mu sync.RWMutex

	districts []models.District
	schools   []models.School
	teachers  []models.Teacher
	students  []models.Student
	skills    []models.SubjectMastery
	insights  []models.Insight

	districtIdx map[string]int
	schoolIdx   map[string]int
	teacherIdx  map[string]int
	studentIdx  map[string]int

	version        uint64
	metrics        *models.DistrictMetrics
	metricsVersion uint64
}

// NewEntityRepository validates seed and builds the store.
func NewEntityRepository(seed models.SeedData) (*EntityRepository, error) {
	r := &EntityRepository{}
	if err := r.Reload(seed); err != nil {
		return nil, err
	}
	return r, nil
}

// ValidateSeed checks id uniqueness and foreign keys of the entity collections.
func ValidateSeed(seed models.SeedData) error {
	districts := make(map[string]struct{}, len(seed.Districts))
	for _, d := range seed.Districts {
		if d.ID == "" {
			return fmt.Errorf("district with empty id")
		}
		if _, dup := districts[d.ID]; dup {
			return fmt.Errorf("duplicate district id %q", d.ID)
		}
		districts[d.ID] = struct{}{}
	}
	schools := make(map[string]struct{}, len(seed.Schools))
	for _, s := range seed.Schools {
		if s.ID == "" {
			return fmt.Errorf("school with empty id")
		}
		if _, dup := schools[s.ID]; dup {
			return fmt.Errorf("duplicate school id %q", s.ID)
		}
		if _, ok := districts[s.DistrictID]; !ok {
			return fmt.Errorf("school %q references unknown district %q", s.ID, s.DistrictID)
		}
		schools[s.ID] = struct{}{}
	}
	teachers := make(map[string]struct{}, len(seed.Teachers))
	for _, t := range seed.Teachers {
		if _, dup := teachers[t.ID]; dup || t.ID == "" {
			return fmt.Errorf("duplicate or empty teacher id %q", t.ID)
		}
		if _, ok := schools[t.SchoolID]; !ok {
			return fmt.Errorf("teacher %q references unknown school %q", t.ID, t.SchoolID)
		}
		teachers[t.ID] = struct{}{}
	}
	students := make(map[string]struct{}, len(seed.Students))
	for _, s := range seed.Students {
		if _, dup := students[s.ID]; dup || s.ID == "" {
			return fmt.Errorf("duplicate or empty student id %q", s.ID)
		}
		if _, ok := schools[s.SchoolID]; !ok {
			return fmt.Errorf("student %q references unknown school %q", s.ID, s.SchoolID)
		}
		students[s.ID] = struct{}{}
	}
	return nil
}

// Reload validates and swaps in a new set of collections. District school
// lists and totals are recomputed from the schools.
func (r *EntityRepository) Reload(seed models.SeedData) error {
	if err := ValidateSeed(seed); err != nil {
		return err
	}

	districts := make([]models.District, len(seed.Districts))
	copy(districts, seed.Districts)
	districtIdx := indexBy(districts, func(d models.District) string { return d.ID })
	for i := range districts {
		districts[i].SchoolIDs = nil
		districts[i].TotalStudents = 0
		districts[i].TotalTeachers = 0
	}
	for _, s := range seed.Schools {
		d := &districts[districtIdx[s.DistrictID]]
		d.SchoolIDs = append(d.SchoolIDs, s.ID)
		d.TotalStudents += s.StudentCount
		d.TotalTeachers += s.TeacherCount
	}

	schools := append([]models.School(nil), seed.Schools...)
	teachers := append([]models.Teacher(nil), seed.Teachers...)
	students := append([]models.Student(nil), seed.Students...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.districts = districts
	r.schools = schools
	r.teachers = teachers
	r.students = students
	r.skills = append([]models.SubjectMastery(nil), seed.Skills...)
	r.insights = append([]models.Insight(nil), seed.Insights...)
	r.districtIdx = districtIdx
	r.schoolIdx = indexBy(schools, func(s models.School) string { return s.ID })
	r.teacherIdx = indexBy(teachers, func(t models.Teacher) string { return t.ID })
	r.studentIdx = indexBy(students, func(s models.Student) string { return s.ID })
	r.version++
	return nil
}

// Version increments on every Reload.
func (r *EntityRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *EntityRepository) District(id string) (models.District, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.districtIdx[id]; ok {
		return r.districts[i], true
	}
	return models.District{}, false
}

func (r *EntityRepository) School(id string) (models.School, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.schoolIdx[id]; ok {
		return r.schools[i], true
	}
	return models.School{}, false
}

func (r *EntityRepository) Teacher(id string) (models.Teacher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.teacherIdx[id]; ok {
		return r.teachers[i], true
	}
	return models.Teacher{}, false
}

func (r *EntityRepository) Student(id string) (models.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.studentIdx[id]; ok {
		return r.students[i], true
	}
	return models.Student{}, false
}

// Name resolves the display name of any entity.
func (r *EntityRepository) Name(t models.EntityType, id string) (string, bool) {
	switch t {
	case models.EntityDistrict:
		d, ok := r.District(id)
		return d.Name, ok
	case models.EntitySchool:
		s, ok := r.School(id)
		return s.Name, ok
	case models.EntityTeacher:
		tc, ok := r.Teacher(id)
		return tc.Name, ok
	case models.EntityStudent:
		s, ok := r.Student(id)
		return s.Name, ok
	}
	return "", false
}

func (r *EntityRepository) SchoolsForDistrict(districtID string) []models.School {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter(r.schools, func(s models.School) bool { return s.DistrictID == districtID })
}

func (r *EntityRepository) TeachersForSchool(schoolID string) []models.Teacher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter(r.teachers, func(t models.Teacher) bool { return t.SchoolID == schoolID })
}

func (r *EntityRepository) StudentsForSchool(schoolID string) []models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter(r.students, func(s models.Student) bool { return s.SchoolID == schoolID })
}

// AtRiskStudents keeps the seeded relative order.
func (r *EntityRepository) AtRiskStudents() []models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter(r.students, func(s models.Student) bool { return s.Status == models.StudentStatusAtRisk })
}

// DistrictMetrics aggregates the collections. The result is memoised against
// the store version and recomputed lazily after a Reload. ActiveInterventions
// is left for the caller to fill in.
func (r *EntityRepository) DistrictMetrics() models.DistrictMetrics {
	r.mu.RLock()
	if r.metrics != nil && r.metricsVersion == r.version {
		m := *r.metrics
		r.mu.RUnlock()
		return m
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.metrics == nil || r.metricsVersion != r.version {
		m := r.computeMetrics()
		r.metrics = &m
		r.metricsVersion = r.version
	}
	return *r.metrics
}

func (r *EntityRepository) computeMetrics() models.DistrictMetrics {
	m := models.DistrictMetrics{
		TotalDistricts: len(r.districts),
		TotalSchools:   len(r.schools),
		TotalTeachers:  len(r.teachers),
		TotalStudents:  len(r.students),
	}
	if n := len(r.schools); n > 0 {
		var perf, att float64
		for _, s := range r.schools {
			perf += s.Performance
			att += s.Attendance
		}
		m.AveragePerformance = round1(perf / float64(n))
		m.AverageAttendance = round1(att / float64(n))
	}
	if n := len(r.students); n > 0 {
		var gpa float64
		for _, s := range r.students {
			gpa += s.GPA
			if s.Status == models.StudentStatusAtRisk {
				m.AtRiskStudents++
			}
		}
		m.AverageGPA = round2(gpa / float64(n))
	}
	return m
}

// TopSkills returns at most n skills by mastery descending, ties in seed order.
func (r *EntityRepository) TopSkills(n int) []models.SubjectMastery {
	return r.rankSkills(n, func(a, b models.SubjectMastery) bool { return a.Mastery > b.Mastery })
}

// WeakestSkills returns at most n skills by mastery ascending, ties in seed order.
func (r *EntityRepository) WeakestSkills(n int) []models.SubjectMastery {
	return r.rankSkills(n, func(a, b models.SubjectMastery) bool { return a.Mastery < b.Mastery })
}

func (r *EntityRepository) rankSkills(n int, less func(a, b models.SubjectMastery) bool) []models.SubjectMastery {
	if n <= 0 {
		return []models.SubjectMastery{}
	}
	r.mu.RLock()
	sorted := append([]models.SubjectMastery(nil), r.skills...)
	r.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (r *EntityRepository) InsightsForEntity(t models.EntityType, id string) []models.Insight {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter(r.insights, func(in models.Insight) bool { return in.Entity.Matches(t, id) })
}

func (r *EntityRepository) Insights() []models.Insight {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Insight(nil), r.insights...)
}

func (r *EntityRepository) ListDistricts(f models.EntityFilter) ([]models.District, int) {
	r.mu.RLock()
	items := filter(r.districts, func(d models.District) bool {
		return matchesSearch(d.Name, f.Search) && (f.Status == "" || string(d.Status) == f.Status)
	})
	r.mu.RUnlock()

	sortBy(items, f.SortOrder, map[string]func(a, b models.District) bool{
		"name":     func(a, b models.District) bool { return a.Name < b.Name },
		"status":   func(a, b models.District) bool { return a.Status < b.Status },
		"students": func(a, b models.District) bool { return a.TotalStudents < b.TotalStudents },
	}[f.SortBy])
	return paginate(items, f.Page, f.PageSize), len(items)
}

func (r *EntityRepository) ListSchools(f models.EntityFilter) ([]models.School, int) {
	r.mu.RLock()
	items := filter(r.schools, func(s models.School) bool {
		return matchesSearch(s.Name, f.Search) &&
			(f.DistrictID == "" || s.DistrictID == f.DistrictID) &&
			(f.Status == "" || string(s.Status) == f.Status)
	})
	r.mu.RUnlock()

	sortBy(items, f.SortOrder, map[string]func(a, b models.School) bool{
		"name":        func(a, b models.School) bool { return a.Name < b.Name },
		"status":      func(a, b models.School) bool { return a.Status < b.Status },
		"performance": func(a, b models.School) bool { return a.Performance < b.Performance },
		"attendance":  func(a, b models.School) bool { return a.Attendance < b.Attendance },
		"students":    func(a, b models.School) bool { return a.StudentCount < b.StudentCount },
	}[f.SortBy])
	return paginate(items, f.Page, f.PageSize), len(items)
}

func (r *EntityRepository) ListTeachers(f models.EntityFilter) ([]models.Teacher, int) {
	r.mu.RLock()
	items := filter(r.teachers, func(t models.Teacher) bool {
		return matchesSearch(t.Name, f.Search) &&
			(f.SchoolID == "" || t.SchoolID == f.SchoolID) &&
			(f.Status == "" || string(t.Status) == f.Status)
	})
	r.mu.RUnlock()

	sortBy(items, f.SortOrder, map[string]func(a, b models.Teacher) bool{
		"name":   func(a, b models.Teacher) bool { return a.Name < b.Name },
		"status": func(a, b models.Teacher) bool { return a.Status < b.Status },
		"rating": func(a, b models.Teacher) bool { return a.Rating < b.Rating },
	}[f.SortBy])
	return paginate(items, f.Page, f.PageSize), len(items)
}

func (r *EntityRepository) ListStudents(f models.EntityFilter) ([]models.Student, int) {
	r.mu.RLock()
	items := filter(r.students, func(s models.Student) bool {
		return matchesSearch(s.Name, f.Search) &&
			(f.SchoolID == "" || s.SchoolID == f.SchoolID) &&
			(f.Status == "" || string(s.Status) == f.Status) &&
			(f.Grade == 0 || s.Grade == f.Grade)
	})
	r.mu.RUnlock()

	sortBy(items, f.SortOrder, map[string]func(a, b models.Student) bool{
		"name":       func(a, b models.Student) bool { return a.Name < b.Name },
		"status":     func(a, b models.Student) bool { return a.Status < b.Status },
		"gpa":        func(a, b models.Student) bool { return a.GPA < b.GPA },
		"grade":      func(a, b models.Student) bool { return a.Grade < b.Grade },
		"attendance": func(a, b models.Student) bool { return a.Attendance < b.Attendance },
	}[f.SortBy])
	return paginate(items, f.Page, f.PageSize), len(items)
}

// Search matches names case-insensitively across every collection, in
// district, school, teacher, student order.
func (r *EntityRepository) Search(query string, limit int) []models.SearchResult {
	query = strings.TrimSpace(query)
	results := []models.SearchResult{}
	if query == "" || limit <= 0 {
		return results
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	add := func(t models.EntityType, id, name, subtitle string) bool {
		if !matchesSearch(name, query) {
			return true
		}
		results = append(results, models.SearchResult{
			EntityRef: models.EntityRef{Type: t, ID: id, Name: name},
			Subtitle:  subtitle,
		})
		return len(results) < limit
	}
	for _, d := range r.districts {
		if !add(models.EntityDistrict, d.ID, d.Name, "District") {
			return results
		}
	}
	for _, s := range r.schools {
		if !add(models.EntitySchool, s.ID, s.Name, "Principal "+s.Principal) {
			return results
		}
	}
	for _, t := range r.teachers {
		if !add(models.EntityTeacher, t.ID, t.Name, t.Role) {
			return results
		}
	}
	for _, s := range r.students {
		if !add(models.EntityStudent, s.ID, s.Name, fmt.Sprintf("Grade %d", s.Grade)) {
			return results
		}
	}
	return results
}

func indexBy[T any](items []T, key func(T) string) map[string]int {
	idx := make(map[string]int, len(items))
	for i, item := range items {
		idx[key(item)] = i
	}
	return idx
}

// filter always returns a non-nil slice so empty results encode as [].
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func sortBy[T any](items []T, order string, less func(a, b T) bool) {
	if less == nil {
		return
	}
	desc := strings.EqualFold(order, "desc")
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func paginate[T any](items []T, page, size int) []T {
	page, size = NormalisePage(page, size)
	start := (page - 1) * size
	if start >= len(items) {
		return make([]T, 0)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func matchesSearch(name, query string) bool {
	query = strings.TrimSpace(query)
	return query == "" || strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

func round1(v float64) float64 { return float64(int64(v*10+0.5)) / 10 }

func round2(v float64) float64 { return float64(int64(v*100+0.5)) / 100 }

// NormalisePage clamps page and size the same way list queries do.
func NormalisePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

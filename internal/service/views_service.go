package service

import (
	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
)

// Placeholder names used when a page is requested for an unknown entity.
const (
	UnknownDistrict = "Unknown District"
	UnknownSchool   = "Unknown School"
	UnknownTeacher  = "Unknown Teacher"
	UnknownStudent  = "Unknown Student"
)

type viewEntities interface {
	District(id string) (models.District, bool)
	School(id string) (models.School, bool)
	Teacher(id string) (models.Teacher, bool)
	Student(id string) (models.Student, bool)
	SchoolsForDistrict(districtID string) []models.School
	TeachersForSchool(schoolID string) []models.Teacher
	StudentsForSchool(schoolID string) []models.Student
	InsightsForEntity(t models.EntityType, id string) []models.Insight
}

type viewNotes interface {
	ForEntity(t models.EntityType, id string) []models.Note
}

type viewInterventions interface {
	ForEntity(t models.EntityType, id string) []models.Intervention
}

type viewHistory interface {
	DataForDate(entityID, date string) *models.HistoricalSnapshot
}

// ViewsService composes the page payloads. Unknown ids never fail; the
// payload reports found=false with placeholder values.
type ViewsService struct {
	entities      viewEntities
	notes         viewNotes
	interventions viewInterventions
	history       viewHistory
}

func NewViewsService(entities viewEntities, notes viewNotes, interventions viewInterventions, history viewHistory) *ViewsService {
	return &ViewsService{entities: entities, notes: notes, interventions: interventions, history: history}
}

func (s *ViewsService) District(id string) dto.DistrictView {
	d, found := s.entities.District(id)
	if !found {
		d = models.District{ID: id, Name: UnknownDistrict, SchoolIDs: []string{}}
	}
	return dto.DistrictView{
		Found:         found,
		District:      d,
		Schools:       s.entities.SchoolsForDistrict(id),
		Insights:      s.entities.InsightsForEntity(models.EntityDistrict, id),
		Notes:         s.notes.ForEntity(models.EntityDistrict, id),
		Interventions: s.interventions.ForEntity(models.EntityDistrict, id),
	}
}

func (s *ViewsService) School(id string) dto.SchoolView {
	sc, found := s.entities.School(id)
	if !found {
		sc = models.School{ID: id, Name: UnknownSchool}
	}
	students := s.entities.StudentsForSchool(id)
	atRisk := make([]models.Student, 0, len(students))
	for _, st := range students {
		if st.Status == models.StudentStatusAtRisk {
			atRisk = append(atRisk, st)
		}
	}
	return dto.SchoolView{
		Found:         found,
		School:        sc,
		DistrictName:  s.districtName(sc.DistrictID),
		Teachers:      s.entities.TeachersForSchool(id),
		Students:      students,
		AtRisk:        atRisk,
		Insights:      s.entities.InsightsForEntity(models.EntitySchool, id),
		Notes:         s.notes.ForEntity(models.EntitySchool, id),
		Interventions: s.interventions.ForEntity(models.EntitySchool, id),
		Snapshot:      s.snapshot(id),
	}
}

func (s *ViewsService) Teacher(id string) dto.TeacherView {
	t, found := s.entities.Teacher(id)
	if !found {
		t = models.Teacher{ID: id, Name: UnknownTeacher}
	}
	return dto.TeacherView{
		Found:         found,
		Teacher:       t,
		SchoolName:    s.schoolName(t.SchoolID),
		Insights:      s.entities.InsightsForEntity(models.EntityTeacher, id),
		Notes:         s.notes.ForEntity(models.EntityTeacher, id),
		Interventions: s.interventions.ForEntity(models.EntityTeacher, id),
		Snapshot:      s.snapshot(id),
	}
}

func (s *ViewsService) Student(id string) dto.StudentView {
	st, found := s.entities.Student(id)
	if !found {
		st = models.Student{ID: id, Name: UnknownStudent}
	}
	return dto.StudentView{
		Found:         found,
		Student:       st,
		SchoolName:    s.schoolName(st.SchoolID),
		Insights:      s.entities.InsightsForEntity(models.EntityStudent, id),
		Notes:         s.notes.ForEntity(models.EntityStudent, id),
		Interventions: s.interventions.ForEntity(models.EntityStudent, id),
		Snapshot:      s.snapshot(id),
	}
}

func (s *ViewsService) schoolName(id string) string {
	if sc, ok := s.entities.School(id); ok {
		return sc.Name
	}
	return UnknownSchool
}

func (s *ViewsService) districtName(id string) string {
	if d, ok := s.entities.District(id); ok {
		return d.Name
	}
	return UnknownDistrict
}

func (s *ViewsService) snapshot(id string) *models.HistoricalSnapshot {
	if s.history == nil {
		return nil
	}
	return s.history.DataForDate(id, "")
}

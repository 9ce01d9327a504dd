package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
)

type compareStore interface {
	Add(e models.CompareEntity) (models.CompareState, bool)
	Remove(id string) (models.CompareState, bool)
	Clear() models.CompareState
	SetDrawer(open bool) models.CompareState
	State() models.CompareState
}

type compareEntities interface {
	District(id string) (models.District, bool)
	School(id string) (models.School, bool)
	Teacher(id string) (models.Teacher, bool)
	Student(id string) (models.Student, bool)
}

// CompareResult reports the selection after an add and whether it changed.
type CompareResult struct {
	models.CompareState
	Added bool `json:"added"`
}

// CompareService manages the bounded side-by-side selection.
type CompareService struct {
	store     compareStore
	entities  compareEntities
	publisher EventPublisher
	validator *validator.Validate
	logger    *zap.Logger
}

func NewCompareService(store compareStore, entities compareEntities, publisher EventPublisher, validate *validator.Validate, logger *zap.Logger) *CompareService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompareService{
		store:     store,
		entities:  entities,
		publisher: publisherOrNop(publisher),
		validator: validatorOrDefault(validate),
		logger:    logger,
	}
}

// Add selects an entity. Already selected entities and adds beyond capacity
// leave the selection unchanged.
func (s *CompareService) Add(req dto.AddCompareRequest) (*CompareResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid compare payload")
	}
	id, err := requiredID(req.ID, "id")
	if err != nil {
		return nil, err
	}
	entity := s.describe(models.EntityType(req.Type), id, strings.TrimSpace(req.Name))
	state, added := s.store.Add(entity)
	if added {
		s.publisher.Publish(TopicCompareChanged, state)
	} else {
		s.logger.Debug("compare add ignored", zap.String("entity_id", entity.ID), zap.Int("selected", len(state.Items)))
	}
	return &CompareResult{CompareState: state, Added: added}, nil
}

// describe fills name and metrics for known entities.
func (s *CompareService) describe(t models.EntityType, id, name string) models.CompareEntity {
	e := models.CompareEntity{ID: id, Type: t, Name: name}
	if s.entities == nil {
		return e
	}
	switch t {
	case models.EntityDistrict:
		if d, ok := s.entities.District(id); ok {
			e.Name = d.Name
			e.Metrics = map[string]float64{
				"schools":  float64(len(d.SchoolIDs)),
				"students": float64(d.TotalStudents),
				"teachers": float64(d.TotalTeachers),
			}
		}
	case models.EntitySchool:
		if sc, ok := s.entities.School(id); ok {
			e.Name = sc.Name
			e.Metrics = map[string]float64{
				"performance": sc.Performance,
				"attendance":  sc.Attendance,
				"students":    float64(sc.StudentCount),
				"teachers":    float64(sc.TeacherCount),
			}
		}
	case models.EntityTeacher:
		if t, ok := s.entities.Teacher(id); ok {
			e.Name = t.Name
			e.Metrics = map[string]float64{"rating": t.Rating}
		}
	case models.EntityStudent:
		if st, ok := s.entities.Student(id); ok {
			e.Name = st.Name
			e.Metrics = map[string]float64{"gpa": st.GPA, "attendance": st.Attendance, "grade": float64(st.Grade)}
		}
	}
	if e.Name == "" {
		e.Name = id
	}
	return e
}

// Remove is a no-op for ids not in the selection.
func (s *CompareService) Remove(id string) models.CompareState {
	state, removed := s.store.Remove(id)
	if removed {
		s.publisher.Publish(TopicCompareChanged, state)
	}
	return state
}

func (s *CompareService) Clear() models.CompareState {
	state := s.store.Clear()
	s.publisher.Publish(TopicCompareChanged, state)
	return state
}

func (s *CompareService) SetDrawer(open bool) models.CompareState {
	state := s.store.SetDrawer(open)
	s.publisher.Publish(TopicCompareChanged, state)
	return state
}

func (s *CompareService) State() models.CompareState {
	return s.store.State()
}

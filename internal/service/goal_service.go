package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
)

type goalStore interface {
	Create(g models.Goal) models.Goal
	Get(id string) (models.Goal, bool)
	List(c models.GoalCategory) []models.Goal
	UpdateProgress(id string, current float64) (models.Goal, error)
	Delete(id string) bool
}

// GoalService manages district goals. Status is always derived from
// progress and never accepted from clients.
type GoalService struct {
	store     goalStore
	publisher EventPublisher
	validator *validator.Validate
	logger    *zap.Logger
}

func NewGoalService(store goalStore, publisher EventPublisher, validate *validator.Validate, logger *zap.Logger) *GoalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalService{store: store, publisher: publisherOrNop(publisher), validator: validatorOrDefault(validate), logger: logger}
}

func (s *GoalService) List(category string) ([]models.Goal, error) {
	c := models.GoalCategory(category)
	if c != "" && !c.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown goal category")
	}
	return s.store.List(c), nil
}

func (s *GoalService) Get(id string) (*models.Goal, error) {
	g, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "goal not found")
	}
	return &g, nil
}

func (s *GoalService) Create(req dto.CreateGoalRequest) (*models.Goal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid goal payload")
	}
	if req.Deadline.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "deadline is required")
	}
	g := s.store.Create(models.Goal{
		ID:       newID(),
		Title:    strings.TrimSpace(req.Title),
		Target:   req.Target,
		Current:  req.Current,
		Unit:     strings.TrimSpace(req.Unit),
		Deadline: req.Deadline.UTC(),
		Category: models.GoalCategory(req.Category),
	})
	s.publisher.Publish(TopicGoalChanged, g)
	return &g, nil
}

func (s *GoalService) UpdateProgress(id string, req dto.UpdateGoalProgressRequest) (*models.Goal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid progress payload")
	}
	g, err := s.store.UpdateProgress(id, *req.Current)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "goal not found")
	}
	s.publisher.Publish(TopicGoalChanged, g)
	return &g, nil
}

func (s *GoalService) Delete(id string) error {
	if !s.store.Delete(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "goal not found")
	}
	s.publisher.Publish(TopicGoalChanged, map[string]string{"deleted": id})
	return nil
}

package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
)

type activityStore interface {
	Add(item models.ActivityItem)
	MarkAllAsRead() int
	MarkAsRead(id string) (models.ActivityItem, bool)
	Remove(id string) bool
	UnreadCount() int
	List(t models.ActivityType) []models.ActivityItem
	Version() uint64
}

// CreateActivityRequest posts an item to the feed.
type CreateActivityRequest struct {
	Type        string            `json:"type" validate:"required,oneof=win alert insight action"`
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description" validate:"max=1000"`
	Entity      *models.EntityRef `json:"entity"`
}

// ActivityService manages the activity feed.
type ActivityService struct {
	store     activityStore
	publisher EventPublisher
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewActivityService(store activityStore, publisher EventPublisher, validate *validator.Validate, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		store:     store,
		publisher: publisherOrNop(publisher),
		validator: validatorOrDefault(validate),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ActivityService) Create(req CreateActivityRequest) (*models.ActivityItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid activity payload")
	}
	if req.Entity != nil && !req.Entity.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown entity type")
	}
	item := s.Record(models.ActivityType(req.Type), strings.TrimSpace(req.Title), strings.TrimSpace(req.Description), req.Entity)
	return &item, nil
}

// Record prepends an unread item to the feed.
func (s *ActivityService) Record(t models.ActivityType, title, description string, entity *models.EntityRef) models.ActivityItem {
	item := models.ActivityItem{
		ID:          newID(),
		Type:        t,
		Title:       title,
		Description: description,
		Entity:      entity,
		Timestamp:   s.now().UTC(),
	}
	s.store.Add(item)
	s.publisher.Publish(TopicActivityAdded, item)
	return item
}

// List filters by type when one is given.
func (s *ActivityService) List(t string) ([]models.ActivityItem, error) {
	kind := models.ActivityType(t)
	if kind != "" && !kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown activity type")
	}
	return s.store.List(kind), nil
}

func (s *ActivityService) UnreadCount() int {
	return s.store.UnreadCount()
}

func (s *ActivityService) MarkAsRead(id string) (*models.ActivityItem, error) {
	item, ok := s.store.MarkAsRead(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "activity item not found")
	}
	s.publisher.Publish(TopicActivityUpdated, item)
	return &item, nil
}

// MarkAllAsRead returns how many items changed.
func (s *ActivityService) MarkAllAsRead() int {
	n := s.store.MarkAllAsRead()
	if n > 0 {
		s.publisher.Publish(TopicActivityUpdated, map[string]int{"marked": n})
	}
	return n
}

// Remove is a no-op for unknown ids.
func (s *ActivityService) Remove(id string) bool {
	if !s.store.Remove(id) {
		return false
	}
	s.publisher.Publish(TopicActivityUpdated, map[string]string{"removed": id})
	return true
}

package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
)

type noteStore interface {
	Add(n models.Note)
	Delete(id string) bool
	TogglePin(id string) (models.Note, bool)
	ForEntity(t models.EntityType, id string) []models.Note
	List() []models.Note
}

type entityResolver interface {
	Resolve(ref models.EntityRef) (models.EntityRef, bool)
}

// NoteService manages free-form notes attached to entities.
type NoteService struct {
	store     noteStore
	entities  entityResolver
	publisher EventPublisher
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewNoteService(store noteStore, entities entityResolver, publisher EventPublisher, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{
		store:     store,
		entities:  entities,
		publisher: publisherOrNop(publisher),
		validator: validatorOrDefault(validate),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *NoteService) Create(req dto.CreateNoteRequest) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid note payload")
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "note content is empty")
	}
	entityID, err := requiredID(req.EntityID, "entityId")
	if err != nil {
		return nil, err
	}
	target := models.EntityRef{Type: models.EntityType(req.EntityType), ID: entityID, Name: strings.TrimSpace(req.EntityName)}
	if s.entities != nil {
		target, _ = s.entities.Resolve(target)
	}
	note := models.Note{
		ID:        newID(),
		Target:    target,
		Author:    strings.TrimSpace(req.Author),
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	s.store.Add(note)
	s.publisher.Publish(TopicNoteAdded, note)
	return &note, nil
}

// Delete is a no-op for unknown ids.
func (s *NoteService) Delete(id string) bool {
	if !s.store.Delete(id) {
		return false
	}
	s.publisher.Publish(TopicNoteDeleted, map[string]string{"id": id})
	return true
}

func (s *NoteService) TogglePin(id string) (*models.Note, error) {
	note, ok := s.store.TogglePin(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "note not found")
	}
	s.publisher.Publish(TopicNoteUpdated, note)
	return &note, nil
}

// ForEntity returns pinned notes first, then newest first.
func (s *NoteService) ForEntity(t, id string) ([]models.Note, error) {
	kind := models.EntityType(t)
	if !kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown entity type")
	}
	return s.store.ForEntity(kind, id), nil
}

func (s *NoteService) List() []models.Note {
	return s.store.List()
}

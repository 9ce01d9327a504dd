package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/repository"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
	"github.com/noah-isme/district-dashboard-api/pkg/jobs"
)

type interventionStore interface {
	Add(iv models.Intervention)
	Get(id string) (models.Intervention, bool)
	Update(id string, fn func(*models.Intervention) error) (models.Intervention, error)
	ForEntity(t models.EntityType, id string) []models.Intervention
	List(f models.InterventionFilter) []models.Intervention
	CountActive() int
}

type entityDirectory interface {
	Resolve(ref models.EntityRef) (models.EntityRef, bool)
	Contact(ref models.EntityRef) (mail.Address, bool)
}

type toaster interface {
	Show(kind models.ToastKind, title, message string) models.Toast
}

type activityRecorder interface {
	Record(t models.ActivityType, title, description string, entity *models.EntityRef) models.ActivityItem
}

type interventionMailer interface {
	EnqueueIntervention(iv models.Intervention, to mail.Address) error
}

// InterventionQuery narrows intervention listings.
type InterventionQuery struct {
	Status     string
	Type       string
	EntityType string
	EntityID   string
}

// InterventionServiceParams groups InterventionService dependencies.
type InterventionServiceParams struct {
	Store           interventionStore
	Entities        entityDirectory
	Toasts          toaster
	Activity        activityRecorder
	Mailer          interventionMailer
	Scheduler       scheduler
	Publisher       EventPublisher
	Metrics         *MetricsService
	Validator       *validator.Validate
	Logger          *zap.Logger
	CompletionDelay time.Duration
}

// InterventionService records actions taken against entities. New
// interventions start pending and complete after a simulated delay unless
// their status is changed first.
type InterventionService struct {
	store     interventionStore
	entities  entityDirectory
	toasts    toaster
	activity  activityRecorder
	mailer    interventionMailer
	scheduler scheduler
	publisher EventPublisher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	delay     time.Duration
	now       func() time.Time

	mu     sync.Mutex
	timers map[string]*jobs.Handle
}

func NewInterventionService(p InterventionServiceParams) *InterventionService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.CompletionDelay <= 0 {
		p.CompletionDelay = 2 * time.Second
	}
	return &InterventionService{
		store:     p.Store,
		entities:  p.Entities,
		toasts:    p.Toasts,
		activity:  p.Activity,
		mailer:    p.Mailer,
		scheduler: p.Scheduler,
		publisher: publisherOrNop(p.Publisher),
		metrics:   p.Metrics,
		validator: validatorOrDefault(p.Validator),
		logger:    p.Logger,
		delay:     p.CompletionDelay,
		now:       time.Now,
		timers:    make(map[string]*jobs.Handle),
	}
}

// Trigger records a pending intervention and fires its side effects. The
// store does not deduplicate; repeated triggers create repeated records.
func (s *InterventionService) Trigger(req dto.TriggerInterventionRequest) (*models.Intervention, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid intervention payload")
	}
	kind := models.InterventionType(req.Type)
	if !kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown intervention type %q", req.Type))
	}

	entityID, err := requiredID(req.EntityID, "entityId")
	if err != nil {
		return nil, err
	}
	target := models.EntityRef{
		Type: models.EntityType(req.EntityType),
		ID:   entityID,
		Name: strings.TrimSpace(req.EntityName),
	}
	if s.entities != nil {
		target, _ = s.entities.Resolve(target)
	}
	if target.Name == "" {
		target.Name = target.ID
	}

	now := s.now().UTC()
	iv := models.Intervention{
		ID:        newID(),
		Type:      kind,
		Target:    target,
		Status:    models.InterventionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.Add(iv)
	s.metrics.IncInterventionTriggered(string(kind))
	s.logger.Info("intervention triggered",
		zap.String("intervention_id", iv.ID),
		zap.String("type", string(kind)),
		zap.String("entity_type", string(target.Type)),
		zap.String("entity_id", target.ID),
	)

	if s.toasts != nil {
		s.toasts.Show(models.ToastInfo, kind.Label(), target.Name)
	}
	if s.activity != nil {
		s.activity.Record(models.ActivityAction,
			fmt.Sprintf("%s: %s", kind.Label(), target.Name),
			fmt.Sprintf("%s was recorded for %s %s.", kind.Label(), target.Type, target.Name),
			&target)
	}
	s.publisher.Publish(TopicInterventionTriggered, iv)

	if kind == models.InterventionSendEmail {
		s.sendEmail(iv)
	}
	s.armCompletion(iv.ID)
	return &iv, nil
}

func (s *InterventionService) sendEmail(iv models.Intervention) {
	if s.mailer == nil || s.entities == nil {
		return
	}
	to, ok := s.entities.Contact(iv.Target)
	if !ok {
		s.logger.Warn("no contact address for intervention email",
			zap.String("intervention_id", iv.ID),
			zap.String("entity_type", string(iv.Target.Type)),
			zap.String("entity_id", iv.Target.ID),
		)
		return
	}
	if err := s.mailer.EnqueueIntervention(iv, to); err != nil {
		s.logger.Error("enqueue intervention email", zap.String("intervention_id", iv.ID), zap.Error(err))
	}
}

// armCompletion schedules the simulated completion unless one is already
// armed. It reports whether a new timer was scheduled.
func (s *InterventionService) armCompletion(id string) bool {
	if s.scheduler == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, armed := s.timers[id]; armed {
		return false
	}
	s.timers[id] = s.scheduler.After(s.delay, func() { s.complete(id) })
	return true
}

// RearmPending schedules completion for every pending record without a timer,
// such as records restored from a snapshot. It returns how many were armed.
func (s *InterventionService) RearmPending() int {
	armed := 0
	for _, iv := range s.store.List(models.InterventionFilter{Status: models.InterventionPending}) {
		if s.armCompletion(iv.ID) {
			armed++
		}
	}
	if armed > 0 {
		s.logger.Info("pending interventions re-armed", zap.Int("count", armed))
	}
	return armed
}

func (s *InterventionService) disarm(id string) {
	s.mu.Lock()
	handle := s.timers[id]
	delete(s.timers, id)
	s.mu.Unlock()
	handle.Cancel()
}

// complete is the simulated completion; it only advances pending records.
func (s *InterventionService) complete(id string) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	advanced := false
	iv, err := s.store.Update(id, func(iv *models.Intervention) error {
		if iv.Status != models.InterventionPending {
			return nil
		}
		s.apply(iv, models.InterventionCompleted)
		advanced = true
		return nil
	})
	if err != nil || !advanced {
		return
	}
	s.metrics.IncInterventionTransition(string(iv.Type), string(iv.Status))
	if s.toasts != nil {
		s.toasts.Show(models.ToastSuccess, iv.Type.Label()+" completed", iv.Target.Name)
	}
	s.publisher.Publish(TopicInterventionUpdated, iv)
}

func (s *InterventionService) apply(iv *models.Intervention, status models.InterventionStatus) {
	now := s.now().UTC()
	iv.Status = status
	iv.UpdatedAt = now
	if status == models.InterventionCompleted {
		iv.CompletedAt = &now
	}
}

// UpdateStatus moves an intervention to status. Completed and cancelled
// records are terminal. Leaving pending disarms the simulated completion and
// returning to pending re-arms it.
func (s *InterventionService) UpdateStatus(id string, req dto.UpdateInterventionStatusRequest) (*models.Intervention, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid status payload")
	}
	status := models.InterventionStatus(req.Status)

	iv, err := s.store.Update(id, func(iv *models.Intervention) error {
		if iv.Status.Terminal() {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("intervention is already %s", iv.Status))
		}
		s.apply(iv, status)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "intervention not found")
		}
		return nil, err
	}
	if status == models.InterventionPending {
		s.armCompletion(id)
	} else {
		s.disarm(id)
	}
	s.metrics.IncInterventionTransition(string(iv.Type), string(iv.Status))
	s.publisher.Publish(TopicInterventionUpdated, iv)
	return &iv, nil
}

// Cancel is UpdateStatus(cancelled).
func (s *InterventionService) Cancel(id string) (*models.Intervention, error) {
	return s.UpdateStatus(id, dto.UpdateInterventionStatusRequest{Status: string(models.InterventionCancelled)})
}

func (s *InterventionService) Get(id string) (*models.Intervention, error) {
	iv, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "intervention not found")
	}
	return &iv, nil
}

// ForEntity lists an entity's interventions newest first.
func (s *InterventionService) ForEntity(t, id string) ([]models.Intervention, error) {
	kind := models.EntityType(t)
	if !kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown entity type")
	}
	return s.store.ForEntity(kind, id), nil
}

func (s *InterventionService) List(q InterventionQuery) ([]models.Intervention, error) {
	var f models.InterventionFilter
	if q.Status != "" {
		f.Status = models.InterventionStatus(q.Status)
		if !f.Status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown intervention status")
		}
	}
	if q.Type != "" {
		f.Type = models.InterventionType(q.Type)
		if !f.Type.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown intervention type")
		}
	}
	if q.EntityType != "" || q.EntityID != "" {
		ref := models.EntityRef{Type: models.EntityType(q.EntityType), ID: q.EntityID}
		if !ref.Type.Valid() || ref.ID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "entityType and entityId must be provided together")
		}
		f.Entity = &ref
	}
	return s.store.List(f), nil
}

func (s *InterventionService) CountActive() int {
	return s.store.CountActive()
}

// PendingCompletions reports how many simulated completions are armed.
func (s *InterventionService) PendingCompletions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Types lists the supported intervention types with their labels.
func (s *InterventionService) Types() []map[string]string {
	out := make([]map[string]string, 0, len(models.InterventionTypes))
	for _, t := range models.InterventionTypes {
		out = append(out, map[string]string{"type": string(t), "label": t.Label()})
	}
	return out
}

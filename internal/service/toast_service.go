package service

import (
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/pkg/jobs"
)

type toastStore interface {
	Add(t models.Toast)
	Remove(id string) bool
	List() []models.Toast
}

// ToastServiceParams groups ToastService dependencies.
type ToastServiceParams struct {
	Store     toastStore
	Scheduler scheduler
	TTL       time.Duration
	Publisher EventPublisher
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
}

// ToastService owns the toast queue. Every shown toast gets an expiry
// handle; dismissing a toast cancels its handle.
type ToastService struct {
	store     toastStore
	scheduler scheduler
	ttl       time.Duration
	publisher EventPublisher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time

	mu     sync.Mutex
	expiry map[string]*jobs.Handle
}

func NewToastService(p ToastServiceParams) *ToastService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.TTL <= 0 {
		p.TTL = 5 * time.Second
	}
	return &ToastService{
		store:     p.Store,
		scheduler: p.Scheduler,
		ttl:       p.TTL,
		publisher: publisherOrNop(p.Publisher),
		metrics:   p.Metrics,
		validator: validatorOrDefault(p.Validator),
		logger:    p.Logger,
		now:       time.Now,
		expiry:    make(map[string]*jobs.Handle),
	}
}

// Create validates a client supplied toast and shows it.
func (s *ToastService) Create(req dto.ShowToastRequest) (*models.Toast, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid toast payload")
	}
	t := s.Show(models.ToastKind(req.Kind), strings.TrimSpace(req.Title), strings.TrimSpace(req.Message))
	return &t, nil
}

// Show enqueues a toast and arms its expiry.
func (s *ToastService) Show(kind models.ToastKind, title, message string) models.Toast {
	now := s.now().UTC()
	t := models.Toast{
		ID:        newID(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.store.Add(t)
	if s.scheduler != nil {
		id := t.ID
		s.mu.Lock()
		s.expiry[id] = s.scheduler.After(s.ttl, func() { s.expire(id) })
		s.mu.Unlock()
	}
	s.metrics.IncToastShown(string(kind))
	s.publisher.Publish(TopicToastShown, t)
	return t
}

// Dismiss removes a toast; unknown ids are a no-op.
func (s *ToastService) Dismiss(id string) bool {
	s.mu.Lock()
	handle := s.expiry[id]
	delete(s.expiry, id)
	s.mu.Unlock()
	handle.Cancel()

	if !s.store.Remove(id) {
		return false
	}
	s.publisher.Publish(TopicToastDismissed, map[string]string{"id": id})
	return true
}

func (s *ToastService) List() []models.Toast {
	return s.store.List()
}

// PendingExpiries reports how many toasts still have an armed expiry.
func (s *ToastService) PendingExpiries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expiry)
}

func (s *ToastService) expire(id string) {
	s.mu.Lock()
	delete(s.expiry, id)
	s.mu.Unlock()
	if s.store.Remove(id) {
		s.logger.Debug("toast expired", zap.String("toast_id", id))
		s.publisher.Publish(TopicToastDismissed, map[string]string{"id": id})
	}
}

package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/pkg/jobs"
	pkgmail "github.com/noah-isme/district-dashboard-api/pkg/mail"
)

const interventionEmailJob = "intervention_email"

// MailQueueConfig tunes outbound email workers.
type MailQueueConfig struct {
	Workers    int
	Retries    int
	RetryDelay time.Duration
}

// MailService delivers intervention emails on a background worker pool.
type MailService struct {
	sender  pkgmail.Sender
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger
}

func NewMailService(sender pkgmail.Sender, cfg MailQueueConfig, metrics *MetricsService, logger *zap.Logger) *MailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &MailService{sender: sender, metrics: metrics, logger: logger}
	s.queue = jobs.NewQueue("mail", s.deliver, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
		OnResult:   s.onResult,
	})
	return s
}

func (s *MailService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

func (s *MailService) Stop() {
	s.queue.Stop()
}

// EnqueueIntervention queues the notification email for iv.
func (s *MailService) EnqueueIntervention(iv models.Intervention, to mail.Address) error {
	msg := pkgmail.Message{
		To:      []mail.Address{to},
		Subject: fmt.Sprintf("Follow-up regarding %s", iv.Target.Name),
		Text: fmt.Sprintf("Hello %s,\n\nThe district office has opened a follow-up (%s) regarding %s.\nReference: %s\n",
			displayName(to), iv.Type.Label(), iv.Target.Name, iv.ID),
	}
	if err := msg.Validate(); err != nil {
		return invalidPayload(err, "invalid email recipient")
	}
	return s.queue.Enqueue(jobs.Job{ID: iv.ID, Type: interventionEmailJob, Payload: msg})
}

func (s *MailService) deliver(ctx context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(pkgmail.Message)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	return s.sender.Send(ctx, msg)
}

func (s *MailService) onResult(job jobs.Job, err error) {
	s.metrics.RecordMailDelivery(err)
	if err != nil {
		s.logger.Error("intervention email failed", zap.String("intervention_id", job.ID), zap.Int("attempts", job.Attempt), zap.Error(err))
		return
	}
	s.logger.Info("intervention email sent", zap.String("intervention_id", job.ID))
}

func displayName(a mail.Address) string {
	if a.Name != "" {
		return a.Name
	}
	return a.Address
}

package service

import (
	"net/mail"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/repository"
	"github.com/noah-isme/district-dashboard-api/pkg/jobs"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Address
}

func (m *recordingMailer) EnqueueIntervention(iv models.Intervention, to mail.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func (m *recordingMailer) Recipients() []mail.Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Address(nil), m.sent...)
}

type interventionFixture struct {
	svc      *InterventionService
	store    *repository.InterventionRepository
	toasts   *ToastService
	activity *ActivityService
	mailer   *recordingMailer
	pub      *recordingPublisher
}

func newInterventionFixture(t *testing.T, delay time.Duration) interventionFixture {
	t.Helper()
	sched := jobs.NewScheduler(nil)
	t.Cleanup(sched.Stop)

	pub := &recordingPublisher{}
	toasts := NewToastService(ToastServiceParams{Store: repository.NewToastRepository(), TTL: time.Minute, Publisher: pub})
	activity := NewActivityService(repository.NewActivityRepository(nil), pub, nil, nil)
	store := repository.NewInterventionRepository()
	mailer := &recordingMailer{}

	svc := NewInterventionService(InterventionServiceParams{
		Store:           store,
		Entities:        NewEntityService(newFixtureEntities(t), nil),
		Toasts:          toasts,
		Activity:        activity,
		Mailer:          mailer,
		Scheduler:       sched,
		Publisher:       pub,
		Metrics:         NewMetricsService(),
		CompletionDelay: delay,
	})
	return interventionFixture{svc: svc, store: store, toasts: toasts, activity: activity, mailer: mailer, pub: pub}
}

func trigger(t *testing.T, f interventionFixture, kind, entityType, id string) *models.Intervention {
	t.Helper()
	iv, err := f.svc.Trigger(dto.TriggerInterventionRequest{Type: kind, EntityType: entityType, EntityID: id})
	require.NoError(t, err)
	return iv
}

func TestTriggerRecordsPendingInterventionWithSideEffects(t *testing.T) {
	f := newInterventionFixture(t, time.Hour)

	iv := trigger(t, f, "schedule_meeting", "teacher", "t1")
	assert.Equal(t, models.InterventionPending, iv.Status)
	assert.Equal(t, "Jane Doe", iv.Target.Name)
	assert.Equal(t, 1, f.svc.CountActive())
	assert.Equal(t, 1, f.svc.PendingCompletions())

	toasts := f.toasts.List()
	require.Len(t, toasts, 1)
	assert.Equal(t, models.ToastInfo, toasts[0].Kind)
	assert.Equal(t, "Meeting scheduled", toasts[0].Title)
	assert.Equal(t, "Jane Doe", toasts[0].Message)

	items, err := f.activity.List("action")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "t1", items[0].Entity.ID)

	assert.Equal(t, 1, f.pub.Count(TopicInterventionTriggered))
	assert.Empty(t, f.mailer.Recipients())
}

func TestTriggerDoesNotDeduplicate(t *testing.T) {
	f := newInterventionFixture(t, time.Hour)
	first := trigger(t, f, "flag_for_review", "student", "st1")
	second := trigger(t, f, "flag_for_review", "student", "st1")
	assert.NotEqual(t, first.ID, second.ID)

	list, err := f.svc.ForEntity("student", "st1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestTriggerUnknownEntityFallsBackToSuppliedName(t *testing.T) {
	f := newInterventionFixture(t, time.Hour)

	iv, err := f.svc.Trigger(dto.TriggerInterventionRequest{Type: "assign_mentor", EntityType: "student", EntityID: "ghost", EntityName: "Casper"})
	require.NoError(t, err)
	assert.Equal(t, "Casper", iv.Target.Name)

	iv = trigger(t, f, "assign_mentor", "student", "nobody")
	assert.Equal(t, "nobody", iv.Target.Name)
}

func TestTriggerValidates(t *testing.T) {
	f := newInterventionFixture(t, time.Hour)

	_, err := f.svc.Trigger(dto.TriggerInterventionRequest{Type: "teleport", EntityType: "student", EntityID: "st1"})
	assertAppError(t, err, "VALIDATION_ERROR")
	_, err = f.svc.Trigger(dto.TriggerInterventionRequest{Type: "send_email", EntityType: "planet", EntityID: "p1"})
	assertAppError(t, err, "VALIDATION_ERROR")
	assert.Zero(t, f.svc.CountActive())
}

func TestSendEmailEnqueuesContactMail(t *testing.T) {
	f := newInterventionFixture(t, time.Hour)

	trigger(t, f, "send_email", "student", "st1")
	trigger(t, f, "send_email", "district", "district-1")

	recipients := f.mailer.Recipients()
	require.Len(t, recipients, 1)
	assert.Equal(t, "brooks.family@mail.example", recipients[0].Address)
}

func TestInterventionCompletesAfterDelay(t *testing.T) {
	f := newInterventionFixture(t, 20*time.Millisecond)
	iv := trigger(t, f, "enroll_tutoring", "student", "st3")

	require.Eventually(t, func() bool {
		got, err := f.svc.Get(iv.ID)
		return err == nil && got.Status == models.InterventionCompleted
	}, time.Second, 5*time.Millisecond)

	got, err := f.svc.Get(iv.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.Zero(t, f.svc.CountActive())
	assert.Zero(t, f.svc.PendingCompletions())

	var completedToast bool
	for _, toast := range f.toasts.List() {
		if toast.Kind == models.ToastSuccess && toast.Title == "Tutoring enrollment completed" {
			completedToast = true
		}
	}
	assert.True(t, completedToast)
}

func TestCancelPreventsCompletion(t *testing.T) {
	f := newInterventionFixture(t, 30*time.Millisecond)
	iv := trigger(t, f, "parent_conference", "student", "st7")

	cancelled, err := f.svc.Cancel(iv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterventionCancelled, cancelled.Status)
	assert.Zero(t, f.svc.PendingCompletions())

	time.Sleep(60 * time.Millisecond)
	got, err := f.svc.Get(iv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterventionCancelled, got.Status)
	assert.Nil(t, got.CompletedAt)
}

func TestInProgressIsNotAutoCompleted(t *testing.T) {
	f := newInterventionFixture(t, 20*time.Millisecond)
	iv := trigger(t, f, "request_observation", "teacher", "t3")

	_, err := f.svc.UpdateStatus(iv.ID, dto.UpdateInterventionStatusRequest{Status: "in_progress"})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	got, err := f.svc.Get(iv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterventionInProgress, got.Status)
	assert.Equal(t, 1, f.svc.CountActive())
}

func TestTerminalStatusesRejectChanges(t *testing.T) {
	f := newInterventionFixture(t, time.Hour)
	iv := trigger(t, f, "professional_development", "teacher", "t6")

	done, err := f.svc.UpdateStatus(iv.ID, dto.UpdateInterventionStatusRequest{Status: "completed"})
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)

	_, err = f.svc.UpdateStatus(iv.ID, dto.UpdateInterventionStatusRequest{Status: "pending"})
	assertAppError(t, err, "CONFLICT")
	_, err = f.svc.Cancel(iv.ID)
	assertAppError(t, err, "CONFLICT")

	_, err = f.svc.UpdateStatus("missing", dto.UpdateInterventionStatusRequest{Status: "completed"})
	assertAppError(t, err, "NOT_FOUND")
	_, err = f.svc.UpdateStatus(iv.ID, dto.UpdateInterventionStatusRequest{Status: "paused"})
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestInterventionListFilters(t *testing.T) {
	f := newInterventionFixture(t, time.Hour)
	a := trigger(t, f, "send_email", "teacher", "t1")
	trigger(t, f, "assign_mentor", "student", "st1")
	_, err := f.svc.Cancel(a.ID)
	require.NoError(t, err)

	cancelled, err := f.svc.List(InterventionQuery{Status: "cancelled"})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, a.ID, cancelled[0].ID)

	byEntity, err := f.svc.List(InterventionQuery{EntityType: "student", EntityID: "st1"})
	require.NoError(t, err)
	assert.Len(t, byEntity, 1)

	_, err = f.svc.List(InterventionQuery{EntityID: "st1"})
	assertAppError(t, err, "VALIDATION_ERROR")
	_, err = f.svc.List(InterventionQuery{Type: "nope"})
	assertAppError(t, err, "VALIDATION_ERROR")

	assert.Len(t, f.svc.Types(), len(models.InterventionTypes))
}

func TestReturningToPendingRearmsCompletion(t *testing.T) {
	f := newInterventionFixture(t, 20*time.Millisecond)
	iv := trigger(t, f, "request_observation", "teacher", "t3")

	_, err := f.svc.UpdateStatus(iv.ID, dto.UpdateInterventionStatusRequest{Status: "in_progress"})
	require.NoError(t, err)
	assert.Zero(t, f.svc.PendingCompletions())

	_, err = f.svc.UpdateStatus(iv.ID, dto.UpdateInterventionStatusRequest{Status: "pending"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		got, err := f.svc.Get(iv.ID)
		return err == nil && got.Status == models.InterventionCompleted
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, f.svc.CountActive())
}

func TestRearmPendingCompletesRestoredRecords(t *testing.T) {
	f := newInterventionFixture(t, 20*time.Millisecond)
	f.store.Import([]models.Intervention{
		{ID: "restored-1", Type: models.InterventionSendEmail, Status: models.InterventionPending, Target: models.EntityRef{Type: models.EntityStudent, ID: "st1"}},
		{ID: "restored-2", Type: models.InterventionAssignMentor, Status: models.InterventionInProgress, Target: models.EntityRef{Type: models.EntityStudent, ID: "st2"}},
	})

	assert.Equal(t, 1, f.svc.RearmPending())
	assert.Zero(t, f.svc.RearmPending())

	require.Eventually(t, func() bool {
		got, err := f.svc.Get("restored-1")
		return err == nil && got.Status == models.InterventionCompleted
	}, time.Second, 5*time.Millisecond)
	got, err := f.svc.Get("restored-2")
	require.NoError(t, err)
	assert.Equal(t, models.InterventionInProgress, got.Status)
}

func TestTriggerRejectsBlankEntityID(t *testing.T) {
	f := newInterventionFixture(t, time.Hour)

	_, err := f.svc.Trigger(dto.TriggerInterventionRequest{Type: "send_email", EntityType: "student", EntityID: "   "})
	assertAppError(t, err, "VALIDATION_ERROR")
	assert.Zero(t, f.svc.CountActive())
}

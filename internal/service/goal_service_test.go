package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/repository"
	"github.com/noah-isme/district-dashboard-api/internal/seed"
)

func newGoalFixture() (*GoalService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewGoalService(repository.NewGoalRepository(seed.Fixtures().Goals), pub, nil, nil), pub
}

func TestGoalListDerivesStatus(t *testing.T) {
	svc, _ := newGoalFixture()

	goals, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, goals, 4)
	assert.Equal(t, models.GoalOnTrack, goals[0].Status)
	assert.Equal(t, models.GoalAtRisk, goals[2].Status)
	assert.Equal(t, models.GoalAchieved, goals[3].Status)

	academic, err := svc.List("academic")
	require.NoError(t, err)
	assert.Len(t, academic, 1)

	_, err = svc.List("sports")
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestGoalCreateAndProgress(t *testing.T) {
	svc, pub := newGoalFixture()

	goal, err := svc.Create(dto.CreateGoalRequest{
		Title:    "Chronic absence under 10%",
		Target:   100,
		Current:  10,
		Unit:     "%",
		Deadline: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
		Category: "attendance",
	})
	require.NoError(t, err)
	assert.Equal(t, models.GoalAtRisk, goal.Status)

	current := 80.0
	goal, err = svc.UpdateProgress(goal.ID, dto.UpdateGoalProgressRequest{Current: &current})
	require.NoError(t, err)
	assert.Equal(t, models.GoalOnTrack, goal.Status)

	current = 100
	goal, err = svc.UpdateProgress(goal.ID, dto.UpdateGoalProgressRequest{Current: &current})
	require.NoError(t, err)
	assert.Equal(t, models.GoalAchieved, goal.Status)

	_, err = svc.UpdateProgress("missing", dto.UpdateGoalProgressRequest{Current: &current})
	assertAppError(t, err, "NOT_FOUND")
	_, err = svc.UpdateProgress(goal.ID, dto.UpdateGoalProgressRequest{})
	assertAppError(t, err, "VALIDATION_ERROR")
	assert.Equal(t, 3, pub.Count(TopicGoalChanged))
}

func TestGoalCreateValidates(t *testing.T) {
	svc, _ := newGoalFixture()
	_, err := svc.Create(dto.CreateGoalRequest{Title: "x", Target: 0, Deadline: time.Now(), Category: "academic"})
	assertAppError(t, err, "VALIDATION_ERROR")
	_, err = svc.Create(dto.CreateGoalRequest{Title: "x", Target: 10, Category: "academic"})
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestGoalDelete(t *testing.T) {
	svc, _ := newGoalFixture()
	require.NoError(t, svc.Delete("goal-1"))
	assertAppError(t, svc.Delete("goal-1"), "NOT_FOUND")
	_, err := svc.Get("goal-1")
	assertAppError(t, err, "NOT_FOUND")
}

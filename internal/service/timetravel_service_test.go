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
	"github.com/noah-isme/district-dashboard-api/pkg/jobs"
)

func newTimeTravelFixture(t *testing.T, interval time.Duration) (*TimeTravelService, *jobs.Scheduler, *recordingPublisher) {
	t.Helper()
	data := seed.Fixtures()
	sched := jobs.NewScheduler(nil)
	t.Cleanup(sched.Stop)
	pub := &recordingPublisher{}
	svc := NewTimeTravelService(repository.NewTimeTravelRepository(data.Dates, data.Snapshots), sched, interval, pub, nil)
	return svc, sched, pub
}

func TestTimeTravelStartsAtLatestDate(t *testing.T) {
	svc, _, _ := newTimeTravelFixture(t, time.Hour)

	state := svc.State()
	assert.Equal(t, "2024-06", state.CurrentDate)
	assert.Equal(t, models.PlaybackPaused, state.Playback)

	state = svc.Play()
	assert.Equal(t, models.PlaybackPaused, state.Playback)
	assert.False(t, svc.Playing())
}

func TestTimeTravelPlaybackRunsToTheEnd(t *testing.T) {
	svc, sched, pub := newTimeTravelFixture(t, 5*time.Millisecond)

	_, err := svc.SetDate(dto.SetDateRequest{Date: "2024-03"})
	require.NoError(t, err)
	state := svc.Play()
	assert.Equal(t, models.PlaybackPlaying, state.Playback)
	assert.True(t, svc.Playing())

	require.Eventually(t, func() bool { return !svc.Playing() }, time.Second, 5*time.Millisecond)
	state = svc.State()
	assert.Equal(t, "2024-06", state.CurrentDate)
	assert.Equal(t, models.PlaybackPaused, state.Playback)
	assert.Zero(t, sched.Pending())
	assert.GreaterOrEqual(t, pub.Count(TopicTimeTravelChanged), 5)
}

func TestTimeTravelPauseStopsTicker(t *testing.T) {
	svc, sched, _ := newTimeTravelFixture(t, time.Hour)

	svc.Prev()
	svc.Play()
	require.Equal(t, 1, sched.Pending())

	state := svc.Pause()
	assert.Equal(t, models.PlaybackPaused, state.Playback)
	assert.False(t, svc.Playing())
	assert.Zero(t, sched.Pending())
}

func TestTimeTravelStepping(t *testing.T) {
	svc, _, _ := newTimeTravelFixture(t, time.Hour)

	state := svc.Next()
	assert.Equal(t, "2024-06", state.CurrentDate)

	for i := 0; i < 20; i++ {
		state = svc.Prev()
	}
	assert.Equal(t, "2023-09", state.CurrentDate)

	state = svc.Reset()
	assert.Equal(t, "2024-06", state.CurrentDate)

	_, err := svc.SetDate(dto.SetDateRequest{Date: "1999-01"})
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestTimeTravelHistory(t *testing.T) {
	svc, _, _ := newTimeTravelFixture(t, time.Hour)

	current, err := svc.History("s1", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-06", current.Date)
	require.NotNil(t, current.Snapshot)
	assert.Equal(t, 87.0, current.Snapshot.Metrics["performance"])

	past, err := svc.History("st1", "2023-09")
	require.NoError(t, err)
	require.NotNil(t, past.Snapshot)
	assert.Less(t, past.Snapshot.Metrics["gpa"], 2.1)

	missing, err := svc.History("nobody", "")
	require.NoError(t, err)
	assert.Nil(t, missing.Snapshot)

	_, err = svc.History("s1", "2031-01")
	assertAppError(t, err, "VALIDATION_ERROR")
}

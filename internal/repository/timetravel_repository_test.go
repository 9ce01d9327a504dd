package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

func newTimeline() *TimeTravelRepository {
	return NewTimeTravelRepository(
		[]string{"2024-01", "2024-02", "2024-03"},
		[]models.HistoricalSnapshot{
			{EntityID: "s1", Date: "2024-01", Metrics: map[string]float64{"performance": 70}},
			{EntityID: "s1", Date: "2024-03", Metrics: map[string]float64{"performance": 78}},
		},
	)
}

func TestTimeTravelStartsAtLatest(t *testing.T) {
	state := newTimeline().State()
	assert.Equal(t, "2024-03", state.CurrentDate)
	assert.Equal(t, 2, state.CurrentIndex)
	assert.Equal(t, models.PlaybackPaused, state.Playback)
}

func TestTimeTravelNextAtEndPausesWithoutMoving(t *testing.T) {
	repo := newTimeline()
	_, err := repo.SetDate("2024-02")
	require.NoError(t, err)
	_, started := repo.Play()
	require.True(t, started)

	state := repo.Next()
	assert.Equal(t, "2024-03", state.CurrentDate)
	assert.Equal(t, models.PlaybackPaused, state.Playback)

	state = repo.Next()
	assert.Equal(t, "2024-03", state.CurrentDate)
	assert.Equal(t, models.PlaybackPaused, state.Playback)
}

func TestTimeTravelPlayAtEndIsNoop(t *testing.T) {
	repo := newTimeline()
	state, started := repo.Play()
	assert.False(t, started)
	assert.Equal(t, models.PlaybackPaused, state.Playback)
}

func TestTimeTravelPrevClampsAtStart(t *testing.T) {
	repo := newTimeline()
	repo.Prev()
	repo.Prev()
	state := repo.Prev()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.Equal(t, "2024-01", state.CurrentDate)

	state = repo.Reset()
	assert.Equal(t, "2024-03", state.CurrentDate)
}

func TestTimeTravelSetDateUnknown(t *testing.T) {
	repo := newTimeline()
	state, err := repo.SetDate("1999-12")
	assert.ErrorIs(t, err, ErrUnknownDate)
	assert.Equal(t, "2024-03", state.CurrentDate)
}

func TestTimeTravelDataForDate(t *testing.T) {
	repo := newTimeline()
	snap := repo.DataForDate("s1", "")
	require.NotNil(t, snap)
	assert.Equal(t, 78.0, snap.Metrics["performance"])

	assert.Nil(t, repo.DataForDate("s1", "2024-02"))
	assert.Nil(t, repo.DataForDate("unknown", "2024-01"))
	assert.NotNil(t, repo.DataForDate("s1", "2024-01"))
}

func TestTimeTravelEmptyTimeline(t *testing.T) {
	repo := NewTimeTravelRepository(nil, nil)
	state := repo.Next()
	assert.Equal(t, "", state.CurrentDate)
	assert.Nil(t, repo.DataForDate("s1", ""))
	_, started := repo.Play()
	assert.False(t, started)
}

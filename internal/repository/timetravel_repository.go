package repository

import (
	"errors"
	"sync"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

// ErrUnknownDate is returned when a date label is not in the timeline.
var ErrUnknownDate = errors.New("unknown time-travel date")

// TimeTravelRepository steps a cursor over fixed month labels. The cursor
// starts (and resets) at the latest date. Moves clamp at both ends; there is
// no wraparound.
type TimeTravelRepository struct {
	mu        sync.RWMutex
	dates     []string
	dateIdx   map[string]int
	snapshots map[string]map[string]models.HistoricalSnapshot
	index     int
	playback  models.PlaybackState
}

func NewTimeTravelRepository(dates []string, snapshots []models.HistoricalSnapshot) *TimeTravelRepository {
	r := &TimeTravelRepository{}
	r.Load(dates, snapshots)
	return r
}

// Load replaces the timeline and snapshots and resets the cursor.
func (r *TimeTravelRepository) Load(dates []string, snapshots []models.HistoricalSnapshot) {
	byEntity := make(map[string]map[string]models.HistoricalSnapshot)
	for _, snap := range snapshots {
		if byEntity[snap.EntityID] == nil {
			byEntity[snap.EntityID] = make(map[string]models.HistoricalSnapshot)
		}
		byEntity[snap.EntityID][snap.Date] = snap
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.dates = append([]string(nil), dates...)
	r.dateIdx = indexBy(r.dates, func(d string) string { return d })
	r.snapshots = byEntity
	r.resetLocked()
}

func (r *TimeTravelRepository) State() models.TimeTravelState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stateLocked()
}

// Play starts playback. At the last date it is a no-op and stays paused.
func (r *TimeTravelRepository) Play() (models.TimeTravelState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.atEndLocked() {
		r.playback = models.PlaybackPaused
		return r.stateLocked(), false
	}
	r.playback = models.PlaybackPlaying
	return r.stateLocked(), true
}

func (r *TimeTravelRepository) Pause() models.TimeTravelState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playback = models.PlaybackPaused
	return r.stateLocked()
}

// Next advances one date. Reaching or already being at the last date pauses
// playback; at the last date the cursor does not move.
func (r *TimeTravelRepository) Next() models.TimeTravelState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.atEndLocked() {
		r.index++
	}
	if r.atEndLocked() {
		r.playback = models.PlaybackPaused
	}
	return r.stateLocked()
}

// Prev steps back one date, clamping at the first.
func (r *TimeTravelRepository) Prev() models.TimeTravelState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index > 0 {
		r.index--
	}
	return r.stateLocked()
}

func (r *TimeTravelRepository) SetDate(date string) (models.TimeTravelState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.dateIdx[date]
	if !ok {
		return r.stateLocked(), ErrUnknownDate
	}
	r.index = i
	if r.atEndLocked() {
		r.playback = models.PlaybackPaused
	}
	return r.stateLocked(), nil
}

func (r *TimeTravelRepository) Reset() models.TimeTravelState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
	return r.stateLocked()
}

// DataForDate returns the entity's snapshot at date, or at the current date
// when date is empty. Nil means no snapshot was recorded.
func (r *TimeTravelRepository) DataForDate(entityID, date string) *models.HistoricalSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if date == "" {
		if len(r.dates) == 0 {
			return nil
		}
		date = r.dates[r.index]
	}
	snap, ok := r.snapshots[entityID][date]
	if !ok {
		return nil
	}
	return &snap
}

func (r *TimeTravelRepository) HasDate(date string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.dateIdx[date]
	return ok
}

func (r *TimeTravelRepository) resetLocked() {
	r.index = 0
	if n := len(r.dates); n > 0 {
		r.index = n - 1
	}
	r.playback = models.PlaybackPaused
}

func (r *TimeTravelRepository) atEndLocked() bool {
	return r.index >= len(r.dates)-1
}

func (r *TimeTravelRepository) stateLocked() models.TimeTravelState {
	state := models.TimeTravelState{
		Dates:        append(make([]string, 0, len(r.dates)), r.dates...),
		CurrentIndex: r.index,
		Playback:     r.playback,
	}
	if len(r.dates) > 0 {
		state.CurrentDate = r.dates[r.index]
	}
	return state
}

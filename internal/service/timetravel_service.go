package service

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/repository"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
	"github.com/noah-isme/district-dashboard-api/pkg/jobs"
)

type timeTravelStore interface {
	State() models.TimeTravelState
	Play() (models.TimeTravelState, bool)
	Pause() models.TimeTravelState
	Next() models.TimeTravelState
	Prev() models.TimeTravelState
	SetDate(date string) (models.TimeTravelState, error)
	Reset() models.TimeTravelState
	DataForDate(entityID, date string) *models.HistoricalSnapshot
	HasDate(date string) bool
}

// TimeTravelService drives playback over the historical snapshots. While
// playing, one recurring handle advances the cursor every interval; it is
// cancelled whenever playback stops.
type TimeTravelService struct {
	store     timeTravelStore
	scheduler scheduler
	interval  time.Duration
	publisher EventPublisher
	logger    *zap.Logger

	mu     sync.Mutex
	ticker *jobs.Handle
}

func NewTimeTravelService(store timeTravelStore, sched scheduler, interval time.Duration, publisher EventPublisher, logger *zap.Logger) *TimeTravelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 1500 * time.Millisecond
	}
	return &TimeTravelService{
		store:     store,
		scheduler: sched,
		interval:  interval,
		publisher: publisherOrNop(publisher),
		logger:    logger,
	}
}

func (s *TimeTravelService) State() models.TimeTravelState {
	return s.store.State()
}

// Play starts playback; at the last date it is a no-op.
func (s *TimeTravelService) Play() models.TimeTravelState {
	state, started := s.store.Play()
	if started {
		s.startTicker()
	}
	return s.changed(state)
}

func (s *TimeTravelService) Pause() models.TimeTravelState {
	s.stopTicker()
	return s.changed(s.store.Pause())
}

func (s *TimeTravelService) Next() models.TimeTravelState {
	return s.step(s.store.Next())
}

func (s *TimeTravelService) Prev() models.TimeTravelState {
	return s.changed(s.store.Prev())
}

func (s *TimeTravelService) SetDate(req dto.SetDateRequest) (models.TimeTravelState, error) {
	state, err := s.store.SetDate(req.Date)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownDate) {
			return state, appErrors.Clone(appErrors.ErrValidation, "unknown date "+req.Date)
		}
		return state, err
	}
	return s.step(state), nil
}

func (s *TimeTravelService) Reset() models.TimeTravelState {
	s.stopTicker()
	return s.changed(s.store.Reset())
}

// History returns an entity's snapshot at date, defaulting to the current
// date. A nil snapshot means nothing was recorded.
func (s *TimeTravelService) History(entityID, date string) (*dto.EntityHistoryResponse, error) {
	if date != "" && !s.store.HasDate(date) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown date "+date)
	}
	if date == "" {
		date = s.store.State().CurrentDate
	}
	return &dto.EntityHistoryResponse{
		EntityID: entityID,
		Date:     date,
		Snapshot: s.store.DataForDate(entityID, date),
	}, nil
}

// Stop cancels playback without touching the cursor.
func (s *TimeTravelService) Stop() {
	s.stopTicker()
}

// Playing reports whether the playback ticker is armed.
func (s *TimeTravelService) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticker != nil
}

func (s *TimeTravelService) tick() {
	if s.store.State().Playback != models.PlaybackPlaying {
		s.stopTicker()
		return
	}
	state := s.store.Next()
	if state.Playback == models.PlaybackPaused {
		s.logger.Debug("time travel playback reached the end", zap.String("date", state.CurrentDate))
	}
	s.step(state)
}

// step stops the ticker when the store paused itself.
func (s *TimeTravelService) step(state models.TimeTravelState) models.TimeTravelState {
	if state.Playback == models.PlaybackPaused {
		s.stopTicker()
	}
	return s.changed(state)
}

func (s *TimeTravelService) changed(state models.TimeTravelState) models.TimeTravelState {
	s.publisher.Publish(TopicTimeTravelChanged, state)
	return state
}

func (s *TimeTravelService) startTicker() {
	if s.scheduler == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker != nil {
		return
	}
	s.ticker = s.scheduler.Every(s.interval, s.tick)
}

func (s *TimeTravelService) stopTicker() {
	s.mu.Lock()
	ticker := s.ticker
	s.ticker = nil
	s.mu.Unlock()
	ticker.Cancel()
}

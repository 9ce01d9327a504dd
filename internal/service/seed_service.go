package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/seed"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
)

// SeedSourceFixtures and SeedSourcePostgres name where entity collections come from.
const (
	SeedSourceFixtures = "fixtures"
	SeedSourcePostgres = "postgres"
)

type seedLoader interface {
	Load(ctx context.Context) (models.SeedData, error)
}

type entityReloader interface {
	Reload(seed models.SeedData) error
	Version() uint64
}

type timelineLoader interface {
	Load(dates []string, snapshots []models.HistoricalSnapshot)
}

type playbackStopper interface {
	Stop()
}

// SeedServiceParams wires the seed service.
type SeedServiceParams struct {
	Source    string
	Loader    seedLoader
	Entities  entityReloader
	Timeline  timelineLoader
	Playback  playbackStopper
	Publisher EventPublisher
	Logger    *zap.Logger
}

// SeedService loads entity collections from fixtures or PostgreSQL and
// swaps them into the running stores.
type SeedService struct {
	source    string
	loader    seedLoader
	entities  entityReloader
	timeline  timelineLoader
	playback  playbackStopper
	publisher EventPublisher
	logger    *zap.Logger

	mu sync.Mutex
}

func NewSeedService(p SeedServiceParams) *SeedService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	source := p.Source
	if source == "" || p.Loader == nil {
		source = SeedSourceFixtures
	}
	return &SeedService{
		source:    source,
		loader:    p.Loader,
		entities:  p.Entities,
		timeline:  p.Timeline,
		playback:  p.Playback,
		publisher: publisherOrNop(p.Publisher),
		logger:    p.Logger,
	}
}

// Source reports the configured seed source.
func (s *SeedService) Source() string {
	return s.source
}

// Load returns the configured seed. Database seeds hold only the entity
// collections and skills; the rest is taken from the fixtures.
func (s *SeedService) Load(ctx context.Context) (models.SeedData, error) {
	fixtures := seed.Fixtures()
	if s.source != SeedSourcePostgres {
		return fixtures, nil
	}

	data, err := s.loader.Load(ctx)
	if err != nil {
		return models.SeedData{}, err
	}
	if len(data.Skills) == 0 {
		data.Skills = fixtures.Skills
	}
	data.Insights = fixtures.Insights
	data.Dates = fixtures.Dates
	data.Snapshots = fixtures.Snapshots
	data.Goals = fixtures.Goals
	data.Activity = fixtures.Activity
	return data, nil
}

// Reload reloads the seed into the entity store and timeline. Time-travel
// playback is stopped because the cursor resets to the latest date.
func (s *SeedService) Reload(ctx context.Context) (*dto.SeedReloadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.Load(ctx)
	if err != nil {
		s.logger.Error("seed load failed", zap.String("source", s.source), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seed")
	}
	if err := s.entities.Reload(data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "seed rejected: "+err.Error())
	}
	if s.playback != nil {
		s.playback.Stop()
	}
	if s.timeline != nil {
		s.timeline.Load(data.Dates, data.Snapshots)
	}

	result := &dto.SeedReloadResult{
		Source:    s.source,
		Version:   s.entities.Version(),
		Districts: len(data.Districts),
		Schools:   len(data.Schools),
		Teachers:  len(data.Teachers),
		Students:  len(data.Students),
		Dates:     len(data.Dates),
	}
	s.publisher.Publish(TopicEntitiesReloaded, result)
	s.logger.Info("entities reloaded",
		zap.String("source", s.source),
		zap.Uint64("version", result.Version),
		zap.Int("students", result.Students),
	)
	return result, nil
}

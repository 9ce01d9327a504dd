package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
)

const (
	overviewSkillCount = 5
	overviewCacheScope = "dashboard"
)

type overviewEntities interface {
	Version() uint64
	DistrictMetrics() models.DistrictMetrics
	AtRiskStudents() []models.Student
	TopSkills(n int) []models.SubjectMastery
	WeakestSkills(n int) []models.SubjectMastery
}

type overviewInterventions interface {
	Version() uint64
	CountActive() int
}

type overviewActivity interface {
	Version() uint64
	UnreadCount() int
}

// DashboardConfig tunes overview composition.
type DashboardConfig struct {
	AtRiskPreviewLimit int
	CacheTTL           time.Duration
}

// DashboardService composes the landing page overview.
type DashboardService struct {
	entities      overviewEntities
	interventions overviewInterventions
	activity      overviewActivity
	cache         *CacheService
	cfg           DashboardConfig
	logger        *zap.Logger
	now           func() time.Time
	// epoch scopes cache keys to this process; store versions restart at
	// zero in every process while Redis is shared.
	epoch string
}

func NewDashboardService(entities overviewEntities, interventions overviewInterventions, activity overviewActivity, cache *CacheService, cfg DashboardConfig, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AtRiskPreviewLimit <= 0 {
		cfg.AtRiskPreviewLimit = 5
	}
	return &DashboardService{
		entities:      entities,
		interventions: interventions,
		activity:      activity,
		cache:         cache,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
		epoch:         newID()[:8],
	}
}

// Overview returns the landing payload and whether it came from cache. The
// cache key embeds the process epoch and every contributing store version, so
// any mutation yields a fresh key and stale entries simply expire.
func (s *DashboardService) Overview(ctx context.Context) (*dto.DashboardOverview, bool, error) {
	version := s.version()
	key := CacheKey(overviewCacheScope, "overview", s.epoch, version)
	overview, hit, err := Remember(ctx, s.cache, key, s.cfg.CacheTTL, func(context.Context) (dto.DashboardOverview, error) {
		return s.compose(version), nil
	})
	if err != nil {
		return nil, false, err
	}
	return &overview, hit, nil
}

func (s *DashboardService) version() string {
	return fmt.Sprintf("e%d.i%d.a%d", s.entities.Version(), s.interventions.Version(), s.activity.Version())
}

func (s *DashboardService) compose(version string) dto.DashboardOverview {
	metrics := s.entities.DistrictMetrics()
	metrics.ActiveInterventions = s.interventions.CountActive()

	atRisk := s.entities.AtRiskStudents()
	if len(atRisk) > s.cfg.AtRiskPreviewLimit {
		atRisk = atRisk[:s.cfg.AtRiskPreviewLimit]
	}

	return dto.DashboardOverview{
		Metrics:        metrics,
		AtRisk:         atRisk,
		TopSkills:      s.entities.TopSkills(overviewSkillCount),
		WeakestSkills:  s.entities.WeakestSkills(overviewSkillCount),
		UnreadActivity: s.activity.UnreadCount(),
		Version:        version,
		GeneratedAt:    s.now().UTC(),
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/repository"
	"github.com/noah-isme/district-dashboard-api/internal/seed"
)

func newDashboardFixture(t *testing.T, cacheRepo CacheRepository) (*DashboardService, *repository.InterventionRepository, *repository.ActivityRepository) {
	t.Helper()
	entities := newFixtureEntities(t)
	interventions := repository.NewInterventionRepository()
	activity := repository.NewActivityRepository(seed.Fixtures().Activity)
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, cacheRepo != nil)
	svc := NewDashboardService(entities, interventions, activity, cache, DashboardConfig{AtRiskPreviewLimit: 2}, nil)
	return svc, interventions, activity
}

func TestDashboardOverviewComposition(t *testing.T) {
	svc, interventions, _ := newDashboardFixture(t, nil)
	interventions.Add(models.Intervention{ID: "iv-1", Status: models.InterventionPending, Target: models.EntityRef{Type: models.EntityStudent, ID: "st1"}})

	overview, hit, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	assert.Equal(t, 10, overview.Metrics.TotalStudents)
	assert.Equal(t, 4, overview.Metrics.AtRiskStudents)
	assert.Equal(t, 1, overview.Metrics.ActiveInterventions)
	require.Len(t, overview.AtRisk, 2)
	assert.Equal(t, "st1", overview.AtRisk[0].ID)
	require.Len(t, overview.TopSkills, 5)
	assert.Equal(t, "Vocabulary", overview.TopSkills[0].Subject)
	assert.Equal(t, "Fractions", overview.WeakestSkills[0].Subject)
	assert.Equal(t, 3, overview.UnreadActivity)
}

func TestDashboardOverviewCacheKeyFollowsVersions(t *testing.T) {
	cacheRepo := newMemoryCacheRepo()
	svc, interventions, activity := newDashboardFixture(t, cacheRepo)
	ctx := context.Background()

	first, hit, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	again, hit, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.Version, again.Version)

	interventions.Add(models.Intervention{ID: "iv-1", Status: models.InterventionPending})
	fresh, hit, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotEqual(t, first.Version, fresh.Version)
	assert.Equal(t, 1, fresh.Metrics.ActiveInterventions)

	activity.MarkAllAsRead()
	read, hit, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Zero(t, read.UnreadActivity)
	assert.Len(t, cacheRepo.Keys(), 3)
}

func TestDashboardOverviewCacheIsolatedPerProcess(t *testing.T) {
	shared := newMemoryCacheRepo()
	ctx := context.Background()

	first, firstInterventions, _ := newDashboardFixture(t, shared)
	firstInterventions.Add(models.Intervention{ID: "x", Status: models.InterventionPending})
	_, err := firstInterventions.Update("x", func(iv *models.Intervention) error {
		iv.Status = models.InterventionCancelled
		return nil
	})
	require.NoError(t, err)
	overview, _, err := first.Overview(ctx)
	require.NoError(t, err)
	assert.Zero(t, overview.Metrics.ActiveInterventions)

	second, secondInterventions, _ := newDashboardFixture(t, shared)
	secondInterventions.Add(models.Intervention{ID: "y", Status: models.InterventionPending})
	secondInterventions.Add(models.Intervention{ID: "z", Status: models.InterventionPending})
	require.Equal(t, overview.Version, second.version())

	fresh, hit, err := second.Overview(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, fresh.Metrics.ActiveInterventions)
	assert.Len(t, shared.Keys(), 2)
}

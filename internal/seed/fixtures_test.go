package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/repository"
)

func TestFixturesAreValid(t *testing.T) {
	data := Fixtures()
	require.NoError(t, repository.ValidateSeed(data))
	assert.Len(t, data.Snapshots, len(Dates)*(len(data.Schools)+len(data.Students)))
}

func TestFixturesAreIndependentCopies(t *testing.T) {
	a := Fixtures()
	a.Schools[0].Name = "changed"
	a.Dates[0] = "changed"
	b := Fixtures()
	assert.Equal(t, "Lincoln Elementary", b.Schools[0].Name)
	assert.Equal(t, "2023-09", b.Dates[0])
}

func TestLatestSnapshotMatchesLiveMetrics(t *testing.T) {
	data := Fixtures()
	latest := Dates[len(Dates)-1]
	for _, snap := range data.Snapshots {
		if snap.EntityID == "s1" && snap.Date == latest {
			assert.Equal(t, 87.0, snap.Metrics["performance"])
			assert.Equal(t, 95.2, snap.Metrics["attendance"])
			return
		}
	}
	t.Fatal("latest snapshot for s1 not found")
}

func TestHistory(t *testing.T) {
	data := Fixtures()
	history := History("st1", data.Snapshots)
	require.Len(t, history, len(Dates))
	assert.Equal(t, "2023-09", history[0].Month)
	assert.Equal(t, 2.1, history[len(history)-1].GPA)
	assert.Empty(t, History("missing", data.Snapshots))
	assert.Equal(t, history, data.Students[0].PerformanceHistory)
}

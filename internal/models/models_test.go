package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveGoalStatus(t *testing.T) {
	cases := []struct {
		name            string
		current, target float64
		want            GoalStatus
	}{
		{"met", 100, 100, GoalAchieved},
		{"exceeded", 120, 100, GoalAchieved},
		{"three quarters", 75, 100, GoalOnTrack},
		{"just below", 74.9, 100, GoalAtRisk},
		{"zero target", 0, 0, GoalAchieved},
		{"nothing yet", 0, 50, GoalAtRisk},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveGoalStatus(tc.current, tc.target))
		})
	}
}

func TestGoalRefreshOverridesStatus(t *testing.T) {
	g := Goal{Current: 10, Target: 100, Status: GoalAchieved}
	g.Refresh()
	assert.Equal(t, GoalAtRisk, g.Status)
}

func TestInterventionStatusLifecycle(t *testing.T) {
	assert.True(t, InterventionPending.Active())
	assert.True(t, InterventionInProgress.Active())
	assert.False(t, InterventionCompleted.Active())
	assert.True(t, InterventionCompleted.Terminal())
	assert.True(t, InterventionCancelled.Terminal())
	assert.False(t, InterventionStatus("done").Valid())
}

func TestInterventionTypes(t *testing.T) {
	assert.Len(t, InterventionTypes, 8)
	assert.True(t, InterventionType("enroll_tutoring").Valid())
	assert.False(t, InterventionType("launch_rocket").Valid())
	assert.Equal(t, "Email sent", InterventionSendEmail.Label())
}

func TestEntityRefMatches(t *testing.T) {
	ref := EntityRef{Type: EntityTeacher, ID: "t1", Name: "Jane Doe"}
	assert.True(t, ref.Matches(EntityTeacher, "t1"))
	assert.False(t, ref.Matches(EntityStudent, "t1"))
	assert.False(t, EntityType("parent").Valid())
}

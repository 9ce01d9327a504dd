package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/repository"
	"github.com/noah-isme/district-dashboard-api/internal/seed"
)

func newActivityFixture() (*ActivityService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewActivityService(repository.NewActivityRepository(seed.Fixtures().Activity), pub, nil, nil), pub
}

func TestActivityCreatePrependsUnread(t *testing.T) {
	svc, pub := newActivityFixture()

	item, err := svc.Create(CreateActivityRequest{Type: "win", Title: " Goal met ", Description: "done"})
	require.NoError(t, err)
	assert.Equal(t, "Goal met", item.Title)
	assert.False(t, item.Read)
	assert.Equal(t, 4, svc.UnreadCount())

	items, err := svc.List("")
	require.NoError(t, err)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, 1, pub.Count(TopicActivityAdded))
}

func TestActivityCreateValidates(t *testing.T) {
	svc, _ := newActivityFixture()

	_, err := svc.Create(CreateActivityRequest{Type: "party", Title: "x"})
	assertAppError(t, err, "VALIDATION_ERROR")

	_, err = svc.Create(CreateActivityRequest{Type: "alert", Title: "x", Entity: &models.EntityRef{Type: "planet", ID: "p"}})
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestActivityListFiltersByType(t *testing.T) {
	svc, _ := newActivityFixture()

	alerts, err := svc.List("alert")
	require.NoError(t, err)
	assert.Len(t, alerts, 2)

	_, err = svc.List("unknown")
	assertAppError(t, err, "VALIDATION_ERROR")
}

func TestActivityReadState(t *testing.T) {
	svc, pub := newActivityFixture()

	item, err := svc.MarkAsRead("act-1")
	require.NoError(t, err)
	assert.True(t, item.Read)
	assert.Equal(t, 2, svc.UnreadCount())

	_, err = svc.MarkAsRead("missing")
	assertAppError(t, err, "NOT_FOUND")

	assert.Equal(t, 2, svc.MarkAllAsRead())
	assert.Zero(t, svc.MarkAllAsRead())
	assert.Zero(t, svc.UnreadCount())

	assert.True(t, svc.Remove("act-2"))
	assert.False(t, svc.Remove("act-2"))
	assert.Equal(t, 3, pub.Count(TopicActivityUpdated))
}

package service

// EventPublisher pushes store events to connected dashboards.
type EventPublisher interface {
	Publish(topic string, payload interface{})
}

// Realtime event topics.
const (
	TopicToastShown            = "toast.shown"
	TopicToastDismissed        = "toast.dismissed"
	TopicInterventionTriggered = "intervention.triggered"
	TopicInterventionUpdated   = "intervention.updated"
	TopicActivityAdded         = "activity.added"
	TopicActivityUpdated       = "activity.updated"
	TopicNoteAdded             = "note.added"
	TopicNoteUpdated           = "note.updated"
	TopicNoteDeleted           = "note.deleted"
	TopicCompareChanged        = "compare.changed"
	TopicTimeTravelChanged     = "timetravel.changed"
	TopicGoalChanged           = "goal.changed"
	TopicEntitiesReloaded      = "entities.reloaded"
)

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

package models

// HistoricalSnapshot is an entity's metrics for one month label.
type HistoricalSnapshot struct {
	EntityID string             `json:"entityId"`
	Date     string             `json:"date"`
	Metrics  map[string]float64 `json:"metrics"`
}

type PlaybackState string

const (
	PlaybackPaused  PlaybackState = "paused"
	PlaybackPlaying PlaybackState = "playing"
)

// TimeTravelState is the playback cursor over the available dates.
type TimeTravelState struct {
	Dates        []string      `json:"dates"`
	CurrentIndex int           `json:"currentIndex"`
	CurrentDate  string        `json:"currentDate"`
	Playback     PlaybackState `json:"playback"`
}

package models

// CompareEntity is a member of the bounded comparison selection.
type CompareEntity struct {
	ID      string             `json:"id"`
	Type    EntityType         `json:"type"`
	Name    string             `json:"name"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// CompareState is the selection plus drawer visibility.
type CompareState struct {
	Items      []CompareEntity `json:"items"`
	DrawerOpen bool            `json:"drawerOpen"`
	MaxItems   int             `json:"maxItems"`
}

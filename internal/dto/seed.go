package dto

// SeedReloadResult summarises a completed entity reload.
type SeedReloadResult struct {
	Source    string `json:"source"`
	Version   uint64 `json:"version"`
	Districts int    `json:"districts"`
	Schools   int    `json:"schools"`
	Teachers  int    `json:"teachers"`
	Students  int    `json:"students"`
	Dates     int    `json:"dates"`
}

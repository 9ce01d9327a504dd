package models

import "time"

type Note struct {
	ID        string    `json:"id"`
	Target    EntityRef `json:"target"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Pinned    bool      `json:"pinned"`
}

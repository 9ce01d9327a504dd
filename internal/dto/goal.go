package dto

import "time"

type CreateGoalRequest struct {
	Title    string    `json:"title" validate:"required,max=200"`
	Target   float64   `json:"target" validate:"gt=0"`
	Current  float64   `json:"current" validate:"gte=0"`
	Unit     string    `json:"unit" validate:"max=32"`
	Deadline time.Time `json:"deadline" validate:"required"`
	Category string    `json:"category" validate:"required,oneof=academic attendance engagement operations"`
}

type UpdateGoalProgressRequest struct {
	Current *float64 `json:"current" validate:"required,gte=0"`
}

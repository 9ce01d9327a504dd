package models

import "time"

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastInfo    ToastKind = "info"
	ToastWarning ToastKind = "warning"
	ToastError   ToastKind = "error"
)

func (k ToastKind) Valid() bool {
	switch k {
	case ToastSuccess, ToastInfo, ToastWarning, ToastError:
		return true
	}
	return false
}

type Toast struct {
	ID        string    `json:"id"`
	Kind      ToastKind `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

package repository

import (
	"sync"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

// ToastRepository is the visible toast queue in arrival order.
type ToastRepository struct {
	mu    sync.RWMutex
	items []models.Toast
}

func NewToastRepository() *ToastRepository {
	return &ToastRepository{}
}

func (r *ToastRepository) Add(t models.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, t)
}

// Remove drops the toast and reports whether it was present.
func (r *ToastRepository) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.items {
		if t.ID == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

func (r *ToastRepository) List() []models.Toast {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]models.Toast, 0, len(r.items)), r.items...)
}

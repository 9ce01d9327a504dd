package repository

import (
	"sync"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

// ActivityRepository is the activity feed, newest first.
type ActivityRepository struct {
	mu      sync.RWMutex
	items   []models.ActivityItem
	version uint64
}

// NewActivityRepository seeds the feed; seed is expected newest first.
func NewActivityRepository(seed []models.ActivityItem) *ActivityRepository {
	return &ActivityRepository{items: append([]models.ActivityItem(nil), seed...)}
}

func (r *ActivityRepository) Add(item models.ActivityItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]models.ActivityItem{item}, r.items...)
	r.version++
}

// MarkAllAsRead returns how many items changed.
func (r *ActivityRepository) MarkAllAsRead() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	changed := 0
	for i := range r.items {
		if !r.items[i].Read {
			r.items[i].Read = true
			changed++
		}
	}
	if changed > 0 {
		r.version++
	}
	return changed
}

func (r *ActivityRepository) MarkAsRead(id string) (models.ActivityItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			if !r.items[i].Read {
				r.items[i].Read = true
				r.version++
			}
			return r.items[i], true
		}
	}
	return models.ActivityItem{}, false
}

// Remove is a no-op for unknown ids.
func (r *ActivityRepository) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			r.version++
			return true
		}
	}
	return false
}

func (r *ActivityRepository) UnreadCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, item := range r.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// List filters by type when t is non-empty.
func (r *ActivityRepository) List(t models.ActivityType) []models.ActivityItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter(r.items, func(item models.ActivityItem) bool { return t == "" || item.Type == t })
}

func (r *ActivityRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *ActivityRepository) Export() []models.ActivityItem {
	return r.List("")
}

func (r *ActivityRepository) Import(items []models.ActivityItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]models.ActivityItem(nil), items...)
	r.version++
}

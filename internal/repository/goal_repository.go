package repository

import (
	"sync"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

// GoalRepository stores goals in creation order. Statuses are always
// recomputed on write.
type GoalRepository struct {
	mu      sync.RWMutex
	items   []models.Goal
	version uint64
}

func NewGoalRepository(seed []models.Goal) *GoalRepository {
	r := &GoalRepository{}
	r.Import(seed)
	return r
}

func (r *GoalRepository) Create(g models.Goal) models.Goal {
	g.Refresh()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, g)
	r.version++
	return g
}

func (r *GoalRepository) Get(id string) (models.Goal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, g := range r.items {
		if g.ID == id {
			return g, true
		}
	}
	return models.Goal{}, false
}

// List filters by category when c is non-empty.
func (r *GoalRepository) List(c models.GoalCategory) []models.Goal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter(r.items, func(g models.Goal) bool { return c == "" || g.Category == c })
}

func (r *GoalRepository) UpdateProgress(id string, current float64) (models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Current = current
			r.items[i].Refresh()
			r.version++
			return r.items[i], nil
		}
	}
	return models.Goal{}, ErrNotFound
}

func (r *GoalRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, g := range r.items {
		if g.ID == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			r.version++
			return true
		}
	}
	return false
}

func (r *GoalRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *GoalRepository) Export() []models.Goal {
	return r.List("")
}

func (r *GoalRepository) Import(items []models.Goal) {
	cp := append([]models.Goal(nil), items...)
	for i := range cp {
		cp[i].Refresh()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = cp
	r.version++
}

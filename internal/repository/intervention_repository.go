package repository

import (
	"sort"
	"sync"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

// InterventionRepository keeps interventions newest first. It does not
// deduplicate.
type InterventionRepository struct {
	mu      sync.RWMutex
	items   []models.Intervention
	version uint64
}

func NewInterventionRepository() *InterventionRepository {
	return &InterventionRepository{}
}

// Add prepends iv.
func (r *InterventionRepository) Add(iv models.Intervention) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]models.Intervention{iv}, r.items...)
	r.version++
}

func (r *InterventionRepository) Get(id string) (models.Intervention, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, iv := range r.items {
		if iv.ID == id {
			return iv, true
		}
	}
	return models.Intervention{}, false
}

// Update applies fn to the stored record under the write lock. A non-nil
// error from fn aborts the update.
func (r *InterventionRepository) Update(id string, fn func(*models.Intervention) error) (models.Intervention, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		next := r.items[i]
		if err := fn(&next); err != nil {
			return r.items[i], err
		}
		r.items[i] = next
		r.version++
		return next, nil
	}
	return models.Intervention{}, ErrNotFound
}

// ForEntity returns the entity's interventions by createdAt descending; equal
// timestamps keep the most recently added first.
func (r *InterventionRepository) ForEntity(t models.EntityType, id string) []models.Intervention {
	r.mu.RLock()
	out := filter(r.items, func(iv models.Intervention) bool { return iv.Target.Matches(t, id) })
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *InterventionRepository) List(f models.InterventionFilter) []models.Intervention {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter(r.items, func(iv models.Intervention) bool {
		return (f.Status == "" || iv.Status == f.Status) &&
			(f.Type == "" || iv.Type == f.Type) &&
			(f.Entity == nil || iv.Target.Matches(f.Entity.Type, f.Entity.ID))
	})
}

// CountActive counts pending and in-progress interventions.
func (r *InterventionRepository) CountActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, iv := range r.items {
		if iv.Status.Active() {
			n++
		}
	}
	return n
}

func (r *InterventionRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Export returns a copy of the collection for snapshotting.
func (r *InterventionRepository) Export() []models.Intervention {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Intervention(nil), r.items...)
}

// Import replaces the collection.
func (r *InterventionRepository) Import(items []models.Intervention) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]models.Intervention(nil), items...)
	r.version++
}

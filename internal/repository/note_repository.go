package repository

import (
	"sort"
	"sync"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

type NoteRepository struct {
	mu      sync.RWMutex
	items   []models.Note
	version uint64
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{}
}

// Add prepends n.
func (r *NoteRepository) Add(n models.Note) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]models.Note{n}, r.items...)
	r.version++
}

// Delete is a no-op for unknown ids.
func (r *NoteRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.items {
		if n.ID == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			r.version++
			return true
		}
	}
	return false
}

// TogglePin flips the pinned flag.
func (r *NoteRepository) TogglePin(id string) (models.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Pinned = !r.items[i].Pinned
			r.version++
			return r.items[i], true
		}
	}
	return models.Note{}, false
}

// ForEntity returns pinned notes first, each group by createdAt descending.
func (r *NoteRepository) ForEntity(t models.EntityType, id string) []models.Note {
	r.mu.RLock()
	out := filter(r.items, func(n models.Note) bool { return n.Target.Matches(t, id) })
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *NoteRepository) List() []models.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]models.Note, 0, len(r.items)), r.items...)
}

func (r *NoteRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *NoteRepository) Export() []models.Note {
	return r.List()
}

func (r *NoteRepository) Import(items []models.Note) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]models.Note(nil), items...)
	r.version++
}

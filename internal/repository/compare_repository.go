package repository

import (
	"sync"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

const defaultCompareItems = 3

// CompareRepository is the bounded comparison selection. Adds beyond
// capacity are rejected; nothing is evicted.
type CompareRepository struct {
	mu       sync.RWMutex
	maxItems int
	items    []models.CompareEntity
	open     bool
	version  uint64
}

func NewCompareRepository(maxItems int) *CompareRepository {
	if maxItems <= 0 {
		maxItems = defaultCompareItems
	}
	return &CompareRepository{maxItems: maxItems}
}

// Add appends e unless it is already selected or the set is full. A
// successful add opens the drawer.
func (r *CompareRepository) Add(e models.CompareEntity) (models.CompareState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) >= r.maxItems || r.indexOf(e.ID) >= 0 {
		return r.stateLocked(), false
	}
	r.items = append(r.items, e)
	r.open = true
	r.version++
	return r.stateLocked(), true
}

// Remove drops id; the drawer closes once the set is empty.
func (r *CompareRepository) Remove(id string) (models.CompareState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return r.stateLocked(), false
	}
	r.items = append(r.items[:i:i], r.items[i+1:]...)
	if len(r.items) == 0 {
		r.open = false
	}
	r.version++
	return r.stateLocked(), true
}

func (r *CompareRepository) Clear() models.CompareState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	r.open = false
	r.version++
	return r.stateLocked()
}

func (r *CompareRepository) SetDrawer(open bool) models.CompareState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open = open
	r.version++
	return r.stateLocked()
}

func (r *CompareRepository) State() models.CompareState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stateLocked()
}

func (r *CompareRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *CompareRepository) Export() models.CompareState {
	return r.State()
}

// Import restores a saved selection, truncated to capacity.
func (r *CompareRepository) Import(state models.CompareState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := state.Items
	if len(items) > r.maxItems {
		items = items[:r.maxItems]
	}
	r.items = append([]models.CompareEntity(nil), items...)
	r.open = state.DrawerOpen && len(r.items) > 0
	r.version++
}

func (r *CompareRepository) indexOf(id string) int {
	for i, item := range r.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (r *CompareRepository) stateLocked() models.CompareState {
	return models.CompareState{
		Items:      append(make([]models.CompareEntity, 0, len(r.items)), r.items...),
		DrawerOpen: r.open,
		MaxItems:   r.maxItems,
	}
}

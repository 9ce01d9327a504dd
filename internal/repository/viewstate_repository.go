package repository

import (
	"sync"
	"time"

	"github.com/noah-isme/district-dashboard-api/internal/models"
)

// ViewStateRepository holds the command bar and transition overlay state.
type ViewStateRepository struct {
	mu         sync.RWMutex
	commandBar models.CommandBarState
	transition models.TransitionState
}

func NewViewStateRepository() *ViewStateRepository {
	return &ViewStateRepository{}
}

func (r *ViewStateRepository) CommandBar() models.CommandBarState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commandBar
}

// SetCommandBarOpen opens or closes the bar. Closing clears the query.
func (r *ViewStateRepository) SetCommandBarOpen(open bool) models.CommandBarState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commandBar.Open = open
	if !open {
		r.commandBar.Query = ""
	}
	return r.commandBar
}

func (r *ViewStateRepository) ToggleCommandBar() models.CommandBarState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commandBar.Open = !r.commandBar.Open
	if !r.commandBar.Open {
		r.commandBar.Query = ""
	}
	return r.commandBar
}

func (r *ViewStateRepository) SetQuery(q string) models.CommandBarState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commandBar.Query = q
	return r.commandBar
}

func (r *ViewStateRepository) Transition() models.TransitionState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.transition
}

func (r *ViewStateRepository) StartTransition(label string, at time.Time) models.TransitionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transition = models.TransitionState{Active: true, Label: label, StartedAt: &at}
	return r.transition
}

func (r *ViewStateRepository) EndTransition() models.TransitionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transition = models.TransitionState{}
	return r.transition
}

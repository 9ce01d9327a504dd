package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
)

type viewStateStore interface {
	CommandBar() models.CommandBarState
	SetCommandBarOpen(open bool) models.CommandBarState
	ToggleCommandBar() models.CommandBarState
	SetQuery(q string) models.CommandBarState
	Transition() models.TransitionState
	StartTransition(label string, at time.Time) models.TransitionState
	EndTransition() models.TransitionState
}

type entitySearcher interface {
	Search(query string, limit int) []models.SearchResult
}

// ViewStateService holds the command bar and transition overlay.
type ViewStateService struct {
	store       viewStateStore
	search      entitySearcher
	searchLimit int
	validator   *validator.Validate
	now         func() time.Time
}

func NewViewStateService(store viewStateStore, search entitySearcher, validate *validator.Validate) *ViewStateService {
	return &ViewStateService{
		store:       store,
		search:      search,
		searchLimit: defaultSearchLimit,
		validator:   validatorOrDefault(validate),
		now:         time.Now,
	}
}

func (s *ViewStateService) CommandBar() dto.CommandBarResponse {
	return s.withResults(s.store.CommandBar())
}

func (s *ViewStateService) OpenCommandBar() dto.CommandBarResponse {
	return s.withResults(s.store.SetCommandBarOpen(true))
}

// CloseCommandBar also clears the query.
func (s *ViewStateService) CloseCommandBar() dto.CommandBarResponse {
	return s.withResults(s.store.SetCommandBarOpen(false))
}

func (s *ViewStateService) ToggleCommandBar() dto.CommandBarResponse {
	return s.withResults(s.store.ToggleCommandBar())
}

func (s *ViewStateService) SetQuery(req dto.SetQueryRequest) (dto.CommandBarResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CommandBarResponse{}, invalidPayload(err, "invalid query")
	}
	return s.withResults(s.store.SetQuery(req.Query)), nil
}

func (s *ViewStateService) Transition() models.TransitionState {
	return s.store.Transition()
}

func (s *ViewStateService) StartTransition(req dto.StartTransitionRequest) (models.TransitionState, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.TransitionState{}, invalidPayload(err, "invalid transition payload")
	}
	return s.store.StartTransition(strings.TrimSpace(req.Label), s.now().UTC()), nil
}

func (s *ViewStateService) EndTransition() models.TransitionState {
	return s.store.EndTransition()
}

func (s *ViewStateService) withResults(state models.CommandBarState) dto.CommandBarResponse {
	resp := dto.CommandBarResponse{CommandBarState: state, Results: []models.SearchResult{}}
	if s.search != nil && strings.TrimSpace(state.Query) != "" {
		resp.Results = s.search.Search(state.Query, s.searchLimit)
	}
	return resp
}

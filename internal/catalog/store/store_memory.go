package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"vigia/internal/catalog/models"
	"vigia/pkg/platform/sentinel"
)

// InMemory keeps catalog reference data in process. It favors clarity over
// performance and backs the unit tests.
type InMemory struct {
	mu         sync.RWMutex
	states     map[uuid.UUID]models.ConditionState
	categories map[uuid.UUID]models.Category
}

func NewInMemory() *InMemory {
	return &InMemory{
		states:     make(map[uuid.UUID]models.ConditionState),
		categories: make(map[uuid.UUID]models.Category),
	}
}

// CreateStateIfNameAvailable inserts a condition state unless the name is
// already taken. Name uniqueness is enforced under one lock so concurrent
// seeds stay idempotent.
func (s *InMemory) CreateStateIfNameAvailable(_ context.Context, state *models.ConditionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.states {
		if strings.EqualFold(existing.Name, state.Name) {
			return sentinel.ErrConflict
		}
	}
	s.states[state.ID] = *state
	return nil
}

func (s *InMemory) CreateCategoryIfNameAvailable(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if strings.EqualFold(existing.Name, category.Name) {
			return sentinel.ErrConflict
		}
	}
	s.categories[category.ID] = *category
	return nil
}

func (s *InMemory) FindStateByID(_ context.Context, id uuid.UUID) (*models.ConditionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.states[id]; ok {
		return &state, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindCategoryByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if category, ok := s.categories[id]; ok {
		return &category, nil
	}
	return nil, sentinel.ErrNotFound
}

// ListStates returns states ordered by severity rank ascending.
func (s *InMemory) ListStates(_ context.Context) ([]*models.ConditionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ConditionState, 0, len(s.states))
	for _, state := range s.states {
		st := state
		out = append(out, &st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeverityRank != out[j].SeverityRank {
			return out[i].SeverityRank < out[j].SeverityRank
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// ListCategories returns categories ordered by name ascending.
func (s *InMemory) ListCategories(_ context.Context) ([]*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Category, 0, len(s.categories))
	for _, category := range s.categories {
		c := category
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

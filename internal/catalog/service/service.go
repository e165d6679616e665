package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"vigia/internal/catalog/models"
	dErrors "vigia/pkg/domain-errors"
	"vigia/pkg/platform/sentinel"
)

// Store abstracts catalog persistence. Implemented by the in-memory and
// Postgres stores (optionally wrapped by the Redis cache).
type Store interface {
	CreateStateIfNameAvailable(ctx context.Context, state *models.ConditionState) error
	CreateCategoryIfNameAvailable(ctx context.Context, category *models.Category) error
	FindStateByID(ctx context.Context, id uuid.UUID) (*models.ConditionState, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListStates(ctx context.Context) ([]*models.ConditionState, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

// Service is the read-mostly Catalog Registry. Everything above it treats it
// as reference data: the inspection engine and the pending report consult it,
// never mutate it.
type Service struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Seed loads the default condition states and categories. Idempotent: entries
// whose names already exist are left untouched.
func (s *Service) Seed(ctx context.Context) error {
	states := []models.ConditionState{
		{Name: models.GoodStateName, SeverityRank: 1},
		{Name: "Requires maintenance", SeverityRank: 3},
		{Name: "Non-operational", SeverityRank: 4},
	}
	for _, state := range states {
		state.ID = uuid.New()
		if err := s.store.CreateStateIfNameAvailable(ctx, &state); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				continue
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to seed condition states")
		}
	}

	categories := []models.Category{
		{Name: "Environment", Description: "Physical rooms and spaces (kitchen, bathroom)"},
		{Name: "Implement", Description: "Supplies and implements"},
		{Name: "Furniture", Description: "Furniture and equipment"},
	}
	for _, category := range categories {
		category.ID = uuid.New()
		if err := s.store.CreateCategoryIfNameAvailable(ctx, &category); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				continue
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to seed categories")
		}
	}
	return nil
}

// StateByID resolves a condition state. This is the lookup the inspection
// engine and pending report depend on.
func (s *Service) StateByID(ctx context.Context, id uuid.UUID) (*models.ConditionState, error) {
	state, err := s.store.FindStateByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "condition state %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load condition state")
	}
	return state, nil
}

// CategoryByID resolves an item category.
func (s *Service) CategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.store.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "category %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load category")
	}
	return category, nil
}

// ListStates returns all condition states ordered by severity rank.
func (s *Service) ListStates(ctx context.Context) ([]*models.ConditionState, error) {
	states, err := s.store.ListStates(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list condition states")
	}
	return states, nil
}

// ListCategories returns all categories ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list categories")
	}
	return categories, nil
}

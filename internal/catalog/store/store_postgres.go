package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vigia/internal/catalog/models"
	"vigia/internal/platform/postgres"
	"vigia/pkg/platform/sentinel"
)

// Postgres persists catalog reference data. Pure I/O; seeding policy lives in
// the service.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateStateIfNameAvailable(ctx context.Context, state *models.ConditionState) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO condition_states (id, name, severity_rank)
		VALUES ($1, $2, $3)
	`, state.ID, state.Name, state.SeverityRank)
	if postgres.IsUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create condition state: %w", err)
	}
	return nil
}

func (s *Postgres) CreateCategoryIfNameAvailable(ctx context.Context, category *models.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description)
		VALUES ($1, $2, $3)
	`, category.ID, category.Name, category.Description)
	if postgres.IsUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (s *Postgres) FindStateByID(ctx context.Context, id uuid.UUID) (*models.ConditionState, error) {
	var state models.ConditionState
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, severity_rank FROM condition_states WHERE id = $1
	`, id).Scan(&state.ID, &state.Name, &state.SeverityRank)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find condition state: %w", err)
	}
	return &state, nil
}

func (s *Postgres) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, '') FROM categories WHERE id = $1
	`, id).Scan(&category.ID, &category.Name, &category.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

func (s *Postgres) ListStates(ctx context.Context) ([]*models.ConditionState, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, severity_rank
		FROM condition_states
		ORDER BY severity_rank ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list condition states: %w", err)
	}
	defer rows.Close()

	var out []*models.ConditionState
	for rows.Next() {
		var state models.ConditionState
		if err := rows.Scan(&state.ID, &state.Name, &state.SeverityRank); err != nil {
			return nil, fmt.Errorf("scan condition state: %w", err)
		}
		out = append(out, &state)
	}
	return out, rows.Err()
}

func (s *Postgres) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, '')
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &category)
	}
	return out, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vigia/internal/checklist/models"
	"vigia/internal/platform/postgres"
	"vigia/pkg/platform/sentinel"
)

// Postgres persists checklist templates.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateChecklist(ctx context.Context, checklist *models.Checklist) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checklists (id, name, version, scope, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, checklist.ID, checklist.Name, checklist.Version, string(checklist.Scope), checklist.CreatedAt)
	if err != nil {
		return fmt.Errorf("create checklist: %w", err)
	}
	return nil
}

func (s *Postgres) FindChecklistByID(ctx context.Context, id uuid.UUID) (*models.Checklist, error) {
	var checklist models.Checklist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, version, scope, created_at FROM checklists WHERE id = $1
	`, id).Scan(&checklist.ID, &checklist.Name, &checklist.Version, &checklist.Scope, &checklist.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find checklist: %w", err)
	}
	return &checklist, nil
}

func (s *Postgres) ListChecklists(ctx context.Context) ([]*models.Checklist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, version, scope, created_at
		FROM checklists
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	defer rows.Close()

	var out []*models.Checklist
	for rows.Next() {
		var checklist models.Checklist
		if err := rows.Scan(&checklist.ID, &checklist.Name, &checklist.Version, &checklist.Scope, &checklist.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan checklist: %w", err)
		}
		out = append(out, &checklist)
	}
	return out, rows.Err()
}

func (s *Postgres) DeleteChecklistCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete checklist: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM checklist_questions WHERE checklist_id = $1`, id); err != nil {
		return fmt.Errorf("delete checklist questions: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM checklists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete checklist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete checklist rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return tx.Commit()
}

func (s *Postgres) CreateQuestion(ctx context.Context, question *models.Question) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checklist_questions (id, checklist_id, text, kind, options, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, question.ID, question.ChecklistID, question.Text, string(question.Kind), question.Options, question.CreatedAt)
	if postgres.IsForeignKeyViolation(err) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("create checklist question: %w", err)
	}
	return nil
}

func (s *Postgres) ListQuestions(ctx context.Context, checklistID uuid.UUID) ([]*models.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, checklist_id, text, kind, COALESCE(options, ''), created_at
		FROM checklist_questions
		WHERE checklist_id = $1
		ORDER BY created_at ASC, id ASC
	`, checklistID)
	if err != nil {
		return nil, fmt.Errorf("list checklist questions: %w", err)
	}
	defer rows.Close()

	var out []*models.Question
	for rows.Next() {
		var question models.Question
		if err := rows.Scan(&question.ID, &question.ChecklistID, &question.Text, &question.Kind, &question.Options, &question.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan checklist question: %w", err)
		}
		out = append(out, &question)
	}
	return out, rows.Err()
}

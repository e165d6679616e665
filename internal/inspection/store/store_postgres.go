package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vigia/internal/inspection/models"
	"vigia/internal/platform/postgres"
	"vigia/pkg/platform/sentinel"
)

// Postgres persists inspections and details. The domain's tagged unions map
// to two nullable columns plus a stored discriminator, per the table layout
// the report joins against.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateInspection(ctx context.Context, inspection *models.Inspection) error {
	var unitID, zoneID *uuid.UUID
	switch inspection.Target.Kind {
	case models.TargetUnit:
		unitID = &inspection.Target.ID
	case models.TargetZone:
		zoneID = &inspection.Target.ID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inspections (id, ts, inspector, checklist_id, target_kind, unit_id, zone_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, inspection.ID, inspection.Timestamp, inspection.Inspector, inspection.ChecklistID,
		string(inspection.Target.Kind), unitID, zoneID)
	if err != nil {
		return fmt.Errorf("create inspection: %w", err)
	}
	return nil
}

func (s *Postgres) FindInspectionByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, ts, inspector, checklist_id, target_kind, unit_id, zone_id
		FROM inspections WHERE id = $1
	`, id)
	inspection, err := scanInspection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find inspection: %w", err)
	}
	return inspection, nil
}

func (s *Postgres) ListInspections(ctx context.Context) ([]*models.Inspection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, inspector, checklist_id, target_kind, unit_id, zone_id
		FROM inspections
		ORDER BY ts ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	defer rows.Close()

	var out []*models.Inspection
	for rows.Next() {
		inspection, err := scanInspection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inspection: %w", err)
		}
		out = append(out, inspection)
	}
	return out, rows.Err()
}

func (s *Postgres) DeleteInspectionCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete inspection: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inspection_details WHERE inspection_id = $1`, id); err != nil {
		return fmt.Errorf("delete inspection details: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM inspections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inspection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete inspection rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return tx.Commit()
}

func (s *Postgres) CreateDetail(ctx context.Context, detail *models.Detail) error {
	var unitItemID, zoneItemID *uuid.UUID
	switch detail.Item.Kind {
	case models.RefUnitItem:
		unitItemID = &detail.Item.ID
	case models.RefZoneItem:
		zoneItemID = &detail.Item.ID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inspection_details (id, inspection_id, item_kind, unit_item_id, zone_item_id, condition_id, note, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, detail.ID, detail.InspectionID, string(detail.Item.Kind), unitItemID, zoneItemID,
		detail.ConditionID, detail.Note, []byte(detail.Payload), detail.CreatedAt)
	if postgres.IsForeignKeyViolation(err) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("create inspection detail: %w", err)
	}
	return nil
}

func (s *Postgres) ListDetailsByInspection(ctx context.Context, inspectionID uuid.UUID) ([]*models.Detail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, inspection_id, item_kind, unit_item_id, zone_item_id, condition_id, COALESCE(note, ''), payload, created_at
		FROM inspection_details
		WHERE inspection_id = $1
		ORDER BY created_at ASC, id ASC
	`, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("list inspection details: %w", err)
	}
	defer rows.Close()
	return collectDetails(rows)
}

func (s *Postgres) ListAllDetails(ctx context.Context) ([]*models.Detail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, inspection_id, item_kind, unit_item_id, zone_item_id, condition_id, COALESCE(note, ''), payload, created_at
		FROM inspection_details
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all details: %w", err)
	}
	defer rows.Close()
	return collectDetails(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInspection(row rowScanner) (*models.Inspection, error) {
	var inspection models.Inspection
	var kind string
	var unitID, zoneID *uuid.UUID
	if err := row.Scan(&inspection.ID, &inspection.Timestamp, &inspection.Inspector,
		&inspection.ChecklistID, &kind, &unitID, &zoneID); err != nil {
		return nil, err
	}
	switch models.TargetKind(kind) {
	case models.TargetUnit:
		if unitID != nil {
			inspection.Target = models.UnitTarget(*unitID)
		}
	case models.TargetZone:
		if zoneID != nil {
			inspection.Target = models.ZoneTarget(*zoneID)
		}
	}
	return &inspection, nil
}

func collectDetails(rows *sql.Rows) ([]*models.Detail, error) {
	var out []*models.Detail
	for rows.Next() {
		var detail models.Detail
		var kind string
		var unitItemID, zoneItemID *uuid.UUID
		var payload []byte
		if err := rows.Scan(&detail.ID, &detail.InspectionID, &kind, &unitItemID, &zoneItemID,
			&detail.ConditionID, &detail.Note, &payload, &detail.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inspection detail: %w", err)
		}
		switch models.ItemRefKind(kind) {
		case models.RefUnitItem:
			if unitItemID != nil {
				detail.Item = models.UnitItemRef(*unitItemID)
			}
		case models.RefZoneItem:
			if zoneItemID != nil {
				detail.Item = models.ZoneItemRef(*zoneItemID)
			}
		}
		detail.Payload = payload
		out = append(out, &detail)
	}
	return out, rows.Err()
}

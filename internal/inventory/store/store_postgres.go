package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vigia/internal/inventory/models"
	"vigia/internal/platform/postgres"
	"vigia/pkg/platform/sentinel"
)

// Postgres persists the inventory graph. Natural-key uniqueness rides on a
// unique index; cascades run inside one transaction so a unit never outlives
// its items or vice versa.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateUnitIfKeyAvailable(ctx context.Context, unit *models.Unit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO units (id, tower, floor, number, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, unit.ID, unit.Tower, unit.Floor, unit.Number, unit.CreatedAt)
	if postgres.IsUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create unit: %w", err)
	}
	return nil
}

func (s *Postgres) FindUnitByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	var unit models.Unit
	err := s.db.QueryRowContext(ctx, `
		SELECT id, tower, floor, number, created_at FROM units WHERE id = $1
	`, id).Scan(&unit.ID, &unit.Tower, &unit.Floor, &unit.Number, &unit.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find unit: %w", err)
	}
	return &unit, nil
}

func (s *Postgres) ListUnits(ctx context.Context, filter models.UnitFilter) ([]*models.Unit, error) {
	query := `SELECT id, tower, floor, number, created_at FROM units WHERE 1=1`
	args := []any{}
	if filter.Tower != nil {
		args = append(args, *filter.Tower)
		query += fmt.Sprintf(" AND tower = $%d", len(args))
	}
	if filter.Floor != nil {
		args = append(args, *filter.Floor)
		query += fmt.Sprintf(" AND floor = $%d", len(args))
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var out []*models.Unit
	for rows.Next() {
		var unit models.Unit
		if err := rows.Scan(&unit.ID, &unit.Tower, &unit.Floor, &unit.Number, &unit.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		out = append(out, &unit)
	}
	return out, rows.Err()
}

func (s *Postgres) DeleteUnitCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete unit: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM unit_items WHERE unit_id = $1`, id); err != nil {
		return fmt.Errorf("delete unit items: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete unit rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return tx.Commit()
}

func (s *Postgres) CreateUnitItem(ctx context.Context, item *models.UnitItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO unit_items (id, unit_id, name, category_id, condition_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, item.ID, item.UnitID, item.Name, item.CategoryID, item.ConditionID, item.Note, item.CreatedAt)
	if postgres.IsForeignKeyViolation(err) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("create unit item: %w", err)
	}
	return nil
}

func (s *Postgres) FindUnitItemByID(ctx context.Context, id uuid.UUID) (*models.UnitItem, error) {
	var item models.UnitItem
	err := s.db.QueryRowContext(ctx, `
		SELECT id, unit_id, name, category_id, condition_id, COALESCE(note, ''), created_at
		FROM unit_items WHERE id = $1
	`, id).Scan(&item.ID, &item.UnitID, &item.Name, &item.CategoryID, &item.ConditionID, &item.Note, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find unit item: %w", err)
	}
	return &item, nil
}

func (s *Postgres) ListUnitItems(ctx context.Context, unitID uuid.UUID) ([]*models.UnitItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, unit_id, name, category_id, condition_id, COALESCE(note, ''), created_at
		FROM unit_items WHERE unit_id = $1
		ORDER BY created_at ASC, id ASC
	`, unitID)
	if err != nil {
		return nil, fmt.Errorf("list unit items: %w", err)
	}
	defer rows.Close()

	var out []*models.UnitItem
	for rows.Next() {
		var item models.UnitItem
		if err := rows.Scan(&item.ID, &item.UnitID, &item.Name, &item.CategoryID, &item.ConditionID, &item.Note, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit item: %w", err)
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

func (s *Postgres) CreateZone(ctx context.Context, zone *models.Zone) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO zones (id, name, location, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, zone.ID, zone.Name, zone.Location, zone.Type, zone.CreatedAt)
	if err != nil {
		return fmt.Errorf("create zone: %w", err)
	}
	return nil
}

func (s *Postgres) FindZoneByID(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	var zone models.Zone
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(location, ''), COALESCE(type, ''), created_at
		FROM zones WHERE id = $1
	`, id).Scan(&zone.ID, &zone.Name, &zone.Location, &zone.Type, &zone.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find zone: %w", err)
	}
	return &zone, nil
}

func (s *Postgres) ListZones(ctx context.Context, filter models.ZoneFilter) ([]*models.Zone, error) {
	query := `SELECT id, name, COALESCE(location, ''), COALESCE(type, ''), created_at FROM zones WHERE 1=1`
	args := []any{}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var out []*models.Zone
	for rows.Next() {
		var zone models.Zone
		if err := rows.Scan(&zone.ID, &zone.Name, &zone.Location, &zone.Type, &zone.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		out = append(out, &zone)
	}
	return out, rows.Err()
}

func (s *Postgres) DeleteZoneCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete zone: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM zone_items WHERE zone_id = $1`, id); err != nil {
		return fmt.Errorf("delete zone items: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM zones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete zone: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete zone rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return tx.Commit()
}

func (s *Postgres) CreateZoneItem(ctx context.Context, item *models.ZoneItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO zone_items (id, zone_id, name, category_id, condition_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, item.ID, item.ZoneID, item.Name, item.CategoryID, item.ConditionID, item.Note, item.CreatedAt)
	if postgres.IsForeignKeyViolation(err) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("create zone item: %w", err)
	}
	return nil
}

func (s *Postgres) FindZoneItemByID(ctx context.Context, id uuid.UUID) (*models.ZoneItem, error) {
	var item models.ZoneItem
	err := s.db.QueryRowContext(ctx, `
		SELECT id, zone_id, name, category_id, condition_id, COALESCE(note, ''), created_at
		FROM zone_items WHERE id = $1
	`, id).Scan(&item.ID, &item.ZoneID, &item.Name, &item.CategoryID, &item.ConditionID, &item.Note, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find zone item: %w", err)
	}
	return &item, nil
}

func (s *Postgres) ListZoneItems(ctx context.Context, zoneID uuid.UUID) ([]*models.ZoneItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, zone_id, name, category_id, condition_id, COALESCE(note, ''), created_at
		FROM zone_items WHERE zone_id = $1
		ORDER BY created_at ASC, id ASC
	`, zoneID)
	if err != nil {
		return nil, fmt.Errorf("list zone items: %w", err)
	}
	defer rows.Close()

	var out []*models.ZoneItem
	for rows.Next() {
		var item models.ZoneItem
		if err := rows.Scan(&item.ID, &item.ZoneID, &item.Name, &item.CategoryID, &item.ConditionID, &item.Note, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan zone item: %w", err)
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

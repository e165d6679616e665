package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"vigia/internal/inventory/models"
	dErrors "vigia/pkg/domain-errors"
	"vigia/pkg/platform/sentinel"
)

// Store abstracts inventory persistence. The store owns the atomicity of
// check-then-act hazards: natural-key uniqueness and cascade deletes.
type Store interface {
	CreateUnitIfKeyAvailable(ctx context.Context, unit *models.Unit) error
	FindUnitByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	ListUnits(ctx context.Context, filter models.UnitFilter) ([]*models.Unit, error)
	DeleteUnitCascade(ctx context.Context, id uuid.UUID) error
	CreateUnitItem(ctx context.Context, item *models.UnitItem) error
	FindUnitItemByID(ctx context.Context, id uuid.UUID) (*models.UnitItem, error)
	ListUnitItems(ctx context.Context, unitID uuid.UUID) ([]*models.UnitItem, error)

	CreateZone(ctx context.Context, zone *models.Zone) error
	FindZoneByID(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	ListZones(ctx context.Context, filter models.ZoneFilter) ([]*models.Zone, error)
	DeleteZoneCascade(ctx context.Context, id uuid.UUID) error
	CreateZoneItem(ctx context.Context, item *models.ZoneItem) error
	FindZoneItemByID(ctx context.Context, id uuid.UUID) (*models.ZoneItem, error)
	ListZoneItems(ctx context.Context, zoneID uuid.UUID) ([]*models.ZoneItem, error)
}

// Service owns units and zones and the items they exclusively hold. Category
// and condition ids on items are accepted unchecked here; the inspection
// engine validates condition references when a detail records them.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUnit registers a dwelling under its (tower, floor, number) natural key.
func (s *Service) CreateUnit(ctx context.Context, tower string, floor int, number string) (*models.Unit, error) {
	tower = strings.TrimSpace(tower)
	number = strings.TrimSpace(number)
	if tower == "" || number == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "unit tower and number must be non-empty")
	}

	unit := &models.Unit{
		ID:        uuid.New(),
		Tower:     tower,
		Floor:     floor,
		Number:    number,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateUnitIfKeyAvailable(ctx, unit); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "unit %s/%d/%s already exists", tower, floor, number)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create unit")
	}
	s.logger.InfoContext(ctx, "unit created", "unit_id", unit.ID, "tower", tower, "floor", floor, "number", number)
	return unit, nil
}

func (s *Service) GetUnit(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	unit, err := s.store.FindUnitByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "unit %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load unit")
	}
	return unit, nil
}

func (s *Service) ListUnits(ctx context.Context, filter models.UnitFilter) ([]*models.Unit, error) {
	units, err := s.store.ListUnits(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list units")
	}
	return units, nil
}

// DeleteUnit removes the unit and cascades over its items. Deleting twice is
// a clean not-found, never a crash.
func (s *Service) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteUnitCascade(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "unit %s not found", id)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete unit")
	}
	s.logger.InfoContext(ctx, "unit deleted", "unit_id", id)
	return nil
}

// AddUnitItem attaches an item to an existing unit. The owning unit is fixed
// here and never changes.
func (s *Service) AddUnitItem(ctx context.Context, unitID uuid.UUID, fields models.ItemFields) (*models.UnitItem, error) {
	if strings.TrimSpace(fields.Name) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "item name must be non-empty")
	}
	if _, err := s.store.FindUnitByID(ctx, unitID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "unit %s not found", unitID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load unit")
	}

	item := &models.UnitItem{
		ID:          uuid.New(),
		UnitID:      unitID,
		Name:        strings.TrimSpace(fields.Name),
		CategoryID:  fields.CategoryID,
		ConditionID: fields.ConditionID,
		Note:        fields.Note,
		CreatedAt:   s.now(),
	}
	if err := s.store.CreateUnitItem(ctx, item); err != nil {
		// The unit may have been deleted between the check and the insert;
		// the store reports that as not-found.
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "unit %s not found", unitID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create unit item")
	}
	return item, nil
}

func (s *Service) GetUnitItem(ctx context.Context, id uuid.UUID) (*models.UnitItem, error) {
	item, err := s.store.FindUnitItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "unit item %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load unit item")
	}
	return item, nil
}

func (s *Service) ListUnitItems(ctx context.Context, unitID uuid.UUID) ([]*models.UnitItem, error) {
	if _, err := s.GetUnit(ctx, unitID); err != nil {
		return nil, err
	}
	items, err := s.store.ListUnitItems(ctx, unitID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list unit items")
	}
	return items, nil
}

// CreateZone registers a common-use space. Zones carry no natural key.
func (s *Service) CreateZone(ctx context.Context, name, location, zoneType string) (*models.Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "zone name must be non-empty")
	}

	zone := &models.Zone{
		ID:        uuid.New(),
		Name:      name,
		Location:  location,
		Type:      zoneType,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateZone(ctx, zone); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create zone")
	}
	s.logger.InfoContext(ctx, "zone created", "zone_id", zone.ID, "name", name)
	return zone, nil
}

func (s *Service) GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	zone, err := s.store.FindZoneByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "zone %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load zone")
	}
	return zone, nil
}

func (s *Service) ListZones(ctx context.Context, filter models.ZoneFilter) ([]*models.Zone, error) {
	zones, err := s.store.ListZones(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list zones")
	}
	return zones, nil
}

func (s *Service) DeleteZone(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteZoneCascade(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "zone %s not found", id)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete zone")
	}
	s.logger.InfoContext(ctx, "zone deleted", "zone_id", id)
	return nil
}

func (s *Service) AddZoneItem(ctx context.Context, zoneID uuid.UUID, fields models.ItemFields) (*models.ZoneItem, error) {
	if strings.TrimSpace(fields.Name) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "item name must be non-empty")
	}
	if _, err := s.store.FindZoneByID(ctx, zoneID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "zone %s not found", zoneID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load zone")
	}

	item := &models.ZoneItem{
		ID:          uuid.New(),
		ZoneID:      zoneID,
		Name:        strings.TrimSpace(fields.Name),
		CategoryID:  fields.CategoryID,
		ConditionID: fields.ConditionID,
		Note:        fields.Note,
		CreatedAt:   s.now(),
	}
	if err := s.store.CreateZoneItem(ctx, item); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "zone %s not found", zoneID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create zone item")
	}
	return item, nil
}

func (s *Service) GetZoneItem(ctx context.Context, id uuid.UUID) (*models.ZoneItem, error) {
	item, err := s.store.FindZoneItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "zone item %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load zone item")
	}
	return item, nil
}

func (s *Service) ListZoneItems(ctx context.Context, zoneID uuid.UUID) ([]*models.ZoneItem, error) {
	if _, err := s.GetZone(ctx, zoneID); err != nil {
		return nil, err
	}
	items, err := s.store.ListZoneItems(ctx, zoneID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list zone items")
	}
	return items, nil
}

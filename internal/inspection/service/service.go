package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	catmodels "vigia/internal/catalog/models"
	chkmodels "vigia/internal/checklist/models"
	"vigia/internal/inspection/metrics"
	"vigia/internal/inspection/models"
	invmodels "vigia/internal/inventory/models"
	dErrors "vigia/pkg/domain-errors"
	"vigia/pkg/platform/sentinel"
)

// Store abstracts inspection persistence.
type Store interface {
	CreateInspection(ctx context.Context, inspection *models.Inspection) error
	FindInspectionByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error)
	ListInspections(ctx context.Context) ([]*models.Inspection, error)
	DeleteInspectionCascade(ctx context.Context, id uuid.UUID) error
	CreateDetail(ctx context.Context, detail *models.Detail) error
	ListDetailsByInspection(ctx context.Context, inspectionID uuid.UUID) ([]*models.Detail, error)
	ListAllDetails(ctx context.Context) ([]*models.Detail, error)
}

// Inventory resolves the units, zones and items an inspection references.
type Inventory interface {
	GetUnit(ctx context.Context, id uuid.UUID) (*invmodels.Unit, error)
	GetZone(ctx context.Context, id uuid.UUID) (*invmodels.Zone, error)
	GetUnitItem(ctx context.Context, id uuid.UUID) (*invmodels.UnitItem, error)
	GetZoneItem(ctx context.Context, id uuid.UUID) (*invmodels.ZoneItem, error)
}

// Checklists resolves the template an inspection runs against.
type Checklists interface {
	GetChecklist(ctx context.Context, id uuid.UUID) (*chkmodels.Checklist, error)
}

// Conditions resolves the condition state a detail records.
type Conditions interface {
	StateByID(ctx context.Context, id uuid.UUID) (*catmodels.ConditionState, error)
}

// Service is the consistency engine for inspections. Every reference a caller
// hands in (target, checklist, item, condition) is resolved and cross-checked
// before anything is written, so stored inspections never point across the
// unit/zone boundary.
type Service struct {
	store      Store
	inventory  Inventory
	checklists Checklists
	conditions Conditions
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store Store, inventory Inventory, checklists Checklists, conditions Conditions, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:      store,
		inventory:  inventory,
		checklists: checklists,
		conditions: conditions,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInspection opens an inspection against exactly one unit or zone. The
// checklist's scope must match the target kind, and the target must exist at
// creation time. A zero timestamp means now.
func (s *Service) CreateInspection(ctx context.Context, target models.Target, checklistID uuid.UUID, inspector string, timestamp time.Time) (*models.Inspection, error) {
	if !target.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, "inspection must reference exactly one of unit or zone")
	}
	inspector = strings.TrimSpace(inspector)
	if inspector == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "inspector must be non-empty")
	}

	checklist, err := s.checklists.GetChecklist(ctx, checklistID)
	if err != nil {
		return nil, err
	}
	if err := s.checkScope(checklist.Scope, target.Kind); err != nil {
		return nil, err
	}
	if err := s.checkTargetExists(ctx, target); err != nil {
		return nil, err
	}

	if timestamp.IsZero() {
		timestamp = s.now()
	}
	inspection := &models.Inspection{
		ID:          uuid.New(),
		Timestamp:   timestamp,
		Inspector:   inspector,
		ChecklistID: checklistID,
		Target:      target,
	}
	if err := s.store.CreateInspection(ctx, inspection); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create inspection")
	}
	s.metrics.IncrementInspectionsCreated()
	s.logger.InfoContext(ctx, "inspection created",
		"inspection_id", inspection.ID,
		"target_kind", target.Kind,
		"target_id", target.ID,
		"checklist_id", checklistID)
	return inspection, nil
}

func (s *Service) checkScope(scope chkmodels.Scope, kind models.TargetKind) error {
	switch {
	case scope == chkmodels.ScopeUnit && kind != models.TargetUnit,
		scope == chkmodels.ScopeZone && kind != models.TargetZone:
		return dErrors.Newf(dErrors.CodeValidation, "checklist scope %s does not match target kind %s", scope, kind)
	}
	return nil
}

func (s *Service) checkTargetExists(ctx context.Context, target models.Target) error {
	var err error
	switch target.Kind {
	case models.TargetUnit:
		_, err = s.inventory.GetUnit(ctx, target.ID)
	case models.TargetZone:
		_, err = s.inventory.GetZone(ctx, target.ID)
	}
	return err
}

// AddDetail records one observation inside an inspection. The referenced item
// must be of the kind matching the inspection's target and must belong to that
// exact unit or zone; anything else is rejected before the write.
func (s *Service) AddDetail(ctx context.Context, inspectionID uuid.UUID, item models.ItemRef, conditionID uuid.UUID, note string, payload json.RawMessage) (*models.Detail, error) {
	start := s.now()
	defer func() { s.metrics.ObserveAddDetail(start) }()

	if !item.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, "detail must reference exactly one of unit item or zone item")
	}

	inspection, err := s.findInspection(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkItemOwnership(ctx, inspection, item); err != nil {
		s.metrics.IncrementDetailsRejected()
		return nil, err
	}
	if _, err := s.conditions.StateByID(ctx, conditionID); err != nil {
		return nil, err
	}

	detail := &models.Detail{
		ID:           uuid.New(),
		InspectionID: inspectionID,
		Item:         item,
		ConditionID:  conditionID,
		Note:         strings.TrimSpace(note),
		Payload:      payload,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateDetail(ctx, detail); err != nil {
		// The inspection can disappear between the lookup above and the
		// insert; the store reports that as not found.
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "inspection %s not found", inspectionID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create detail")
	}
	s.metrics.IncrementDetailsRecorded()
	s.logger.InfoContext(ctx, "detail recorded",
		"inspection_id", inspectionID,
		"detail_id", detail.ID,
		"item_kind", item.Kind,
		"item_id", item.ID)
	return detail, nil
}

// checkItemOwnership resolves the item and verifies it hangs off the
// inspection's own target. A missing item, a kind that does not match the
// target, and an item owned by a different unit or zone all get the same
// rejection: the item does not belong to this inspection.
func (s *Service) checkItemOwnership(ctx context.Context, inspection *models.Inspection, item models.ItemRef) error {
	belongs := false
	switch item.Kind {
	case models.RefUnitItem:
		if inspection.Target.Kind != models.TargetUnit {
			break
		}
		unitItem, err := s.inventory.GetUnitItem(ctx, item.ID)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				break
			}
			return err
		}
		belongs = unitItem.UnitID == inspection.Target.ID
	case models.RefZoneItem:
		if inspection.Target.Kind != models.TargetZone {
			break
		}
		zoneItem, err := s.inventory.GetZoneItem(ctx, item.ID)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				break
			}
			return err
		}
		belongs = zoneItem.ZoneID == inspection.Target.ID
	}
	if !belongs {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"item %s does not belong to the inspection's %s", item.ID, strings.ToLower(string(inspection.Target.Kind)))
	}
	return nil
}

func (s *Service) findInspection(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	inspection, err := s.store.FindInspectionByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "inspection %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load inspection")
	}
	return inspection, nil
}

// GetInspection returns an inspection together with its details in recording
// order.
func (s *Service) GetInspection(ctx context.Context, id uuid.UUID) (*models.Inspection, []*models.Detail, error) {
	inspection, err := s.findInspection(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	details, err := s.store.ListDetailsByInspection(ctx, id)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list details")
	}
	return inspection, details, nil
}

func (s *Service) ListInspections(ctx context.Context) ([]*models.Inspection, error) {
	inspections, err := s.store.ListInspections(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list inspections")
	}
	return inspections, nil
}

// DeleteInspection removes the inspection and every detail recorded under it.
func (s *Service) DeleteInspection(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteInspectionCascade(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "inspection %s not found", id)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete inspection")
	}
	s.logger.InfoContext(ctx, "inspection deleted", "inspection_id", id)
	return nil
}

// ListAllDetails exposes the full detail stream for the pending report scan.
func (s *Service) ListAllDetails(ctx context.Context) ([]*models.Detail, error) {
	details, err := s.store.ListAllDetails(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list details")
	}
	return details, nil
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	catmodels "vigia/internal/catalog/models"
	inspmodels "vigia/internal/inspection/models"
	invmodels "vigia/internal/inventory/models"
	"vigia/internal/report/metrics"
	"vigia/internal/report/models"
	dErrors "vigia/pkg/domain-errors"
)

// Details exposes the recorded observation stream the report scans.
type Details interface {
	ListAllDetails(ctx context.Context) ([]*inspmodels.Detail, error)
}

// Inventory resolves items and their owners for report rows.
type Inventory interface {
	GetUnit(ctx context.Context, id uuid.UUID) (*invmodels.Unit, error)
	GetZone(ctx context.Context, id uuid.UUID) (*invmodels.Zone, error)
	GetUnitItem(ctx context.Context, id uuid.UUID) (*invmodels.UnitItem, error)
	GetZoneItem(ctx context.Context, id uuid.UUID) (*invmodels.ZoneItem, error)
}

// Conditions resolves the condition states details point at.
type Conditions interface {
	StateByID(ctx context.Context, id uuid.UUID) (*catmodels.ConditionState, error)
}

// Policy decides whether a condition state counts as pending remediation.
type Policy func(state *catmodels.ConditionState) bool

// RequiresAttention flags every state other than the acceptable one by name.
// This is the default classification.
func RequiresAttention(state *catmodels.ConditionState) bool {
	return state.Name != catmodels.GoodStateName
}

// SeverityAtLeast flags states whose severity rank meets the threshold,
// independent of naming.
func SeverityAtLeast(rank int) Policy {
	return func(state *catmodels.ConditionState) bool {
		return state.SeverityRank >= rank
	}
}

// Service builds the pending remediation report: every item whose latest
// recorded observation puts it in a non-acceptable condition, flattened with
// its owner so a crew can walk the list.
type Service struct {
	details    Details
	inventory  Inventory
	conditions Conditions
	policy     Policy
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

type Option func(*Service)

func WithPolicy(p Policy) Option {
	return func(s *Service) { s.policy = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(details Details, inventory Inventory, conditions Conditions, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		details:    details,
		inventory:  inventory,
		conditions: conditions,
		policy:     RequiresAttention,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolvedItem is an item joined with its owner, ready to become a row.
type resolvedItem struct {
	scope      models.Scope
	ownerID    uuid.UUID
	ownerLabel string
	name       string
}

// ListPending scans all recorded details, keeps the ones whose condition the
// policy flags, and joins each with its item and owner. Details whose
// references no longer resolve are logged and omitted rather than failing the
// whole report.
func (s *Service) ListPending(ctx context.Context) ([]*models.PendingEntry, error) {
	start := s.now()

	details, err := s.details.ListAllDetails(ctx)
	if err != nil {
		return nil, err
	}

	states := make(map[uuid.UUID]*catmodels.ConditionState)
	var flagged []*inspmodels.Detail
	for _, detail := range details {
		state, ok := states[detail.ConditionID]
		if !ok {
			state, err = s.conditions.StateByID(ctx, detail.ConditionID)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeNotFound) {
					s.skipOrphan(ctx, detail, "condition state no longer exists")
					continue
				}
				return nil, err
			}
			states[detail.ConditionID] = state
		}
		if s.policy(state) {
			flagged = append(flagged, detail)
		}
	}

	unitItems, zoneItems, err := s.resolveItems(ctx, flagged)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.PendingEntry, 0, len(flagged))
	for _, detail := range flagged {
		var item *resolvedItem
		switch detail.Item.Kind {
		case inspmodels.RefUnitItem:
			item = unitItems[detail.Item.ID]
		case inspmodels.RefZoneItem:
			item = zoneItems[detail.Item.ID]
		}
		if item == nil {
			s.skipOrphan(ctx, detail, "item or its owner no longer exists")
			continue
		}
		entries = append(entries, &models.PendingEntry{
			Scope:        item.scope,
			OwnerID:      item.ownerID,
			OwnerLabel:   item.ownerLabel,
			ItemID:       detail.Item.ID,
			ItemName:     item.name,
			InspectionID: detail.InspectionID,
			DetailID:     detail.ID,
			ConditionID:  detail.ConditionID,
			Condition:    states[detail.ConditionID].Name,
			Note:         detail.Note,
		})
	}

	// Stable output regardless of which store produced the stream.
	sort.Slice(entries, func(i, j int) bool {
		if c := bytes.Compare(entries[i].InspectionID[:], entries[j].InspectionID[:]); c != 0 {
			return c < 0
		}
		return bytes.Compare(entries[i].DetailID[:], entries[j].DetailID[:]) < 0
	})

	s.metrics.ObservePendingScan(start, len(entries))
	return entries, nil
}

// resolveItems joins the flagged details with their items and owners. The
// unit and zone sides are independent, so they resolve concurrently.
func (s *Service) resolveItems(ctx context.Context, flagged []*inspmodels.Detail) (map[uuid.UUID]*resolvedItem, map[uuid.UUID]*resolvedItem, error) {
	unitItemIDs := make(map[uuid.UUID]struct{})
	zoneItemIDs := make(map[uuid.UUID]struct{})
	for _, detail := range flagged {
		switch detail.Item.Kind {
		case inspmodels.RefUnitItem:
			unitItemIDs[detail.Item.ID] = struct{}{}
		case inspmodels.RefZoneItem:
			zoneItemIDs[detail.Item.ID] = struct{}{}
		}
	}

	unitItems := make(map[uuid.UUID]*resolvedItem, len(unitItemIDs))
	zoneItems := make(map[uuid.UUID]*resolvedItem, len(zoneItemIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		units := make(map[uuid.UUID]*invmodels.Unit)
		for id := range unitItemIDs {
			item, err := s.inventory.GetUnitItem(gctx, id)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeNotFound) {
					continue
				}
				return err
			}
			unit, ok := units[item.UnitID]
			if !ok {
				unit, err = s.inventory.GetUnit(gctx, item.UnitID)
				if err != nil {
					if dErrors.HasCode(err, dErrors.CodeNotFound) {
						continue
					}
					return err
				}
				units[item.UnitID] = unit
			}
			unitItems[id] = &resolvedItem{
				scope:      models.ScopeUnit,
				ownerID:    unit.ID,
				ownerLabel: fmt.Sprintf("%s-%d-%s", unit.Tower, unit.Floor, unit.Number),
				name:       item.Name,
			}
		}
		return nil
	})
	g.Go(func() error {
		zones := make(map[uuid.UUID]*invmodels.Zone)
		for id := range zoneItemIDs {
			item, err := s.inventory.GetZoneItem(gctx, id)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeNotFound) {
					continue
				}
				return err
			}
			zone, ok := zones[item.ZoneID]
			if !ok {
				zone, err = s.inventory.GetZone(gctx, item.ZoneID)
				if err != nil {
					if dErrors.HasCode(err, dErrors.CodeNotFound) {
						continue
					}
					return err
				}
				zones[item.ZoneID] = zone
			}
			zoneItems[id] = &resolvedItem{
				scope:      models.ScopeZone,
				ownerID:    zone.ID,
				ownerLabel: zone.Name,
				name:       item.Name,
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return unitItems, zoneItems, nil
}

func (s *Service) skipOrphan(ctx context.Context, detail *inspmodels.Detail, reason string) {
	s.metrics.IncrementOrphanedDetails()
	s.logger.WarnContext(ctx, "skipping detail with dangling reference",
		"detail_id", detail.ID,
		"inspection_id", detail.InspectionID,
		"item_kind", detail.Item.Kind,
		"item_id", detail.Item.ID,
		"reason", reason)
}

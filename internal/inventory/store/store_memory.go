package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"vigia/internal/inventory/models"
	"vigia/pkg/platform/sentinel"
)

// InMemory keeps the inventory graph in process. All invariant-bearing
// operations (natural-key uniqueness, cascades, owner checks) run under one
// lock, which stands in for the serialization a relational store provides.
type InMemory struct {
	mu        sync.RWMutex
	seq       uint64
	units     map[uuid.UUID]seqUnit
	unitItems map[uuid.UUID]seqUnitItem
	zones     map[uuid.UUID]seqZone
	zoneItems map[uuid.UUID]seqZoneItem
}

type seqUnit struct {
	seq  uint64
	unit models.Unit
}

type seqUnitItem struct {
	seq  uint64
	item models.UnitItem
}

type seqZone struct {
	seq  uint64
	zone models.Zone
}

type seqZoneItem struct {
	seq  uint64
	item models.ZoneItem
}

func NewInMemory() *InMemory {
	return &InMemory{
		units:     make(map[uuid.UUID]seqUnit),
		unitItems: make(map[uuid.UUID]seqUnitItem),
		zones:     make(map[uuid.UUID]seqZone),
		zoneItems: make(map[uuid.UUID]seqZoneItem),
	}
}

// CreateUnitIfKeyAvailable inserts a unit unless its (tower, floor, number)
// natural key is taken.
func (s *InMemory) CreateUnitIfKeyAvailable(_ context.Context, unit *models.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.units {
		if strings.EqualFold(existing.unit.Tower, unit.Tower) &&
			existing.unit.Floor == unit.Floor &&
			strings.EqualFold(existing.unit.Number, unit.Number) {
			return sentinel.ErrConflict
		}
	}
	s.seq++
	s.units[unit.ID] = seqUnit{seq: s.seq, unit: *unit}
	return nil
}

func (s *InMemory) FindUnitByID(_ context.Context, id uuid.UUID) (*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.units[id]; ok {
		unit := entry.unit
		return &unit, nil
	}
	return nil, sentinel.ErrNotFound
}

// ListUnits returns units in persistence order, narrowed by the filter.
func (s *InMemory) ListUnits(_ context.Context, filter models.UnitFilter) ([]*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]seqUnit, 0, len(s.units))
	for _, entry := range s.units {
		if filter.Tower != nil && !strings.EqualFold(entry.unit.Tower, *filter.Tower) {
			continue
		}
		if filter.Floor != nil && entry.unit.Floor != *filter.Floor {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*models.Unit, len(entries))
	for i := range entries {
		unit := entries[i].unit
		out[i] = &unit
	}
	return out, nil
}

// DeleteUnitCascade removes a unit and all its items atomically.
func (s *InMemory) DeleteUnitCascade(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.units, id)
	for itemID, entry := range s.unitItems {
		if entry.item.UnitID == id {
			delete(s.unitItems, itemID)
		}
	}
	return nil
}

// CreateUnitItem inserts an item after checking its owner still exists, under
// the same lock that guards the cascade delete.
func (s *InMemory) CreateUnitItem(_ context.Context, item *models.UnitItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[item.UnitID]; !ok {
		return sentinel.ErrNotFound
	}
	s.seq++
	s.unitItems[item.ID] = seqUnitItem{seq: s.seq, item: *item}
	return nil
}

func (s *InMemory) FindUnitItemByID(_ context.Context, id uuid.UUID) (*models.UnitItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.unitItems[id]; ok {
		item := entry.item
		return &item, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListUnitItems(_ context.Context, unitID uuid.UUID) ([]*models.UnitItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]seqUnitItem, 0)
	for _, entry := range s.unitItems {
		if entry.item.UnitID == unitID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*models.UnitItem, len(entries))
	for i := range entries {
		item := entries[i].item
		out[i] = &item
	}
	return out, nil
}

func (s *InMemory) CreateZone(_ context.Context, zone *models.Zone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.zones[zone.ID] = seqZone{seq: s.seq, zone: *zone}
	return nil
}

func (s *InMemory) FindZoneByID(_ context.Context, id uuid.UUID) (*models.Zone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.zones[id]; ok {
		zone := entry.zone
		return &zone, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListZones(_ context.Context, filter models.ZoneFilter) ([]*models.Zone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]seqZone, 0, len(s.zones))
	for _, entry := range s.zones {
		if filter.Type != nil && !strings.EqualFold(entry.zone.Type, *filter.Type) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*models.Zone, len(entries))
	for i := range entries {
		zone := entries[i].zone
		out[i] = &zone
	}
	return out, nil
}

func (s *InMemory) DeleteZoneCascade(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.zones, id)
	for itemID, entry := range s.zoneItems {
		if entry.item.ZoneID == id {
			delete(s.zoneItems, itemID)
		}
	}
	return nil
}

func (s *InMemory) CreateZoneItem(_ context.Context, item *models.ZoneItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[item.ZoneID]; !ok {
		return sentinel.ErrNotFound
	}
	s.seq++
	s.zoneItems[item.ID] = seqZoneItem{seq: s.seq, item: *item}
	return nil
}

func (s *InMemory) FindZoneItemByID(_ context.Context, id uuid.UUID) (*models.ZoneItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.zoneItems[id]; ok {
		item := entry.item
		return &item, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListZoneItems(_ context.Context, zoneID uuid.UUID) ([]*models.ZoneItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]seqZoneItem, 0)
	for _, entry := range s.zoneItems {
		if entry.item.ZoneID == zoneID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*models.ZoneItem, len(entries))
	for i := range entries {
		item := entries[i].item
		out[i] = &item
	}
	return out, nil
}

package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"vigia/internal/inventory/models"
	"vigia/internal/inventory/store"
	dErrors "vigia/pkg/domain-errors"
)

type InventoryServiceSuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func (s *InventoryServiceSuite) SetupTest() {
	s.svc = New(store.NewInMemory(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.ctx = context.Background()
}

func TestInventoryServiceSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceSuite))
}

func (s *InventoryServiceSuite) TestCreateUnitDuplicateNaturalKey() {
	_, err := s.svc.CreateUnit(s.ctx, "A", 5, "501")
	s.Require().NoError(err)

	_, err = s.svc.CreateUnit(s.ctx, "A", 5, "501")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	// Different floor, same tower and number, is a different dwelling.
	_, err = s.svc.CreateUnit(s.ctx, "A", 6, "501")
	s.Require().NoError(err)
}

func (s *InventoryServiceSuite) TestCreateUnitRejectsEmptyFields() {
	_, err := s.svc.CreateUnit(s.ctx, "", 5, "501")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.svc.CreateUnit(s.ctx, "A", 5, "  ")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *InventoryServiceSuite) TestListUnitsFilters() {
	_, err := s.svc.CreateUnit(s.ctx, "A", 5, "501")
	s.Require().NoError(err)
	_, err = s.svc.CreateUnit(s.ctx, "A", 6, "601")
	s.Require().NoError(err)
	_, err = s.svc.CreateUnit(s.ctx, "B", 5, "502")
	s.Require().NoError(err)

	tower := "A"
	units, err := s.svc.ListUnits(s.ctx, models.UnitFilter{Tower: &tower})
	s.Require().NoError(err)
	s.Len(units, 2)

	floor := 5
	units, err = s.svc.ListUnits(s.ctx, models.UnitFilter{Tower: &tower, Floor: &floor})
	s.Require().NoError(err)
	s.Require().Len(units, 1)
	s.Equal("501", units[0].Number)
}

func (s *InventoryServiceSuite) TestAddUnitItemRequiresUnit() {
	_, err := s.svc.AddUnitItem(s.ctx, uuid.New(), models.ItemFields{Name: "Kitchen"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *InventoryServiceSuite) TestAddUnitItemAcceptsDanglingReferences() {
	unit, err := s.svc.CreateUnit(s.ctx, "A", 5, "501")
	s.Require().NoError(err)

	// Category/condition ids are not checked against the catalog here; an
	// item may carry a dangling reference until a detail validates it.
	bogus := uuid.New()
	item, err := s.svc.AddUnitItem(s.ctx, unit.ID, models.ItemFields{
		Name:        "Kitchen",
		CategoryID:  &bogus,
		ConditionID: &bogus,
	})
	s.Require().NoError(err)
	s.Equal(unit.ID, item.UnitID)
	s.Equal(&bogus, item.CategoryID)
}

func (s *InventoryServiceSuite) TestDeleteUnitCascadesItems() {
	unit, err := s.svc.CreateUnit(s.ctx, "A", 5, "501")
	s.Require().NoError(err)
	item, err := s.svc.AddUnitItem(s.ctx, unit.ID, models.ItemFields{Name: "Kitchen"})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteUnit(s.ctx, unit.ID))

	_, err = s.svc.GetUnitItem(s.ctx, item.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	// Deleting twice is a not-found, not a crash.
	err = s.svc.DeleteUnit(s.ctx, unit.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *InventoryServiceSuite) TestZoneLifecycle() {
	zone, err := s.svc.CreateZone(s.ctx, "BBQ Terrace", "Floor 15", "Recreation")
	s.Require().NoError(err)

	// No uniqueness constraint on zones.
	_, err = s.svc.CreateZone(s.ctx, "BBQ Terrace", "Floor 15", "Recreation")
	s.Require().NoError(err)

	item, err := s.svc.AddZoneItem(s.ctx, zone.ID, models.ItemFields{Name: "Grill"})
	s.Require().NoError(err)

	items, err := s.svc.ListZoneItems(s.ctx, zone.ID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(item.ID, items[0].ID)

	s.Require().NoError(s.svc.DeleteZone(s.ctx, zone.ID))
	_, err = s.svc.GetZoneItem(s.ctx, item.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	err = s.svc.DeleteZone(s.ctx, zone.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *InventoryServiceSuite) TestListZonesByType() {
	_, err := s.svc.CreateZone(s.ctx, "BBQ Terrace", "Floor 15", "Recreation")
	s.Require().NoError(err)
	_, err = s.svc.CreateZone(s.ctx, "Laundry", "Floor 1", "Services")
	s.Require().NoError(err)

	recreation := "Recreation"
	zones, err := s.svc.ListZones(s.ctx, models.ZoneFilter{Type: &recreation})
	s.Require().NoError(err)
	s.Require().Len(zones, 1)
	s.Equal("BBQ Terrace", zones[0].Name)
}

func (s *InventoryServiceSuite) TestUnitItemsReturnedInCreationOrder() {
	unit, err := s.svc.CreateUnit(s.ctx, "A", 5, "501")
	s.Require().NoError(err)

	names := []string{"Kitchen", "Bathroom", "Cleaning kit"}
	for _, name := range names {
		_, err := s.svc.AddUnitItem(s.ctx, unit.ID, models.ItemFields{Name: name})
		s.Require().NoError(err)
	}

	items, err := s.svc.ListUnitItems(s.ctx, unit.ID)
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	for i, name := range names {
		s.Equal(name, items[i].Name)
	}
}

//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"vigia/internal/inventory/models"
	"vigia/pkg/platform/sentinel"
	"vigia/pkg/testutil/containers"
)

type InventoryPostgresSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *Postgres
	ctx   context.Context
}

func (s *InventoryPostgresSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.DB)
}

func (s *InventoryPostgresSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(s.ctx))
}

func TestInventoryPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(InventoryPostgresSuite))
}

func (s *InventoryPostgresSuite) newUnit(tower string, floor int, number string) *models.Unit {
	return &models.Unit{
		ID:        uuid.New(),
		Tower:     tower,
		Floor:     floor,
		Number:    number,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *InventoryPostgresSuite) TestUnitNaturalKeyUnique() {
	s.Require().NoError(s.store.CreateUnitIfKeyAvailable(s.ctx, s.newUnit("A", 3, "301")))

	// Same triple up to case collides on the partial index.
	err := s.store.CreateUnitIfKeyAvailable(s.ctx, s.newUnit("a", 3, "301"))
	s.ErrorIs(err, sentinel.ErrConflict)

	s.Require().NoError(s.store.CreateUnitIfKeyAvailable(s.ctx, s.newUnit("A", 4, "301")))
}

func (s *InventoryPostgresSuite) TestUnitItemRequiresOwner() {
	item := &models.UnitItem{
		ID:        uuid.New(),
		UnitID:    uuid.New(),
		Name:      "Kitchen sink",
		CreatedAt: time.Now().UTC(),
	}
	err := s.store.CreateUnitItem(s.ctx, item)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InventoryPostgresSuite) TestDeleteUnitCascade() {
	unit := s.newUnit("A", 3, "301")
	s.Require().NoError(s.store.CreateUnitIfKeyAvailable(s.ctx, unit))
	item := &models.UnitItem{
		ID:        uuid.New(),
		UnitID:    unit.ID,
		Name:      "Kitchen sink",
		CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.store.CreateUnitItem(s.ctx, item))

	s.Require().NoError(s.store.DeleteUnitCascade(s.ctx, unit.ID))

	_, err := s.store.FindUnitItemByID(s.ctx, item.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	err = s.store.DeleteUnitCascade(s.ctx, unit.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InventoryPostgresSuite) TestListUnitsFilters() {
	s.Require().NoError(s.store.CreateUnitIfKeyAvailable(s.ctx, s.newUnit("A", 1, "101")))
	s.Require().NoError(s.store.CreateUnitIfKeyAvailable(s.ctx, s.newUnit("A", 2, "201")))
	s.Require().NoError(s.store.CreateUnitIfKeyAvailable(s.ctx, s.newUnit("B", 1, "101")))

	tower := "A"
	floor := 1
	units, err := s.store.ListUnits(s.ctx, models.UnitFilter{Tower: &tower, Floor: &floor})
	s.Require().NoError(err)
	s.Require().Len(units, 1)
	s.Equal("101", units[0].Number)

	units, err = s.store.ListUnits(s.ctx, models.UnitFilter{})
	s.Require().NoError(err)
	s.Len(units, 3)
}

func (s *InventoryPostgresSuite) TestZoneCascade() {
	zone := &models.Zone{
		ID:        uuid.New(),
		Name:      "Rooftop terrace",
		Type:      "terrace",
		CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.store.CreateZone(s.ctx, zone))
	item := &models.ZoneItem{
		ID:        uuid.New(),
		ZoneID:    zone.ID,
		Name:      "Grill",
		CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.store.CreateZoneItem(s.ctx, item))

	s.Require().NoError(s.store.DeleteZoneCascade(s.ctx, zone.ID))
	_, err := s.store.FindZoneItemByID(s.ctx, item.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

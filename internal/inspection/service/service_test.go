package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	catservice "vigia/internal/catalog/service"
	catstore "vigia/internal/catalog/store"
	chkmodels "vigia/internal/checklist/models"
	chkservice "vigia/internal/checklist/service"
	chkstore "vigia/internal/checklist/store"
	"vigia/internal/inspection/models"
	"vigia/internal/inspection/store"
	invmodels "vigia/internal/inventory/models"
	invservice "vigia/internal/inventory/service"
	invstore "vigia/internal/inventory/store"
	dErrors "vigia/pkg/domain-errors"
)

type InspectionServiceSuite struct {
	suite.Suite
	svc        *Service
	inventory  *invservice.Service
	checklists *chkservice.Service
	catalog    *catservice.Service
	ctx        context.Context

	unit          *invmodels.Unit
	unitItem      *invmodels.UnitItem
	zone          *invmodels.Zone
	zoneItem      *invmodels.ZoneItem
	unitChecklist *chkmodels.Checklist
	zoneChecklist *chkmodels.Checklist
	conditionID   uuid.UUID
}

func (s *InspectionServiceSuite) SetupTest() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.catalog = catservice.New(catstore.NewInMemory(), logger)
	s.inventory = invservice.New(invstore.NewInMemory(), logger)
	s.checklists = chkservice.New(chkstore.NewInMemory(), logger)
	s.svc = New(store.NewInMemory(), s.inventory, s.checklists, s.catalog, logger)

	s.Require().NoError(s.catalog.Seed(s.ctx))
	states, err := s.catalog.ListStates(s.ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(states)
	s.conditionID = states[len(states)-1].ID

	s.unit, err = s.inventory.CreateUnit(s.ctx, "A", 3, "301")
	s.Require().NoError(err)
	s.unitItem, err = s.inventory.AddUnitItem(s.ctx, s.unit.ID, invmodels.ItemFields{Name: "Kitchen sink"})
	s.Require().NoError(err)

	s.zone, err = s.inventory.CreateZone(s.ctx, "Rooftop terrace", "Tower A roof", "terrace")
	s.Require().NoError(err)
	s.zoneItem, err = s.inventory.AddZoneItem(s.ctx, s.zone.ID, invmodels.ItemFields{Name: "Grill"})
	s.Require().NoError(err)

	s.unitChecklist, err = s.checklists.CreateChecklist(s.ctx, "Move-in inspection", "1.0", chkmodels.ScopeUnit)
	s.Require().NoError(err)
	s.zoneChecklist, err = s.checklists.CreateChecklist(s.ctx, "Common area sweep", "1.0", chkmodels.ScopeZone)
	s.Require().NoError(err)
}

func TestInspectionServiceSuite(t *testing.T) {
	suite.Run(t, new(InspectionServiceSuite))
}

func (s *InspectionServiceSuite) TestCreateInspectionAgainstUnit() {
	inspection, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(s.unit.ID), s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.Require().NoError(err)
	s.Equal(models.TargetUnit, inspection.Target.Kind)
	s.Equal(s.unit.ID, inspection.Target.ID)
	s.False(inspection.Timestamp.IsZero())
}

func (s *InspectionServiceSuite) TestCreateInspectionRejectsEmptyTarget() {
	_, err := s.svc.CreateInspection(s.ctx, models.Target{}, s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.svc.CreateInspection(s.ctx, models.Target{Kind: models.TargetUnit}, s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *InspectionServiceSuite) TestCreateInspectionRequiresInspector() {
	_, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(s.unit.ID), s.unitChecklist.ID, "   ", time.Time{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *InspectionServiceSuite) TestCreateInspectionRequiresKnownChecklist() {
	_, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(s.unit.ID), uuid.New(), "R. Vargas", time.Time{})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *InspectionServiceSuite) TestCreateInspectionRejectsScopeMismatch() {
	_, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(s.unit.ID), s.zoneChecklist.ID, "R. Vargas", time.Time{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.svc.CreateInspection(s.ctx, models.ZoneTarget(s.zone.ID), s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *InspectionServiceSuite) TestCreateInspectionRequiresExistingTarget() {
	_, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(uuid.New()), s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.svc.CreateInspection(s.ctx, models.ZoneTarget(uuid.New()), s.zoneChecklist.ID, "R. Vargas", time.Time{})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *InspectionServiceSuite) TestAddDetailRecordsObservation() {
	inspection, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(s.unit.ID), s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.Require().NoError(err)

	detail, err := s.svc.AddDetail(s.ctx, inspection.ID, models.UnitItemRef(s.unitItem.ID), s.conditionID, "dripping tap", nil)
	s.Require().NoError(err)
	s.Equal(inspection.ID, detail.InspectionID)
	s.Equal(s.conditionID, detail.ConditionID)
	s.Equal("dripping tap", detail.Note)
}

func (s *InspectionServiceSuite) TestAddDetailRejectsEmptyItemRef() {
	inspection, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(s.unit.ID), s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.Require().NoError(err)

	_, err = s.svc.AddDetail(s.ctx, inspection.ID, models.ItemRef{}, s.conditionID, "", nil)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *InspectionServiceSuite) TestAddDetailRejectsCrossKindItem() {
	inspection, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(s.unit.ID), s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.Require().NoError(err)

	// A zone item can never be observed by a unit inspection.
	_, err = s.svc.AddDetail(s.ctx, inspection.ID, models.ZoneItemRef(s.zoneItem.ID), s.conditionID, "", nil)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *InspectionServiceSuite) TestAddDetailRejectsForeignUnitItem() {
	otherUnit, err := s.inventory.CreateUnit(s.ctx, "B", 1, "101")
	s.Require().NoError(err)
	otherItem, err := s.inventory.AddUnitItem(s.ctx, otherUnit.ID, invmodels.ItemFields{Name: "Water heater"})
	s.Require().NoError(err)

	inspection, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(s.unit.ID), s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.Require().NoError(err)

	_, err = s.svc.AddDetail(s.ctx, inspection.ID, models.UnitItemRef(otherItem.ID), s.conditionID, "", nil)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *InspectionServiceSuite) TestAddDetailRejectsMissingItem() {
	inspection, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(s.unit.ID), s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.Require().NoError(err)

	_, err = s.svc.AddDetail(s.ctx, inspection.ID, models.UnitItemRef(uuid.New()), s.conditionID, "", nil)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *InspectionServiceSuite) TestAddDetailRequiresKnownCondition() {
	inspection, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(s.unit.ID), s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.Require().NoError(err)

	_, err = s.svc.AddDetail(s.ctx, inspection.ID, models.UnitItemRef(s.unitItem.ID), uuid.New(), "", nil)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *InspectionServiceSuite) TestAddDetailRequiresKnownInspection() {
	_, err := s.svc.AddDetail(s.ctx, uuid.New(), models.UnitItemRef(s.unitItem.ID), s.conditionID, "", nil)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *InspectionServiceSuite) TestGetInspectionReturnsDetailsInOrder() {
	inspection, err := s.svc.CreateInspection(s.ctx, models.ZoneTarget(s.zone.ID), s.zoneChecklist.ID, "R. Vargas", time.Time{})
	s.Require().NoError(err)

	secondItem, err := s.inventory.AddZoneItem(s.ctx, s.zone.ID, invmodels.ItemFields{Name: "Pergola"})
	s.Require().NoError(err)

	first, err := s.svc.AddDetail(s.ctx, inspection.ID, models.ZoneItemRef(s.zoneItem.ID), s.conditionID, "", nil)
	s.Require().NoError(err)
	second, err := s.svc.AddDetail(s.ctx, inspection.ID, models.ZoneItemRef(secondItem.ID), s.conditionID, "", nil)
	s.Require().NoError(err)

	got, details, err := s.svc.GetInspection(s.ctx, inspection.ID)
	s.Require().NoError(err)
	s.Equal(inspection.ID, got.ID)
	s.Require().Len(details, 2)
	s.Equal(first.ID, details[0].ID)
	s.Equal(second.ID, details[1].ID)
}

func (s *InspectionServiceSuite) TestDeleteInspectionCascadesDetails() {
	inspection, err := s.svc.CreateInspection(s.ctx, models.UnitTarget(s.unit.ID), s.unitChecklist.ID, "R. Vargas", time.Time{})
	s.Require().NoError(err)
	_, err = s.svc.AddDetail(s.ctx, inspection.ID, models.UnitItemRef(s.unitItem.ID), s.conditionID, "", nil)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteInspection(s.ctx, inspection.ID))

	err = s.svc.DeleteInspection(s.ctx, inspection.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	details, err := s.svc.ListAllDetails(s.ctx)
	s.Require().NoError(err)
	s.Empty(details)
}

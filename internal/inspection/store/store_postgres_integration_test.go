//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"vigia/internal/inspection/models"
	"vigia/pkg/platform/sentinel"
	"vigia/pkg/testutil/containers"
)

type InspectionPostgresSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *Postgres
	ctx   context.Context
}

func (s *InspectionPostgresSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.DB)
}

func (s *InspectionPostgresSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(s.ctx))
}

func TestInspectionPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(InspectionPostgresSuite))
}

func (s *InspectionPostgresSuite) newInspection(target models.Target) *models.Inspection {
	return &models.Inspection{
		ID:          uuid.New(),
		Timestamp:   time.Now().UTC().Truncate(time.Microsecond),
		Inspector:   "R. Vargas",
		ChecklistID: uuid.New(),
		Target:      target,
	}
}

func (s *InspectionPostgresSuite) TestTargetRoundTrip() {
	unitID := uuid.New()
	inspection := s.newInspection(models.UnitTarget(unitID))
	s.Require().NoError(s.store.CreateInspection(s.ctx, inspection))

	got, err := s.store.FindInspectionByID(s.ctx, inspection.ID)
	s.Require().NoError(err)
	s.Equal(models.TargetUnit, got.Target.Kind)
	s.Equal(unitID, got.Target.ID)

	zoneID := uuid.New()
	zoneInspection := s.newInspection(models.ZoneTarget(zoneID))
	s.Require().NoError(s.store.CreateInspection(s.ctx, zoneInspection))

	got, err = s.store.FindInspectionByID(s.ctx, zoneInspection.ID)
	s.Require().NoError(err)
	s.Equal(models.TargetZone, got.Target.Kind)
	s.Equal(zoneID, got.Target.ID)
}

func (s *InspectionPostgresSuite) TestDetailRequiresInspection() {
	detail := &models.Detail{
		ID:           uuid.New(),
		InspectionID: uuid.New(),
		Item:         models.UnitItemRef(uuid.New()),
		ConditionID:  uuid.New(),
		CreatedAt:    time.Now().UTC(),
	}
	err := s.store.CreateDetail(s.ctx, detail)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InspectionPostgresSuite) TestDeleteInspectionCascade() {
	inspection := s.newInspection(models.UnitTarget(uuid.New()))
	s.Require().NoError(s.store.CreateInspection(s.ctx, inspection))

	detail := &models.Detail{
		ID:           uuid.New(),
		InspectionID: inspection.ID,
		Item:         models.UnitItemRef(uuid.New()),
		ConditionID:  uuid.New(),
		Note:         "dripping tap",
		Payload:      []byte(`{"photo":"s3://bucket/key"}`),
		CreatedAt:    time.Now().UTC(),
	}
	s.Require().NoError(s.store.CreateDetail(s.ctx, detail))

	s.Require().NoError(s.store.DeleteInspectionCascade(s.ctx, inspection.ID))

	details, err := s.store.ListAllDetails(s.ctx)
	s.Require().NoError(err)
	s.Empty(details)

	err = s.store.DeleteInspectionCascade(s.ctx, inspection.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InspectionPostgresSuite) TestDetailsKeepRecordingOrder() {
	inspection := s.newInspection(models.ZoneTarget(uuid.New()))
	s.Require().NoError(s.store.CreateInspection(s.ctx, inspection))

	base := time.Now().UTC().Truncate(time.Microsecond)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		detail := &models.Detail{
			ID:           uuid.New(),
			InspectionID: inspection.ID,
			Item:         models.ZoneItemRef(uuid.New()),
			ConditionID:  uuid.New(),
			CreatedAt:    base.Add(time.Duration(i) * time.Second),
		}
		s.Require().NoError(s.store.CreateDetail(s.ctx, detail))
		ids = append(ids, detail.ID)
	}

	details, err := s.store.ListDetailsByInspection(s.ctx, inspection.ID)
	s.Require().NoError(err)
	s.Require().Len(details, 3)
	for i, id := range ids {
		s.Equal(id, details[i].ID)
	}
}

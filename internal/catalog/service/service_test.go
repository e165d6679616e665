package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"vigia/internal/catalog/models"
	"vigia/internal/catalog/store"
	dErrors "vigia/pkg/domain-errors"
)

type CatalogServiceSuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func (s *CatalogServiceSuite) SetupTest() {
	s.svc = New(store.NewInMemory(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.ctx = context.Background()
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) TestSeedIsIdempotent() {
	s.Require().NoError(s.svc.Seed(s.ctx))
	s.Require().NoError(s.svc.Seed(s.ctx))

	states, err := s.svc.ListStates(s.ctx)
	s.Require().NoError(err)
	s.Len(states, 3)

	categories, err := s.svc.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Len(categories, 3)
}

func (s *CatalogServiceSuite) TestListStatesOrderedBySeverity() {
	s.Require().NoError(s.svc.Seed(s.ctx))

	states, err := s.svc.ListStates(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(states, 3)
	s.Equal(models.GoodStateName, states[0].Name)
	s.Equal(1, states[0].SeverityRank)
	for i := 1; i < len(states); i++ {
		s.LessOrEqual(states[i-1].SeverityRank, states[i].SeverityRank)
	}
}

func (s *CatalogServiceSuite) TestStateByID() {
	s.Require().NoError(s.svc.Seed(s.ctx))
	states, err := s.svc.ListStates(s.ctx)
	s.Require().NoError(err)

	found, err := s.svc.StateByID(s.ctx, states[0].ID)
	s.Require().NoError(err)
	s.Equal(states[0].Name, found.Name)

	_, err = s.svc.StateByID(s.ctx, uuid.New())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *CatalogServiceSuite) TestCategoryByIDNotFound() {
	_, err := s.svc.CategoryByID(s.ctx, uuid.New())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

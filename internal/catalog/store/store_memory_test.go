package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"vigia/internal/catalog/models"
	"vigia/pkg/platform/sentinel"
)

type CatalogStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *CatalogStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestCatalogStoreSuite(t *testing.T) {
	suite.Run(t, new(CatalogStoreSuite))
}

func (s *CatalogStoreSuite) TestStateNameUniqueness() {
	good := &models.ConditionState{ID: uuid.New(), Name: "Good", SeverityRank: 1}
	s.Require().NoError(s.store.CreateStateIfNameAvailable(s.ctx, good))

	dup := &models.ConditionState{ID: uuid.New(), Name: "good", SeverityRank: 2}
	err := s.store.CreateStateIfNameAvailable(s.ctx, dup)
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *CatalogStoreSuite) TestFindStateByID() {
	state := &models.ConditionState{ID: uuid.New(), Name: "Non-operational", SeverityRank: 4}
	s.Require().NoError(s.store.CreateStateIfNameAvailable(s.ctx, state))

	found, err := s.store.FindStateByID(s.ctx, state.ID)
	s.Require().NoError(err)
	s.Equal(state.Name, found.Name)

	_, err = s.store.FindStateByID(s.ctx, uuid.New())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *CatalogStoreSuite) TestListCategoriesOrderedByName() {
	for _, name := range []string{"Furniture", "Environment", "Implement"} {
		c := &models.Category{ID: uuid.New(), Name: name}
		s.Require().NoError(s.store.CreateCategoryIfNameAvailable(s.ctx, c))
	}

	categories, err := s.store.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(categories, 3)
	s.Equal("Environment", categories[0].Name)
	s.Equal("Furniture", categories[1].Name)
	s.Equal("Implement", categories[2].Name)
}

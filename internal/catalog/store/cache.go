package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"vigia/internal/catalog/models"
)

const (
	stateKeyPrefix    = "catalog:state:"
	categoryKeyPrefix = "catalog:category:"
)

// backing is the store surface the cache decorates.
type backing interface {
	CreateStateIfNameAvailable(ctx context.Context, state *models.ConditionState) error
	CreateCategoryIfNameAvailable(ctx context.Context, category *models.Category) error
	FindStateByID(ctx context.Context, id uuid.UUID) (*models.ConditionState, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListStates(ctx context.Context) ([]*models.ConditionState, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

// Cached layers a Redis read-through cache over by-ID catalog lookups, the hot
// path of detail validation. Reference data never mutates after seeding, so a
// short TTL is enough to bound staleness; list and write operations pass
// through untouched. Cache failures degrade to the backing store.
type Cached struct {
	backing
	client *redis.Client
	ttl    time.Duration
}

func NewCached(next backing, client *redis.Client, ttl time.Duration) *Cached {
	return &Cached{backing: next, client: client, ttl: ttl}
}

func (c *Cached) FindStateByID(ctx context.Context, id uuid.UUID) (*models.ConditionState, error) {
	key := stateKeyPrefix + id.String()
	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var state models.ConditionState
		if err := json.Unmarshal(raw, &state); err == nil {
			return &state, nil
		}
	}

	state, err := c.backing.FindStateByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(state); err == nil {
		_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	return state, nil
}

func (c *Cached) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	key := categoryKeyPrefix + id.String()
	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var category models.Category
		if err := json.Unmarshal(raw, &category); err == nil {
			return &category, nil
		}
	}

	category, err := c.backing.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(category); err == nil {
		_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	return category, nil
}

package memstore_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"go.kgctl.dev/kg/storage"
	"go.kgctl.dev/kg/storage/memstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestableProperty7UpsertIdempotence -- applying the same descriptor
// twice yields exactly one entity per id, and created_at is stable after
// the first apply.
func TestableProperty7UpsertIdempotence(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	require.NoError(t, s.Connect(ctx))

	id, err := s.StoreEntity(ctx, "repository", "demo/r1", map[string]any{"owners": []any{"a@x.com"}}, storage.SystemMetadata{Namespace: "demo"})
	require.NoError(t, err)
	assert.Equal(t, "demo/r1", id)

	first, err := s.GetEntity(ctx, "repository", "demo/r1")
	require.NoError(t, err)
	require.NotNil(t, first)

	_, err = s.StoreEntity(ctx, "repository", "demo/r1", map[string]any{"owners": []any{"a@x.com", "b@x.com"}}, storage.SystemMetadata{Namespace: "demo"})
	require.NoError(t, err)

	second, err := s.GetEntity(ctx, "repository", "demo/r1")
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, first.CreatedAt, second.CreatedAt, "created_at must be stable across upserts")
	assert.True(t, !second.UpdatedAt.Before(first.UpdatedAt))

	entities, err := s.ListEntities(ctx, "repository", nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, entities, 1, "exactly one entity must exist per id")
}

func TestGetEntityAbsentIsNilNotError(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	require.NoError(t, s.Connect(ctx))

	data, err := s.GetEntity(ctx, "repository", "demo/missing")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRelationshipReplacementEmptiesEdgesWhenTargetAbsent(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	require.NoError(t, s.Connect(ctx))

	ok, err := s.CreateRelationship(ctx, "repository", "demo/r1", "depends_on", "repository", "demo/r2")
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := s.RemoveRelationshipsByType(ctx, "repository", "demo/r1", "depends_on")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	rels, err := s.GetEntityRelationships(ctx, "repository", "demo/r1")
	require.NoError(t, err)
	assert.Empty(t, rels)
}

func TestExecuteQueryLookupDSL(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	require.NoError(t, s.Connect(ctx))

	_, err := s.StoreEntity(ctx, "repository", "demo/r1", map[string]any{"owners": []any{"a@x.com"}}, storage.SystemMetadata{})
	require.NoError(t, err)

	res := s.ExecuteQuery(ctx, "get demo/r1", nil)
	assert.True(t, res.Success)

	res = s.ExecuteQuery(ctx, "get demo/missing", nil)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Err)

	res = s.ExecuteQuery(ctx, "not a query", nil)
	assert.False(t, res.Success)
}

func TestHealthCheckDegraded(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	require.NoError(t, s.Connect(ctx))

	assert.Equal(t, storage.HealthStatusHealthy, s.HealthCheck(ctx).Status)

	s.SetDegraded(true)
	assert.Equal(t, storage.HealthStatusDegraded, s.HealthCheck(ctx).Status)

	s.Disconnect(ctx)
	assert.Equal(t, storage.HealthStatusDisconnected, s.HealthCheck(ctx).Status)
}

func TestConcurrentStoreEntity(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	require.NoError(t, s.Connect(ctx))

	g, gctx := errgroup.WithContext(ctx)

	for i := range 50 {
		g.Go(func() error {
			id := fmt.Sprintf("demo/r%d", i)
			_, err := s.StoreEntity(gctx, "repository", id, map[string]any{"n": i}, storage.SystemMetadata{})

			return err
		})
	}

	require.NoError(t, g.Wait())

	entities, err := s.ListEntities(ctx, "repository", nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, entities, 50)
}

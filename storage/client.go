package storage

import (
	"context"

	"go.kgctl.dev/kg/schema"
)

// Client is the backend-agnostic graph storage contract the apply
// orchestrator depends on (spec.md §4.10). Every method accepts a
// context so the caller can propagate cancellation; a canceled operation
// must leave the backend in a consistent, if possibly partially applied,
// state (spec.md §5).
//
// Connect is idempotent: calling it again on an already-open client is a
// no-op success. Disconnect is best-effort and never returns an error.
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context)
	HealthCheck(ctx context.Context) Health

	// LoadSchemas reads dir, builds a [*schema.Catalog], and initializes
	// the backend's projected schema (spec.md §4.10's backing-schema
	// projection, performed here).
	LoadSchemas(ctx context.Context, dir string) (*schema.Catalog, error)

	// StoreEntity upserts by (entityType, id): if the entity already
	// exists, its fields are updated and created_at is preserved;
	// otherwise it is created and created_at is set. updated_at always
	// advances. This is the critical upsert invariant from spec.md §4.10.
	StoreEntity(ctx context.Context, entityType, id string, metadata map[string]any, sys SystemMetadata) (string, error)
	GetEntity(ctx context.Context, entityType, id string) (*EntityData, error)
	DeleteEntity(ctx context.Context, entityType, id string) (bool, error)
	ListEntities(ctx context.Context, entityType string, filters Filters, limit, offset int) ([]EntityData, error)
	EntityExists(ctx context.Context, id string) (bool, error)

	CreateRelationship(ctx context.Context, srcType, srcID, relName, tgtType, tgtID string) (bool, error)
	RemoveRelationship(ctx context.Context, srcType, srcID, relName, tgtType, tgtID string) (bool, error)
	RemoveRelationshipsByType(ctx context.Context, srcType, srcID, relName string) (int, error)
	GetEntityRelationships(ctx context.Context, entityType, id string) ([]RelationshipEdges, error)

	SystemMetrics(ctx context.Context) (SystemMetrics, error)
	ExecuteQuery(ctx context.Context, raw string, vars map[string]any) QueryResult
	DryRunApply(ctx context.Context, records []ApplyRecord) (DryRunResult, error)
}

// ApplyRecord is the minimal shape [Client.DryRunApply] needs to preview an
// apply; it mirrors [go.kgctl.dev/kg/descriptor]'s extracted record without
// importing that package here (storage must not depend on descriptor).
type ApplyRecord struct {
	EntityType    string
	EntityID      string
	Metadata      map[string]any
	Relationships map[string][]string
}

package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.kgctl.dev/kg/schema"
	"go.kgctl.dev/kg/schema/loader"
	"go.kgctl.dev/kg/storage"
	"go.kgctl.dev/kg/storage/backing"
)

// edgeKey identifies one outgoing edge of a given relationship name from a
// source entity to a target entity.
type edgeKey struct {
	srcType string
	srcID   string
	relName string
	tgtType string
	tgtID   string
}

// Store is an in-memory [storage.Client]. A zero Store is not ready for
// use; call [New]. Store is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	connected bool
	degraded  bool

	entities map[string]map[string]*storage.EntityData // entityType -> id -> data
	edges    map[edgeKey]bool
	edgeMeta map[edgeKey]map[string]any

	backendVersion string
	backingSchema  backing.Projection
}

// New returns a disconnected Store ready to [Store.Connect].
func New() *Store {
	return &Store{
		entities:       make(map[string]map[string]*storage.EntityData),
		edges:          make(map[edgeKey]bool),
		edgeMeta:       make(map[edgeKey]map[string]any),
		backendVersion: "memstore-dev",
	}
}

// SetDegraded toggles the simulated degraded health state (SPEC_FULL.md's
// supplemented health-check feature) that [Store.HealthCheck] reports, for
// tests.
func (s *Store) SetDegraded(degraded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.degraded = degraded
}

// Connect is idempotent.
func (s *Store) Connect(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = true

	return nil
}

// Disconnect is best-effort and never errors.
func (s *Store) Disconnect(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = false
}

// HealthCheck reports the simulated health state.
func (s *Store) HealthCheck(_ context.Context) storage.Health {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return storage.Health{Status: storage.HealthStatusDisconnected, BackendVersion: s.backendVersion}
	}

	if s.degraded {
		return storage.Health{Status: storage.HealthStatusDegraded, BackendVersion: s.backendVersion, ResponseTimeMS: 1}
	}

	return storage.Health{Status: storage.HealthStatusHealthy, BackendVersion: s.backendVersion, ResponseTimeMS: 0}
}

// LoadSchemas reads dir with [loader.New], then projects the resulting
// catalog into the backing schema this store would need to host (spec.md
// §4.10: "Backing-schema projection, performed in load_schemas").
func (s *Store) LoadSchemas(_ context.Context, dir string) (*schema.Catalog, error) {
	cat, err := loader.New().Load(dir)
	if err != nil {
		return nil, storage.OperationError("load schemas", err)
	}

	s.mu.Lock()
	s.backingSchema = backing.Project(cat)
	s.mu.Unlock()

	return cat, nil
}

// BackingSchema returns the backing schema projected by the most recent
// [Store.LoadSchemas] call.
func (s *Store) BackingSchema() backing.Projection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.backingSchema
}

func (s *Store) typeBucket(entityType string) map[string]*storage.EntityData {
	bucket, ok := s.entities[entityType]
	if !ok {
		bucket = make(map[string]*storage.EntityData)
		s.entities[entityType] = bucket
	}

	return bucket
}

// StoreEntity upserts by (entityType, id): created_at is preserved across
// updates, updated_at always advances (spec.md §4.10's critical upsert
// invariant).
func (s *Store) StoreEntity(_ context.Context, entityType, id string, metadata map[string]any, sys storage.SystemMetadata) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.typeBucket(entityType)

	now := stableNow()

	existing, ok := bucket[id]
	if ok {
		existing.Metadata = metadata
		existing.System = sys
		existing.UpdatedAt = now

		return id, nil
	}

	bucket[id] = &storage.EntityData{
		EntityType: entityType,
		EntityID:   id,
		Metadata:   metadata,
		System:     sys,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return id, nil
}

// GetEntity returns nil, nil when absent -- it is never an error for an
// entity not to exist.
func (s *Store) GetEntity(_ context.Context, entityType, id string) (*storage.EntityData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket, ok := s.entities[entityType]
	if !ok {
		return nil, nil
	}

	data, ok := bucket[id]
	if !ok {
		return nil, nil
	}

	clone := *data

	return &clone, nil
}

// DeleteEntity removes the entity and every edge touching it.
func (s *Store) DeleteEntity(_ context.Context, entityType, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.entities[entityType]
	if !ok {
		return false, nil
	}

	if _, ok := bucket[id]; !ok {
		return false, nil
	}

	delete(bucket, id)

	for k := range s.edges {
		if (k.srcType == entityType && k.srcID == id) || (k.tgtType == entityType && k.tgtID == id) {
			delete(s.edges, k)
			delete(s.edgeMeta, k)
		}
	}

	return true, nil
}

// ListEntities supports simple equality filters over an entity's metadata.
func (s *Store) ListEntities(_ context.Context, entityType string, filters storage.Filters, limit, offset int) ([]storage.EntityData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.entities[entityType]

	var out []storage.EntityData

	for _, data := range bucket {
		if !matchesFilters(data, filters) {
			continue
		}

		out = append(out, *data)
	}

	if offset > 0 && offset < len(out) {
		out = out[offset:]
	} else if offset >= len(out) {
		out = nil
	}

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}

	return out, nil
}

func matchesFilters(data *storage.EntityData, filters storage.Filters) bool {
	for k, want := range filters {
		if data.Metadata[k] != want {
			return false
		}
	}

	return true
}

// EntityExists checks a canonical "<entity_type?>" independent id across
// every entity type bucket, since the canonical id alone does not carry
// its type.
func (s *Store) EntityExists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, bucket := range s.entities {
		if _, ok := bucket[id]; ok {
			return true, nil
		}
	}

	return false, nil
}

// CreateRelationship is safe to call before either endpoint entity exists
// in the backend (spec.md §4.10).
func (s *Store) CreateRelationship(_ context.Context, srcType, srcID, relName, tgtType, tgtID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := edgeKey{srcType: srcType, srcID: srcID, relName: relName, tgtType: tgtType, tgtID: tgtID}
	if s.edges[key] {
		return false, nil
	}

	s.edges[key] = true

	return true, nil
}

// RemoveRelationship removes exactly one edge.
func (s *Store) RemoveRelationship(_ context.Context, srcType, srcID, relName, tgtType, tgtID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := edgeKey{srcType: srcType, srcID: srcID, relName: relName, tgtType: tgtType, tgtID: tgtID}
	if !s.edges[key] {
		return false, nil
	}

	delete(s.edges, key)
	delete(s.edgeMeta, key)

	return true, nil
}

// RemoveRelationshipsByType removes every outgoing edge of relName from
// (srcType, srcID), returning the count removed.
func (s *Store) RemoveRelationshipsByType(_ context.Context, srcType, srcID, relName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0

	for k := range s.edges {
		if k.srcType == srcType && k.srcID == srcID && k.relName == relName {
			delete(s.edges, k)
			delete(s.edgeMeta, k)

			removed++
		}
	}

	return removed, nil
}

// GetEntityRelationships groups every outgoing edge from (entityType, id)
// by relationship name.
func (s *Store) GetEntityRelationships(_ context.Context, entityType, id string) ([]storage.RelationshipEdges, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byName := map[string][]string{}

	for k := range s.edges {
		if k.srcType == entityType && k.srcID == id {
			byName[k.relName] = append(byName[k.relName], k.tgtID)
		}
	}

	out := make([]storage.RelationshipEdges, 0, len(byName))

	for name, targets := range byName {
		out = append(out, storage.RelationshipEdges{RelationshipName: name, TargetEntities: targets})
	}

	return out, nil
}

// SystemMetrics summarizes the store's current contents.
func (s *Store) SystemMetrics(_ context.Context) (storage.SystemMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, len(s.entities))

	var lastUpdated time.Time

	for entityType, bucket := range s.entities {
		counts[entityType] = len(bucket)

		for _, e := range bucket {
			if e.UpdatedAt.After(lastUpdated) {
				lastUpdated = e.UpdatedAt
			}
		}
	}

	return storage.SystemMetrics{
		EntityCounts:       counts,
		TotalRelationships: len(s.edges),
		LastUpdated:        lastUpdated,
		BackendInfo:        map[string]any{"backend": "memstore"},
	}, nil
}

// ExecuteQuery implements a tiny key==entity_id lookup DSL: a raw query of
// the form "get <entity_id>" returns that entity's metadata; anything else
// reports failure. This exists only to exercise the contract without
// inventing a real query language (spec.md §1's non-goals).
func (s *Store) ExecuteQuery(_ context.Context, raw string, _ map[string]any) storage.QueryResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields := strings.Fields(raw)
	if len(fields) != 2 || fields[0] != "get" {
		return storage.QueryResult{Success: false, Err: `unsupported query, expected "get <entity_id>"`}
	}

	id := fields[1]

	for _, bucket := range s.entities {
		if data, ok := bucket[id]; ok {
			return storage.QueryResult{Success: true, Data: data.Metadata}
		}
	}

	return storage.QueryResult{Success: false, Err: "entity not found"}
}

// DryRunApply classifies each record as a would-be create or update
// without writing anything.
func (s *Store) DryRunApply(_ context.Context, records []storage.ApplyRecord) (storage.DryRunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result storage.DryRunResult

	for _, rec := range records {
		bucket := s.entities[rec.EntityType]

		if bucket != nil {
			if _, ok := bucket[rec.EntityID]; ok {
				result.WouldUpdate = append(result.WouldUpdate, rec.EntityID)

				continue
			}
		}

		result.WouldCreate = append(result.WouldCreate, rec.EntityID)
	}

	result.Summary = "dry run: no writes performed"

	return result, nil
}

// stableNow is time.Now, split out so tests can't accidentally rely on
// two calls within the same upsert producing different instants.
func stableNow() time.Time {
	return time.Now()
}

package storage

import "time"

// HealthStatus is the coarse state a [Client.HealthCheck] reports. It is
// never raised as an error: a down backend is a successful health check
// reporting HealthStatusError.
type HealthStatus string

// Supported health statuses.
const (
	HealthStatusHealthy      HealthStatus = "healthy"
	HealthStatusDegraded     HealthStatus = "degraded"
	HealthStatusError        HealthStatus = "error"
	HealthStatusDisconnected HealthStatus = "disconnected"
)

// Health is the result of a health check.
type Health struct {
	Status          HealthStatus
	ResponseTimeMS  int64
	BackendVersion  string
	Info            map[string]any
}

// SystemMetadata is attached to every stored entity alongside its
// user-declared metadata (spec.md §4.6's system_metadata plus the
// auto-created-dependency tags from §4.9).
type SystemMetadata struct {
	Namespace   string
	SourceName  string
	AutoCreated bool
	Source      string
}

// EntityData is the full stored representation of one entity.
type EntityData struct {
	EntityType string
	EntityID   string
	Metadata   map[string]any
	System     SystemMetadata
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RelationshipEdges is one relationship_name with its resolved target
// entities, as returned by [Client.GetEntityRelationships].
type RelationshipEdges struct {
	RelationshipName string
	TargetEntities   []string
	Metadata         map[string]any
}

// Filters narrows [Client.ListEntities]. A nil/zero Filters lists
// everything of the given type.
type Filters map[string]any

// SystemMetrics summarizes backend-wide state for [Client.SystemMetrics].
type SystemMetrics struct {
	EntityCounts        map[string]int
	TotalRelationships  int
	SizeBytes           int64
	LastUpdated         time.Time
	BackendInfo         map[string]any
}

// QueryResult is the outcome of [Client.ExecuteQuery]. It is never raised
// as an error; a failed query reports Success=false with Err populated.
type QueryResult struct {
	Success bool
	Data    any
	TimeMS  int64
	Err     string
}

// DryRunResult previews the effect of an apply without writing anything.
type DryRunResult struct {
	WouldCreate []string
	WouldUpdate []string
	WouldDelete []string
	Issues      []string
	Summary     string
}

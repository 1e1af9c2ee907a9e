package apply_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.kgctl.dev/kg/apply"
	"go.kgctl.dev/kg/schema"
	"go.kgctl.dev/kg/storage"
	"go.kgctl.dev/kg/storage/memstore"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newDemoCatalog loads a repository/external-dependency catalog into a
// fresh, connected memstore and returns both the store and its catalog.
func newDemoCatalog(t *testing.T) (*memstore.Store, *schema.Catalog) {
	t.Helper()

	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "repository", "1.0.0.yaml"), `
entity_type: repository
schema_version: "1.0.0"
required_metadata:
  owners:
    type: array
    items: string
    min_items: 1
relationships:
  depends_on:
    target_types: [external_dependency_version, repository]
    cardinality: many_to_many
    direction: outbound
  maintained_by:
    target_types: [repository]
    cardinality: many_to_many
    direction: outbound
dgraph_type: Repository
`)

	writeFile(t, filepath.Join(dir, "external_dependency_package", "1.0.0.yaml"), `
entity_type: external_dependency_package
schema_version: "1.0.0"
required_metadata:
  ecosystem:
    type: string
relationships:
  has_version:
    target_types: [external_dependency_version]
    cardinality: one_to_many
    direction: outbound
dgraph_type: ExternalDependencyPackage
`)

	writeFile(t, filepath.Join(dir, "external_dependency_version", "1.0.0.yaml"), `
entity_type: external_dependency_version
schema_version: "1.0.0"
required_metadata:
  ecosystem:
    type: string
  version:
    type: string
dgraph_type: ExternalDependencyVersion
`)

	store := memstore.New()
	require.NoError(t, store.Connect(context.Background()))

	cat, err := store.LoadSchemas(context.Background(), dir)
	require.NoError(t, err)

	return store, cat
}

const s1Doc = `
schema_version: "1.0.0"
namespace: "demo"
entity:
  repository:
    - r1:
        owners: ["a@x.com"]
        depends_on: ["external://pypi/requests/2.31.0"]
`

// TestableProperty7ApplyIdempotence -- applying the same descriptor twice
// through the orchestrator produces one created then one updated outcome,
// never two creates.
func TestableProperty7ApplyIdempotence(t *testing.T) {
	ctx := context.Background()
	store, cat := newDemoCatalog(t)
	orch := apply.New(store, cat)

	first, err := orch.Apply(ctx, []byte(s1Doc), false)
	require.NoError(t, err)
	require.True(t, first.Valid)
	require.Len(t, first.Entities, 1)
	assert.Equal(t, apply.OutcomeCreated, first.Entities[0].Outcome)

	second, err := orch.Apply(ctx, []byte(s1Doc), false)
	require.NoError(t, err)
	require.True(t, second.Valid)
	require.Len(t, second.Entities, 1)
	assert.Equal(t, apply.OutcomeUpdated, second.Entities[0].Outcome)
}

// TestableProperty8RelationshipReplacement -- a relationship declared in
// the schema but omitted from the descriptor ends up with an empty edge
// set after apply.
func TestableProperty8RelationshipReplacement(t *testing.T) {
	ctx := context.Background()
	store, cat := newDemoCatalog(t)
	orch := apply.New(store, cat)

	// r2 must already exist in storage before a descriptor can reference
	// it via internal://, since Layer 5 checks reference existence
	// against current storage truth, not sibling entities in the same
	// apply.
	_, err := store.StoreEntity(ctx, "repository", "demo/r2", map[string]any{"owners": []any{"b@y.com"}}, storage.SystemMetadata{})
	require.NoError(t, err)

	doc := `
schema_version: "1.0.0"
namespace: "demo"
entity:
  repository:
    - r1:
        owners: ["a@x.com"]
        relationships:
          depends_on: ["internal://demo/r2"]
`

	_, err = orch.Apply(ctx, []byte(doc), false)
	require.NoError(t, err)

	rels, err := store.GetEntityRelationships(ctx, "repository", "demo/r1")
	require.NoError(t, err)
	assert.Len(t, rels, 1)
	assert.Equal(t, "depends_on", rels[0].RelationshipName)
	assert.Equal(t, []string{"demo/r2"}, rels[0].TargetEntities)

	doc2 := `
schema_version: "1.0.0"
namespace: "demo"
entity:
  repository:
    - r1:
        owners: ["a@x.com"]
    - r2:
        owners: ["b@y.com"]
`

	_, err = orch.Apply(ctx, []byte(doc2), false)
	require.NoError(t, err)

	rels, err = store.GetEntityRelationships(ctx, "repository", "demo/r1")
	require.NoError(t, err)
	assert.Empty(t, rels, "omitting depends_on must empty the edge set, not leave it untouched")
}

// TestableProperty9DependencyExpansion -- an external:// depends_on target
// expands into package + version entities and a has_version edge.
func TestableProperty9DependencyExpansion(t *testing.T) {
	ctx := context.Background()
	store, cat := newDemoCatalog(t)
	orch := apply.New(store, cat)

	_, err := orch.Apply(ctx, []byte(s1Doc), false)
	require.NoError(t, err)

	pkg, err := store.GetEntity(ctx, "external_dependency_package", "external://pypi/requests")
	require.NoError(t, err)
	require.NotNil(t, pkg)
	assert.Equal(t, "pypi", pkg.Metadata["ecosystem"])
	assert.True(t, pkg.System.AutoCreated)

	ver, err := store.GetEntity(ctx, "external_dependency_version", "external://pypi/requests/2.31.0")
	require.NoError(t, err)
	require.NotNil(t, ver)
	assert.Equal(t, "2.31.0", ver.Metadata["version"])

	rels, err := store.GetEntityRelationships(ctx, "external_dependency_package", "external://pypi/requests")
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, "has_version", rels[0].RelationshipName)
	assert.Equal(t, []string{"external://pypi/requests/2.31.0"}, rels[0].TargetEntities)

	// scenario S4: a legacy top-level depends_on also produces a
	// depends_on edge from the repository to the version entity.
	repoRels, err := store.GetEntityRelationships(ctx, "repository", "demo/r1")
	require.NoError(t, err)
	require.Len(t, repoRels, 1)
	assert.Equal(t, "depends_on", repoRels[0].RelationshipName)
	assert.Equal(t, []string{"external://pypi/requests/2.31.0"}, repoRels[0].TargetEntities)
}

func TestDryRunPerformsNoWrites(t *testing.T) {
	ctx := context.Background()
	store, cat := newDemoCatalog(t)
	orch := apply.New(store, cat)

	summary, err := orch.Apply(ctx, []byte(s1Doc), true)
	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Contains(t, summary.DryRunPlan.WouldCreate, "demo/r1")

	entity, err := store.GetEntity(ctx, "repository", "demo/r1")
	require.NoError(t, err)
	assert.Nil(t, entity, "dry run must not write")
}

func TestInvalidDescriptorProducesNoWrites(t *testing.T) {
	ctx := context.Background()
	store, cat := newDemoCatalog(t)
	orch := apply.New(store, cat)

	doc := `
schema_version: "9.9.9"
namespace: "demo"
entity:
  repository:
    - r1:
        owners: ["a@x.com"]
`

	summary, err := orch.Apply(ctx, []byte(doc), false)
	require.NoError(t, err)
	assert.False(t, summary.Valid)
	assert.NotEmpty(t, summary.Errors)

	entity, err := store.GetEntity(ctx, "repository", "demo/r1")
	require.NoError(t, err)
	assert.Nil(t, entity)
}
